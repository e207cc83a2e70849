package screens

import (
	"vhub/vhubos/drivers/display"
	"vhub/vhubos/drivers/input"
	"vhub/vhubos/kernel"
	"vhub/vhubos/ui"
)

// Item is one menu entry; Select returns the screen id to open, or -1 to
// stay on the menu.
type Item struct {
	Label  string
	Target int
}

// Menu is a scroll/select list driven by the two buttons.
type Menu struct {
	Title string
	Items []Item

	selected int
}

func (s *Menu) Enter(now kernel.Tick) {
	_ = now
	if s.selected >= len(s.Items) {
		s.selected = 0
	}
}

func (s *Menu) HandleEvent(m *ui.Manager, ev input.Event) {
	if ev.Edge != input.Pressed || len(s.Items) == 0 {
		return
	}
	switch ev.Button {
	case ui.ButtonScroll:
		s.selected = (s.selected + 1) % len(s.Items)
	case ui.ButtonSelect:
		target := s.Items[s.selected].Target
		if target >= 0 {
			_ = m.SwitchTo(target, ev.Tick)
		}
	}
}

func (s *Menu) Update(m *ui.Manager, now kernel.Tick) {
	_ = m
	_ = now
}

func (s *Menu) Draw(d *display.Driver) {
	title := s.Title
	if title == "" {
		title = "Menu"
	}
	d.WriteLine(nil, 4, 10, title)
	d.HLine(0, 14, d.Width(), true)

	const rowHeight = 12
	y := 26
	for i, item := range s.Items {
		if i == s.selected {
			d.Rect(2, y-9, d.Width()-4, rowHeight-1, false)
			d.WriteLine(nil, 8, y, "> "+item.Label)
		} else {
			d.WriteLine(nil, 8, y, "  "+item.Label)
		}
		y += rowHeight
	}
}

// Selected reports the highlighted row.
func (s *Menu) Selected() int { return s.selected }
