package screens

import (
	"strconv"

	"vhub/vhubos/drivers/display"
	"vhub/vhubos/drivers/input"
	"vhub/vhubos/kernel"
	"vhub/vhubos/ui"
)

// Home is the idle screen: product name, uptime, and button hints.
type Home struct {
	Title string
	// Menu is the screen id opened by the scroll button.
	Menu int

	now kernel.Tick
}

func (s *Home) Enter(now kernel.Tick) {
	s.now = now
}

func (s *Home) HandleEvent(m *ui.Manager, ev input.Event) {
	if ev.Edge != input.Pressed {
		return
	}
	if ev.Button == ui.ButtonScroll || ev.Button == ui.ButtonSelect {
		_ = m.SwitchTo(s.Menu, ev.Tick)
	}
}

func (s *Home) Update(m *ui.Manager, now kernel.Tick) {
	_ = m
	s.now = now
}

func (s *Home) Draw(d *display.Driver) {
	title := s.Title
	if title == "" {
		title = "vhub"
	}
	d.WriteLine(nil, (d.Width()-d.LineWidth(nil, title))/2, 14, title)
	d.HLine(8, 20, d.Width()-16, true)

	// 1 ms ticks: show whole seconds of uptime.
	up := "up " + strconv.FormatUint(uint64(s.now)/1000, 10) + "s"
	d.WriteLine(nil, (d.Width()-d.LineWidth(nil, up))/2, 36, up)

	if ui.Blink(uint32(s.now), 500) {
		hint := "any button: menu"
		d.WriteLine(nil, (d.Width()-d.LineWidth(nil, hint))/2, 58, hint)
	}
}
