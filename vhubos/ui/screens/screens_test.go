package screens

import (
	"testing"

	"vhub/vhubos/drivers/display"
	"vhub/vhubos/drivers/input"
	"vhub/vhubos/kernel"
	"vhub/vhubos/ui"
)

type fakeBus struct{}

func (fakeBus) Size() (int, int)  { return 128, 64 }
func (fakeBus) Blit([]byte) error { return nil }

// probeScreen records Enter calls; used as a navigation target.
type probeScreen struct {
	entered int
	lastAt  kernel.Tick
}

func (s *probeScreen) Enter(now kernel.Tick) {
	s.entered++
	s.lastAt = now
}
func (s *probeScreen) HandleEvent(*ui.Manager, input.Event) {}
func (s *probeScreen) Update(*ui.Manager, kernel.Tick)      {}
func (s *probeScreen) Draw(*display.Driver)                 {}

func press(button uint8, tick kernel.Tick) input.Event {
	return input.Event{Button: button, Edge: input.Pressed, Tick: tick}
}

func newTestDisplay(t *testing.T) *display.Driver {
	t.Helper()
	d, err := display.New(fakeBus{}, nil)
	if err != nil {
		t.Fatalf("display.New: %v", err)
	}
	return d
}

func TestMenuScrollWraps(t *testing.T) {
	m := ui.NewManager(ui.Config{})
	menu := &Menu{Items: []Item{
		{Label: "A", Target: -1},
		{Label: "B", Target: -1},
		{Label: "C", Target: -1},
	}}
	m.Add(menu)

	for _, want := range []int{1, 2, 0, 1} {
		menu.HandleEvent(m, press(ui.ButtonScroll, 0))
		if menu.Selected() != want {
			t.Fatalf("selected %d, want %d", menu.Selected(), want)
		}
	}
}

func TestMenuSelectOpensTarget(t *testing.T) {
	m := ui.NewManager(ui.Config{})
	target := &probeScreen{}
	menu := &Menu{}
	m.Add(menu)
	targetID := m.Add(target)
	menu.Items = []Item{
		{Label: "Stay", Target: -1},
		{Label: "Go", Target: targetID},
	}

	// Selecting a -1 target stays put.
	menu.HandleEvent(m, press(ui.ButtonSelect, 5))
	if target.entered != 0 {
		t.Fatal("stay item opened a screen")
	}

	menu.HandleEvent(m, press(ui.ButtonScroll, 6))
	menu.HandleEvent(m, press(ui.ButtonSelect, 7))
	if target.entered != 1 {
		t.Fatalf("target entered %d, want 1", target.entered)
	}
	if target.lastAt != 7 {
		t.Fatalf("enter tick %d, want 7", target.lastAt)
	}
}

func TestMenuIgnoresReleaseAndEmpty(t *testing.T) {
	m := ui.NewManager(ui.Config{})
	menu := &Menu{Items: []Item{{Label: "A", Target: -1}, {Label: "B", Target: -1}}}
	m.Add(menu)

	menu.HandleEvent(m, input.Event{Button: ui.ButtonScroll, Edge: input.Released})
	if menu.Selected() != 0 {
		t.Fatal("release moved the selection")
	}

	empty := &Menu{}
	empty.HandleEvent(m, press(ui.ButtonScroll, 0))
	empty.HandleEvent(m, press(ui.ButtonSelect, 0))
}

func TestMenuEnterClampsSelection(t *testing.T) {
	menu := &Menu{Items: []Item{{Label: "A", Target: -1}}}
	menu.selected = 5
	menu.Enter(0)
	if menu.Selected() != 0 {
		t.Fatalf("selected %d after Enter, want 0", menu.Selected())
	}
}

func TestHomeAnyButtonOpensMenu(t *testing.T) {
	m := ui.NewManager(ui.Config{})
	menu := &probeScreen{}
	home := &Home{}
	m.Add(home)
	home.Menu = m.Add(menu)

	home.HandleEvent(m, press(ui.ButtonScroll, 3))
	if menu.entered != 1 {
		t.Fatalf("menu entered %d after scroll, want 1", menu.entered)
	}
	home.HandleEvent(m, press(ui.ButtonSelect, 4))
	if menu.entered != 2 {
		t.Fatalf("menu entered %d after select, want 2", menu.entered)
	}
	home.HandleEvent(m, input.Event{Button: ui.ButtonScroll, Edge: input.Released})
	if menu.entered != 2 {
		t.Fatal("release opened the menu")
	}
}

func TestLoadingSwitchesWhenDone(t *testing.T) {
	m := ui.NewManager(ui.Config{})
	next := &probeScreen{}
	loading := &Loading{BootTicks: 100}
	m.Add(loading)
	loading.Next = m.Add(next)

	loading.Enter(10)
	loading.Update(m, 60)
	if next.entered != 0 {
		t.Fatal("switched before boot window elapsed")
	}

	loading.Update(m, 110)
	if next.entered != 1 {
		t.Fatalf("next entered %d, want 1", next.entered)
	}

	// Further updates after completion stay put.
	loading.Update(m, 200)
	if next.entered != 1 {
		t.Fatal("loading switched twice")
	}
}

func TestLoadingDrawSmoke(t *testing.T) {
	d := newTestDisplay(t)
	loading := &Loading{Title: "visionHub"}
	loading.Enter(0)
	loading.Draw(d)

	on := 0
	for y := 0; y < d.Height(); y++ {
		for x := 0; x < d.Width(); x++ {
			if d.Pixel(x, y) {
				on++
			}
		}
	}
	if on == 0 {
		t.Fatal("loading screen drew nothing")
	}
}

func TestStatsSelectGoesBack(t *testing.T) {
	m := ui.NewManager(ui.Config{})
	back := &probeScreen{}
	stats := &Stats{}
	m.Add(stats)
	stats.Back = m.Add(back)

	stats.HandleEvent(m, press(ui.ButtonScroll, 1))
	if back.entered != 0 {
		t.Fatal("scroll left the stats screen")
	}
	stats.HandleEvent(m, press(ui.ButtonSelect, 2))
	if back.entered != 1 {
		t.Fatalf("back entered %d, want 1", back.entered)
	}
}

func TestStatsDrawSmoke(t *testing.T) {
	d := newTestDisplay(t)
	stats := &Stats{}
	stats.Enter(1234)
	stats.Draw(d)

	on := 0
	for y := 0; y < d.Height(); y++ {
		for x := 0; x < d.Width(); x++ {
			if d.Pixel(x, y) {
				on++
			}
		}
	}
	if on == 0 {
		t.Fatal("stats screen drew nothing")
	}
}
