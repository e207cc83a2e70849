package screens

import (
	"strconv"

	"vhub/vhubos/drivers/display"
	"vhub/vhubos/drivers/input"
	"vhub/vhubos/kernel"
	"vhub/vhubos/ui"
)

// Stats shows driver counters: frames presented, transfer errors, and
// input events dropped on queue overflow.
type Stats struct {
	// Back is the screen id the select button returns to.
	Back int
	// In, when set, supplies the input counters shown on the last row.
	In *input.Driver

	now kernel.Tick
}

func (s *Stats) Enter(now kernel.Tick) {
	s.now = now
}

func (s *Stats) HandleEvent(m *ui.Manager, ev input.Event) {
	if ev.Edge != input.Pressed {
		return
	}
	if ev.Button == ui.ButtonSelect {
		_ = m.SwitchTo(s.Back, ev.Tick)
	}
}

func (s *Stats) Update(m *ui.Manager, now kernel.Tick) {
	_ = m
	s.now = now
}

func (s *Stats) Draw(d *display.Driver) {
	d.WriteLine(nil, 4, 10, "Stats")
	d.HLine(0, 14, d.Width(), true)

	ds := d.Stats()
	d.WriteLine(nil, 4, 28, "frames  "+strconv.FormatUint(uint64(ds.Frames), 10))
	d.WriteLine(nil, 4, 38, "io errs "+strconv.FormatUint(uint64(ds.Errors), 10))
	d.WriteLine(nil, 4, 48, "tick    "+strconv.FormatUint(uint64(s.now), 10))
	if s.In != nil {
		st := s.In.Stats()
		d.WriteLine(nil, 4, 58, "dropped "+strconv.FormatUint(uint64(st.Dropped), 10))
	}
}
