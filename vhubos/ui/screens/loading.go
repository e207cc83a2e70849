package screens

import (
	"vhub/vhubos/drivers/display"
	"vhub/vhubos/drivers/input"
	"vhub/vhubos/kernel"
	"vhub/vhubos/ui"
)

// Loading is the boot screen: product name, staged status messages, and a
// progress bar. When the boot window elapses it switches to Next.
type Loading struct {
	Title string
	// Next is the screen id to switch to when loading completes.
	Next int
	// BootTicks is the duration of the staged boot; 0 means 3000 ticks.
	BootTicks kernel.Tick

	started  kernel.Tick
	progress int
	done     bool
}

func (s *Loading) Enter(now kernel.Tick) {
	if s.BootTicks == 0 {
		s.BootTicks = 3000
	}
	s.started = now
	s.progress = 0
	s.done = false
}

func (s *Loading) HandleEvent(m *ui.Manager, ev input.Event) {
	// Boot is not interactive.
	_ = m
	_ = ev
}

func (s *Loading) Update(m *ui.Manager, now kernel.Tick) {
	if s.done {
		return
	}
	elapsed := now - s.started
	s.progress = int(elapsed) * 100 / int(s.BootTicks)
	if s.progress >= 100 {
		s.progress = 100
		s.done = true
		_ = m.SwitchTo(s.Next, now)
	}
}

func (s *Loading) Draw(d *display.Driver) {
	d.DrawBitmap((d.Width()-logoWidth)/2, 4, logoWidth, logoHeight, logoBits)

	title := s.Title
	if title == "" {
		title = "vhub"
	}
	d.WriteLine(nil, (d.Width()-d.LineWidth(nil, title))/2, 32, title)

	msg := s.message()
	d.WriteLine(nil, (d.Width()-d.LineWidth(nil, msg))/2, 44, msg)

	d.ProgressBar(14, 50, d.Width()-28, ui.EaseOutPercent(s.progress))
}

func (s *Loading) message() string {
	switch {
	case s.progress <= 20:
		return "Initialising hardware..."
	case s.progress <= 40:
		return "Loading drivers..."
	case s.progress <= 60:
		return "Starting services..."
	case s.progress <= 80:
		return "Initialising UI..."
	default:
		return "Almost ready..."
	}
}
