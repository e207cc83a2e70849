package ui

import (
	"errors"
	"fmt"

	"vhub/hal"
	"vhub/vhubos/drivers/display"
	"vhub/vhubos/drivers/input"
	"vhub/vhubos/kernel"
)

// Button roles, by index into the HAL pin list.
const (
	ButtonScroll uint8 = 0
	ButtonSelect uint8 = 1
)

// ErrNoScreen reports a switch to an unknown screen id.
var ErrNoScreen = errors.New("ui: no such screen")

// Screen is one full-panel view. The manager drains input to the active
// screen, updates it, and redraws it once per frame.
type Screen interface {
	Enter(now kernel.Tick)
	HandleEvent(m *Manager, ev input.Event)
	Update(m *Manager, now kernel.Tick)
	Draw(d *display.Driver)
}

// Manager owns the display and input drivers and runs the active screen.
// It is a kernel task.
type Manager struct {
	disp *display.Driver
	in   *input.Driver
	log  hal.Logger

	screens []Screen
	active  int

	frameTicks kernel.Tick
}

// Config for the screen manager.
type Config struct {
	Display *display.Driver
	Input   *input.Driver
	Logger  hal.Logger
	// FrameTicks is the redraw period; 0 means 40 ticks (25 fps at 1 ms).
	FrameTicks kernel.Tick
}

func NewManager(cfg Config) *Manager {
	frame := cfg.FrameTicks
	if frame == 0 {
		frame = 40
	}
	return &Manager{
		disp:       cfg.Display,
		in:         cfg.Input,
		log:        cfg.Logger,
		active:     -1,
		frameTicks: frame,
	}
}

// Add registers a screen and returns its id.
func (m *Manager) Add(s Screen) int {
	m.screens = append(m.screens, s)
	return len(m.screens) - 1
}

// SwitchTo makes a screen active and runs its Enter hook.
func (m *Manager) SwitchTo(id int, now kernel.Tick) error {
	if id < 0 || id >= len(m.screens) {
		return fmt.Errorf("%w: %d", ErrNoScreen, id)
	}
	m.active = id
	m.screens[id].Enter(now)
	return nil
}

// Run is the manager's task loop: drain events, update, draw, present,
// sleep until the next frame.
func (m *Manager) Run(ctx *kernel.Context) {
	if m.disp == nil || m.in == nil {
		return
	}
	if m.active < 0 && len(m.screens) > 0 {
		_ = m.SwitchTo(0, ctx.NowTick())
	}

	for {
		now := ctx.NowTick()
		screen := m.currentScreen()
		if screen == nil {
			ctx.Sleep(m.frameTicks)
			continue
		}

		for {
			ev, ok := m.in.PollAny()
			if !ok {
				break
			}
			screen.HandleEvent(m, ev)
			// The event may have switched screens.
			screen = m.currentScreen()
		}

		screen.Update(m, now)

		m.disp.Clear()
		screen.Draw(m.disp)
		if err := m.disp.Present(ctx); err != nil {
			// Retryable: the frame is redrawn next period anyway.
			m.logf("ui: present: " + err.Error())
		}

		ctx.Sleep(m.frameTicks)
	}
}

func (m *Manager) currentScreen() Screen {
	if m.active < 0 || m.active >= len(m.screens) {
		return nil
	}
	return m.screens[m.active]
}

func (m *Manager) logf(s string) {
	if m.log != nil {
		m.log.WriteLineString(s)
	}
}

// Display exposes the display driver to screens that need metrics.
func (m *Manager) Display() *display.Driver { return m.disp }

// Input exposes the input driver to screens that need counters.
func (m *Manager) Input() *input.Driver { return m.in }
