package app

import (
	"fmt"

	"vhub/hal"
	"vhub/vhubos/drivers/display"
	"vhub/vhubos/drivers/input"
	"vhub/vhubos/kernel"
	"vhub/vhubos/ui"
	"vhub/vhubos/ui/screens"
)

const (
	uiStackBytes        = 8 * 1024
	heartbeatStackBytes = 1 * 1024

	heartbeatHalfPeriod = 500 // ticks
)

type system struct {
	k  *kernel.Kernel
	in *input.Driver
}

type Config struct {
	// SkipSplash boots straight to the home screen.
	SkipSplash bool
}

// New initializes and starts the OS with default config.
func New(h hal.HAL) func() error {
	_ = newSystem(h, Config{})
	return func() error { return nil }
}

// Run starts the OS and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	_ = New(h)
	select {}
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	_ = newSystem(h, cfg)
	return func() error { return nil }
}

func RunWithConfig(h hal.HAL, cfg Config) {
	_ = NewWithConfig(h, cfg)
	select {}
}

func newSystem(h hal.HAL, cfg Config) *system {
	k := kernel.New()

	disp, err := display.New(h.DisplayBus(), k)
	if err != nil {
		logLine(h, fmt.Sprintf("vhub: display init failed: %v", err))
	}

	in, err := input.New(input.Config{
		Pins:      h.Buttons(),
		ActiveLow: true,
	})
	if err != nil {
		logLine(h, fmt.Sprintf("vhub: input init failed: %v", err))
	}

	installPanicHandler(h, disp)

	if disp != nil && in != nil {
		mgr := buildUI(h, disp, in, cfg)
		if _, err := k.Spawn(kernel.TaskFunc(mgr.Run), uiStackBytes); err != nil {
			logLine(h, fmt.Sprintf("vhub: ui task: %v", err))
		}
	}

	if led := h.LED(); led != nil {
		hb := heartbeat{led: led}
		if _, err := k.Spawn(kernel.TaskFunc(hb.run), heartbeatStackBytes); err != nil {
			logLine(h, fmt.Sprintf("vhub: heartbeat task: %v", err))
		}
	}

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for range ch {
					now := k.OnTick()
					if in != nil {
						in.OnTick(now)
					}
				}
			}()
		}
	}

	go k.Run()

	return &system{k: k, in: in}
}

func buildUI(h hal.HAL, disp *display.Driver, in *input.Driver, cfg Config) *ui.Manager {
	mgr := ui.NewManager(ui.Config{
		Display: disp,
		Input:   in,
		Logger:  h.Logger(),
	})

	home := &screens.Home{Title: "visionHub"}
	menu := &screens.Menu{Title: "Menu"}
	stats := &screens.Stats{In: in}

	homeID := mgr.Add(home)
	menuID := mgr.Add(menu)
	statsID := mgr.Add(stats)

	home.Menu = menuID
	stats.Back = menuID
	menu.Items = []screens.Item{
		{Label: "Home", Target: homeID},
		{Label: "Stats", Target: statsID},
	}

	if cfg.SkipSplash {
		if err := mgr.SwitchTo(homeID, 0); err != nil {
			logLine(h, fmt.Sprintf("vhub: ui boot: %v", err))
		}
		return mgr
	}

	loading := &screens.Loading{Title: "visionHub", Next: homeID}
	loadingID := mgr.Add(loading)
	if err := mgr.SwitchTo(loadingID, 0); err != nil {
		logLine(h, fmt.Sprintf("vhub: ui boot: %v", err))
	}
	return mgr
}

// heartbeat blinks the board LED so a wedged UI is still visible.
type heartbeat struct {
	led hal.LED
}

func (hb heartbeat) run(ctx *kernel.Context) {
	for {
		hb.led.High()
		ctx.Sleep(heartbeatHalfPeriod)
		hb.led.Low()
		ctx.Sleep(heartbeatHalfPeriod)
	}
}

func logLine(h hal.HAL, s string) {
	if l := h.Logger(); l != nil {
		l.WriteLineString(s)
	}
}
