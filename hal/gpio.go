package hal

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
)

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

type virtualPin struct {
	mu    sync.Mutex
	name  string
	caps  GPIOCaps
	mode  GPIOMode
	pull  GPIOPull
	level bool
}

func newVirtualPin(name string, caps GPIOCaps) *virtualPin {
	return &virtualPin{
		name: name,
		caps: caps,
		mode: GPIOModeInput,
		pull: GPIOPullNone,
	}
}

func (p *virtualPin) Name() string   { return p.name }
func (p *virtualPin) Caps() GPIOCaps { return p.caps }

func (p *virtualPin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch mode {
	case GPIOModeInput:
		if p.caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: pin %s: input unsupported", p.name)
		}
	case GPIOModeOutput:
		if p.caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.name)
	}

	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		if p.caps&GPIOCapPullUp == 0 {
			return fmt.Errorf("gpio: pin %s: pull-up unsupported", p.name)
		}
	case GPIOPullDown:
		if p.caps&GPIOCapPullDown == 0 {
			return fmt.Errorf("gpio: pin %s: pull-down unsupported", p.name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", p.name)
	}

	p.mode = mode
	p.pull = pull
	return nil
}

func (p *virtualPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != GPIOModeInput && p.mode != GPIOModeOutput {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	return p.level, nil
}

func (p *virtualPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.level = level
	return nil
}

// setRaw drives the external level of an input pin (host keyboard, tests).
func (p *virtualPin) setRaw(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

// bouncyPin simulates the contact chatter of a mechanical switch: after
// the driven level changes, reads alternate between old and new level for
// the bounce window before settling.
type bouncyPin struct {
	mu   sync.Mutex
	name string

	mode GPIOMode
	pull GPIOPull

	now     func() time.Time
	level   bool
	prev    bool
	movedAt time.Time

	bounce  time.Duration
	chatter time.Duration
}

func newBouncyPin(name string, bounce, chatter time.Duration) *bouncyPin {
	return newBouncyPinWithClock(name, bounce, chatter, time.Now)
}

func newBouncyPinWithClock(name string, bounce, chatter time.Duration, now func() time.Time) *bouncyPin {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	if bounce < 0 {
		bounce = 0
	}
	if chatter <= 0 {
		chatter = time.Millisecond
	}
	return &bouncyPin{
		name:    name,
		mode:    GPIOModeInput,
		pull:    GPIOPullNone,
		now:     now,
		movedAt: now().Add(-bounce),
		bounce:  bounce,
		chatter: chatter,
	}
}

func (p *bouncyPin) Name() string   { return p.name }
func (p *bouncyPin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullUp }

func (p *bouncyPin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if mode != GPIOModeInput {
		return fmt.Errorf("gpio: pin %s: only input supported", p.name)
	}
	if pull != GPIOPullNone && pull != GPIOPullUp {
		return fmt.Errorf("gpio: pin %s: pull unsupported", p.name)
	}
	p.mode = mode
	p.pull = pull
	return nil
}

func (p *bouncyPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode != GPIOModeInput {
		return false, fmt.Errorf("gpio: pin %s: not configured for input", p.name)
	}

	elapsed := p.now().Sub(p.movedAt)
	if elapsed >= p.bounce {
		return p.level, nil
	}
	if (elapsed/p.chatter)%2 == 0 {
		return p.level, nil
	}
	return p.prev, nil
}

func (p *bouncyPin) Write(level bool) error {
	_ = level
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

// setRaw drives the settled level, restarting the bounce window on change.
func (p *bouncyPin) setRaw(level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if level == p.level {
		return
	}
	p.prev = p.level
	p.level = level
	p.movedAt = p.now()
}

type rawSetter interface {
	setRaw(level bool)
}
