package input

import (
	"errors"
	"fmt"
	"sync"

	"vhub/hal"
	"vhub/vhubos/kernel"
)

const (
	// MaxButtons bounds the static per-button state.
	MaxButtons = 8

	// DefaultDebounceTicks is the debounce window when the config leaves it zero.
	DefaultDebounceTicks = 20
)

var (
	// ErrInvalidButton reports a poll for an out-of-range button id.
	ErrInvalidButton = errors.New("input: invalid button id")

	// ErrNoPins reports an empty pin list.
	ErrNoPins = errors.New("input: no pins configured")

	// ErrTooManyPins reports a pin list beyond MaxButtons.
	ErrTooManyPins = errors.New("input: too many pins")
)

// Edge is the direction of a confirmed transition.
type Edge uint8

const (
	Pressed Edge = iota
	Released
)

func (e Edge) String() string {
	switch e {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// Event is one debounced button transition.
type Event struct {
	Button uint8
	Edge   Edge
	Tick   kernel.Tick
}

// Stats are driver counters. Dropped counts events discarded on queue
// overflow; BadPolls counts polls with invalid button ids.
type Stats struct {
	Dropped  uint32
	BadPolls uint32
}

// Config is supplied once at initialization.
type Config struct {
	Pins []hal.GPIOPin
	// ActiveLow marks lines that read low when the button is held
	// (pull-up wiring). Pins are configured with the matching pull.
	ActiveLow bool
	// DebounceTicks is the number of consecutive ticks a new level must
	// persist before an event is emitted.
	DebounceTicks uint8
}

type fsmState uint8

const (
	stateIdle fsmState = iota
	stateTentative
	stateConfirmed
)

// button is the per-line debounce state machine.
type button struct {
	pin       hal.GPIOPin
	state     fsmState
	settled   bool // last confirmed logical level (true = pressed)
	candidate bool
	count     uint8
}

// Driver samples the raw lines on every timer tick, debounces them, and
// queues discrete press/release events for polling tasks. OnTick runs in
// interrupt context and shares the queue with task-context polls through a
// minimal critical section.
type Driver struct {
	mu sync.Mutex

	buttons [MaxButtons]button
	count   uint8

	window    uint8
	activeLow bool

	q     eventRing
	stats Stats
}

// New configures the pins and captures their initial settled levels.
func New(cfg Config) (*Driver, error) {
	if len(cfg.Pins) == 0 {
		return nil, ErrNoPins
	}
	if len(cfg.Pins) > MaxButtons {
		return nil, ErrTooManyPins
	}

	window := cfg.DebounceTicks
	if window == 0 {
		window = DefaultDebounceTicks
	}

	d := &Driver{
		count:     uint8(len(cfg.Pins)),
		window:    window,
		activeLow: cfg.ActiveLow,
	}

	pull := hal.GPIOPullNone
	if cfg.ActiveLow {
		pull = hal.GPIOPullUp
	}
	for i, pin := range cfg.Pins {
		if pin == nil {
			return nil, fmt.Errorf("input: pin %d is nil", i)
		}
		if err := pin.Configure(hal.GPIOModeInput, pull); err != nil {
			return nil, fmt.Errorf("input: pin %d: %w", i, err)
		}
		level, err := pin.Read()
		if err != nil {
			return nil, fmt.Errorf("input: pin %d: %w", i, err)
		}
		d.buttons[i] = button{pin: pin, settled: d.logical(level)}
	}
	return d, nil
}

// logical maps a raw line level to "button held".
func (d *Driver) logical(level bool) bool {
	if d.activeLow {
		return !level
	}
	return level
}

// OnTick samples every line once and advances the debounce state machines.
// Called from the tick source; it never blocks.
func (d *Driver) OnTick(now kernel.Tick) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := uint8(0); i < d.count; i++ {
		b := &d.buttons[i]
		level, err := b.pin.Read()
		if err != nil {
			continue
		}
		pressed := d.logical(level)

		switch b.state {
		case stateIdle:
			if pressed != b.settled {
				b.state = stateTentative
				b.candidate = pressed
				b.count = 1
				if b.count >= d.window {
					d.confirm(b, i, now)
				}
			}
		case stateTentative:
			if pressed != b.candidate {
				// Reverted inside the window: electrical bounce, no event.
				b.state = stateIdle
				b.count = 0
				continue
			}
			b.count++
			if b.count >= d.window {
				d.confirm(b, i, now)
			}
		}
	}
}

// confirm emits exactly one event and re-arms edge detection.
// Caller holds d.mu.
func (d *Driver) confirm(b *button, id uint8, now kernel.Tick) {
	b.state = stateConfirmed
	b.settled = b.candidate

	edge := Released
	if b.settled {
		edge = Pressed
	}
	if dropped := d.q.push(Event{Button: id, Edge: edge, Tick: now}); dropped {
		d.stats.Dropped++
	}

	b.state = stateIdle
	b.count = 0
}

// PollAny removes and returns the oldest unconsumed event.
func (d *Driver) PollAny() (Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.q.pop()
}

// Poll removes and returns the oldest unconsumed event for one button.
func (d *Driver) Poll(buttonID uint8) (Event, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if buttonID >= d.count {
		d.stats.BadPolls++
		return Event{}, false, ErrInvalidButton
	}
	ev, ok := d.q.remove(buttonID)
	return ev, ok, nil
}

// Buttons returns the number of configured buttons.
func (d *Driver) Buttons() int {
	return int(d.count)
}

// Stats returns driver counters.
func (d *Driver) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}
