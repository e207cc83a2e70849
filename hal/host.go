//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

const (
	hostPanelWidth  = 128
	hostPanelHeight = 64
)

type hostHAL struct {
	logger  *hostLogger
	led     *hostLED
	bus     *hostDisplayBus
	buttons []GPIOPin
	t       *hostTime
}

// New returns a host HAL implementation.
func New() HAL {
	logger := &hostLogger{w: os.Stdout}
	led := &hostLED{logger: logger}

	scroll := newVirtualPin("BTN_SCROLL", GPIOCapInput|GPIOCapPullUp)
	sel := newVirtualPin("BTN_SELECT", GPIOCapInput|GPIOCapPullUp)
	// Pull-up idle: both lines read high until a key drives them low.
	scroll.setRaw(true)
	sel.setRaw(true)

	return &hostHAL{
		logger:  logger,
		led:     led,
		bus:     newHostDisplayBus(hostPanelWidth, hostPanelHeight),
		buttons: []GPIOPin{scroll, sel},
		t:       newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger         { return h.logger }
func (h *hostHAL) LED() LED               { return h.led }
func (h *hostHAL) DisplayBus() DisplayBus { return h.bus }
func (h *hostHAL) Buttons() []GPIOPin     { return h.buttons }
func (h *hostHAL) Time() Time             { return h.t }

// setButton drives a simulated button line: pressed pulls the line low.
func (h *hostHAL) setButton(idx int, pressed bool) {
	if idx < 0 || idx >= len(h.buttons) {
		return
	}
	if p, ok := h.buttons[idx].(rawSetter); ok {
		p.setRaw(!pressed)
	}
}

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString("led: HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString("led: LOW")
}
