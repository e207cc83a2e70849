package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrIOFailure reports a failed bus transfer. Retryable.
	ErrIOFailure = errors.New("io failure")

	// ErrIOTimeout reports a bus transfer that exceeded its deadline. Retryable.
	ErrIOTimeout = errors.New("io timeout")
)

// DisplayBus is the transfer path to the physical panel.
//
// Blit pushes one complete 1bpp frame (page-major, width*height/8 bytes)
// over the bus and returns when the transfer finishes or fails. It is the
// only display operation that performs I/O.
type DisplayBus interface {
	Size() (width, height int)
	Blit(buf []byte) error
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined; the kernel keeps its own counter.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the OS and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	DisplayBus() DisplayBus
	Buttons() []GPIOPin
	Time() Time
}
