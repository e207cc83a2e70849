//go:build !tinygo

package hal

import (
	"fmt"
	"sync"
)

// hostDisplayBus is the simulated panel bus: Blit keeps the last frame so
// the window (or a test) can inspect what the OS presented.
type hostDisplayBus struct {
	mu     sync.Mutex
	width  int
	height int
	frame  []byte
	blits  uint64
	fail   error
}

func newHostDisplayBus(width, height int) *hostDisplayBus {
	return &hostDisplayBus{
		width:  width,
		height: height,
		frame:  make([]byte, width*height/8),
	}
}

func (b *hostDisplayBus) Size() (int, int) { return b.width, b.height }

func (b *hostDisplayBus) Blit(buf []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(buf) != len(b.frame) {
		return fmt.Errorf("display bus: frame is %d bytes, want %d: %w", len(buf), len(b.frame), ErrIOFailure)
	}
	if err := b.fail; err != nil {
		b.fail = nil
		return err
	}
	copy(b.frame, buf)
	b.blits++
	return nil
}

// snapshot copies the last presented frame into dst.
func (b *hostDisplayBus) snapshot(dst []byte) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	copy(dst, b.frame)
	return b.blits
}

// failNext makes the next Blit return err, then recover.
func (b *hostDisplayBus) failNext(err error) {
	b.mu.Lock()
	b.fail = err
	b.mu.Unlock()
}
