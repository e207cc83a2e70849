package display

import (
	"errors"
	"fmt"
	"sync"

	"vhub/hal"
	"vhub/vhubos/kernel"
)

// ErrBusy reports a Present while a transfer is still in flight. The
// display lock admits one transfer at a time.
var ErrBusy = errors.New("display: transfer in flight")

// Stats are transfer counters.
type Stats struct {
	Frames uint32
	Errors uint32
}

// Driver owns the framebuffer and the bus transfer. Drawing primitives
// mutate only the in-memory framebuffer and never block; Present is the
// single operation that performs I/O.
type Driver struct {
	bus hal.DisplayBus
	k   *kernel.Kernel
	fb  *Framebuffer

	mu       sync.Mutex
	tx       []byte
	inflight bool
	xferErr  error
	stats    Stats
}

// New sizes the framebuffer from the bus. A nil kernel forces synchronous
// transfers (boot-time and tests).
func New(bus hal.DisplayBus, k *kernel.Kernel) (*Driver, error) {
	w, h := bus.Size()
	if w <= 0 || h <= 0 || h%8 != 0 {
		return nil, fmt.Errorf("display: bad panel size %dx%d", w, h)
	}
	return &Driver{
		bus: bus,
		k:   k,
		fb:  newFramebuffer(w, h),
		tx:  make([]byte, w*h/8),
	}, nil
}

func (d *Driver) Width() int  { return d.fb.width }
func (d *Driver) Height() int { return d.fb.height }

// SetPixel sets or clears one pixel.
func (d *Driver) SetPixel(x, y int, on bool) {
	d.fb.SetPixel(x, y, on)
}

// Pixel reports the state of one pixel.
func (d *Driver) Pixel(x, y int) bool {
	return d.fb.Pixel(x, y)
}

// Clear switches every pixel off.
func (d *Driver) Clear() {
	d.fb.Fill(false)
}

// Fill sets every pixel to the given state.
func (d *Driver) Fill(on bool) {
	d.fb.Fill(on)
}

// Present transfers the framebuffer to the panel.
//
// The frame is snapshotted into a shadow buffer before the transfer
// starts, so the framebuffer's logical content survives a failed transfer
// and a retry with no intervening drawing sends the identical payload.
// With a task context the calling task blocks (kernel Blocked state) until
// the bus engine signals completion, letting other tasks run during the
// transfer; with a nil context the transfer is synchronous.
func (d *Driver) Present(ctx *kernel.Context) error {
	d.mu.Lock()
	if d.inflight {
		d.mu.Unlock()
		return ErrBusy
	}
	d.inflight = true
	copy(d.tx, d.fb.buf)
	d.mu.Unlock()

	if ctx == nil || d.k == nil {
		return d.finish(d.bus.Blit(d.tx))
	}

	id := ctx.TaskID()
	go func() {
		err := d.bus.Blit(d.tx)
		d.mu.Lock()
		d.xferErr = err
		d.mu.Unlock()
		_ = d.k.Wake(id)
	}()
	ctx.Wait()

	d.mu.Lock()
	err := d.xferErr
	d.xferErr = nil
	d.mu.Unlock()
	return d.finish(err)
}

func (d *Driver) finish(err error) error {
	d.mu.Lock()
	d.inflight = false
	if err != nil {
		d.stats.Errors++
	} else {
		d.stats.Frames++
	}
	d.mu.Unlock()
	return err
}

// Stats returns transfer counters.
func (d *Driver) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}
