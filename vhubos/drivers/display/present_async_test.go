package display

import (
	"testing"

	"vhub/vhubos/kernel"
)

func TestPresentAsyncCompletesViaWake(t *testing.T) {
	bus := newFakeBus()
	k := kernel.New()
	d, err := New(bus, k)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	done := make(chan error, 1)
	id, err := k.Spawn(kernel.TaskFunc(func(ctx *kernel.Context) {
		d.SetPixel(5, 5, true)
		done <- d.Present(ctx)
	}), kernel.MinStackBytes)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	// First dispatch runs the task until it blocks on the transfer (or, if
	// the bus engine already signalled, straight to completion).
	k.Dispatch()
	if st, _ := k.TaskState(id); st != kernel.Unused {
		k.Dispatch()
	}

	if err := <-done; err != nil {
		t.Fatalf("Present: %v", err)
	}
	if st := d.Stats(); st.Frames != 1 || st.Errors != 0 {
		t.Fatalf("stats %+v", st)
	}
	if len(bus.payloads) != 1 {
		t.Fatalf("blits %d, want 1", len(bus.payloads))
	}
	idx := 5 + (5/8)*128
	if bus.payloads[0][idx]&(1<<(5%8)) == 0 {
		t.Fatal("payload missing drawn pixel")
	}
}
