package kernel

import (
	"sync"
	"testing"
)

// trace records scheduling order from task goroutines. Only one task runs
// at a time, but the lock keeps the race detector quiet.
type trace struct {
	mu    sync.Mutex
	steps []string
}

func (tr *trace) add(s string) {
	tr.mu.Lock()
	tr.steps = append(tr.steps, s)
	tr.mu.Unlock()
}

func (tr *trace) get() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := make([]string, len(tr.steps))
	copy(out, tr.steps)
	return out
}

func equalSteps(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// drain dispatches until the ready queue is empty. Every Dispatch call
// returns only after the running task parked or exited, so the queue read
// between calls is settled.
func drain(k *Kernel) {
	for {
		k.mu.Lock()
		empty := k.ready.empty()
		k.mu.Unlock()
		if empty {
			return
		}
		k.Dispatch()
	}
}

func TestSpawnAssignsDistinctIDs(t *testing.T) {
	k := New()
	seen := map[TaskID]bool{}
	for i := 0; i < MaxTasks; i++ {
		id, err := k.Spawn(TaskFunc(func(*Context) {}), MinStackBytes)
		if err != nil {
			t.Fatalf("Spawn %d: %v", i, err)
		}
		if seen[id] {
			t.Fatalf("duplicate task id %d", id)
		}
		seen[id] = true
	}
}

func TestSpawnPoolExhausted(t *testing.T) {
	k := New()
	for i := 0; i < MaxTasks; i++ {
		if _, err := k.Spawn(TaskFunc(func(*Context) {}), MinStackBytes); err != nil {
			t.Fatalf("Spawn %d: %v", i, err)
		}
	}
	if _, err := k.Spawn(TaskFunc(func(*Context) {}), MinStackBytes); err != ErrOutOfTasks {
		t.Fatalf("expected ErrOutOfTasks, got %v", err)
	}
}

func TestSpawnStackExhausted(t *testing.T) {
	k := New()
	for i := 0; i < StackArenaBytes/MaxStackBytes; i++ {
		if _, err := k.Spawn(TaskFunc(func(*Context) {}), MaxStackBytes); err != nil {
			t.Fatalf("Spawn %d: %v", i, err)
		}
	}
	if _, err := k.Spawn(TaskFunc(func(*Context) {}), MinStackBytes); err != ErrOutOfStack {
		t.Fatalf("expected ErrOutOfStack, got %v", err)
	}
}

func TestSpawnRejectsBadArgs(t *testing.T) {
	k := New()
	if _, err := k.Spawn(nil, MinStackBytes); err != ErrNilTask {
		t.Fatalf("nil task: expected ErrNilTask, got %v", err)
	}
	if _, err := k.Spawn(TaskFunc(func(*Context) {}), MinStackBytes-1); err != ErrBadStackSize {
		t.Fatalf("small stack: expected ErrBadStackSize, got %v", err)
	}
	if _, err := k.Spawn(TaskFunc(func(*Context) {}), MaxStackBytes+1); err != ErrBadStackSize {
		t.Fatalf("big stack: expected ErrBadStackSize, got %v", err)
	}
}

func TestYieldSoleTaskKeepsRunning(t *testing.T) {
	k := New()
	tr := &trace{}
	_, err := k.Spawn(TaskFunc(func(ctx *Context) {
		tr.add("a")
		ctx.Yield()
		tr.add("b")
	}), MinStackBytes)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	// One dispatch runs the task to completion: with no other task ready,
	// Yield returns in place.
	k.Dispatch()

	want := []string{"a", "b"}
	if got := tr.get(); !equalSteps(got, want) {
		t.Fatalf("trace %v, want %v", got, want)
	}
}

func TestYieldAlternatesReadyTasks(t *testing.T) {
	k := New()
	tr := &trace{}
	spawnYielder := func(name string) {
		t.Helper()
		_, err := k.Spawn(TaskFunc(func(ctx *Context) {
			for i := 0; i < 3; i++ {
				tr.add(name)
				ctx.Yield()
			}
		}), MinStackBytes)
		if err != nil {
			t.Fatalf("Spawn %s: %v", name, err)
		}
	}
	spawnYielder("A")
	spawnYielder("B")

	drain(k)

	want := []string{"A", "B", "A", "B", "A", "B"}
	if got := tr.get(); !equalSteps(got, want) {
		t.Fatalf("trace %v, want %v", got, want)
	}
}

func TestYieldAndSleepInterleave(t *testing.T) {
	k := New()
	tr := &trace{}

	_, err := k.Spawn(TaskFunc(func(ctx *Context) {
		for i := 0; i < 4; i++ {
			tr.add("A")
			ctx.Yield()
		}
	}), MinStackBytes)
	if err != nil {
		t.Fatalf("Spawn A: %v", err)
	}
	_, err = k.Spawn(TaskFunc(func(ctx *Context) {
		tr.add("B")
		ctx.Sleep(5)
		tr.add("B'")
	}), MinStackBytes)
	if err != nil {
		t.Fatalf("Spawn B: %v", err)
	}

	// A and B alternate until B sleeps; then A runs alone to completion.
	drain(k)
	want := []string{"A", "B", "A", "A", "A"}
	if got := tr.get(); !equalSteps(got, want) {
		t.Fatalf("before wakeup: trace %v, want %v", got, want)
	}

	for i := 0; i < 4; i++ {
		k.OnTick()
	}
	k.mu.Lock()
	empty := k.ready.empty()
	k.mu.Unlock()
	if !empty {
		t.Fatal("sleeper readied before its deadline")
	}

	k.OnTick()
	drain(k)
	want = append(want, "B'")
	if got := tr.get(); !equalSteps(got, want) {
		t.Fatalf("after wakeup: trace %v, want %v", got, want)
	}
}

func TestSleepWakeOrder(t *testing.T) {
	k := New()
	tr := &trace{}

	// T0 parks last (one yield first) but shares the deadline, so it must
	// wake after T1 and T2.
	_, err := k.Spawn(TaskFunc(func(ctx *Context) {
		ctx.Yield()
		ctx.Sleep(2)
		tr.add("T0")
	}), MinStackBytes)
	if err != nil {
		t.Fatalf("Spawn T0: %v", err)
	}
	for _, name := range []string{"T1", "T2"} {
		name := name
		_, err := k.Spawn(TaskFunc(func(ctx *Context) {
			ctx.Sleep(2)
			tr.add(name)
		}), MinStackBytes)
		if err != nil {
			t.Fatalf("Spawn %s: %v", name, err)
		}
	}

	drain(k)
	k.OnTick()
	k.OnTick()
	drain(k)

	want := []string{"T1", "T2", "T0"}
	if got := tr.get(); !equalSteps(got, want) {
		t.Fatalf("wake order %v, want %v", got, want)
	}
}

func TestSleepElapsedDeadlineDegradesToYield(t *testing.T) {
	k := New()
	tr := &trace{}
	_, err := k.Spawn(TaskFunc(func(ctx *Context) {
		now := ctx.NowTick()
		ctx.SleepUntil(now) // already elapsed
		tr.add("done")
	}), MinStackBytes)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	k.Dispatch()
	if got := tr.get(); !equalSteps(got, []string{"done"}) {
		t.Fatalf("trace %v, want [done]", got)
	}
}

func TestTickWraparoundWakesSleeper(t *testing.T) {
	k := New()
	k.tick = ^Tick(0) - 2

	tr := &trace{}
	_, err := k.Spawn(TaskFunc(func(ctx *Context) {
		ctx.Sleep(5)
		tr.add("woke")
	}), MinStackBytes)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	k.Dispatch()
	for i := 0; i < 4; i++ {
		k.OnTick()
	}
	if len(tr.get()) != 0 {
		t.Fatal("sleeper woke before wrapped deadline")
	}
	k.OnTick()
	drain(k)
	if got := tr.get(); !equalSteps(got, []string{"woke"}) {
		t.Fatalf("trace %v, want [woke]", got)
	}
}

func TestWaitAndWake(t *testing.T) {
	k := New()
	tr := &trace{}
	id, err := k.Spawn(TaskFunc(func(ctx *Context) {
		tr.add("w0")
		ctx.Wait()
		tr.add("w1")
	}), MinStackBytes)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	k.Dispatch()
	st, err := k.TaskState(id)
	if err != nil {
		t.Fatalf("TaskState: %v", err)
	}
	if st != Blocked {
		t.Fatalf("state %s, want Blocked", st)
	}

	if err := k.Wake(id); err != nil {
		t.Fatalf("Wake: %v", err)
	}
	drain(k)

	want := []string{"w0", "w1"}
	if got := tr.get(); !equalSteps(got, want) {
		t.Fatalf("trace %v, want %v", got, want)
	}
}

func TestWakeBeforeWaitIsLatched(t *testing.T) {
	k := New()
	tr := &trace{}
	id, err := k.Spawn(TaskFunc(func(ctx *Context) {
		ctx.Wait() // consumes the latched wake without parking
		tr.add("through")
	}), MinStackBytes)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	if err := k.Wake(id); err != nil {
		t.Fatalf("Wake: %v", err)
	}
	k.Dispatch()

	if got := tr.get(); !equalSteps(got, []string{"through"}) {
		t.Fatalf("trace %v, want [through]", got)
	}
}

func TestWakeInvalidTask(t *testing.T) {
	k := New()
	if err := k.Wake(MaxTasks); err != ErrInvalidTask {
		t.Fatalf("out-of-range id: expected ErrInvalidTask, got %v", err)
	}
	if err := k.Wake(3); err != ErrInvalidTask {
		t.Fatalf("unused slot: expected ErrInvalidTask, got %v", err)
	}
}

func TestExitRecyclesSlotAndStack(t *testing.T) {
	k := New()
	id, err := k.Spawn(TaskFunc(func(*Context) {}), MaxStackBytes)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if free := k.StackFree(); free != StackArenaBytes-MaxStackBytes {
		t.Fatalf("StackFree %d, want %d", free, StackArenaBytes-MaxStackBytes)
	}

	k.Dispatch()

	if free := k.StackFree(); free != StackArenaBytes {
		t.Fatalf("StackFree after exit %d, want %d", free, StackArenaBytes)
	}
	st, err := k.TaskState(id)
	if err != nil {
		t.Fatalf("TaskState: %v", err)
	}
	if st != Unused {
		t.Fatalf("state %s, want Unused", st)
	}

	id2, err := k.Spawn(TaskFunc(func(*Context) {}), MinStackBytes)
	if err != nil {
		t.Fatalf("respawn: %v", err)
	}
	if id2 != id {
		t.Fatalf("respawn id %d, want recycled slot %d", id2, id)
	}
	k.Dispatch()
}

func TestTaskPanicRecyclesSlot(t *testing.T) {
	k := New()
	var got PanicInfo
	var once sync.Mutex
	SetPanicHandler(func(info PanicInfo) {
		once.Lock()
		got = info
		once.Unlock()
	})
	defer SetPanicHandler(func(PanicInfo) {})

	id, err := k.Spawn(TaskFunc(func(*Context) {
		panic("boom")
	}), MinStackBytes)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	k.Dispatch()

	once.Lock()
	defer once.Unlock()
	if got.TaskID != id {
		t.Fatalf("panic task %d, want %d", got.TaskID, id)
	}
	if got.Value != "boom" {
		t.Fatalf("panic value %v, want boom", got.Value)
	}
	st, _ := k.TaskState(id)
	if st != Unused {
		t.Fatalf("state %s, want Unused after panic", st)
	}
}
