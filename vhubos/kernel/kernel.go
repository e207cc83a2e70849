package kernel

import "sync"

const (
	// MaxTasks is the size of the static task pool.
	MaxTasks = 16

	// StackArenaBytes is the total stack reservation available to Spawn.
	StackArenaBytes = 64 * 1024

	// MinStackBytes and MaxStackBytes bound a single task's reservation.
	MinStackBytes = 512
	MaxStackBytes = 16 * 1024
)

// Kernel is a cooperative scheduler over a fixed task pool.
//
// Exactly one task runs at a time. Interrupt-context callers (the tick
// source, driver completion handlers) may call OnTick and Wake, which only
// record state inside a minimal critical section and never dispatch.
type Kernel struct {
	mu sync.Mutex

	tasks [MaxTasks]tcb
	ready readyQueue

	tick     Tick
	sleepSeq uint32

	stackFree int

	current    TaskID
	hasCurrent bool

	// switched hands control from the parking task back to the dispatcher;
	// idle ends the dispatcher's wait when work arrives.
	switched chan struct{}
	idle     chan struct{}
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{
		stackFree: StackArenaBytes,
		switched:  make(chan struct{}),
		idle:      make(chan struct{}, 1),
	}
}

// Spawn allocates a task control block, reserves stackBytes from the arena,
// and appends the task to the ready queue tail. The pool never grows:
// exhaustion returns ErrOutOfTasks / ErrOutOfStack and the caller decides.
func (k *Kernel) Spawn(t Task, stackBytes int) (TaskID, error) {
	if t == nil {
		return 0, ErrNilTask
	}
	if stackBytes < MinStackBytes || stackBytes > MaxStackBytes {
		return 0, ErrBadStackSize
	}

	k.mu.Lock()
	slot := -1
	for i := 0; i < MaxTasks; i++ {
		if k.tasks[i].state == Unused {
			slot = i
			break
		}
	}
	if slot < 0 {
		k.mu.Unlock()
		return 0, ErrOutOfTasks
	}
	if stackBytes > k.stackFree {
		k.mu.Unlock()
		return 0, ErrOutOfStack
	}

	id := TaskID(slot)
	k.stackFree -= stackBytes
	tb := &k.tasks[slot]
	*tb = tcb{
		state:      Ready,
		task:       t,
		resume:     make(chan struct{}),
		stackBytes: stackBytes,
	}
	k.ready.push(id)
	resume := tb.resume
	k.mu.Unlock()

	go k.taskMain(id, resume, t)
	k.kickIdle()
	return id, nil
}

func (k *Kernel) taskMain(id TaskID, resume chan struct{}, t Task) {
	<-resume
	defer func() {
		if r := recover(); r != nil {
			triggerPanic(PanicInfo{TaskID: id, Value: r})
		}
		k.exit(id)
	}()
	t.Run(&Context{k: k, id: id})
}

// exit recycles the slot after the task's entry returned.
func (k *Kernel) exit(id TaskID) {
	k.mu.Lock()
	t := &k.tasks[id]
	k.stackFree += t.stackBytes
	*t = tcb{}
	k.mu.Unlock()
	k.switched <- struct{}{}
}

// Dispatch runs one scheduling step: pop the ready queue head, switch to
// that task, and return once it suspends or exits. With nothing ready it
// idles until the next tick or wake, then retries.
func (k *Kernel) Dispatch() {
	k.mu.Lock()
	id, ok := k.ready.pop()
	for !ok {
		k.mu.Unlock()
		<-k.idle
		k.mu.Lock()
		id, ok = k.ready.pop()
	}

	t := &k.tasks[id]
	t.state = Running
	k.current = id
	k.hasCurrent = true
	resume := t.resume
	k.mu.Unlock()

	resume <- struct{}{}
	<-k.switched

	k.mu.Lock()
	k.hasCurrent = false
	k.mu.Unlock()
}

// Run dispatches forever. This is the boot/idle loop body; it never returns.
func (k *Kernel) Run() {
	for {
		k.Dispatch()
	}
}

// OnTick advances the timebase by one tick and moves elapsed sleepers to
// the ready tail, ordered by deadline then by original sleep order. Safe to
// call from interrupt context: it never dispatches.
func (k *Kernel) OnTick() Tick {
	k.mu.Lock()
	k.tick++
	now := k.tick

	var due [MaxTasks]TaskID
	n := 0
	for i := 0; i < MaxTasks; i++ {
		t := &k.tasks[i]
		if t.state == Sleeping && tickElapsed(now, t.wakeAt) {
			due[n] = TaskID(i)
			n++
		}
	}
	for i := 1; i < n; i++ {
		for j := i; j > 0 && k.sleepsBefore(due[j], due[j-1]); j-- {
			due[j], due[j-1] = due[j-1], due[j]
		}
	}
	for i := 0; i < n; i++ {
		t := &k.tasks[due[i]]
		t.state = Ready
		k.ready.push(due[i])
	}
	k.mu.Unlock()

	k.kickIdle()
	return now
}

// sleepsBefore orders two sleeping tasks by deadline, ties by sleep order.
// Caller holds k.mu.
func (k *Kernel) sleepsBefore(a, b TaskID) bool {
	ta, tb := &k.tasks[a], &k.tasks[b]
	if ta.wakeAt != tb.wakeAt {
		return tickBefore(ta.wakeAt, tb.wakeAt)
	}
	return int32(ta.wakeSeq-tb.wakeSeq) < 0
}

// Wake moves a Blocked task to the ready tail. For a task that has not
// parked yet the wake is latched and consumed by its next Wait. Callable
// from interrupt context.
func (k *Kernel) Wake(id TaskID) error {
	k.mu.Lock()
	if int(id) >= MaxTasks || k.tasks[id].state == Unused {
		k.mu.Unlock()
		debugPanic("kernel: wake of invalid task")
		return ErrInvalidTask
	}

	t := &k.tasks[id]
	if t.state != Blocked {
		t.wakePending = true
		k.mu.Unlock()
		return nil
	}

	t.state = Ready
	k.ready.push(id)
	k.mu.Unlock()
	k.kickIdle()
	return nil
}

// NowTick returns the current tick value.
func (k *Kernel) NowTick() Tick {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.tick
}

// TaskState reports the state of a task slot.
func (k *Kernel) TaskState(id TaskID) (State, error) {
	if int(id) >= MaxTasks {
		debugPanic("kernel: state of invalid task")
		return Unused, ErrInvalidTask
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.tasks[id].state, nil
}

// StackFree returns the unreserved remainder of the stack arena.
func (k *Kernel) StackFree() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.stackFree
}

func (k *Kernel) kickIdle() {
	select {
	case k.idle <- struct{}{}:
	default:
	}
}
