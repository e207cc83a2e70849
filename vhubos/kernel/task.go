package kernel

// TaskID identifies a slot in the task pool.
type TaskID uint8

// State is the lifecycle state of a task control block.
type State uint8

const (
	// Unused marks a free slot in the pool.
	Unused State = iota
	// Ready means the task sits in the ready queue waiting for dispatch.
	Ready
	// Running means the task currently owns the processor.
	Running
	// Sleeping means the task waits for its wake tick to elapse.
	Sleeping
	// Blocked means the task waits for an external wake (driver completion).
	Blocked
)

func (s State) String() string {
	switch s {
	case Unused:
		return "unused"
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Sleeping:
		return "sleeping"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Task is a cooperative unit of execution. Run is started on the task's
// first dispatch and owns the processor until it yields, sleeps, waits, or
// returns; returning recycles the slot.
type Task interface {
	Run(*Context)
}

// TaskFunc adapts a plain function to the Task interface.
type TaskFunc func(*Context)

func (f TaskFunc) Run(ctx *Context) { f(ctx) }

// tcb is one task control block. The saved execution context is the parked
// goroutine behind resume; the stack reservation is the arena debit made at
// spawn time.
type tcb struct {
	state State
	task  Task

	resume chan struct{}

	wakeAt  Tick
	wakeSeq uint32

	wakePending bool

	stackBytes int
}
