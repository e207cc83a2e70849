package kernel

import "errors"

var (
	// ErrOutOfTasks reports an exhausted task pool. Recoverable: the caller
	// decides; the pool never grows.
	ErrOutOfTasks = errors.New("kernel: out of tasks")

	// ErrOutOfStack reports an exhausted stack arena.
	ErrOutOfStack = errors.New("kernel: stack arena exhausted")

	// ErrBadStackSize reports a stack request outside the allowed range.
	ErrBadStackSize = errors.New("kernel: bad stack size")

	// ErrInvalidTask reports an operation on an unused or out-of-range task id.
	ErrInvalidTask = errors.New("kernel: invalid task id")

	// ErrNilTask reports a spawn with no entry.
	ErrNilTask = errors.New("kernel: nil task")
)
