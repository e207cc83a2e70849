package kernel

// Context provides task-local access to kernel operations. Every method
// must be called from the owning task's own execution context.
type Context struct {
	k  *Kernel
	id TaskID
}

// TaskID returns the current task ID.
func (c *Context) TaskID() TaskID { return c.id }

// NowTick returns the current tick value.
func (c *Context) NowTick() Tick {
	return c.k.NowTick()
}

// Yield re-enqueues the task at the ready queue tail and hands the
// processor to the next ready task. With nothing else runnable the task
// just keeps running; that is not an error.
func (c *Context) Yield() {
	k := c.k
	k.mu.Lock()
	if k.ready.empty() {
		k.mu.Unlock()
		return
	}
	t := &k.tasks[c.id]
	t.state = Ready
	k.ready.push(c.id)
	resume := t.resume
	k.mu.Unlock()

	k.park(resume)
}

// Sleep suspends the task for n ticks from now.
func (c *Context) Sleep(n Tick) {
	k := c.k
	k.mu.Lock()
	deadline := k.tick + n
	k.mu.Unlock()
	c.SleepUntil(deadline)
}

// SleepUntil suspends the task until the deadline tick elapses. A deadline
// that has already elapsed degrades to Yield.
func (c *Context) SleepUntil(deadline Tick) {
	k := c.k
	k.mu.Lock()
	t := &k.tasks[c.id]

	if tickElapsed(k.tick, deadline) {
		if k.ready.empty() {
			k.mu.Unlock()
			return
		}
		t.state = Ready
		k.ready.push(c.id)
		resume := t.resume
		k.mu.Unlock()
		k.park(resume)
		return
	}

	t.state = Sleeping
	t.wakeAt = deadline
	t.wakeSeq = k.sleepSeq
	k.sleepSeq++
	resume := t.resume
	k.mu.Unlock()

	k.park(resume)
}

// Wait parks the task Blocked until Kernel.Wake. A wake that already
// arrived (latched while the task was still running) is consumed without
// parking.
func (c *Context) Wait() {
	k := c.k
	k.mu.Lock()
	t := &k.tasks[c.id]
	if t.wakePending {
		t.wakePending = false
		k.mu.Unlock()
		return
	}
	t.state = Blocked
	resume := t.resume
	k.mu.Unlock()

	k.park(resume)
}

// Wake wakes another task. See Kernel.Wake.
func (c *Context) Wake(id TaskID) error {
	return c.k.Wake(id)
}

// Spawn starts a new task. See Kernel.Spawn.
func (c *Context) Spawn(t Task, stackBytes int) (TaskID, error) {
	return c.k.Spawn(t, stackBytes)
}

// park completes a context switch: control goes back to the dispatcher,
// and the task blocks until its next dispatch. The new state must already
// be recorded before park runs, so the switch is save-then-restore.
func (k *Kernel) park(resume chan struct{}) {
	k.switched <- struct{}{}
	<-resume
}
