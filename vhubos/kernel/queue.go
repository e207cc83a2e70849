package kernel

// readyQueue is a fixed FIFO ring of task ids. Each task appears at most
// once, so MaxTasks slots never overflow.
type readyQueue struct {
	head  uint8
	tail  uint8
	slots [MaxTasks]TaskID
}

func (q *readyQueue) push(id TaskID) bool {
	if q.head-q.tail >= MaxTasks {
		return false
	}
	q.slots[q.head%MaxTasks] = id
	q.head++
	return true
}

func (q *readyQueue) pop() (TaskID, bool) {
	if q.tail == q.head {
		return 0, false
	}
	id := q.slots[q.tail%MaxTasks]
	q.tail++
	return id, true
}

func (q *readyQueue) empty() bool {
	return q.tail == q.head
}
