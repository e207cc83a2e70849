package input

// QueueCap is the shared event queue capacity.
const QueueCap = 16

// eventRing is a bounded FIFO. When full, push discards the oldest event
// to admit the newest: a stale press is worth less than a fresh one.
type eventRing struct {
	head  uint16
	tail  uint16
	slots [QueueCap]Event
}

func (q *eventRing) push(ev Event) (dropped bool) {
	if q.head-q.tail >= QueueCap {
		q.tail++
		dropped = true
	}
	q.slots[q.head%QueueCap] = ev
	q.head++
	return dropped
}

func (q *eventRing) pop() (Event, bool) {
	if q.tail == q.head {
		return Event{}, false
	}
	ev := q.slots[q.tail%QueueCap]
	q.tail++
	return ev, true
}

func (q *eventRing) len() int {
	return int(q.head - q.tail)
}

// remove takes the oldest event for one button, keeping the order of the
// remaining events intact.
func (q *eventRing) remove(buttonID uint8) (Event, bool) {
	n := q.len()
	for i := 0; i < n; i++ {
		idx := (q.tail + uint16(i)) % QueueCap
		if q.slots[idx].Button != buttonID {
			continue
		}
		ev := q.slots[idx]
		for j := i; j > 0; j-- {
			dst := (q.tail + uint16(j)) % QueueCap
			src := (q.tail + uint16(j-1)) % QueueCap
			q.slots[dst] = q.slots[src]
		}
		q.tail++
		return ev, true
	}
	return Event{}, false
}
