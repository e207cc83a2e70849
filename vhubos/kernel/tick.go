package kernel

// Tick is the kernel timebase. It is incremented only by OnTick and wraps
// when exhausted; all comparisons must go through the helpers below.
type Tick uint32

// tickElapsed reports whether deadline has passed at now, tolerating
// counter wraparound (valid while the distance stays under half the range).
func tickElapsed(now, deadline Tick) bool {
	return int32(now-deadline) >= 0
}

// tickBefore reports whether a orders strictly before b across the wrap.
func tickBefore(a, b Tick) bool {
	return int32(a-b) < 0
}
