package ui

// EaseOutPercent maps linear progress p (0..100) onto a decelerating
// curve, integer-only: 1-(1-x)^2 scaled to percent.
func EaseOutPercent(p int) int {
	if p <= 0 {
		return 0
	}
	if p >= 100 {
		return 100
	}
	return (p * (200 - p)) / 100
}

// Blink reports the on phase of a square wave with the given half-period.
func Blink(now, halfPeriod uint32) bool {
	if halfPeriod == 0 {
		return true
	}
	return (now/halfPeriod)%2 == 0
}
