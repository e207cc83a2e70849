package kernel

import "testing"

func TestTickElapsed(t *testing.T) {
	cases := []struct {
		now, deadline Tick
		want          bool
	}{
		{0, 0, true},
		{5, 3, true},
		{3, 5, false},
		{^Tick(0), 0, false},               // deadline one past wrap
		{0, ^Tick(0), true},                // now wrapped past deadline
		{2, ^Tick(0) - 2, true},            // wrapped, 5 ticks elapsed
		{^Tick(0) - 2, 2, false},           // deadline after wrap, not yet
		{1 << 31, 0, false},                // half-range apart: treated as future
		{(1 << 31) - 1, 0, true},           // just under half-range: elapsed
	}
	for _, c := range cases {
		if got := tickElapsed(c.now, c.deadline); got != c.want {
			t.Errorf("tickElapsed(%d, %d) = %v, want %v", c.now, c.deadline, got, c.want)
		}
	}
}

func TestTickBefore(t *testing.T) {
	cases := []struct {
		a, b Tick
		want bool
	}{
		{0, 1, true},
		{1, 0, false},
		{3, 3, false},
		{^Tick(0), 0, true}, // wrap: MAX is just before 0
		{0, ^Tick(0), false},
	}
	for _, c := range cases {
		if got := tickBefore(c.a, c.b); got != c.want {
			t.Errorf("tickBefore(%d, %d) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
