package core

import (
	"testing"
	"time"
)

func TestClockRunsWholeSteps(t *testing.T) {
	c := NewClock(10*time.Millisecond, 5)

	ticks := 0
	tick := func() { ticks++ }

	if n := c.Advance(25*time.Millisecond, tick); n != 2 {
		t.Errorf("Advance(25ms) ran %d ticks, expected 2", n)
	}
	if c.Alpha() != 0.5 {
		t.Errorf("Alpha() = %v, expected 0.5", c.Alpha())
	}

	// Residual carries over when under the cap
	if n := c.Advance(5*time.Millisecond, tick); n != 1 {
		t.Errorf("Advance(5ms) ran %d ticks, expected 1", n)
	}
	if c.Alpha() != 0 {
		t.Errorf("Alpha() = %v, expected 0", c.Alpha())
	}
	if ticks != 3 || c.Ticks() != 3 {
		t.Errorf("ticks = %d (clock %d), expected 3", ticks, c.Ticks())
	}
}

func TestClockCatchUpCap(t *testing.T) {
	c := NewClock(10*time.Millisecond, 5)

	ticks := 0
	n := c.Advance(time.Second, func() { ticks++ })

	if n != 5 || ticks != 5 {
		t.Errorf("oversized delta ran %d ticks (callback %d), expected exactly 5", n, ticks)
	}
	if c.Alpha() != 0 {
		t.Errorf("residual alpha = %v, expected backlog discarded", c.Alpha())
	}
	if c.Dropped() != 1 {
		t.Errorf("Dropped() = %d, expected 1", c.Dropped())
	}

	// Next callback starts fresh
	if n := c.Advance(10*time.Millisecond, func() { ticks++ }); n != 1 {
		t.Errorf("next Advance ran %d ticks, expected 1", n)
	}
}

func TestClockCapWithFractionalResidual(t *testing.T) {
	c := NewClock(10*time.Millisecond, 3)

	n := c.Advance(35*time.Millisecond, func() {})
	if n != 3 {
		t.Errorf("ran %d ticks, expected 3", n)
	}
	if c.Alpha() != 0 {
		t.Errorf("residual alpha = %v, expected 0 once cap is hit", c.Alpha())
	}
}

func TestClockAlpha(t *testing.T) {
	c := NewClock(10*time.Millisecond, 5)
	c.Advance(14*time.Millisecond, func() {})

	alpha := c.Alpha()
	if alpha < 0.39 || alpha > 0.41 {
		t.Errorf("Alpha() = %f, expected 0.4", alpha)
	}

	c.Reset()
	if c.Alpha() != 0 {
		t.Errorf("Alpha() after Reset = %f, expected 0", c.Alpha())
	}
}

func TestClockDefaults(t *testing.T) {
	c := NewClock(0, 0)
	if c.Step() != time.Second/60 {
		t.Errorf("Step() = %v, expected 1/60s", c.Step())
	}
	if c.MaxSteps() != 1 {
		t.Errorf("MaxSteps() = %d, expected 1", c.MaxSteps())
	}
	if StepFromRate(50) != 20*time.Millisecond {
		t.Errorf("StepFromRate(50) = %v", StepFromRate(50))
	}
}

func TestClockResetInsideTick(t *testing.T) {
	c := NewClock(10*time.Millisecond, 5)

	calls := 0
	n := c.Advance(35*time.Millisecond, func() {
		calls++
		if calls == 2 {
			c.Reset()
		}
	})

	if n != 2 || calls != 2 {
		t.Errorf("Advance ran %d ticks (callback %d), expected 2 before the reset", n, calls)
	}
	if c.Alpha() != 0 {
		t.Errorf("Alpha() after reset = %v, expected 0", c.Alpha())
	}
	if n := c.Advance(10*time.Millisecond, func() {}); n != 1 {
		t.Errorf("one step after reset ran %d ticks, expected 1", n)
	}
}
