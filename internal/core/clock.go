package core

import "time"

// Clock is a fixed-timestep accumulator. Wall time is fed in by the render
// loop and converted into a whole number of simulation ticks.
//
// At most maxSteps ticks run per Advance call. When the cap is reached the
// remaining backlog is discarded instead of carried into the next call.
type Clock struct {
	step        time.Duration
	maxSteps    int
	accumulator time.Duration
	ticks       uint64
	dropped     uint64
}

// NewClock creates a clock with the given tick duration and catch-up cap.
// Non-positive arguments fall back to 60 Hz and a cap of 1.
func NewClock(step time.Duration, maxSteps int) *Clock {
	if step <= 0 {
		step = time.Second / 60
	}
	if maxSteps <= 0 {
		maxSteps = 1
	}
	return &Clock{step: step, maxSteps: maxSteps}
}

// StepFromRate converts a tick rate in Hz to a tick duration.
func StepFromRate(rate int) time.Duration {
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// Advance adds elapsed wall time and runs tick once per whole step held by
// the accumulator, up to the catch-up cap. Returns the number of ticks run.
func (c *Clock) Advance(elapsed time.Duration, tick func()) int {
	if elapsed > 0 {
		c.accumulator += elapsed
	}

	n := 0
	// The step is taken before tick runs, so a tick that calls Reset
	// leaves the accumulator at zero.
	for c.accumulator >= c.step && n < c.maxSteps {
		c.accumulator -= c.step
		c.ticks++
		n++
		tick()
	}

	if n == c.maxSteps && c.accumulator > 0 {
		c.accumulator = 0
		c.dropped++
	}
	return n
}

// Alpha returns how far the accumulator is into the next tick, in [0, 1).
func (c *Clock) Alpha() float64 {
	return float64(c.accumulator) / float64(c.step)
}

// Step returns the fixed tick duration.
func (c *Clock) Step() time.Duration {
	return c.step
}

// MaxSteps returns the catch-up cap.
func (c *Clock) MaxSteps() int {
	return c.maxSteps
}

// Ticks returns the total number of ticks run.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Dropped returns how many times a backlog was discarded.
func (c *Clock) Dropped() uint64 {
	return c.dropped
}

// Reset clears the accumulator without touching counters.
func (c *Clock) Reset() {
	c.accumulator = 0
}
