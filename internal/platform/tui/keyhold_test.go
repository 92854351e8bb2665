package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

func TestKeyHoldExpires(t *testing.T) {
	h := NewKeyHold(100 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionRight, t0)
	if !h.Held(core.ActionRight, t0.Add(99*time.Millisecond)) {
		t.Error("key should still be held before the hold window ends")
	}
	if h.Held(core.ActionRight, t0.Add(100*time.Millisecond)) {
		t.Error("key should be released once the hold window ends")
	}

	// A repeat extends the hold
	h.Press(core.ActionRight, t0.Add(80*time.Millisecond))
	if !h.Held(core.ActionRight, t0.Add(150*time.Millisecond)) {
		t.Error("repeat should extend the hold")
	}
}

func TestKeyHoldOppositeDirections(t *testing.T) {
	h := NewKeyHold(time.Second)
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionLeft, t0)
	h.Press(core.ActionRun, t0)
	h.Press(core.ActionRight, t0.Add(10*time.Millisecond))

	got := h.Keys(t0.Add(20 * time.Millisecond))
	want := sim.Keys{Right: true, Run: true}
	if got != want {
		t.Errorf("Keys = %+v, expected %+v", got, want)
	}

	h.Clear()
	if got := h.Keys(t0.Add(20 * time.Millisecond)); got != (sim.Keys{}) {
		t.Errorf("Keys after Clear = %+v, expected none", got)
	}
}

func TestKeyHoldDefault(t *testing.T) {
	h := NewKeyHold(0)
	t0 := time.Unix(1000, 0)
	h.Press(core.ActionLeft, t0)

	if !h.Held(core.ActionLeft, t0.Add(349*time.Millisecond)) {
		t.Error("default hold should cover 349ms")
	}
	if h.Held(core.ActionLeft, t0.Add(350*time.Millisecond)) {
		t.Error("default hold should end at 350ms")
	}
}
