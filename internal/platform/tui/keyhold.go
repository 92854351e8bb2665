package tui

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// KeyHold turns terminal key repeats into held keys. Terminals report
// presses and auto-repeats but never releases, so a key counts as held
// until hold passes without another press.
type KeyHold struct {
	hold time.Duration
	last map[core.Action]time.Time
}

// NewKeyHold creates a tracker. A non-positive hold falls back to 350ms.
func NewKeyHold(hold time.Duration) *KeyHold {
	if hold <= 0 {
		hold = 350 * time.Millisecond
	}
	return &KeyHold{hold: hold, last: make(map[core.Action]time.Time)}
}

// Press records a press or repeat. A direction press releases the
// opposite direction at once.
func (h *KeyHold) Press(a core.Action, now time.Time) {
	switch a {
	case core.ActionLeft:
		delete(h.last, core.ActionRight)
	case core.ActionRight:
		delete(h.last, core.ActionLeft)
	}
	h.last[a] = now
}

// Held reports whether a is still considered pressed at now.
func (h *KeyHold) Held(a core.Action, now time.Time) bool {
	t, ok := h.last[a]
	return ok && now.Sub(t) < h.hold
}

// Keys returns the held-key set for the simulation.
func (h *KeyHold) Keys(now time.Time) sim.Keys {
	return sim.Keys{
		Left:  h.Held(core.ActionLeft, now),
		Right: h.Held(core.ActionRight, now),
		Run:   h.Held(core.ActionRun, now),
	}
}

// Clear releases everything.
func (h *KeyHold) Clear() {
	clear(h.last)
}
