package sim

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// StepResult reports what happened during one tick.
type StepResult struct {
	Cleared    bool // Goal touched on this tick
	PlayerDied bool // Player died on this tick
	Kills      int  // Enemies killed by the player
	Pickups    int  // Items collected
}

// Step advances the world by one tick in a fixed order: player, enemies in
// range, items, goal, then prune. When frozen the player does not move and
// nothing interacts with it; enemies, items and the flag keep animating.
func (w *World) Step(p *Player, keys Keys, frozen bool) StepResult {
	var res StepResult
	wasDead := p.Dead

	if !frozen {
		p.Update(keys, w, w)
	}

	target := p
	if frozen {
		target = nil
	}

	for _, e := range w.Enemies {
		if math.Abs(e.X-p.X) >= w.cfg.Enemy.ActivityRange {
			continue
		}
		if e.Update(w, target) {
			res.Kills++
		}
	}

	for _, it := range w.Items {
		if it.Update(w, target) {
			res.Pickups++
		}
	}

	if w.Goal != nil {
		res.Cleared = w.Goal.Update(target)
	}

	w.prune()
	w.tick++

	res.PlayerDied = !wasDead && p.Dead
	return res
}

func tileBox(col, row int, ts float64) core.Box {
	return core.NewBox(float64(col)*ts, float64(row)*ts, ts, ts)
}
