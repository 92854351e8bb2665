package sim

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Goal is the flagpole at the end of a level.
type Goal struct {
	X, Y      float64 // Top-left of the pole tile
	FlagY     float64
	Triggered bool

	cfg *config.PlatformerConfig
}

func newGoal(cfg *config.PlatformerConfig, x, y float64) *Goal {
	return &Goal{X: x, Y: y, FlagY: y + cfg.Goal.FlagStart, cfg: cfg}
}

// Hitbox returns the narrow collision strip along the pole.
func (g *Goal) Hitbox() core.Box {
	return core.Box{
		Left:   g.X + g.cfg.Goal.HitboxLeft,
		Right:  g.X + g.cfg.Goal.HitboxRight,
		Top:    g.Y,
		Bottom: g.Y + g.cfg.Goal.PoleHeight,
	}
}

// Update tests the player against the pole. It returns true only on the
// tick the pole is first touched. Once triggered the flag slides down
// and the player is ignored.
func (g *Goal) Update(p *Player) bool {
	if g.Triggered {
		stop := g.Y + g.cfg.Goal.FlagStop
		if g.FlagY < stop {
			g.FlagY = min(g.FlagY+g.cfg.Goal.FlagSpeed, stop)
		}
		return false
	}
	if p == nil || p.Dead || !core.Overlaps(g.Hitbox(), p.Box()) {
		return false
	}
	g.Triggered = true
	return true
}
