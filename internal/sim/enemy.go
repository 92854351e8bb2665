package sim

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Enemy is a walker that turns around at walls.
type Enemy struct {
	X, Y   float64
	VX, VY float64
	W, H   float64
	Dead   bool
	Frame  int

	animTick int
	cfg      *config.PlatformerConfig
}

func newEnemy(cfg *config.PlatformerConfig, x, y float64) *Enemy {
	return &Enemy{
		X:   x,
		Y:   y,
		VX:  -cfg.Enemy.Speed,
		W:   cfg.Enemy.Width,
		H:   cfg.Enemy.Height,
		cfg: cfg,
	}
}

// Box returns the enemy's hitbox.
func (e *Enemy) Box() core.Box {
	return core.NewBox(e.X, e.Y, e.W, e.H)
}

// Update advances the enemy by one tick. A nil player disables contact.
// It returns true if the enemy was killed by the player this tick.
func (e *Enemy) Update(t Terrain, p *Player) bool {
	if e.Dead {
		return false
	}

	e.X += e.VX
	if x, hit := resolveX(t, e.Box(), e.VX, e.W); hit {
		e.X = x
		e.VX = -e.VX
	}

	e.VY += e.cfg.Physics.Gravity
	e.Y += e.VY
	if y, hit, _ := resolveY(t, e.Box(), e.VY, e.H); hit {
		e.Y = y
		e.VY = 0
	}

	e.animTick++
	if e.animTick > 10 {
		e.animTick = 0
		e.Frame = 1 - e.Frame
	}

	if e.Y > e.cfg.World.ViewHeight+e.cfg.World.TileSize {
		e.Dead = true
		return false
	}

	if p == nil || p.Dead || !core.Overlaps(p.Box(), e.Box()) {
		return false
	}

	switch {
	case p.Invincible:
		e.Dead = true
		p.Score += e.cfg.Scoring.Stomp
		return true
	case p.VY > 0 && p.Feet() < e.Y+e.H/2+e.cfg.Enemy.StompSlack:
		e.Dead = true
		p.VY = -e.cfg.Physics.JumpForce / 2
		p.Score += e.cfg.Scoring.Stomp
		return true
	default:
		p.TakeDamage()
		return false
	}
}
