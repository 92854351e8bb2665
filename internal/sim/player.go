package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// PowerState is the player's power-up level.
type PowerState int

const (
	PowerSmall PowerState = iota
	PowerBig
	PowerFire // Reserved: no transition enters it
)

// String returns the power state name.
func (s PowerState) String() string {
	switch s {
	case PowerSmall:
		return "small"
	case PowerBig:
		return "big"
	case PowerFire:
		return "fire"
	}
	return fmt.Sprintf("PowerState(%d)", int(s))
}

// Keys is the held-key set sampled once per tick.
// Jump is edge-triggered and goes through Player.Jump instead.
type Keys struct {
	Left, Right, Run bool
}

// Player is the controllable character.
type Player struct {
	X, Y   float64
	VX, VY float64
	W, H   float64

	Power           PowerState
	Grounded        bool
	Invincible      bool
	InvincibleTicks int
	Dead            bool
	FacingRight     bool
	Frame           int

	Score int
	Coins int

	animTick int
	cfg      *config.PlatformerConfig
}

// NewPlayer creates a small player at the configured spawn point.
func NewPlayer(cfg *config.PlatformerConfig) *Player {
	p := &Player{cfg: cfg, Power: PowerSmall}
	p.applySize()
	p.Respawn()
	return p
}

// Respawn puts the player back at the spawn point, alive and at rest.
// Power state, score and coins are kept.
func (p *Player) Respawn() {
	p.X = p.cfg.Player.SpawnX
	p.Y = p.cfg.Player.SpawnY
	p.VX, p.VY = 0, 0
	p.Dead = false
	p.Grounded = false
	p.FacingRight = true
	p.Frame, p.animTick = 0, 0
}

// Box returns the player's hitbox.
func (p *Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// Feet returns the y coordinate of the player's bottom edge.
func (p *Player) Feet() float64 {
	return p.Y + p.H
}

func (p *Player) applySize() {
	switch p.Power {
	case PowerSmall:
		p.W, p.H = p.cfg.Player.SmallW, p.cfg.Player.SmallH
	case PowerBig, PowerFire:
		p.W, p.H = p.cfg.Player.BigW, p.cfg.Player.BigH
	}
}

// setPower changes state and resizes the hitbox keeping the feet planted.
func (p *Player) setPower(s PowerState) {
	feet := p.Feet()
	p.Power = s
	p.applySize()
	p.Y = feet - p.H
}

// Update advances the player by one tick.
func (p *Player) Update(keys Keys, t Terrain, bump Bumper) {
	phys := &p.cfg.Physics

	if p.Dead {
		p.Y += p.VY
		p.VY += phys.Gravity * phys.DeathGravityScale
		return
	}

	if keys.Left {
		p.VX -= phys.Acceleration
		p.FacingRight = false
	}
	if keys.Right {
		p.VX += phys.Acceleration
		p.FacingRight = true
	}
	p.VX *= phys.Friction
	maxSpeed := phys.WalkSpeed
	if keys.Run {
		maxSpeed = phys.RunSpeed
	}
	p.VX = core.ClampF(p.VX, -maxSpeed, maxSpeed)

	p.VY += phys.Gravity

	// X fully before Y
	p.X += p.VX
	if x, hit := resolveX(t, p.Box(), p.VX, p.W); hit {
		p.X = x
		p.VX = 0
	}

	p.Y += p.VY
	p.Grounded = false
	if y, hit, struck := resolveY(t, p.Box(), p.VY, p.H); hit {
		rising := p.VY < 0
		p.Y = y
		p.VY = 0
		if !rising {
			p.Grounded = true
		} else if struck >= 0 && bump != nil {
			bump.Bump(struck, p)
		}
	}

	if p.Y > p.cfg.World.ViewHeight {
		p.Die()
	}

	p.animate(keys.Run)

	if p.Invincible {
		p.InvincibleTicks--
		if p.InvincibleTicks <= 0 {
			p.Invincible = false
			p.InvincibleTicks = 0
		}
	}
}

func (p *Player) animate(run bool) {
	if math.Abs(p.VX) <= 0.5 {
		p.Frame = 0
		return
	}
	limit := 10
	if run {
		limit = 5
	}
	p.animTick++
	if p.animTick > limit {
		p.animTick = 0
		p.Frame = 1 - p.Frame
	}
}

// Jump starts a jump if the player is standing on something.
func (p *Player) Jump() {
	if p.Dead || !p.Grounded {
		return
	}
	p.VY = -p.cfg.Physics.JumpForce
	p.Grounded = false
}

// PowerUp applies a collected item.
func (p *Player) PowerUp(kind ItemType) {
	p.Score += p.cfg.Scoring.PowerUp
	switch kind {
	case ItemMushroom:
		if p.Power == PowerSmall {
			p.setPower(PowerBig)
		}
	case ItemStar:
		p.Invincible = true
		p.InvincibleTicks = p.cfg.Player.StarTicks
	}
}

// TakeDamage demotes a big player or kills a small one.
// It does nothing while the player is invincible.
func (p *Player) TakeDamage() {
	if p.Invincible || p.Dead {
		return
	}
	switch p.Power {
	case PowerBig, PowerFire:
		p.setPower(PowerSmall)
		p.Invincible = true
		p.InvincibleTicks = p.cfg.Player.GraceTicks
	case PowerSmall:
		p.Die()
	}
}

// Die starts the death hop. Calling it again has no effect.
func (p *Player) Die() {
	if p.Dead {
		return
	}
	p.Dead = true
	p.Grounded = false
	p.VX = 0
	p.VY = -p.cfg.Physics.JumpForce
}
