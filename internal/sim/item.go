package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// ItemType identifies a power-up.
type ItemType int

const (
	ItemMushroom ItemType = iota
	ItemStar
)

// String returns the item name.
func (t ItemType) String() string {
	switch t {
	case ItemMushroom:
		return "mushroom"
	case ItemStar:
		return "star"
	}
	return fmt.Sprintf("ItemType(%d)", int(t))
}

// Item is a power-up pickup launched out of a question block.
type Item struct {
	X, Y   float64
	VX, VY float64
	W, H   float64
	Kind   ItemType
	Active bool

	cfg *config.PlatformerConfig
}

func newItem(cfg *config.PlatformerConfig, x, y float64, kind ItemType) *Item {
	return &Item{
		X:      x,
		Y:      y,
		VX:     cfg.Item.LaunchVX,
		VY:     cfg.Item.LaunchVY,
		W:      cfg.Item.Width,
		H:      cfg.Item.Height,
		Kind:   kind,
		Active: true,
		cfg:    cfg,
	}
}

// Box returns the item's hitbox.
func (it *Item) Box() core.Box {
	return core.NewBox(it.X, it.Y, it.W, it.H)
}

// Update advances the item by one tick. A nil player disables pickup.
// It returns true if the player collected the item this tick.
func (it *Item) Update(t Terrain, p *Player) bool {
	if !it.Active {
		return false
	}

	it.VY += it.cfg.Physics.Gravity

	it.X += it.VX
	if x, hit := resolveX(t, it.Box(), it.VX, it.W); hit {
		it.X = x
		it.VX = -it.VX
	}

	it.Y += it.VY
	if y, hit, _ := resolveY(t, it.Box(), it.VY, it.H); hit {
		landed := it.VY > 0
		it.Y = y
		it.VY = 0
		if landed && it.Kind == ItemStar {
			it.VY = -it.cfg.Item.StarHop
		}
	}

	if it.Kind == ItemStar && it.Y+it.H > it.cfg.World.ViewHeight-it.cfg.Item.StarFloorMargin {
		it.VY = -it.cfg.Item.StarHop
	}

	if it.Y > it.cfg.World.ViewHeight+it.cfg.World.TileSize {
		it.Active = false
		return false
	}

	if p == nil || p.Dead || !core.Overlaps(p.Box(), it.Box()) {
		return false
	}
	p.PowerUp(it.Kind)
	it.Active = false
	return true
}
