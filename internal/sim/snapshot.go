package sim

import "math"

// PlayerView is the read-only player state exposed to renderers.
type PlayerView struct {
	X, Y, W, H      float64
	VX, VY          float64
	Power           PowerState
	Grounded        bool
	Invincible      bool
	InvincibleTicks int
	Dead            bool
	FacingRight     bool
	Frame           int
	Score           int
	Coins           int
}

// BlockView is a live block.
type BlockView struct {
	Col, Row int
	X, Y     float64
	W, H     float64
	Type     BlockType
}

// EnemyView is a live enemy.
type EnemyView struct {
	X, Y, W, H float64
	VX         float64
	Frame      int
}

// ItemView is an active item.
type ItemView struct {
	X, Y, W, H float64
	Kind       ItemType
}

// GoalView is the flagpole state.
type GoalView struct {
	X, Y       float64
	PoleHeight float64
	FlagY      float64
	Triggered  bool
}

// Snapshot is a copy of everything a presentation layer draws.
// It shares no memory with the world.
type Snapshot struct {
	Index int
	Tick  uint64
	Cols  int
	Rows  int
	Tile  float64
	EndX  float64

	Player  PlayerView
	Blocks  []BlockView
	Enemies []EnemyView
	Items   []ItemView
	Goal    *GoalView

	LevelComplete bool
	PlayerDead    bool
}

// Snapshot captures the world and player state.
func (w *World) Snapshot(p *Player) Snapshot {
	snap := Snapshot{
		Index: w.Index,
		Tick:  w.tick,
		Cols:  w.cols,
		Rows:  w.rows,
		Tile:  w.cfg.World.TileSize,
		EndX:  w.EndX,
		Player: PlayerView{
			X: p.X, Y: p.Y, W: p.W, H: p.H,
			VX: p.VX, VY: p.VY,
			Power:           p.Power,
			Grounded:        p.Grounded,
			Invincible:      p.Invincible,
			InvincibleTicks: p.InvincibleTicks,
			Dead:            p.Dead,
			FacingRight:     p.FacingRight,
			Frame:           p.Frame,
			Score:           p.Score,
			Coins:           p.Coins,
		},
		Blocks:     make([]BlockView, 0, len(w.Blocks)),
		PlayerDead: p.Dead,
	}

	for _, b := range w.Blocks {
		if b.Type == BlockDead {
			continue
		}
		snap.Blocks = append(snap.Blocks, BlockView{
			Col: b.Col, Row: b.Row,
			X: b.Box.Left, Y: b.Box.Top,
			W: b.Box.Width(), H: b.Box.Height(),
			Type: b.Type,
		})
	}
	for _, e := range w.Enemies {
		if e.Dead {
			continue
		}
		snap.Enemies = append(snap.Enemies, EnemyView{X: e.X, Y: e.Y, W: e.W, H: e.H, VX: e.VX, Frame: e.Frame})
	}
	for _, it := range w.Items {
		if !it.Active {
			continue
		}
		snap.Items = append(snap.Items, ItemView{X: it.X, Y: it.Y, W: it.W, H: it.H, Kind: it.Kind})
	}
	if g := w.Goal; g != nil {
		snap.Goal = &GoalView{
			X: g.X, Y: g.Y,
			PoleHeight: w.cfg.Goal.PoleHeight,
			FlagY:      g.FlagY,
			Triggered:  g.Triggered,
		}
		snap.LevelComplete = g.Triggered
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)
	h = h*31 + uint64(snap.Index) //#nosec G115 -- hash computation

	pv := snap.Player
	for _, f := range []float64{pv.X, pv.Y, pv.W, pv.H, pv.VX, pv.VY} {
		h = h*31 + math.Float64bits(f)
	}
	h = h*31 + uint64(pv.Power)           //#nosec G115 -- hash computation
	h = h*31 + uint64(pv.Score)           //#nosec G115 -- hash computation
	h = h*31 + uint64(pv.Coins)           //#nosec G115 -- hash computation
	h = h*31 + uint64(pv.InvincibleTicks) //#nosec G115 -- hash computation
	h = h*31 + boolBit(pv.Dead)
	h = h*31 + boolBit(pv.Grounded)

	for _, b := range snap.Blocks {
		h = h*31 + uint64(b.Col)  //#nosec G115 -- hash computation
		h = h*31 + uint64(b.Row)  //#nosec G115 -- hash computation
		h = h*31 + uint64(b.Type) //#nosec G115 -- hash computation
	}
	for _, e := range snap.Enemies {
		h = h*31 + math.Float64bits(e.X)
		h = h*31 + math.Float64bits(e.Y)
	}
	for _, it := range snap.Items {
		h = h*31 + math.Float64bits(it.X)
		h = h*31 + math.Float64bits(it.Y)
		h = h*31 + uint64(it.Kind) //#nosec G115 -- hash computation
	}
	if g := snap.Goal; g != nil {
		h = h*31 + math.Float64bits(g.FlagY)
		h = h*31 + boolBit(g.Triggered)
	}
	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
