package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

// World is one level instance: blocks, enemies, items and the goal.
// It is rebuilt from scratch on every (re)load.
type World struct {
	Index int
	Seed  int64

	Blocks  []Block
	Enemies []*Enemy
	Items   []*Item
	Goal    *Goal
	EndX    float64

	cols, rows int
	tick       uint64
	grid       *Grid
	rng        *rand.Rand
	cfg        *config.PlatformerConfig
}

// NewWorld creates an empty world of cols x rows tiles.
// seed drives the world's own random draws (item kinds).
func NewWorld(cfg *config.PlatformerConfig, index, cols, rows int, seed int64) (*World, error) {
	if cfg == nil {
		return nil, errors.New("sim: nil config")
	}
	if cols <= 0 || rows <= 0 || cols > MaxCols || rows > MaxRows {
		return nil, fmt.Errorf("%w: world size %dx%d (max %dx%d)", ErrOutOfBounds, cols, rows, MaxCols, MaxRows)
	}
	return &World{
		Index: index,
		Seed:  seed,
		EndX:  float64(cols) * cfg.World.TileSize,
		cols:  cols,
		rows:  rows,
		grid:  NewGrid(cols, rows),
		rng:   rand.New(rand.NewSource(seed)),
		cfg:   cfg,
	}, nil
}

// Cols returns the level width in tiles.
func (w *World) Cols() int { return w.cols }

// Rows returns the level height in tiles.
func (w *World) Rows() int { return w.rows }

// Tick returns the number of ticks stepped since the world was built.
func (w *World) Tick() uint64 { return w.tick }

// Config returns the configuration the world was built with.
func (w *World) Config() *config.PlatformerConfig { return w.cfg }

// Grid returns the build-time occupancy grid.
func (w *World) Grid() *Grid { return w.grid }

// AddBlock places a block at tile (col, row).
func (w *World) AddBlock(col, row int, t BlockType) error {
	if err := w.grid.Add(col, row, t); err != nil {
		return err
	}
	ts := w.cfg.World.TileSize
	w.Blocks = append(w.Blocks, Block{
		Col:  col,
		Row:  row,
		Box:  tileBox(col, row, ts),
		Type: t,
	})
	return nil
}

// AddEnemy places a walker with its top-left at tile (col, row).
// The tile must be free.
func (w *World) AddEnemy(col, row int) error {
	if err := w.grid.claim(col, row, cellEnemy); err != nil {
		return err
	}
	ts := w.cfg.World.TileSize
	w.Enemies = append(w.Enemies, newEnemy(w.cfg, float64(col)*ts, float64(row)*ts))
	return nil
}

// SetGoal places the flagpole with its top at tile (col, row).
func (w *World) SetGoal(col, row int) error {
	if !w.grid.InBounds(col, row) {
		return fmt.Errorf("%w: goal at (%d,%d)", ErrOutOfBounds, col, row)
	}
	ts := w.cfg.World.TileSize
	w.Goal = newGoal(w.cfg, float64(col)*ts, float64(row)*ts)
	return nil
}

// SetEndColumn sets the right boundary of the level.
func (w *World) SetEndColumn(col int) error {
	if col <= 0 || col > w.cols {
		return fmt.Errorf("%w: end column %d", ErrOutOfBounds, col)
	}
	w.EndX = float64(col) * w.cfg.World.TileSize
	return nil
}

// SpawnItem launches a new item with its top-left at (x, y).
func (w *World) SpawnItem(x, y float64, kind ItemType) {
	w.Items = append(w.Items, newItem(w.cfg, x, y, kind))
}

// Len implements Terrain.
func (w *World) Len() int { return len(w.Blocks) }

// At implements Terrain.
func (w *World) At(i int) Block { return w.Blocks[i] }

// Bump implements Bumper: the player struck block i from below.
func (w *World) Bump(i int, p *Player) {
	b := &w.Blocks[i]
	switch b.Type {
	case BlockQBlock:
		b.Type = BlockEmpty
		p.Score += w.cfg.Scoring.QBlock
		p.Coins++
		kind := ItemMushroom
		if w.rng.Float64() < w.cfg.Item.StarChance {
			kind = ItemStar
		}
		w.SpawnItem(b.Box.Left, b.Box.Top-w.cfg.World.TileSize, kind)
	case BlockBrick:
		if p.Power != PowerSmall {
			b.Type = BlockDead
			p.Score += w.cfg.Scoring.Brick
		}
	case BlockGround, BlockPipeBody, BlockPipeTop, BlockEmpty, BlockDead:
	}
}

// PruneDeadBlocks removes tombstoned blocks.
func (w *World) PruneDeadBlocks() {
	w.Blocks = slices.DeleteFunc(w.Blocks, func(b Block) bool { return b.Type == BlockDead })
}

// prune removes dead blocks, dead enemies and spent items.
func (w *World) prune() {
	w.PruneDeadBlocks()
	w.Enemies = slices.DeleteFunc(w.Enemies, func(e *Enemy) bool { return e.Dead })
	w.Items = slices.DeleteFunc(w.Items, func(it *Item) bool { return !it.Active })
}

// Validate checks that a built world is playable.
func (w *World) Validate() error {
	if w.Goal == nil {
		return errors.New("sim: level has no goal")
	}
	if len(w.Blocks) == 0 {
		return errors.New("sim: level has no blocks")
	}
	return nil
}
