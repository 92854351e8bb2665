// Package sim implements the platformer simulation: the tile world,
// the player, enemies, items and the goal marker, advanced one tick at a time.
package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// BlockType tags a block in the world.
type BlockType int

const (
	BlockGround   BlockType = iota // Solid ground tile
	BlockPipeBody                  // Pipe shaft
	BlockPipeTop                   // Pipe cap
	BlockBrick                     // Breakable by a big player
	BlockQBlock                    // Question block, yields a coin and an item
	BlockEmpty                     // Spent question block
	BlockDead                      // Tombstone, removed at the end of the tick
)

var blockNames = [...]string{
	BlockGround:   "ground",
	BlockPipeBody: "pipe_body",
	BlockPipeTop:  "pipe_top",
	BlockBrick:    "brick",
	BlockQBlock:   "q_block",
	BlockEmpty:    "empty",
	BlockDead:     "dead",
}

// String returns the layout name of the block type.
func (t BlockType) String() string {
	if t < 0 || int(t) >= len(blockNames) {
		return fmt.Sprintf("BlockType(%d)", int(t))
	}
	return blockNames[t]
}

// Solid reports whether the block participates in collisions.
func (t BlockType) Solid() bool {
	switch t {
	case BlockGround, BlockPipeBody, BlockPipeTop, BlockBrick, BlockQBlock, BlockEmpty:
		return true
	case BlockDead:
		return false
	}
	return false
}

// ParseBlockType converts a layout name into a BlockType.
// "dead" is not accepted: tombstones only exist at runtime.
func ParseBlockType(s string) (BlockType, error) {
	for i, name := range blockNames {
		if name == s && BlockType(i) != BlockDead {
			return BlockType(i), nil
		}
	}
	return 0, fmt.Errorf("sim: unknown block type %q", s)
}

// Block is one tile of the level.
type Block struct {
	Col, Row int
	Box      core.Box
	Type     BlockType
}

// Build errors. Builders fail fast on these instead of resolving ambiguous layouts.
var (
	ErrOutOfBounds = errors.New("sim: tile out of bounds")
	ErrOverlap     = errors.New("sim: tile already occupied")
)

// Level size limits in tiles.
const (
	MaxCols = 4096
	MaxRows = 256
)

type occupant uint8

const (
	cellFree occupant = iota
	cellBlock
	cellEnemy
)

// Grid tracks tile occupancy while a level is being built.
type Grid struct {
	cols, rows int
	cells      []occupant
}

// NewGrid creates an empty grid of cols x rows tiles.
func NewGrid(cols, rows int) *Grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &Grid{cols: cols, rows: rows, cells: make([]occupant, cols*rows)}
}

// Cols returns the grid width in tiles.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height in tiles.
func (g *Grid) Rows() int { return g.rows }

// InBounds reports whether (col, row) is inside the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// Free reports whether (col, row) is inside the grid and unoccupied.
func (g *Grid) Free(col, row int) bool {
	return g.InBounds(col, row) && g.cells[row*g.cols+col] == cellFree
}

// Add claims (col, row) for a block. Dead blocks cannot be placed.
func (g *Grid) Add(col, row int, t BlockType) error {
	if !t.Solid() {
		return fmt.Errorf("sim: cannot place %s block", t)
	}
	return g.claim(col, row, cellBlock)
}

func (g *Grid) claim(col, row int, o occupant) error {
	if !g.InBounds(col, row) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, col, row, g.cols, g.rows)
	}
	idx := row*g.cols + col
	if g.cells[idx] != cellFree {
		return fmt.Errorf("%w: (%d,%d)", ErrOverlap, col, row)
	}
	g.cells[idx] = o
	return nil
}
