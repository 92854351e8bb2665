// Package level provides the level builders: fixed layouts, the randomized
// generator and Lua-scripted levels. Each builder produces a complete
// sim.World from a level index and a seeded random source.
package level

import (
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// Builder is the registry's builder contract.
type Builder = registry.Builder

// addGround fills the given rows of one column with ground.
func addGround(w *sim.World, col int, rows []int) error {
	for _, r := range rows {
		if err := w.AddBlock(col, r, sim.BlockGround); err != nil {
			return err
		}
	}
	return nil
}

// addPipe stacks height body tiles upward from base and caps them.
func addPipe(w *sim.World, col, base, height int) error {
	for i := range height {
		if err := w.AddBlock(col, base-i, sim.BlockPipeBody); err != nil {
			return err
		}
	}
	return w.AddBlock(col, base-height, sim.BlockPipeTop)
}

// pipeFits reports whether a pipe can be placed without overlapping anything.
func pipeFits(w *sim.World, col, base, height int) bool {
	g := w.Grid()
	for r := base - height; r <= base; r++ {
		if !g.Free(col, r) {
			return false
		}
	}
	return true
}

// groundRows returns the two ground rows starting at top, clipped to the world.
func groundRows(top, rows int) []int {
	out := make([]int, 0, 2)
	for r := top; r < top+2 && r < rows; r++ {
		out = append(out, r)
	}
	return out
}
