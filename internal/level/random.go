package level

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// RandomBuilder generates levels column by column from the configured
// generator parameters, scaled by difficulty for the level index.
//
// The first and last SafeColumns columns are always solid ground, a pit
// never reaches into the end region, placements that would overlap are
// skipped, and enemies never spawn in a pipe column.
type RandomBuilder struct {
	id    string
	title string
}

// NewRandomBuilder creates a randomized builder.
func NewRandomBuilder(id, title string) *RandomBuilder {
	return &RandomBuilder{id: id, title: title}
}

// ID implements Builder.
func (b *RandomBuilder) ID() string { return b.id }

// Title implements Builder.
func (b *RandomBuilder) Title() string { return b.title }

// Params returns the generator parameters used for a level index.
func (b *RandomBuilder) Params(cfg *config.PlatformerConfig, index int) config.GeneratorConfig {
	return config.NewDifficultyManager(cfg.Difficulty).Generator(cfg.Generator, index)
}

// Build implements Builder.
func (b *RandomBuilder) Build(cfg *config.PlatformerConfig, index int, rng *rand.Rand) (*sim.World, error) {
	p := b.Params(cfg, index)
	if p.Length <= 0 || 2*p.SafeColumns > p.Length {
		return nil, fmt.Errorf("level: %s: generator length %d cannot hold %d safe columns", b.id, p.Length, p.SafeColumns)
	}

	rows := cfg.World.Rows
	w, err := sim.NewWorld(cfg, index, p.Length, rows, rng.Int63())
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", b.id, err)
	}

	ground := groundRows(p.GroundRow, rows)
	endSafe := p.Length - p.SafeColumns
	pipeBase := p.GroundRow - 1

	for i := 0; i < p.Length; i++ {
		if i < p.SafeColumns || i >= endSafe {
			if err := addGround(w, i, ground); err != nil {
				return nil, fmt.Errorf("level: %s: %w", b.id, err)
			}
			continue
		}

		// Two-column pit, never reaching into the end region
		if rng.Float64() < p.PitChance && i+1 < endSafe {
			i++
			continue
		}

		if err := addGround(w, i, ground); err != nil {
			return nil, fmt.Errorf("level: %s: %w", b.id, err)
		}

		if rng.Float64() < p.PlatformChance {
			row := p.PlatformMinRow
			if span := p.PlatformMaxRow - p.PlatformMinRow + 1; span > 1 {
				row += rng.Intn(span)
			}
			if err := tryAdd(w, i, row, sim.BlockBrick); err != nil {
				return nil, err
			}
			if rng.Float64() < p.QBlockChance {
				if err := tryAdd(w, i+1, row, sim.BlockQBlock); err != nil {
					return nil, err
				}
			}
			if err := tryAdd(w, i+2, row, sim.BlockBrick); err != nil {
				return nil, err
			}
		}

		pipe := false
		if rng.Float64() < p.PipeChance && p.PipeMaxHeight > 0 {
			h := 1 + rng.Intn(p.PipeMaxHeight)
			if pipeFits(w, i, pipeBase, h) {
				if err := addPipe(w, i, pipeBase, h); err != nil {
					return nil, fmt.Errorf("level: %s: %w", b.id, err)
				}
				pipe = true
			}
		}

		if rng.Float64() < p.EnemyChance && !pipe && w.Grid().Free(i, p.EnemyRow) {
			if err := w.AddEnemy(i, p.EnemyRow); err != nil {
				return nil, fmt.Errorf("level: %s: %w", b.id, err)
			}
		}
	}

	if err := w.SetGoal(p.Length-p.GoalOffset, p.GoalRow); err != nil {
		return nil, fmt.Errorf("level: %s: %w", b.id, err)
	}
	return w, nil
}

// tryAdd places a block unless the cell is taken or outside the world.
func tryAdd(w *sim.World, col, row int, t sim.BlockType) error {
	err := w.AddBlock(col, row, t)
	if errors.Is(err, sim.ErrOverlap) || errors.Is(err, sim.ErrOutOfBounds) {
		return nil
	}
	return err
}
