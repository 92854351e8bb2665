package level

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/level/formats"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// FixedBuilder builds a hand-authored layout.
type FixedBuilder struct {
	layout *formats.Layout
	blocks []sim.BlockType // parsed once, parallel to layout.Blocks
}

// NewFixedBuilder validates a layout and parses its block types.
func NewFixedBuilder(l *formats.Layout) (*FixedBuilder, error) {
	if err := l.Check(); err != nil {
		return nil, err
	}
	types := make([]sim.BlockType, len(l.Blocks))
	for i, b := range l.Blocks {
		t, err := sim.ParseBlockType(b.Type)
		if err != nil {
			return nil, fmt.Errorf("level: %s: block %d: %w", l.ID, i, err)
		}
		types[i] = t
	}
	return &FixedBuilder{layout: l, blocks: types}, nil
}

// ID implements Builder.
func (b *FixedBuilder) ID() string { return b.layout.ID }

// Title implements Builder.
func (b *FixedBuilder) Title() string {
	if b.layout.Title == "" {
		return b.layout.ID
	}
	return b.layout.Title
}

// Build implements Builder. The layout is the same for every index; rng
// only seeds the world's item draws.
func (b *FixedBuilder) Build(cfg *config.PlatformerConfig, index int, rng *rand.Rand) (*sim.World, error) {
	l := b.layout
	rows := l.Height
	if rows == 0 {
		rows = cfg.World.Rows
	}

	w, err := sim.NewWorld(cfg, index, l.Width, rows, rng.Int63())
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", l.ID, err)
	}

	for c := range l.Width {
		if slices.Contains(l.Ground.Gaps, c) {
			continue
		}
		if err := addGround(w, c, l.Ground.Rows); err != nil {
			return nil, fmt.Errorf("level: %s: ground: %w", l.ID, err)
		}
	}

	for i, blk := range l.Blocks {
		span := max(blk.Span, 1)
		for k := range span {
			if err := w.AddBlock(blk.Col+k, blk.Row, b.blocks[i]); err != nil {
				return nil, fmt.Errorf("level: %s: block %d: %w", l.ID, i, err)
			}
		}
	}

	defaultBase := rows - 1
	if len(l.Ground.Rows) > 0 {
		defaultBase = slices.Min(l.Ground.Rows) - 1
	}
	for _, p := range l.Pipes {
		base := p.Base
		if base == 0 {
			base = defaultBase
		}
		if err := addPipe(w, p.Col, base, p.Height); err != nil {
			return nil, fmt.Errorf("level: %s: pipe at %d: %w", l.ID, p.Col, err)
		}
	}

	for _, e := range l.Enemies {
		if err := w.AddEnemy(e.Col, e.Row); err != nil {
			return nil, fmt.Errorf("level: %s: enemy: %w", l.ID, err)
		}
	}

	if err := w.SetGoal(l.Goal.Col, l.Goal.Row); err != nil {
		return nil, fmt.Errorf("level: %s: %w", l.ID, err)
	}
	if l.End > 0 {
		if err := w.SetEndColumn(l.End); err != nil {
			return nil, fmt.Errorf("level: %s: %w", l.ID, err)
		}
	}

	return w, nil
}
