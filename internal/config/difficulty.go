package config

import "math"

// DifficultyManager calculates level-generation parameters from the level index.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty (0.0 to 1.0) for a 1-based level index.
func (d *DifficultyManager) Level(index int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 1 {
		maxAt = 2 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "level":
		progress = float64(index-1) / (maxAt - 1)
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Generator returns generator parameters scaled for the given level index.
// Probabilities are capped so the level stays traversable.
func (d *DifficultyManager) Generator(base GeneratorConfig, index int) GeneratorConfig {
	level := d.Level(index)
	out := base
	out.PitChance = clampF(base.PitChance+level*d.cfg.Scaling.PitBonus, 0, 0.3)
	out.EnemyChance = clampF(base.EnemyChance+level*d.cfg.Scaling.EnemyBonus, 0, 0.5)
	return out
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
