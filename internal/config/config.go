// Package config provides YAML-based configuration loading and difficulty
// management for the platformer.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned by Validate for unusable configurations.
var ErrInvalid = errors.New("config: invalid")

// PlatformerConfig contains all tunables of the simulation and session.
// Distances are world units, speeds are units per tick, durations of
// simulation effects are ticks.
type PlatformerConfig struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Item       ItemConfig       `yaml:"item"`
	Goal       GoalConfig       `yaml:"goal"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Clock      ClockConfig      `yaml:"clock"`
	Session    SessionConfig    `yaml:"session"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Input      InputConfig      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the tile grid and visible playfield.
type WorldConfig struct {
	TileSize   float64 `yaml:"tile_size"`
	ViewWidth  float64 `yaml:"view_width"`
	ViewHeight float64 `yaml:"view_height"`
	Rows       int     `yaml:"rows"`
}

// PhysicsConfig defines the shared movement constants.
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`
	Friction          float64 `yaml:"friction"`
	Acceleration      float64 `yaml:"acceleration"`
	JumpForce         float64 `yaml:"jump_force"`
	WalkSpeed         float64 `yaml:"walk_speed"`
	RunSpeed          float64 `yaml:"run_speed"`
	DeathGravityScale float64 `yaml:"death_gravity_scale"`
}

// PlayerConfig defines the player hitboxes and timers.
type PlayerConfig struct {
	SpawnX     float64 `yaml:"spawn_x"`
	SpawnY     float64 `yaml:"spawn_y"`
	SmallW     float64 `yaml:"small_w"`
	SmallH     float64 `yaml:"small_h"`
	BigW       float64 `yaml:"big_w"`
	BigH       float64 `yaml:"big_h"`
	StarTicks  int     `yaml:"star_ticks"`
	GraceTicks int     `yaml:"grace_ticks"`
}

// EnemyConfig defines the walker enemy.
type EnemyConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`
	StompSlack    float64 `yaml:"stomp_slack"`
	ActivityRange float64 `yaml:"activity_range"`
}

// ItemConfig defines power-up pickups.
type ItemConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	LaunchVX        float64 `yaml:"launch_vx"`
	LaunchVY        float64 `yaml:"launch_vy"`
	StarHop         float64 `yaml:"star_hop"`
	StarFloorMargin float64 `yaml:"star_floor_margin"`
	StarChance      float64 `yaml:"star_chance"`
}

// GoalConfig defines the flagpole geometry. Offsets are relative to the
// pole's top-left corner.
type GoalConfig struct {
	HitboxLeft  float64 `yaml:"hitbox_left"`
	HitboxRight float64 `yaml:"hitbox_right"`
	PoleHeight  float64 `yaml:"pole_height"`
	FlagStart   float64 `yaml:"flag_start"`
	FlagStop    float64 `yaml:"flag_stop"`
	FlagSpeed   float64 `yaml:"flag_speed"`
}

// ScoringConfig defines points awarded by events.
type ScoringConfig struct {
	QBlock  int `yaml:"q_block"`
	Brick   int `yaml:"brick"`
	Stomp   int `yaml:"stomp"`
	PowerUp int `yaml:"power_up"`
}

// ClockConfig defines the fixed simulation step.
type ClockConfig struct {
	TickRate   int `yaml:"tick_rate"`
	MaxCatchUp int `yaml:"max_catch_up"`
}

// SessionConfig defines level flow.
type SessionConfig struct {
	Lives         int      `yaml:"lives"`
	ClearDelay    int      `yaml:"clear_delay"`
	RespawnMargin float64  `yaml:"respawn_margin"`
	Levels        []string `yaml:"levels"`
	Overflow      string   `yaml:"overflow"`
}

// GeneratorConfig defines the randomized level builder.
type GeneratorConfig struct {
	Length         int     `yaml:"length"`
	SafeColumns    int     `yaml:"safe_columns"`
	GroundRow      int     `yaml:"ground_row"`
	PitChance      float64 `yaml:"pit_chance"`
	PlatformChance float64 `yaml:"platform_chance"`
	QBlockChance   float64 `yaml:"q_block_chance"`
	PlatformMinRow int     `yaml:"platform_min_row"`
	PlatformMaxRow int     `yaml:"platform_max_row"`
	PipeChance     float64 `yaml:"pipe_chance"`
	PipeMaxHeight  int     `yaml:"pipe_max_height"`
	EnemyChance    float64 `yaml:"enemy_chance"`
	EnemyRow       int     `yaml:"enemy_row"`
	GoalOffset     int     `yaml:"goal_offset"`
	GoalRow        int     `yaml:"goal_row"`
}

// InputConfig defines how terminal key repeats become held keys.
type InputConfig struct {
	Hold time.Duration `yaml:"hold"`
}

// DifficultyConfig defines the difficulty progression across levels.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Level index at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	PitBonus   float64 `yaml:"pit_bonus"`   // Added to pit chance at max difficulty
	EnemyBonus float64 `yaml:"enemy_bonus"` // Added to enemy chance at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Session.Lives = 5
	case DifficultyHard:
		cfg.Session.Lives = 2
	}
}

// TickDuration returns the fixed simulation step.
func (c *PlatformerConfig) TickDuration() time.Duration {
	if c.Clock.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Clock.TickRate)
}

// Validate rejects configurations the simulation cannot run with.
func (c *PlatformerConfig) Validate() error {
	switch {
	case c.World.TileSize <= 0:
		return fmt.Errorf("%w: world.tile_size must be positive", ErrInvalid)
	case c.World.Rows <= 0:
		return fmt.Errorf("%w: world.rows must be positive", ErrInvalid)
	case c.World.ViewWidth <= 0 || c.World.ViewHeight <= 0:
		return fmt.Errorf("%w: world view must be positive", ErrInvalid)
	case c.Clock.TickRate <= 0:
		return fmt.Errorf("%w: clock.tick_rate must be positive", ErrInvalid)
	case c.Clock.MaxCatchUp <= 0:
		return fmt.Errorf("%w: clock.max_catch_up must be positive", ErrInvalid)
	case c.Physics.Friction <= 0 || c.Physics.Friction > 1:
		return fmt.Errorf("%w: physics.friction must be in (0, 1]", ErrInvalid)
	case c.Player.SmallH <= 0 || c.Player.BigH < c.Player.SmallH:
		return fmt.Errorf("%w: player hitboxes must satisfy 0 < small_h <= big_h", ErrInvalid)
	case c.Session.Lives <= 0:
		return fmt.Errorf("%w: session.lives must be positive", ErrInvalid)
	case len(c.Session.Levels) == 0 && c.Session.Overflow == "":
		return fmt.Errorf("%w: session needs levels or an overflow builder", ErrInvalid)
	case c.Generator.SafeColumns < 0 || 2*c.Generator.SafeColumns > c.Generator.Length:
		return fmt.Errorf("%w: generator.safe_columns does not fit generator.length", ErrInvalid)
	}
	return nil
}
