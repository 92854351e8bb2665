package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the hardcoded default configuration.
// It mirrors defaults/platformer.yaml and is used if the embed fails to parse.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		World: WorldConfig{
			TileSize:   48,
			ViewWidth:  768,
			ViewHeight: 720,
			Rows:       15,
		},
		Physics: PhysicsConfig{
			Gravity:           2.4,
			Friction:          0.8,
			Acceleration:      1.5,
			JumpForce:         48,
			WalkSpeed:         10.5,
			RunSpeed:          18,
			DeathGravityScale: 0.5,
		},
		Player: PlayerConfig{
			SpawnX:     100,
			SpawnY:     100,
			SmallW:     36,
			SmallH:     48,
			BigW:       48,
			BigH:       96,
			StarTicks:  600,
			GraceTicks: 120,
		},
		Enemy: EnemyConfig{
			Width:         48,
			Height:        48,
			Speed:         3,
			StompSlack:    10,
			ActivityRange: 768,
		},
		Item: ItemConfig{
			Width:           48,
			Height:          48,
			LaunchVX:        6,
			LaunchVY:        -15,
			StarHop:         30,
			StarFloorMargin: 60,
			StarChance:      0.2,
		},
		Goal: GoalConfig{
			HitboxLeft:  18,
			HitboxRight: 30,
			PoleHeight:  456,
			FlagStart:   48,
			FlagStop:    384,
			FlagSpeed:   6,
		},
		Scoring: ScoringConfig{
			QBlock:  100,
			Brick:   50,
			Stomp:   100,
			PowerUp: 1000,
		},
		Clock: ClockConfig{
			TickRate:   60,
			MaxCatchUp: 5,
		},
		Session: SessionConfig{
			Lives:         3,
			ClearDelay:    120,
			RespawnMargin: 100,
			Levels:        []string{"1-1", "random", "1-3"},
			Overflow:      "random",
		},
		Generator: GeneratorConfig{
			Length:         200,
			SafeColumns:    10,
			GroundRow:      13,
			PitChance:      0.1,
			PlatformChance: 0.2,
			QBlockChance:   0.5,
			PlatformMinRow: 5,
			PlatformMaxRow: 8,
			PipeChance:     0.05,
			PipeMaxHeight:  3,
			EnemyChance:    0.1,
			EnemyRow:       10,
			GoalOffset:     5,
			GoalRow:        3,
		},
		Input: InputConfig{
			Hold: 350 * time.Millisecond,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 8,
			},
			Scaling: ScalingConfig{
				PitBonus:   0.05,
				EnemyBonus: 0.1,
			},
		},
	}
}
