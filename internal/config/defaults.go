package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
// It mirrors defaults/breakout.yaml and is used if the embedded file is unreadable.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Field: FieldConfig{
			Width:       160,
			Height:      120,
			CellSize:    8,
			TopMargin:   8,
			FloorMargin: 8,
		},
		Paddle: PaddleConfig{
			DefaultWidth: 6,
			WidthRange:   4,
			Speed:        100,
			Thickness:    4,
			StartHealth:  3,
		},
		Ball: BallConfig{
			Size:          2,
			Speed:         80,
			MaxDeflection: 0.95,
			LaunchSpread:  0.5,
		},
		Input: InputConfig{
			DeadZone: 0.2,
		},
		Timing: TimingConfig{
			MaxDeltaMS: 100,
		},
		PowerUps: PowerUpConfig{
			Enabled:    false,
			SpawnOneIn: 5,
			FallSpeed:  30,
			WidthStep:  2,
			Weights: PowerUpWeight{
				Widen:  5,
				Narrow: 3,
				Heal:   2,
			},
			WidenScore:  2,
			NarrowScore: -2,
			HealScore:   3,
		},
		Levels: LevelsConfig{
			Start: 0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
