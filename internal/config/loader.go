package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for values the physics cannot run with.
var ErrInvalidConfig = errors.New("invalid config")

// LoadBreakout loads Breakout configuration.
// Search order: customPath -> ~/.arcade/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	cfg := DefaultBreakoutConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath("breakout.yaml"), filepath.Join("configs", "breakout.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultBreakoutConfig()
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			continue
		}
		if candidate.Validate() == nil {
			return candidate, nil
		}
	}

	if err := yaml.Unmarshal(defaultBreakoutYAML, &cfg); err != nil {
		return DefaultBreakoutConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// Validate reports the first setting that would break the simulation.
func (c BreakoutConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field must have positive size", ErrInvalidConfig)
	case c.Field.CellSize <= 0:
		return fmt.Errorf("%w: cell_size must be positive", ErrInvalidConfig)
	case c.Ball.Size <= 0:
		return fmt.Errorf("%w: ball size must be positive", ErrInvalidConfig)
	case c.Ball.Size >= c.Field.CellSize/2:
		// The block search only looks at a 2x2 neighbourhood of cells.
		return fmt.Errorf("%w: ball size %.1f must be below half the cell size %.1f",
			ErrInvalidConfig, c.Ball.Size, c.Field.CellSize)
	case c.Ball.Speed <= 0:
		return fmt.Errorf("%w: ball speed must be positive", ErrInvalidConfig)
	case c.Ball.MaxDeflection <= 0 || c.Ball.MaxDeflection >= 1:
		return fmt.Errorf("%w: max_deflection must be in (0, 1)", ErrInvalidConfig)
	case c.Ball.LaunchSpread < 0 || c.Ball.LaunchSpread >= 1:
		return fmt.Errorf("%w: launch_spread must be in [0, 1)", ErrInvalidConfig)
	case c.Paddle.DefaultWidth <= 0:
		return fmt.Errorf("%w: paddle default_width must be positive", ErrInvalidConfig)
	case c.Paddle.WidthRange < 0 || c.Paddle.MinPaddleWidth() < 1:
		return fmt.Errorf("%w: paddle width_range leaves no paddle", ErrInvalidConfig)
	case c.Paddle.Speed < 0:
		return fmt.Errorf("%w: paddle speed must not be negative", ErrInvalidConfig)
	case c.Paddle.StartHealth <= 0:
		return fmt.Errorf("%w: start_health must be positive", ErrInvalidConfig)
	case c.Input.DeadZone < 0 || c.Input.DeadZone >= 1:
		return fmt.Errorf("%w: dead_zone must be in [0, 1)", ErrInvalidConfig)
	case c.Timing.MaxDeltaMS <= 0:
		return fmt.Errorf("%w: max_delta_ms must be positive", ErrInvalidConfig)
	case c.PowerUps.Enabled && c.PowerUps.SpawnOneIn <= 0:
		return fmt.Errorf("%w: spawn_one_in must be positive", ErrInvalidConfig)
	case c.PowerUps.Enabled && c.PowerUps.Weights.Widen+c.PowerUps.Weights.Narrow+c.PowerUps.Weights.Heal <= 0:
		return fmt.Errorf("%w: power-up weights must not all be zero", ErrInvalidConfig)
	case c.Levels.Start < 0:
		return fmt.Errorf("%w: levels.start must not be negative", ErrInvalidConfig)
	}
	return nil
}
