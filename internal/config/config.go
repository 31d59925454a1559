// Package config provides YAML-based game configuration loading and
// difficulty management for the breakout game.
package config

// BreakoutConfig contains all configuration for the Breakout game.
// Distances are playfield pixels, speeds are pixels per second.
type BreakoutConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Ball       BallConfig       `yaml:"ball"`
	Input      InputConfig      `yaml:"input"`
	Timing     TimingConfig     `yaml:"timing"`
	PowerUps   PowerUpConfig    `yaml:"powerups"`
	Levels     LevelsConfig     `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the playfield and the block lattice.
type FieldConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	CellSize    float64 `yaml:"cell_size"`    // Block height; blocks are 2*cell_size wide
	TopMargin   float64 `yaml:"top_margin"`   // Ball never rises above this line
	FloorMargin float64 `yaml:"floor_margin"` // Distance below the field before a life is lost
}

// PaddleConfig defines the player's paddle.
type PaddleConfig struct {
	DefaultWidth int     `yaml:"default_width"` // Half-width in pixels
	WidthRange   int     `yaml:"width_range"`   // Allowed deviation from default_width
	Speed        float64 `yaml:"speed"`
	Thickness    float64 `yaml:"thickness"`
	StartHealth  int     `yaml:"start_health"`
}

// BallConfig defines ball physics.
type BallConfig struct {
	Size          float64 `yaml:"size"` // Half-extent of the ball's bounding box
	Speed         float64 `yaml:"speed"`
	MaxDeflection float64 `yaml:"max_deflection"` // Cap on |vx| after a paddle bounce
	LaunchSpread  float64 `yaml:"launch_spread"`  // Launch vx is drawn from [-spread, spread]
}

// InputConfig defines analog input handling.
type InputConfig struct {
	DeadZone float64 `yaml:"dead_zone"`
}

// TimingConfig defines frame timing limits.
type TimingConfig struct {
	MaxDeltaMS int `yaml:"max_delta_ms"`
}

// PowerUpConfig defines falling power-ups.
type PowerUpConfig struct {
	Enabled     bool          `yaml:"enabled"`
	SpawnOneIn  int           `yaml:"spawn_one_in"` // 1-in-N chance per destroyed scoring block
	FallSpeed   float64       `yaml:"fall_speed"`
	WidthStep   int           `yaml:"width_step"`
	Weights     PowerUpWeight `yaml:"weights"`
	WidenScore  int           `yaml:"widen_score"`
	NarrowScore int           `yaml:"narrow_score"`
	HealScore   int           `yaml:"heal_score"`
}

// PowerUpWeight holds relative spawn weights per kind.
type PowerUpWeight struct {
	Widen  int `yaml:"widen"`
	Narrow int `yaml:"narrow"`
	Heal   int `yaml:"heal"`
}

// LevelsConfig selects where levels come from.
type LevelsConfig struct {
	Start int    `yaml:"start"` // Zero-based level loaded from the menu
	Pack  string `yaml:"pack"`  // Optional level pack file or directory
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to the ball speed factor at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
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

// MinPaddleWidth returns the narrowest allowed paddle.
func (c PaddleConfig) MinPaddleWidth() int {
	return c.DefaultWidth - c.WidthRange
}

// MaxPaddleWidth returns the widest allowed paddle.
func (c PaddleConfig) MaxPaddleWidth() int {
	return c.DefaultWidth + c.WidthRange
}
