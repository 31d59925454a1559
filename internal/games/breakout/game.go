package breakout

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// Variant selects the rule set.
type Variant int

const (
	VariantClassic Variant = iota // No power-ups unless the config enables them
	VariantPlus                   // Power-ups always on
)

// Package-level factory settings, set from the CLI before a game is created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLevel       = -1
	levelPack        string
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetStartLevel overrides levels.start from the config. Negative restores the config value.
func SetStartLevel(index int) {
	startLevel = index
}

// SetLevelPack overrides levels.pack from the config.
func SetLevelPack(path string) {
	levelPack = path
}

// Game adapts a GameSession to the registry.Game interface.
type Game struct {
	variant Variant
	session *GameSession
	cfg     config.BreakoutConfig
	runtime core.RuntimeConfig

	slot    core.SaveSlot
	logger  *log.Logger
	startAt int // Per-instance start level; negative defers to SetStartLevel and the config

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a classic Breakout game.
func New() *Game {
	return &Game{variant: VariantClassic, startAt: -1, minScreenW: 40, minScreenH: 16}
}

// NewPlus creates a Breakout game with power-ups.
func NewPlus() *Game {
	return &Game{variant: VariantPlus, startAt: -1, minScreenW: 40, minScreenH: 16}
}

// ID returns the unique identifier for this variant.
func (g *Game) ID() string {
	if g.variant == VariantPlus {
		return "breakout_plus"
	}
	return "breakout"
}

// Title returns the display name for this variant.
func (g *Game) Title() string {
	if g.variant == VariantPlus {
		return "Breakout+ (power-ups)"
	}
	return "Breakout"
}

// UseSaveSlot sets where the high score is persisted. Takes effect on Reset.
func (g *Game) UseSaveSlot(slot core.SaveSlot) {
	g.slot = slot
}

// UseLogger sets the session logger. Takes effect on Reset.
func (g *Game) UseLogger(l *log.Logger) {
	g.logger = l
}

// Reset loads configuration and levels and creates a fresh session at the menu.
// Configuration problems fall back to defaults with a warning.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}

	g.cfg = g.loadConfig()
	catalog := g.loadCatalog()

	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	g.session = NewSession(g.cfg, catalog,
		WithLogger(g.logger.With("game", g.ID())),
		WithSaveSlot(g.slot),
		WithSeed(runtime.Seed),
	)
	switch {
	case g.startAt >= 0:
		g.session.SetStartLevel(g.startAt)
	case startLevel >= 0:
		g.session.SetStartLevel(startLevel)
	}
}

// StartAt picks the level new runs begin on for this instance only.
func (g *Game) StartAt(index int) {
	g.startAt = index
	if g.session != nil && index >= 0 {
		g.session.SetStartLevel(index)
	}
}

func (g *Game) loadConfig() config.BreakoutConfig {
	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultBreakoutConfig()
	}

	if difficultyPreset != "" {
		config.ApplyBreakoutPreset(&cfg, difficultyPreset)
	}
	if g.variant == VariantPlus {
		cfg.PowerUps.Enabled = true
	}
	if levelPack != "" {
		cfg.Levels.Pack = levelPack
	}

	if err := cfg.Validate(); err != nil {
		g.logger.Warn("invalid config, using defaults", "err", err)
		fallback := config.DefaultBreakoutConfig()
		fallback.PowerUps.Enabled = cfg.PowerUps.Enabled
		fallback.Levels.Pack = cfg.Levels.Pack
		cfg = fallback
	}
	return cfg
}

func (g *Game) loadCatalog() *levels.Catalog {
	if g.cfg.Levels.Pack == "" {
		return levels.Builtin()
	}
	pack, err := levels.LoadPack(g.cfg.Levels.Pack)
	for _, problem := range pack.Problems {
		g.logger.Warn("skipped level file", "err", problem)
	}
	if err != nil {
		g.logger.Warn("using built-in levels", "pack", g.cfg.Levels.Pack, "err", err)
		return levels.Builtin()
	}
	return pack.Catalog
}

// Step advances the session by dt seconds, capped at timing.max_delta_ms.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}
	if limit := g.MaxDelta().Seconds(); dt > limit {
		dt = limit
	}
	events := g.session.Update(in, dt)
	return core.StepResult{State: g.State(), Events: events}
}

// MaxDelta returns the longest frame the simulation accepts.
func (g *Game) MaxDelta() time.Duration {
	if g.cfg.Timing.MaxDeltaMS <= 0 {
		return core.DefaultMaxDelta
	}
	return time.Duration(g.cfg.Timing.MaxDeltaMS) * time.Millisecond
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{InMenu: true}
	}
	return core.GameState{
		Score:     g.session.Score(),
		HighScore: g.session.HighScore(),
		Lives:     g.session.Paddle().Health,
		Level:     g.session.LevelIndex(),
		InMenu:    g.session.Mode() == ModeMenu,
	}
}

// Session returns the underlying session.
func (g *Game) Session() *GameSession {
	return g.session
}

// Snapshot returns the current session snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.session.Snapshot()
}

// ObserveJSON returns the current snapshot encoded as JSON.
func (g *Game) ObserveJSON() ([]byte, error) {
	snap := g.session.Snapshot()
	return snap.JSON()
}

// Register the variants with the registry
func init() {
	registry.Register("breakout", func() registry.Game {
		return New()
	})
	registry.Register("breakout_plus", func() registry.Game {
		return NewPlus()
	})
}
