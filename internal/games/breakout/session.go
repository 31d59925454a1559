package breakout

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels"
)

// Mode is the session's top-level state.
type Mode int

const (
	ModeMenu Mode = iota
	ModePlaying
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModePlaying {
		return "playing"
	}
	return "menu"
}

// GameSession owns all mutable game state: one paddle, one ball, the block
// field, scoring and the optional power-up queue.
type GameSession struct {
	cfg     config.BreakoutConfig
	catalog *levels.Catalog
	slot    core.SaveSlot
	logger  *log.Logger

	mode       Mode
	levelIndex int
	startLevel int
	highScore  int
	ticks      int

	paddle     Paddle
	ball       Ball
	field      *BlockField
	scoring    Scoring
	powerups   *PowerUpQueue // nil when power-ups are disabled
	rng        *SimpleRNG
	difficulty *config.DifficultyManager
}

// SessionOption configures a GameSession.
type SessionOption func(*GameSession)

// WithLogger routes session logs to l.
func WithLogger(l *log.Logger) SessionOption {
	return func(s *GameSession) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSaveSlot sets where the high score is loaded from and stored to.
func WithSaveSlot(slot core.SaveSlot) SessionOption {
	return func(s *GameSession) {
		if slot != nil {
			s.slot = slot
		}
	}
}

// WithSeed seeds launch angles and power-up rolls.
func WithSeed(seed int64) SessionOption {
	return func(s *GameSession) {
		s.rng = NewSimpleRNG(seed)
	}
}

// NewSession creates a session sitting at the menu. A nil catalog selects the
// built-in levels. The high score is read from the save slot; a missing or
// unreadable record counts as 0.
func NewSession(cfg config.BreakoutConfig, catalog *levels.Catalog, opts ...SessionOption) *GameSession {
	if catalog == nil {
		catalog = levels.Builtin()
	}
	s := &GameSession{
		cfg:        cfg,
		catalog:    catalog,
		slot:       &core.MemorySlot{},
		logger:     log.New(io.Discard),
		field:      NewBlockField(),
		startLevel: cfg.Levels.Start,
		rng:        NewSimpleRNG(1),
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.PowerUps.Enabled {
		s.powerups = NewPowerUpQueue(cfg.PowerUps, s.rng)
	}
	if cfg.Difficulty.Enabled {
		s.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	}

	if rec, ok := s.slot.Load(); ok && rec.HighScore > 0 {
		s.highScore = rec.HighScore
	}

	s.paddle = Paddle{
		X:      cfg.Field.Width / 2,
		Y:      cfg.Field.Height - cfg.Field.CellSize,
		Width:  cfg.Paddle.DefaultWidth,
		Health: cfg.Paddle.StartHealth,
	}
	s.resetBall()
	s.loadLevel(s.startLevel)
	return s
}

// Update advances the session by dt seconds and returns what happened.
func (s *GameSession) Update(in core.InputFrame, dt float64) []core.Event {
	if dt < 0 {
		dt = 0
	}

	switch s.mode {
	case ModeMenu:
		if in.WasPressed(core.ActionFire) {
			s.start()
		}
		return nil

	case ModePlaying:
		s.ticks++
		s.movePaddle(in, dt)
		events := s.stepPhysics(in, dt)

		if s.paddle.Health <= 0 {
			return append(events, s.gameOver())
		}
		if s.field.Remaining() == 0 {
			events = append(events, s.advanceLevel())
		}
		return events
	}
	return nil
}

// start leaves the menu with fresh health and score at the start level.
func (s *GameSession) start() {
	s.mode = ModePlaying
	s.ticks = 0
	s.scoring.Reset()
	s.paddle.Health = s.cfg.Paddle.StartHealth
	s.loadLevel(s.startLevel)
	s.logger.Info("game started", "level", s.levelIndex, "id", s.Level().ID)
}

// loadLevel resets the field, paddle and ball for the level at index.
func (s *GameSession) loadLevel(index int) {
	n := s.catalog.Len()
	s.levelIndex = ((index % n) + n) % n
	s.field.Load(s.catalog.Level(s.levelIndex).Grid, s.cfg.Field.CellSize)

	s.paddle.Width = s.cfg.Paddle.DefaultWidth
	s.paddle.X = s.cfg.Field.Width / 2
	if s.powerups != nil {
		s.powerups.Clear()
	}
	s.resetBall()
}

func (s *GameSession) advanceLevel() core.Event {
	cleared := s.levelIndex
	s.loadLevel(s.catalog.Next(s.levelIndex))
	s.logger.Info("level cleared", "level", cleared, "next", s.levelIndex, "score", s.scoring.Score)
	return core.Event{Kind: core.EventLevelCleared, Value: s.levelIndex}
}

// gameOver records the high score and returns to the menu.
func (s *GameSession) gameOver() core.Event {
	score := s.scoring.Score
	s.highScore = max(s.highScore, score)
	if err := s.slot.Store(core.SaveRecord{HighScore: s.highScore}); err != nil {
		s.logger.Warn("failed to store save record", "err", err)
	}
	s.mode = ModeMenu
	s.logger.Info("game over", "score", score, "highscore", s.highScore, "level", s.levelIndex)
	return core.Event{Kind: core.EventGameOver, Value: score}
}

// SetStartLevel selects the level loaded when play starts from the menu.
func (s *GameSession) SetStartLevel(index int) {
	n := s.catalog.Len()
	s.startLevel = ((index % n) + n) % n
	if s.mode == ModeMenu {
		s.loadLevel(s.startLevel)
	}
}

// Mode returns the current mode.
func (s *GameSession) Mode() Mode { return s.mode }

// Score returns the current (or last) score.
func (s *GameSession) Score() int { return s.scoring.Score }

// Combo returns the current combo streak.
func (s *GameSession) Combo() int { return s.scoring.Combo }

// HighScore returns the best score known to the session.
func (s *GameSession) HighScore() int { return s.highScore }

// LevelIndex returns the active level index.
func (s *GameSession) LevelIndex() int { return s.levelIndex }

// Level returns the active level.
func (s *GameSession) Level() levels.Level { return s.catalog.Level(s.levelIndex) }

// LevelCount returns the number of levels in the catalog.
func (s *GameSession) LevelCount() int { return s.catalog.Len() }

// Paddle returns a copy of the paddle.
func (s *GameSession) Paddle() Paddle { return s.paddle }

// Ball returns a copy of the ball.
func (s *GameSession) Ball() Ball { return s.ball }

// Field returns the block field. Callers must treat it as read-only.
func (s *GameSession) Field() *BlockField { return s.field }

// PowerUps returns the falling power-ups, oldest first.
func (s *GameSession) PowerUps() []PowerUp {
	if s.powerups == nil {
		return nil
	}
	return s.powerups.Items()
}

// Config returns the session configuration.
func (s *GameSession) Config() config.BreakoutConfig { return s.cfg }
