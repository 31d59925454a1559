package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Publisher receives one encoded snapshot per simulated tick.
type Publisher interface {
	Publish(frame []byte)
}

// ModelOptions carries the optional collaborators of a Model.
type ModelOptions struct {
	// Store keeps runs and save records. Nil keeps the record in memory.
	Store *storage.Store
	// Logger receives session events.
	Logger *log.Logger
	// Publisher receives the spectator feed. Nil disables it.
	Publisher Publisher
	// HoldWindow overrides DefaultHoldWindow.
	HoldWindow time.Duration
}

// Model is the Bubble Tea model for running a breakout variant.
type Model struct {
	game   registry.Game
	screen *core.Screen
	config core.RuntimeConfig
	opts   ModelOptions
	logger *log.Logger

	clock     *core.Clock
	keys      *KeyMapper
	hold      *HoldTracker
	gameState core.GameState

	paused     bool
	quitting   bool
	backToMenu bool
}

// NewModel wires game to the platform: save slot, logger, clock and input.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if sa, ok := game.(registry.SaveAware); ok && opts.Store != nil {
		sa.UseSaveSlot(storage.NewSlot(opts.Store, game.ID()))
	}
	if la, ok := game.(registry.LogAware); ok {
		la.UseLogger(logger)
	}
	game.Reset(cfg)

	var maxDelta time.Duration
	if p, ok := game.(registry.Paced); ok {
		maxDelta = p.MaxDelta()
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		opts:      opts,
		logger:    logger,
		clock:     core.NewClock(maxDelta),
		keys:      NewKeyMapper(),
		hold:      NewHoldTracker(opts.HoldWindow),
		gameState: game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionPause:
		m.togglePause()
		return m, nil
	case action == core.ActionBack && m.gameState.InMenu:
		m.backToMenu = true
		return m, nil
	case m.paused:
		return m, nil
	}

	m.hold.Observe(action, now)
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.paused {
		return m, nil
	}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.hold.Observe(core.ActionFire, time.Now())
	case msg.Action == tea.MouseActionMotion:
		m.hold.SetAxis(mouseAxis(msg.X, m.config.ScreenW))
	}
	return m, nil
}

// togglePause stops or resumes stepping. The clock restarts on resume so
// the paused time never reaches the simulation.
func (m *Model) togglePause() {
	if m.gameState.InMenu {
		return
	}
	m.paused = !m.paused
	m.hold.Reset()
	if !m.paused {
		m.clock.Reset()
	}
}

// handleTick advances the game by the clamped wall time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.paused {
		return m, tickCmd(m.config.TickRate)
	}

	dt := m.clock.Tick(now)
	frame := core.NewInputFrame()
	m.hold.Fill(&frame, now)

	result := m.game.Step(frame, dt)
	m.gameState = result.State
	m.handleEvents(result.Events)
	m.publish()

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) handleEvents(events []core.Event) {
	for _, e := range events {
		if e.Kind != core.EventGameOver {
			continue
		}
		m.hold.Reset()
		if m.opts.Store == nil {
			continue
		}
		if _, err := m.opts.Store.SaveScore(m.game.ID(), e.Value, m.gameState.Level); err != nil {
			m.logger.Warn("could not record run", "game", m.game.ID(), "err", err)
		}
	}
}

func (m *Model) publish() {
	if m.opts.Publisher == nil {
		return
	}
	obs, ok := m.game.(registry.Observable)
	if !ok {
		return
	}
	data, err := obs.ObserveJSON()
	if err != nil {
		m.logger.Debug("snapshot encode failed", "err", err)
		return
	}
	m.opts.Publisher.Publish(data)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	if m.paused {
		m.screen.DrawTextCentered(m.screen.Height()/2, " PAUSED - press P ")
		return pausedStyle.Render(RenderScreen(m.screen))
	}
	return RenderScreen(m.screen)
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Paused reports whether stepping is suspended.
func (m Model) Paused() bool {
	return m.paused
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user asked to leave from the title screen.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
