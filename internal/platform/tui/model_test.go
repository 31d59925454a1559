package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// scriptedGame records its inputs and returns queued events.
type scriptedGame struct {
	state  core.GameState
	events [][]core.Event
	steps  []float64
	inputs []core.InputFrame
	slot   core.SaveSlot
}

func (g *scriptedGame) ID() string { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) {}
func (g *scriptedGame) Render(*core.Screen) {}
func (g *scriptedGame) State() core.GameState { return g.state }
func (g *scriptedGame) UseSaveSlot(s core.SaveSlot) { g.slot = s }
func (g *scriptedGame) ObserveJSON() ([]byte, error) {
	return []byte(`{"steps":1}`), nil
}

func (g *scriptedGame) Step(in core.InputFrame, dt float64) core.StepResult {
	g.steps = append(g.steps, dt)
	g.inputs = append(g.inputs, in)
	var ev []core.Event
	if len(g.events) > 0 {
		ev, g.events = g.events[0], g.events[1:]
	}
	return core.StepResult{State: g.state, Events: ev}
}

type recordingPublisher struct {
	frames [][]byte
}

func (p *recordingPublisher) Publish(frame []byte) {
	p.frames = append(p.frames, frame)
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func tick(t *testing.T, m Model, at time.Time) Model {
	t.Helper()
	next, _ := m.Update(TickMsg(at))
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func pressKey(t *testing.T, m Model, r string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)})
	return next.(Model)
}

func TestModelPauseStopsStepping(t *testing.T) {
	game := &scriptedGame{}
	m := NewModel(game, testRuntime(), ModelOptions{})
	t0 := time.Unix(100, 0)

	m = tick(t, m, t0)
	m = pressKey(t, m, "p")
	if !m.Paused() {
		t.Fatal("expected paused")
	}
	m = tick(t, m, t0.Add(time.Second))
	if len(game.steps) != 1 {
		t.Fatalf("paused model stepped: %d steps", len(game.steps))
	}

	m = pressKey(t, m, "p")
	m = tick(t, m, t0.Add(5*time.Second))
	if len(game.steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(game.steps))
	}
	if game.steps[1] != 0 {
		t.Errorf("first step after resume dt = %v, want 0", game.steps[1])
	}
}

func TestModelPauseIgnoredAtMenu(t *testing.T) {
	game := &scriptedGame{state: core.GameState{InMenu: true}}
	m := NewModel(game, testRuntime(), ModelOptions{})
	m = pressKey(t, m, "p")
	if m.Paused() {
		t.Error("pause should not apply at the title menu")
	}
}

func TestModelClampsDelta(t *testing.T) {
	game := &scriptedGame{}
	m := NewModel(game, testRuntime(), ModelOptions{})
	t0 := time.Unix(100, 0)

	m = tick(t, m, t0)
	m = tick(t, m, t0.Add(3*time.Second))
	if got := game.steps[1]; got != core.DefaultMaxDelta.Seconds() {
		t.Errorf("dt = %v, want %v", got, core.DefaultMaxDelta.Seconds())
	}
}

func TestModelFireIsPressedOnce(t *testing.T) {
	game := &scriptedGame{}
	m := NewModel(game, testRuntime(), ModelOptions{})
	m = pressKey(t, m, " ")

	now := time.Now()
	m = tick(t, m, now)
	m = tick(t, m, now.Add(16*time.Millisecond))

	if !game.inputs[0].WasPressed(core.ActionFire) {
		t.Error("fire should be pressed on the first tick")
	}
	if game.inputs[1].WasPressed(core.ActionFire) {
		t.Error("fire press must not repeat")
	}
}

func TestModelRecordsRunOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	game := &scriptedGame{
		state:  core.GameState{InMenu: true, Level: 2},
		events: [][]core.Event{{{Kind: core.EventLifeLost}, {Kind: core.EventGameOver, Value: 340}}},
	}
	m := NewModel(game, testRuntime(), ModelOptions{Store: store})
	if game.slot == nil {
		t.Fatal("store-backed save slot was not installed")
	}

	tick(t, m, time.Unix(100, 0))

	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 340 || scores[0].Level != 2 {
		t.Errorf("recorded runs = %+v", scores)
	}
}

func TestModelPublishesEveryTick(t *testing.T) {
	pub := &recordingPublisher{}
	m := NewModel(&scriptedGame{}, testRuntime(), ModelOptions{Publisher: pub})

	now := time.Unix(100, 0)
	for i := 0; i < 3; i++ {
		m = tick(t, m, now.Add(time.Duration(i)*16*time.Millisecond))
	}
	if len(pub.frames) != 3 {
		t.Errorf("published %d frames, want 3", len(pub.frames))
	}
}

func TestModelBackOnlyFromMenu(t *testing.T) {
	playing := NewModel(&scriptedGame{}, testRuntime(), ModelOptions{})
	playing = pressKey(t, playing, "b")
	if playing.BackToMenu() {
		t.Error("back must not leave a running game")
	}

	menu := NewModel(&scriptedGame{state: core.GameState{InMenu: true}}, testRuntime(), ModelOptions{})
	menu = pressKey(t, menu, "b")
	if !menu.BackToMenu() {
		t.Error("back at the title menu should return to the selector")
	}
}
