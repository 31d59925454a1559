package registry

import (
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

type stubGame struct {
	id    string
	steps int
}

func (g *stubGame) ID() string               { return g.id }
func (g *stubGame) Title() string            { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Render(*core.Screen)      {}
func (g *stubGame) State() core.GameState    { return core.GameState{Score: g.steps} }
func (g *stubGame) Step(core.InputFrame, float64) core.StepResult {
	g.steps++
	return core.StepResult{State: g.State()}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })

	if !Exists("stub_a") {
		t.Fatal("stub_a should exist after Register")
	}

	g, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.Title() != "Stub stub_a" {
		t.Errorf("Title() = %q", g.Title())
	}

	res := g.Step(core.NewInputFrame(), 0.016)
	if res.State.Score != 1 {
		t.Errorf("Step result score = %d, expected 1", res.State.Score)
	}

	if !slices.Contains(IDs(), "stub_a") {
		t.Errorf("IDs() = %v, missing stub_a", IDs())
	}
	found := false
	for _, info := range List() {
		if info.ID == "stub_a" {
			found = info.Title == "Stub stub_a"
		}
	}
	if !found {
		t.Error("List() should carry the title captured at registration")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no_such_game")
	if !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create() error = %v, expected ErrUnknownGame", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}

func TestIDsSorted(t *testing.T) {
	Register("stub_z", func() Game { return &stubGame{id: "stub_z"} })
	Register("stub_m", func() Game { return &stubGame{id: "stub_m"} })

	ids := IDs()
	if !slices.IsSorted(ids) {
		t.Errorf("IDs() not sorted: %v", ids)
	}
}
