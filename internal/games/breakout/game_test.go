package breakout

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

func runtimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func scriptedInputs(n int) []core.InputFrame {
	inputs := make([]core.InputFrame, n)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i == 0 || i == 10:
			inputs[i].Press(core.ActionFire) // start, then launch
		case i > 10 && i%40 < 20:
			inputs[i].Hold(core.ActionRight)
		case i > 10:
			inputs[i].Hold(core.ActionLeft)
		}
	}
	return inputs
}

func TestGameDeterminism(t *testing.T) {
	for _, newGame := range []func() *Game{New, NewPlus} {
		inputs := scriptedInputs(1200)

		run := func() Snapshot {
			g := newGame()
			g.Reset(runtimeConfig())
			for _, in := range inputs {
				g.Step(in, 1.0/60)
			}
			return g.Snapshot()
		}

		snap1, snap2 := run(), run()
		assert.Equal(t, snap1.Hash(), snap2.Hash(), "%s: hashes differ", newGame().ID())
		assert.Equal(t, snap1, snap2)
	}
}

func TestGameSeedChangesLaunch(t *testing.T) {
	launch := func(seed int64) float64 {
		g := New()
		rc := runtimeConfig()
		rc.Seed = seed
		g.Reset(rc)
		g.Step(fire(), 0)
		g.Step(fire(), 0)
		return g.Session().Ball().VX
	}
	assert.NotEqual(t, launch(1), launch(2))
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{"breakout", "breakout_plus"} {
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())

		_, ok := g.(registry.SaveAware)
		assert.True(t, ok, "%s should accept a save slot", id)
		_, ok = g.(registry.Observable)
		assert.True(t, ok, "%s should be observable", id)
	}
}

func TestPlusVariantEnablesPowerUps(t *testing.T) {
	g := NewPlus()
	g.Reset(runtimeConfig())
	assert.NotNil(t, g.Session().powerups)

	c := New()
	c.Reset(runtimeConfig())
	assert.Nil(t, c.Session().powerups)
}

func TestGameStateMirrorsSession(t *testing.T) {
	g := New()
	g.Reset(runtimeConfig())

	st := g.State()
	assert.True(t, st.InMenu)
	assert.Equal(t, 3, st.Lives)

	res := g.Step(fire(), 0)
	assert.False(t, res.State.InMenu)
	assert.Equal(t, 0, res.State.Level)
}

func TestGameHighScoreSurvivesReset(t *testing.T) {
	slot := &core.MemorySlot{}
	require.NoError(t, slot.Store(core.SaveRecord{HighScore: 250}))

	g := New()
	g.UseSaveSlot(slot)
	g.Reset(runtimeConfig())
	assert.Equal(t, 250, g.State().HighScore)
}

func TestStartLevelSetter(t *testing.T) {
	SetStartLevel(3)
	defer SetStartLevel(-1)

	g := New()
	g.Reset(runtimeConfig())
	g.Step(fire(), 0)
	assert.Equal(t, 3, g.State().Level)
}

func TestStartAtOverridesPackageStartLevel(t *testing.T) {
	SetStartLevel(3)
	defer SetStartLevel(-1)

	a, b := New(), New()
	a.StartAt(1)
	a.Reset(runtimeConfig())
	b.Reset(runtimeConfig())

	a.Step(fire(), 0)
	b.Step(fire(), 0)
	assert.Equal(t, 1, a.State().Level)
	assert.Equal(t, 3, b.State().Level)

	a.StartAt(2)
	assert.Equal(t, 1, a.State().Level, "a running session keeps its level")
}

func TestTooSmallScreenPausesSimulation(t *testing.T) {
	g := New()
	rc := runtimeConfig()
	rc.ScreenW, rc.ScreenH = 20, 10
	g.Reset(rc)

	res := g.Step(fire(), 0.016)
	assert.True(t, res.State.InMenu)

	scr := core.NewScreen(20, 10)
	g.Render(scr)
	assert.Contains(t, scr.String(), "Window too small")
}

func TestRenderMenuAndPlayfield(t *testing.T) {
	g := New()
	g.Reset(runtimeConfig())
	scr := core.NewScreen(80, 24)

	g.Render(scr)
	out := scr.String()
	assert.Contains(t, out, "Breakout")
	assert.Contains(t, out, "Press SPACE to start")
	assert.Contains(t, out, "Level: 1/")

	g.Step(fire(), 0)
	g.Render(scr)
	out = scr.String()
	assert.Contains(t, out, "Press SPACE to launch")
	assert.Contains(t, out, string(PaddleChar))
	assert.Contains(t, out, string(BallChar))
	assert.Contains(t, out, string(BlockGlyph))

	// Paddle sits on the row that maps to y=112.
	vp := newViewport(g.cfg.Field, 80, 24)
	row := scr.Row(vp.row(112))
	assert.True(t, strings.Contains(row, "="), "paddle row %q", row)
}

func TestObserveJSON(t *testing.T) {
	g := NewPlus()
	g.Reset(runtimeConfig())
	g.Step(fire(), 0)

	data, err := g.ObserveJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "playing", decoded["mode"])
	assert.Contains(t, decoded, "ball")
	assert.Contains(t, decoded, "blocks")
	assert.Equal(t, "classic", decoded["level_id"])
}
