package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, core.ActionFire, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}, core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}, core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}
}

func TestHoldTrackerRepeatsKeepKeyHeld(t *testing.T) {
	h := NewHoldTracker(150 * time.Millisecond)
	t0 := time.Unix(0, 0)

	h.Observe(core.ActionLeft, t0)
	f := core.NewInputFrame()
	h.Fill(&f, t0.Add(10*time.Millisecond))
	if !f.IsHeld(core.ActionLeft) || !f.WasPressed(core.ActionLeft) {
		t.Fatal("first event should press and hold")
	}

	// Key repeat inside the window: held, not pressed again.
	h.Observe(core.ActionLeft, t0.Add(100*time.Millisecond))
	f = core.NewInputFrame()
	h.Fill(&f, t0.Add(200*time.Millisecond))
	if !f.IsHeld(core.ActionLeft) {
		t.Error("repeat within window should keep the key held")
	}
	if f.WasPressed(core.ActionLeft) {
		t.Error("repeat within window is not a new press")
	}

	// No events for longer than the window: released.
	f = core.NewInputFrame()
	h.Fill(&f, t0.Add(400*time.Millisecond))
	if f.IsHeld(core.ActionLeft) {
		t.Error("key should release after the hold window")
	}
}

func TestHoldTrackerOppositeDirectionCancels(t *testing.T) {
	h := NewHoldTracker(0)
	now := time.Unix(0, 0)

	h.Observe(core.ActionLeft, now)
	h.Observe(core.ActionRight, now.Add(time.Millisecond))
	f := core.NewInputFrame()
	h.Fill(&f, now.Add(2*time.Millisecond))

	if f.IsHeld(core.ActionLeft) {
		t.Error("pressing right should release left")
	}
	if !f.IsHeld(core.ActionRight) {
		t.Error("right should be held")
	}
}

func TestHoldTrackerAxis(t *testing.T) {
	h := NewHoldTracker(0)
	now := time.Unix(0, 0)

	h.SetAxis(2)
	f := core.NewInputFrame()
	h.Fill(&f, now)
	if f.Axis != 1 {
		t.Errorf("axis = %v, want clamped 1", f.Axis)
	}

	h.Observe(core.ActionLeft, now)
	f = core.NewInputFrame()
	h.Fill(&f, now)
	if f.Axis != 0 {
		t.Errorf("keyboard steering should release the axis, got %v", f.Axis)
	}
}

func TestMouseAxis(t *testing.T) {
	tests := []struct {
		x, width int
		want     float64
	}{
		{40, 80, 0},
		{0, 80, -1},
		{60, 80, 0.5},
		{200, 80, 1},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := mouseAxis(tt.x, tt.width); got != tt.want {
			t.Errorf("mouseAxis(%d, %d) = %v, want %v", tt.x, tt.width, got, tt.want)
		}
	}
}
