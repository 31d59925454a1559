package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// DefaultHoldWindow is how long a direction key counts as held after its
// last key event. Terminals report key repeats, never key releases.
const DefaultHoldWindow = 150 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case " ", "enter":
		return core.ActionFire, false
	case "p":
		return core.ActionPause, false
	case "b", "esc":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}

// HoldTracker rebuilds held/pressed state from a stream of key events.
// A key is pressed on the first event after a gap longer than the window
// and held while further events keep arriving within it.
type HoldTracker struct {
	window  time.Duration
	last    map[core.Action]time.Time
	pressed map[core.Action]bool

	axis       float64
	axisActive bool
}

// NewHoldTracker creates a tracker. A non-positive window selects DefaultHoldWindow.
func NewHoldTracker(window time.Duration) *HoldTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HoldTracker{
		window:  window,
		last:    make(map[core.Action]time.Time),
		pressed: make(map[core.Action]bool),
	}
}

// Observe records a key event for action at now.
func (h *HoldTracker) Observe(action core.Action, now time.Time) {
	if action == core.ActionNone {
		return
	}
	if t, ok := h.last[action]; !ok || now.Sub(t) > h.window {
		h.pressed[action] = true
	}
	h.last[action] = now

	// Opposite directions cancel; keyboard steering overrides the mouse.
	switch action {
	case core.ActionLeft:
		delete(h.last, core.ActionRight)
		h.axisActive = false
	case core.ActionRight:
		delete(h.last, core.ActionLeft)
		h.axisActive = false
	}
}

// SetAxis feeds an analog axis value, used for mouse steering.
func (h *HoldTracker) SetAxis(v float64) {
	h.axis = core.ClampF(v, -1, 1)
	h.axisActive = true
}

// ReleaseAxis stops analog steering.
func (h *HoldTracker) ReleaseAxis() {
	h.axisActive = false
	h.axis = 0
}

// Fill writes the state at now into frame and consumes pending presses.
func (h *HoldTracker) Fill(frame *core.InputFrame, now time.Time) {
	for action, t := range h.last {
		if now.Sub(t) > h.window {
			delete(h.last, action)
			continue
		}
		frame.Hold(action)
	}
	for action := range h.pressed {
		frame.Press(action)
	}
	clear(h.pressed)
	if h.axisActive {
		frame.Axis = h.axis
	}
}

// Reset forgets all key state.
func (h *HoldTracker) Reset() {
	clear(h.last)
	clear(h.pressed)
	h.ReleaseAxis()
}

// mouseAxis maps a column to [-1, 1] relative to the screen centre.
func mouseAxis(x, width int) float64 {
	if width <= 1 {
		return 0
	}
	half := float64(width) / 2
	return core.ClampF((float64(x)-half)/half, -1, 1)
}
