package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move paddle left
	ActionRight          // D, Right arrow - move paddle right
	ActionFire           // Space, Enter - start game, launch ball
	ActionPause          // P - pause/unpause
	ActionBack           // B, Escape - leave the current screen
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the read-only input snapshot for one simulation tick.
type InputFrame struct {
	// Held marks actions whose button is down during this frame.
	Held map[Action]bool
	// Pressed marks actions whose button went down on this frame only.
	Pressed map[Action]bool
	// Axis is the analog horizontal axis in [-1, 1].
	Axis float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Held:    make(map[Action]bool),
		Pressed: make(map[Action]bool),
	}
}

// Hold marks an action as held for this frame.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Press marks an edge-triggered press. A pressed action is also held.
func (f *InputFrame) Press(a Action) {
	if f.Pressed == nil {
		f.Pressed = make(map[Action]bool)
	}
	f.Pressed[a] = true
	f.Hold(a)
}

// IsHeld returns true if the action's button is down this frame.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held[a]
}

// WasPressed returns true only on the frame the button went down.
func (f InputFrame) WasPressed(a Action) bool {
	return f.Pressed[a]
}

// AxisValue returns the analog axis clamped to [-1, 1], or 0 inside the dead zone.
func (f InputFrame) AxisValue(deadZone float64) float64 {
	v := ClampF(f.Axis, -1, 1)
	if v > -deadZone && v < deadZone {
		return 0
	}
	return v
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	clear(f.Held)
	clear(f.Pressed)
	f.Axis = 0
}
