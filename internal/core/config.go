package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Platform ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int  // Current score
	HighScore int  // Best score known to the game
	Lives     int  // Remaining paddle health
	Level     int  // Zero-based level index
	InMenu    bool // Whether the game sits at its title menu
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventLifeLost     EventKind = iota + 1 // Ball fell past the floor
	EventLevelCleared                      // Last scoring block destroyed
	EventGameOver                          // Health reached zero, back to menu
	EventPowerup                           // A power-up was collected
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventLifeLost:
		return "life_lost"
	case EventLevelCleared:
		return "level_cleared"
	case EventGameOver:
		return "game_over"
	case EventPowerup:
		return "powerup"
	default:
		return "unknown"
	}
}

// Event is emitted by a tick. Value carries the score for EventGameOver and
// the new level index for EventLevelCleared.
type Event struct {
	Kind  EventKind
	Value int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether an event of the given kind happened this tick.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
