package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// PowerUpKind represents the different falling power-ups.
type PowerUpKind int

const (
	PowerUpWiden  PowerUpKind = iota // Widen paddle
	PowerUpNarrow                    // Narrow paddle
	PowerUpHeal                      // Restore one health
)

// Glyph returns the display character for a power-up kind.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case PowerUpWiden:
		return 'W'
	case PowerUpNarrow:
		return 'N'
	case PowerUpHeal:
		return '♥'
	default:
		return '?'
	}
}

// Color returns the display colour for a power-up kind.
func (k PowerUpKind) Color() core.Color {
	switch k {
	case PowerUpWiden:
		return core.ColorGreen
	case PowerUpNarrow:
		return core.ColorRed
	case PowerUpHeal:
		return core.ColorMagenta
	default:
		return core.ColorDefault
	}
}

// String returns the name of the power-up kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpWiden:
		return "widen"
	case PowerUpNarrow:
		return "narrow"
	case PowerUpHeal:
		return "heal"
	default:
		return "unknown"
	}
}

// powerUpSize is the half-extent of a falling power-up.
const powerUpSize = 2.0

// PowerUp is a falling power-up.
type PowerUp struct {
	Kind PowerUpKind
	X, Y float64 // Centre
}

// Box returns the power-up's bounding box.
func (p *PowerUp) Box() core.Box {
	return core.BoxAround(p.X, p.Y, powerUpSize)
}

// PowerUpQueue holds falling power-ups in spawn order. Only the head is ever
// collected or discarded; the rest keep falling until they become the head.
type PowerUpQueue struct {
	cfg   config.PowerUpConfig
	items []PowerUp
	rng   *SimpleRNG
}

// NewPowerUpQueue creates an empty queue that rolls spawns with rng.
func NewPowerUpQueue(cfg config.PowerUpConfig, rng *SimpleRNG) *PowerUpQueue {
	return &PowerUpQueue{cfg: cfg, rng: rng}
}

// TrySpawn rolls the 1-in-N spawn chance and, on success, queues a power-up
// at (x, y). Returns true if a power-up was spawned.
func (q *PowerUpQueue) TrySpawn(x, y float64) bool {
	if q.cfg.SpawnOneIn <= 0 || q.rng.Intn(q.cfg.SpawnOneIn) != 0 {
		return false
	}
	q.items = append(q.items, PowerUp{Kind: q.rollKind(), X: x, Y: y})
	return true
}

// rollKind selects a kind from the weighted table.
func (q *PowerUpQueue) rollKind() PowerUpKind {
	weights := []struct {
		Kind   PowerUpKind
		Weight int
	}{
		{PowerUpWiden, q.cfg.Weights.Widen},
		{PowerUpNarrow, q.cfg.Weights.Narrow},
		{PowerUpHeal, q.cfg.Weights.Heal},
	}

	total := 0
	for _, w := range weights {
		total += max(0, w.Weight)
	}
	if total <= 0 {
		return PowerUpWiden
	}

	roll := q.rng.Intn(total)
	cumulative := 0
	for _, w := range weights {
		cumulative += max(0, w.Weight)
		if roll < cumulative {
			return w.Kind
		}
	}
	return PowerUpWiden
}

// Fall moves every power-up down by the fall rate.
func (q *PowerUpQueue) Fall(dt float64) {
	for i := range q.items {
		q.items[i].Y += q.cfg.FallSpeed * dt
	}
}

// Head returns the oldest power-up.
func (q *PowerUpQueue) Head() (*PowerUp, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	return &q.items[0], true
}

// Pop discards the oldest power-up.
func (q *PowerUpQueue) Pop() {
	if len(q.items) == 0 {
		return
	}
	q.items = q.items[1:]
}

// Clear drops every power-up.
func (q *PowerUpQueue) Clear() {
	q.items = nil
}

// Len returns the number of falling power-ups.
func (q *PowerUpQueue) Len() int {
	return len(q.items)
}

// Items returns the falling power-ups, oldest first. Callers must not modify them.
func (q *PowerUpQueue) Items() []PowerUp {
	return q.items
}

// stepPowerUps moves power-ups and resolves the head against the paddle and the floor.
func (s *GameSession) stepPowerUps(dt float64) []core.Event {
	s.powerups.Fall(dt)

	head, ok := s.powerups.Head()
	if !ok {
		return nil
	}
	if head.Box().Overlaps(s.paddle.Box(s.cfg.Paddle.Thickness)) {
		kind := head.Kind
		s.powerups.Pop()
		s.applyPowerUp(kind)
		return []core.Event{{Kind: core.EventPowerup, Value: int(kind)}}
	}
	if head.Y > s.cfg.Field.Height {
		s.powerups.Pop()
	}
	return nil
}

// applyPowerUp applies a collected power-up's effect.
func (s *GameSession) applyPowerUp(kind PowerUpKind) {
	pc := s.cfg.PowerUps
	lo, hi := s.cfg.Paddle.MinPaddleWidth(), s.cfg.Paddle.MaxPaddleWidth()

	switch kind {
	case PowerUpWiden:
		s.paddle.Resize(pc.WidthStep, lo, hi)
		s.scoring.Add(pc.WidenScore)
	case PowerUpNarrow:
		s.paddle.Resize(-pc.WidthStep, lo, hi)
		s.scoring.Add(pc.NarrowScore)
	case PowerUpHeal:
		s.paddle.Health = min(s.paddle.Health+1, s.cfg.Paddle.StartHealth)
		s.scoring.Add(pc.HealScore)
	}
	s.logger.Debug("power-up collected", "kind", kind, "width", s.paddle.Width, "health", s.paddle.Health)
}
