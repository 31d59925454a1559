package core

import "time"

// DefaultMaxDelta caps a single frame delta so a paused or suspended process
// does not teleport the ball on resume.
const DefaultMaxDelta = 100 * time.Millisecond

// Clock turns monotonic frame timestamps into clamped, non-negative deltas.
type Clock struct {
	last     time.Time
	started  bool
	maxDelta time.Duration
}

// NewClock creates a clock that never reports more than maxDelta per frame.
// A non-positive maxDelta selects DefaultMaxDelta.
func NewClock(maxDelta time.Duration) *Clock {
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	return &Clock{maxDelta: maxDelta}
}

// Tick records now and returns the seconds elapsed since the previous tick.
// The first tick returns 0. Backwards jumps return 0.
func (c *Clock) Tick(now time.Time) float64 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	delta := ClampDelta(now.Sub(c.last), c.maxDelta)
	c.last = now
	return delta
}

// Reset forgets the previous timestamp so the next Tick returns 0.
func (c *Clock) Reset() {
	c.started = false
}

// ClampDelta converts d to seconds, clamped to [0, maxDelta].
func ClampDelta(d, maxDelta time.Duration) float64 {
	if d < 0 {
		return 0
	}
	if maxDelta > 0 && d > maxDelta {
		d = maxDelta
	}
	return d.Seconds()
}
