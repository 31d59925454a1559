package breakout

import (
	"encoding/json"
	"math"
)

// Snapshot is a serializable view of a session, used for determinism checks
// and the spectator feed.
type Snapshot struct {
	Tick      uint64         `json:"tick"`
	Mode      string         `json:"mode"`
	Level     int            `json:"level"`
	LevelID   string         `json:"level_id"`
	Score     int            `json:"score"`
	HighScore int            `json:"highscore"`
	Combo     int            `json:"combo"`
	Health    int            `json:"health"`
	Remaining int            `json:"remaining"`
	Paddle    PaddleState    `json:"paddle"`
	Ball      BallState      `json:"ball"`
	Blocks    []BlockState   `json:"blocks"`
	PowerUps  []PowerUpState `json:"powerups,omitempty"`
	RNGState  uint64         `json:"rng"`
}

// PaddleState is the paddle part of a Snapshot.
type PaddleState struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width int     `json:"width"`
}

// BallState is the ball part of a Snapshot.
type BallState struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
	Held bool    `json:"held"`
}

// BlockState is one block in a Snapshot.
type BlockState struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Health int `json:"hp"`
}

// PowerUpState is one falling power-up in a Snapshot.
type PowerUpState struct {
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Snapshot captures the session state.
func (s *GameSession) Snapshot() Snapshot {
	blocks := s.field.Blocks()
	bs := make([]BlockState, len(blocks))
	for i, b := range blocks {
		bs[i] = BlockState{Row: b.Row, Col: b.Col, Health: b.Health}
	}

	var ps []PowerUpState
	for _, p := range s.PowerUps() {
		ps = append(ps, PowerUpState{Kind: p.Kind.String(), X: p.X, Y: p.Y})
	}

	return Snapshot{
		Tick:      uint64(s.ticks), //#nosec G115 -- tick count is always positive
		Mode:      s.mode.String(),
		Level:     s.levelIndex,
		LevelID:   s.Level().ID,
		Score:     s.scoring.Score,
		HighScore: s.highScore,
		Combo:     s.scoring.Combo,
		Health:    s.paddle.Health,
		Remaining: s.field.Remaining(),
		Paddle:    PaddleState{X: s.paddle.X, Y: s.paddle.Y, Width: s.paddle.Width},
		Ball: BallState{
			X: s.ball.X, Y: s.ball.Y,
			VX: s.ball.VX, VY: s.ball.VY,
			Held: s.ball.Held,
		},
		Blocks:   bs,
		PowerUps: ps,
		RNGState: s.rng.State(),
	}
}

// JSON encodes the snapshot.
func (snap *Snapshot) JSON() ([]byte, error) {
	return json.Marshal(snap)
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Level)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HighScore)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Combo)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Health)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Remaining)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Paddle.Width) //#nosec G115 -- hash computation

	for _, f := range []float64{snap.Paddle.X, snap.Ball.X, snap.Ball.Y, snap.Ball.VX, snap.Ball.VY} {
		h = h*31 + math.Float64bits(f)
	}
	if snap.Ball.Held {
		h = h*31 + 1
	}

	for _, b := range snap.Blocks {
		h = h*31 + uint64(b.Health) //#nosec G115 -- hash computation
	}
	for _, p := range snap.PowerUps {
		h = h*31 + math.Float64bits(p.X)
		h = h*31 + math.Float64bits(p.Y)
	}

	h = h*31 + snap.RNGState
	return h
}
