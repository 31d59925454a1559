package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Ball is the single ball in play. VX, VY form a unit direction; the speed
// constant is applied at integration time.
type Ball struct {
	X, Y   float64
	VX, VY float64
	Held   bool // Resting on the paddle, waiting for fire
}

// Box returns the ball's bounding box.
func (b *Ball) Box(size float64) core.Box {
	return core.BoxAround(b.X, b.Y, size)
}

// Paddle is the player's paddle. X is the centre; Y is the top edge.
type Paddle struct {
	X      float64
	Y      float64
	Width  int // Half-width in pixels
	Health int
}

// HalfWidth returns the paddle half-width in pixels.
func (p *Paddle) HalfWidth() float64 {
	return float64(p.Width)
}

// Box returns the paddle's bounding box for the given thickness.
func (p *Paddle) Box(thickness float64) core.Box {
	hw := p.HalfWidth()
	return core.BoxAt(p.X-hw, p.Y, 2*hw, thickness)
}

// Resize changes the width by delta, clamped to [min, max].
func (p *Paddle) Resize(delta, min, max int) {
	p.Width = core.Clamp(p.Width+delta, min, max)
}

// Side is the block face a ball struck.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Vertical reports whether the side is the top or bottom face.
func (s Side) Vertical() bool {
	return s == SideTop || s == SideBottom
}

// ResolveSide classifies which face of block the ball hit and how far it
// penetrated past that face.
//
// The vertical candidate is top when the ball centre is above the block's
// vertical midpoint, else bottom; the horizontal candidate is left or right
// by the horizontal midpoint. The axis with strictly smaller penetration
// wins. Ties and degenerate depths resolve vertically.
func ResolveSide(ball, block core.Box) (Side, float64) {
	cx := (ball.MinX + ball.MaxX) / 2
	cy := (ball.MinY + ball.MaxY) / 2

	vSide, vDepth := SideBottom, block.MaxY-ball.MinY
	if cy < block.MidY() {
		vSide, vDepth = SideTop, ball.MaxY-block.MinY
	}
	hSide, hDepth := SideRight, block.MaxX-ball.MinX
	if cx < block.MidX() {
		hSide, hDepth = SideLeft, ball.MaxX-block.MinX
	}

	if !usableDepth(vDepth) || !usableDepth(hDepth) {
		return vSide, math.Max(0, finiteOr(vDepth, 0))
	}
	if hDepth < vDepth {
		return hSide, hDepth
	}
	return vSide, vDepth
}

func usableDepth(d float64) bool {
	return d > 0 && !math.IsInf(d, 0) && !math.IsNaN(d)
}

func finiteOr(v, fallback float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fallback
	}
	return v
}

// bounceOff points the velocity away from side and moves the ball out of the
// block by depth.
func bounceOff(b *Ball, side Side, depth float64) {
	switch side {
	case SideTop:
		b.VY = -math.Abs(b.VY)
		b.Y -= depth
	case SideBottom:
		b.VY = math.Abs(b.VY)
		b.Y += depth
	case SideLeft:
		b.VX = -math.Abs(b.VX)
		b.X -= depth
	case SideRight:
		b.VX = math.Abs(b.VX)
		b.X += depth
	}
}

// deflect returns the unit velocity after leaving the paddle. Hits further
// from the centre leave at a steeper angle.
func deflect(offset, reach, maxDeflection float64) (vx, vy float64) {
	vx = 0
	if reach > 0 {
		vx = core.ClampF(offset/reach, -maxDeflection, maxDeflection)
	}
	return vx, -math.Sqrt(1 - vx*vx)
}

// launchVelocity returns a unit velocity pointing upwards with the given
// horizontal component.
func launchVelocity(vx float64) (float64, float64) {
	return vx, -math.Sqrt(1 - vx*vx)
}

// resetBall parks the ball above the paddle centre. Idempotent.
func (s *GameSession) resetBall() {
	s.ball = Ball{
		X:    s.paddle.X,
		Y:    s.paddle.Y - s.cfg.Ball.Size - 1,
		Held: true,
	}
	s.scoring.ResetCombo()
}

// movePaddle applies held directions and the analog axis.
func (s *GameSession) movePaddle(in core.InputFrame, dt float64) {
	dir := in.AxisValue(s.cfg.Input.DeadZone)
	if in.IsHeld(core.ActionLeft) {
		dir--
	}
	if in.IsHeld(core.ActionRight) {
		dir++
	}
	dir = core.ClampF(dir, -1, 1)

	s.paddle.X += dir * s.cfg.Paddle.Speed * dt
	hw := s.paddle.HalfWidth()
	s.paddle.X = core.ClampF(s.paddle.X, hw, math.Max(hw, s.cfg.Field.Width-hw))
}

// stepPhysics advances the ball one tick. The order of the phases matters:
// walls, floor, integration, held ball, paddle, blocks, then power-ups.
func (s *GameSession) stepPhysics(in core.InputFrame, dt float64) []core.Event {
	var events []core.Event
	f := s.cfg.Field
	b := &s.ball

	// Walls. Only reflect while still moving outward so a ball that
	// overshoots does not get stuck flipping.
	if (b.X < 0 && b.VX < 0) || (b.X > f.Width && b.VX > 0) {
		b.VX = -b.VX
	}
	if b.Y < f.TopMargin {
		b.Y = f.TopMargin
		if b.VY < 0 {
			b.VY = -b.VY
		}
	}

	// Floor.
	if b.Y > f.Height+f.FloorMargin {
		s.paddle.Health--
		events = append(events, core.Event{Kind: core.EventLifeLost, Value: s.paddle.Health})
		s.resetBall()
	}

	speed := s.ballSpeed()
	b.X += b.VX * speed * dt
	b.Y += b.VY * speed * dt

	if b.Held {
		s.resetBall()
		if in.WasPressed(core.ActionFire) {
			b.Held = false
			spread := s.cfg.Ball.LaunchSpread
			b.VX, b.VY = launchVelocity(s.rng.Range(-spread, spread))
		}
	}

	// Paddle.
	ballBox := b.Box(s.cfg.Ball.Size)
	if !b.Held && b.VY > 0 && ballBox.Overlaps(s.paddle.Box(s.cfg.Paddle.Thickness)) {
		reach := s.paddle.HalfWidth() + s.cfg.Ball.Size
		b.VX, b.VY = deflect(b.X-s.paddle.X, reach, s.cfg.Ball.MaxDeflection)
		b.Y = s.paddle.Y - s.cfg.Ball.Size
		s.scoring.ResetCombo()
	}

	if !b.Held {
		s.collideBlocks()
	}

	if s.powerups != nil {
		events = append(events, s.stepPowerUps(dt)...)
	}
	return events
}

// collideBlocks tests the 2x2 lattice neighbourhood around the ball.
// Only positive-area overlap counts: bounceOff leaves the ball flush with the
// face it hit, and that contact must not register again.
// The lattice guarantees every block the ball can touch is in it as long as
// the ball half-size stays below half a cell.
func (s *GameSession) collideBlocks() {
	b := &s.ball
	row0, col0 := s.field.CellOf(b.X, b.Y)

	for dr := range 2 {
		for dc := range 2 {
			blk := s.field.At(row0+dr, col0+dc)
			if blk == nil || !blk.Live() {
				continue
			}
			ballBox := b.Box(s.cfg.Ball.Size)
			blockBox := blk.Box()
			if !ballBox.Intersects(blockBox) {
				continue
			}

			hit := s.field.ApplyHit(blk)
			side, depth := ResolveSide(ballBox, blockBox)
			bounceOff(b, side, depth)

			if !hit.Scoring {
				continue
			}
			s.scoring.AwardBlock(blk.Value)
			if hit.Destroyed && s.powerups != nil {
				s.powerups.TrySpawn(blockBox.MidX(), blockBox.MinY)
			}
		}
	}
}

// ballSpeed returns the current ball speed constant in pixels per second.
func (s *GameSession) ballSpeed() float64 {
	if s.difficulty == nil {
		return s.cfg.Ball.Speed
	}
	return s.difficulty.Speed(s.cfg.Ball.Speed, s.scoring.Score, s.ticks)
}

func floorInt(v float64) int {
	return int(math.Floor(v))
}
