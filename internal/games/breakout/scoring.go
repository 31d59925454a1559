package breakout

// Scoring tracks the score and the combo streak.
type Scoring struct {
	Score int
	Combo int // Consecutive scoring hits since the last paddle bounce or launch
}

// AwardBlock adds value*(1+combo/2) and extends the combo. Returns the points awarded.
func (s *Scoring) AwardBlock(value int) int {
	points := value * (1 + s.Combo/2)
	s.Score += points
	s.Combo++
	return points
}

// ResetCombo ends the current streak.
func (s *Scoring) ResetCombo() {
	s.Combo = 0
}

// Add applies a flat bonus or penalty. The score never drops below zero.
func (s *Scoring) Add(delta int) {
	s.Score = max(0, s.Score+delta)
}

// Reset clears score and combo for a new game.
func (s *Scoring) Reset() {
	*s = Scoring{}
}
