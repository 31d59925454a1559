package breakout

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels"
)

// Visual characters for rendering
const (
	PaddleChar     = '='
	PaddleCapLeft  = '['
	PaddleCapRight = ']'
	BallChar       = '●'
	BlockGlyph     = '█'
	WallGlyph      = '▓'
	ObstacleGlyph  = '▒'
	hudRows        = 1
)

// viewport maps playfield pixels onto screen cells below the HUD.
type viewport struct {
	sx, sy float64 // Pixels per cell
	top    int
}

func newViewport(field config.FieldConfig, w, h int) viewport {
	return viewport{
		sx:  field.Width / float64(w),
		sy:  field.Height / float64(h-hudRows),
		top: hudRows,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x / v.sx))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y/v.sy))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.screenTooSmall = dst.Width() < g.minScreenW || dst.Height() < g.minScreenH
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}
	if g.session == nil {
		return
	}

	vp := newViewport(g.cfg.Field, dst.Width(), dst.Height())
	s := g.session

	g.renderHUD(dst)
	g.renderBlocks(dst, vp)
	for _, p := range s.PowerUps() {
		dst.SetColored(vp.col(p.X), vp.row(p.Y), p.Kind.Glyph(), p.Kind.Color())
	}
	g.renderPaddle(dst, vp)

	ball := s.Ball()
	dst.SetColored(vp.col(ball.X), vp.row(ball.Y), BallChar, core.ColorDefault)

	g.renderOverlay(dst)
}

// renderHUD draws the score, lives, and level indicator.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.session

	scoreText := fmt.Sprintf("Score: %d", s.Score())
	if s.Combo() > 1 {
		scoreText += fmt.Sprintf(" x%d", s.Combo())
	}
	dst.DrawText(1, 0, scoreText)

	livesText := fmt.Sprintf("Lives: %d  Best: %d", max(0, s.Paddle().Health), s.HighScore())
	dst.DrawTextCentered(0, livesText)

	levelText := fmt.Sprintf("Level: %d/%d", s.LevelIndex()+1, s.LevelCount())
	dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)
}

// renderBlocks draws every live block, scaled to the viewport.
func (g *Game) renderBlocks(dst *core.Screen, vp viewport) {
	for _, b := range g.session.Field().Blocks() {
		if !b.Live() {
			continue
		}

		glyph, color := BlockGlyph, core.HealthColor(b.Health)
		switch b.Kind {
		case levels.CellIndestructible:
			glyph, color = WallGlyph, core.ColorGray
		case levels.CellObstacle:
			glyph, color = ObstacleGlyph, core.ColorYellow
		}

		c0, c1 := vp.col(b.X), vp.col(b.X+b.W)
		r0, r1 := vp.row(b.Y), vp.row(b.Y+b.H)
		if c1-c0 >= 3 {
			c1-- // leave a gap between neighbours
		}
		c1 = max(c1, c0+1)
		r1 = max(r1, r0+1)

		for y := r0; y < r1; y++ {
			for x := c0; x < c1; x++ {
				dst.SetColored(x, y, glyph, color)
			}
		}
	}
}

// renderPaddle draws the paddle with end caps.
func (g *Game) renderPaddle(dst *core.Screen, vp viewport) {
	p := g.session.Paddle()
	hw := p.HalfWidth()
	left, right := vp.col(p.X-hw), vp.col(p.X+hw)
	y := vp.row(p.Y)

	for x := left; x <= right; x++ {
		dst.SetColored(x, y, PaddleChar, core.ColorCyan)
	}
	dst.SetColored(left-1, y, PaddleCapLeft, core.ColorCyan)
	dst.SetColored(right+1, y, PaddleCapRight, core.ColorCyan)
}

// renderOverlay draws the title menu or the launch hint.
func (g *Game) renderOverlay(dst *core.Screen) {
	s := g.session
	if s.Mode() == ModeMenu {
		lines := []string{"Press SPACE to start", fmt.Sprintf("Best: %d", s.HighScore())}
		if s.Score() > 0 {
			lines = append(lines, fmt.Sprintf("Last: %d", s.Score()))
		}
		lines = append(lines, fmt.Sprintf("Start: %s", s.Level().Name))
		drawCenteredBox(dst, g.Title(), lines...)
		return
	}
	if s.Ball().Held {
		dst.DrawTextCentered(dst.Height()-1, "Press SPACE to launch")
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l)
	}
}
