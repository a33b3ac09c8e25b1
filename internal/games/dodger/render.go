package dodger

import (
	"fmt"
	"math"

	"github.com/vovakirdan/space-dodger/internal/core"
)

// Visual characters for terminal rendering
const (
	PlayerChar = '█'
	HazardChar = '▓'
	StarChar   = '·'
)

// spinGlyphs mark a hazard's center and follow its angle.
var spinGlyphs = [...]rune{'|', '/', '─', '\\'}

// Render draws the current frame. Row 0 is the HUD; the viewport is
// scaled onto the remaining rows.
func (g *Game) Render(dst *core.Screen) {
	if dst == nil || dst.Empty() {
		return
	}
	dst.Clear()

	field := newProjection(dst.Width(), dst.Height()-1, g.viewW, g.viewH)
	if field.ok {
		g.drawStars(dst, field)
		for _, h := range g.hazards {
			g.drawHazard(dst, field, h)
		}
		g.drawPlayer(dst, field)
	}

	hud := fmt.Sprintf(" Score: %d ", g.scores.Score())
	dst.DrawTextColored(1, 0, hud, core.ColorBrightWhite)
	best := fmt.Sprintf(" Best: %d ", g.scores.High())
	dst.DrawTextColored(dst.Width()-len(best)-1, 0, best, core.ColorYellow)

	switch g.run {
	case RunIdle:
		g.drawCenteredMessage(dst, "SPACE DODGER", "Press Enter to start")
	case RunGameOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Enter to restart", g.scores.Score()))
	}
}

// projection maps world units onto the cell grid below the HUD.
type projection struct {
	cols, rows int
	sx, sy     float64
	ok         bool
}

func newProjection(cols, rows int, viewW, viewH float64) projection {
	if cols <= 0 || rows <= 0 || viewW <= 0 || viewH <= 0 {
		return projection{}
	}
	return projection{
		cols: cols,
		rows: rows,
		sx:   float64(cols) / viewW,
		sy:   float64(rows) / viewH,
		ok:   true,
	}
}

// cells returns the clipped cell span [x0,x1) x [y0,y1) covered by r in
// screen rows. Anything visible covers at least one cell.
func (p projection) cells(r core.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.X * p.sx))
	x1 = int(math.Ceil(r.Right() * p.sx))
	y0 = int(math.Floor(r.Y * p.sy))
	y1 = int(math.Ceil(r.Bottom() * p.sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	x0, x1 = core.Clamp(x0, 0, p.cols), core.Clamp(x1, 0, p.cols)
	y0, y1 = core.Clamp(y0, 0, p.rows), core.Clamp(y1, 0, p.rows)
	return x0, y0 + 1, x1, y1 + 1
}

// drawStars scrolls a sparse background with the tick counter.
func (g *Game) drawStars(dst *core.Screen, p projection) {
	for y := 0; y < p.rows; y++ {
		for x := (y*7 + 3) % 11; x < p.cols; x += 11 {
			if (x*13+y*5+g.tick/8)%5 == 0 {
				dst.SetColored(x, y+1, StarChar, core.ColorGray)
			}
		}
	}
}

func (g *Game) drawHazard(dst *core.Screen, p projection, h Hazard) {
	x0, y0, x1, y1 := p.cells(h.Rect())
	if x0 >= x1 || y0 >= y1 {
		return
	}
	dst.FillRect(x0, y0, x1-x0, y1-y0, HazardChar, core.ColorOrange)

	if x1-x0 >= 2 && y1-y0 >= 2 {
		dst.SetColored((x0+x1)/2, (y0+y1)/2, spinGlyph(h.Angle), core.ColorBrightRed)
	}
}

// spinGlyph picks the center mark for an angle; the mark is symmetric so
// it repeats every half turn.
func spinGlyph(angle float64) rune {
	turn := math.Mod(angle, math.Pi)
	if turn < 0 {
		turn += math.Pi
	}
	i := int(math.Round(turn/(math.Pi/4))) % len(spinGlyphs)
	return spinGlyphs[i]
}

func (g *Game) drawPlayer(dst *core.Screen, p projection) {
	x0, y0, x1, y1 := p.cells(g.player.Rect())
	if x0 >= x1 || y0 >= y1 {
		return
	}
	dst.FillRect(x0, y0, x1-x0, y1-y0, PlayerChar, core.ColorBrightBlue)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorCyan)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
