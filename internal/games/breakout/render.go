package breakout

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	LifeChar   = '♥'
)

// brickGlyphs and brickColors are indexed by remaining hits.
var (
	brickGlyphs = [...]rune{' ', '▒', '▓', '█'}
	brickColors = [...]core.Color{core.ColorDefault, core.ColorCyan, core.ColorYellow, core.ColorMagenta}
)

// hudRows is the number of rows above the play area box.
const hudRows = 1

// projector maps arena units to screen cells inside the play area box.
// Brick rows get one screen row each so that every row stays visible on
// short terminals; the space above and below the brick band is scaled linearly.
type projector struct {
	arena               config.BreakoutArena
	left, top           int
	cols, rows          int
	bandTop, bandBottom float64
	bandRows, aboveRows int
}

func newProjector(a config.BreakoutArena, layout [][]int, left, top, cols, rows int) projector {
	p := projector{
		arena:      a,
		left:       left,
		top:        top,
		cols:       cols,
		rows:       rows,
		bandTop:    a.BrickTop,
		bandBottom: BrickBandBottom(a, layout),
		bandRows:   len(layout),
		aboveRows:  1,
	}
	if rows < p.bandRows+p.aboveRows+3 {
		// Too short for the banded layout: plain linear mapping
		p.bandRows = 0
	}
	return p
}

func (p projector) col(x float64) int {
	c := int(x / p.arena.Width * float64(p.cols))
	return p.left + core.Clamp(c, 0, p.cols-1)
}

func (p projector) row(y float64) int {
	var r int
	switch {
	case p.bandRows == 0:
		r = int(y / p.arena.Height * float64(p.rows))
	case y < p.bandTop:
		r = int(y / p.bandTop * float64(p.aboveRows))
	case y < p.bandBottom:
		r = p.aboveRows + int((y-p.bandTop)/(p.bandBottom-p.bandTop)*float64(p.bandRows))
	default:
		below := p.rows - p.aboveRows - p.bandRows
		r = p.aboveRows + p.bandRows + int((y-p.bandBottom)/(p.arena.Height-p.bandBottom)*float64(below))
	}
	return p.top + core.Clamp(r, 0, p.rows-1)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	snap := g.sim.Snapshot()
	w, h := dst.Width(), dst.Height()

	g.renderHUD(dst, &snap)
	dst.DrawBox(0, hudRows, w, h-hudRows)

	layout := g.catalog.Difficulties[g.difficulty].Layout
	p := newProjector(g.catalog.Arena, layout, 1, hudRows+1, w-2, h-hudRows-2)

	renderBricks(dst, p, snap.Bricks)
	renderPaddle(dst, p, snap.Paddle)
	renderBall(dst, p, snap.Ball, snap.Paddle)

	g.renderOverlay(dst, &snap)
}

// renderHUD draws the score, lives, and difficulty.
func (g *Game) renderHUD(dst *core.Screen, snap *Snapshot) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", snap.Score))

	lives := strings.Repeat(string(LifeChar), snap.Lives)
	x := (dst.Width() - len([]rune(lives))) / 2
	dst.DrawTextColored(x, 0, lives, core.ColorRed)

	right := fmt.Sprintf("%s  %d/%d", g.difficulty, snap.BricksCleared, snap.TotalBricks)
	dst.DrawText(dst.Width()-len(right)-1, 0, right)
}

func renderBricks(dst *core.Screen, p projector, bricks []Brick) {
	for _, b := range bricks {
		if !b.Alive {
			continue
		}
		hits := core.Clamp(b.Hits, 1, len(brickGlyphs)-1)
		y := p.row(b.Y + b.H/2)
		x0, x1 := p.col(b.X), p.col(b.Right())
		if x1-x0 >= 2 {
			x1-- // keep a visible gap between neighbors
		}
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, brickGlyphs[hits], brickColors[hits])
		}
	}
}

func renderPaddle(dst *core.Screen, p projector, pad Paddle) {
	y := p.row(pad.Y)
	for x := p.col(pad.X); x <= p.col(pad.X+pad.W); x++ {
		dst.SetColored(x, y, PaddleChar, core.ColorBrightCyan)
	}
}

// renderBall draws the ball, keeping it visibly above the paddle while it is.
func renderBall(dst *core.Screen, p projector, b Ball, pad Paddle) {
	y := p.row(b.Pos.Y)
	if paddleRow := p.row(pad.Y); b.Pos.Y < pad.Y && y >= paddleRow {
		y = paddleRow - 1
	}
	dst.SetColored(p.col(b.Pos.X), y, BallChar, core.ColorWhite)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen, snap *Snapshot) {
	switch {
	case g.event != nil && g.event.Won():
		subtitle := fmt.Sprintf("Final Score: %d  |  Press R to restart", snap.Score)
		dst.DrawMessageBox("YOU WIN!", subtitle)

	case snap.Phase == PhaseTerminal:
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score)
		dst.DrawMessageBox("GAME OVER", subtitle)

	case g.paused:
		dst.DrawMessageBox("PAUSED", "Press P to resume")

	case snap.Phase == PhaseAwaitingLaunch:
		dst.DrawTextCentered(dst.Height()-1, " Press SPACE to launch ")
	}
}
