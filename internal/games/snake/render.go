package snake

import (
	"fmt"
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

const (
	hudRows   = 1
	cellWidth = 2 // Screen columns per grid cell
)

var (
	headGlyph     = []rune("██")
	bodyGlyph     = []rune("▓▓")
	foodGlyph     = []rune("()")
	obstacleGlyph = []rune("##")
)

var powerUpGlyphs = map[PowerUpKind][]rune{
	PowerUpBonus:  []rune("$$"),
	PowerUpSlow:   []rune("~~"),
	PowerUpShrink: []rune("><"),
}

var powerUpColors = map[PowerUpKind]core.Color{
	PowerUpBonus:  core.ColorYellow,
	PowerUpSlow:   core.ColorCyan,
	PowerUpShrink: core.ColorMagenta,
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}

	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH))
		return
	}

	snap := g.sim.Snapshot()
	d := g.sim.Difficulty()

	boxW := d.GridWidth*cellWidth + 2
	boxH := d.GridHeight + 2
	left := (dst.Width() - boxW) / 2
	top := hudRows

	g.renderHUD(dst, &snap)
	dst.DrawBox(left, top, boxW, boxH)

	put := func(c core.Cell, glyph []rune, color core.Color) {
		x := left + 1 + c.X*cellWidth
		y := top + 1 + c.Y
		for i, r := range glyph {
			dst.SetColored(x+i, y, r, color)
		}
	}

	for _, o := range snap.Obstacles {
		put(o, obstacleGlyph, core.ColorGray)
	}
	put(snap.Food, foodGlyph, core.ColorRed)
	if p := snap.PowerUp; p != nil {
		put(p.Cell, powerUpGlyphs[p.Kind], powerUpColors[p.Kind])
	}
	for i := len(snap.Body) - 1; i >= 0; i-- {
		if i == 0 {
			put(snap.Body[i], headGlyph, core.ColorBrightGreen)
		} else {
			put(snap.Body[i], bodyGlyph, core.ColorGreen)
		}
	}

	g.renderOverlay(dst, &snap)
}

// renderHUD draws the score, length, difficulty, and any active effect.
func (g *Game) renderHUD(dst *core.Screen, snap *Snapshot) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d  Length: %d", snap.Score, snap.Length()))

	right := g.difficulty
	if rem := snap.EffectRemaining(); rem > 0 {
		right = fmt.Sprintf("SLOW %.1fs  %s", rem.Seconds(), g.difficulty)
	}
	dst.DrawText(dst.Width()-len(right)-1, 0, right)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen, snap *Snapshot) {
	switch {
	case snap.Phase == PhaseTerminal:
		subtitle := fmt.Sprintf("Score: %d  Length: %d  Time: %s  |  Press R to restart",
			snap.Score, snap.Length(), snap.Elapsed.Round(time.Second))
		dst.DrawMessageBox("GAME OVER", subtitle)

	case g.paused:
		dst.DrawMessageBox("PAUSED", "Press P to resume")

	case snap.Phase == PhaseAwaitingFirstInput:
		dst.DrawTextCentered(dst.Height()-1, " Press an arrow key to start ")
	}
}
