package breakout

import (
	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// Brick is a destructible block. Hits counts the remaining hits (1-3).
type Brick struct {
	core.Rect
	Row, Col int // Position in the layout grid
	Hits     int
	MaxHits  int // Hit count at level start, used for coloring
	Alive    bool
}

// BrickWidth returns the width of one brick for a layout with the given column count.
func BrickWidth(a config.BreakoutArena, cols int) float64 {
	if cols <= 0 {
		return 0
	}
	return (a.Width - a.BrickGap*float64(cols+1)) / float64(cols)
}

// BuildBricks lays out the non-empty cells of a layout grid across the arena.
// Bricks are returned in row-major layout order, which is the collision scan order.
func BuildBricks(a config.BreakoutArena, layout [][]int) []Brick {
	if len(layout) == 0 {
		return nil
	}
	cols := len(layout[0])
	w := BrickWidth(a, cols)

	bricks := make([]Brick, 0, rows(layout)*cols)
	for r, row := range layout {
		for c, hits := range row {
			if hits <= 0 {
				continue
			}
			bricks = append(bricks, Brick{
				Rect: core.NewRect(
					a.BrickGap+float64(c)*(w+a.BrickGap),
					a.BrickTop+float64(r)*(a.BrickHeight+a.BrickGap),
					w,
					a.BrickHeight,
				),
				Row:     r,
				Col:     c,
				Hits:    hits,
				MaxHits: hits,
				Alive:   true,
			})
		}
	}
	return bricks
}

// BrickBandBottom returns the Y below the last brick row of a layout.
func BrickBandBottom(a config.BreakoutArena, layout [][]int) float64 {
	return a.BrickTop + float64(rows(layout))*(a.BrickHeight+a.BrickGap)
}

func rows(layout [][]int) int {
	return len(layout)
}
