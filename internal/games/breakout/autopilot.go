package breakout

import (
	"math"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// Autopilot returns the commands a simple bot would send this tick: follow the
// ball with the paddle and angle each return toward the lowest standing brick.
func Autopilot(s *Simulation) []Command {
	switch s.phase {
	case PhaseTerminal:
		return nil
	case PhaseAwaitingLaunch:
		return []Command{Launch{}}
	}

	// Where the ball will be after this tick's move
	x := s.ball.Pos.X + s.ball.Vel.X

	hitPos := 0.5
	if target, ok := s.lowestBrick(); ok {
		from := core.Vec{X: x, Y: s.paddle.Y - s.ball.Radius}
		angle := math.Atan2(target.Y-from.Y, target.X-from.X)
		hitPos = 0.5 + (angle+math.Pi/2)/maxBounceAngle
	}
	hitPos = core.ClampF(hitPos, 0.15, 0.85)

	return []Command{SetPaddleCenter{X: x - hitPos*s.paddle.W + s.paddle.W/2}}
}

// lowestBrick returns the center of the alive brick nearest the paddle.
func (s *Simulation) lowestBrick() (core.Vec, bool) {
	best := -1
	for i := range s.bricks {
		b := &s.bricks[i]
		if !b.Alive {
			continue
		}
		if best < 0 || b.Y > s.bricks[best].Y {
			best = i
		}
	}
	if best < 0 {
		return core.Vec{}, false
	}
	b := s.bricks[best]
	return core.Vec{X: b.X + b.W/2, Y: b.Y + b.H/2}, true
}
