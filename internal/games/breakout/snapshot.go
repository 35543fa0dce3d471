package breakout

import (
	"math"
	"slices"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// Snapshot is a read-only copy of the simulation state for rendering and tests.
// Mutating it never affects the simulation.
type Snapshot struct {
	Tick          uint64
	Phase         Phase
	Ball          Ball
	Paddle        Paddle
	Bricks        []Brick
	Score         int
	Lives         int
	BricksCleared int
	TotalBricks   int
	Sounds        []core.Sound // Cues raised during the last tick
	RNGState      uint64
}

// Snapshot returns the current state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Tick:          s.tick,
		Phase:         s.phase,
		Ball:          s.ball,
		Paddle:        s.paddle,
		Bricks:        slices.Clone(s.bricks),
		Score:         s.score,
		Lives:         s.lives,
		BricksCleared: s.bricksCleared,
		TotalBricks:   s.totalBricks,
		Sounds:        slices.Clone(s.sounds),
		RNGState:      s.rng.State(),
	}
}

// AliveBricks counts the bricks still standing.
func (snap Snapshot) AliveBricks() int {
	n := 0
	for _, b := range snap.Bricks {
		if b.Alive {
			n++
		}
	}
	return n
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BricksCleared) //#nosec G115 -- hash computation

	for _, f := range []float64{
		snap.Ball.Pos.X, snap.Ball.Pos.Y, snap.Ball.Vel.X, snap.Ball.Vel.Y,
		snap.Paddle.X, snap.Paddle.W,
	} {
		h = h*31 + math.Float64bits(f)
	}

	for _, b := range snap.Bricks {
		h = h*31 + uint64(b.Hits) //#nosec G115 -- hash computation
		if b.Alive {
			h = h*31 + 1
		}
	}

	h = h*31 + snap.RNGState

	return h
}
