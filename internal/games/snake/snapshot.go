package snake

import (
	"slices"
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// Snapshot captures the simulation state for rendering and determinism testing.
// Mutating it never affects the simulation.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Body      []core.Cell // Head first
	Dir       core.Cell
	Food      core.Cell
	PowerUp   *PowerUp
	Effect    *Effect
	Score     int
	Interval  time.Duration
	Now       time.Duration
	Elapsed   time.Duration // Since the first direction input
	Sounds    []core.Sound
	RNGState  uint64
	Obstacles []core.Cell
}

// Snapshot returns the current state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      s.tick,
		Phase:     s.phase,
		Body:      slices.Clone(s.body),
		Dir:       s.dir,
		Food:      s.food,
		Score:     s.score,
		Interval:  s.interval,
		Now:       s.now,
		Sounds:    slices.Clone(s.sounds),
		RNGState:  s.rng.State(),
		Obstacles: slices.Clone(s.diff.Obstacles),
	}
	if s.phase != PhaseAwaitingFirstInput {
		snap.Elapsed = s.now - s.startedAt
	}
	if s.powerUp != nil {
		p := *s.powerUp
		snap.PowerUp = &p
	}
	if s.effect != nil {
		e := *s.effect
		snap.Effect = &e
	}
	return snap
}

// Head returns the head cell.
func (snap Snapshot) Head() core.Cell {
	if len(snap.Body) == 0 {
		return core.Cell{}
	}
	return snap.Body[0]
}

// Length returns the body length.
func (snap Snapshot) Length() int {
	return len(snap.Body)
}

// EffectRemaining returns how long the active effect has left, or zero.
func (snap Snapshot) EffectRemaining() time.Duration {
	if snap.Effect == nil || snap.Now >= snap.Effect.ExpiresAt {
		return 0
	}
	return snap.Effect.ExpiresAt - snap.Now
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Interval)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Food.Key()) //#nosec G115 -- hash computation

	for _, c := range snap.Body {
		h = h*31 + uint64(c.Key()) //#nosec G115 -- hash computation
	}
	if snap.PowerUp != nil {
		h = h*31 + uint64(snap.PowerUp.Cell.Key()) //#nosec G115 -- hash computation
		h = h*31 + uint64(snap.PowerUp.Kind)       //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState

	return h
}
