package snake

import (
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// Phase is the simulation state machine.
type Phase int

const (
	PhaseAwaitingFirstInput Phase = iota
	PhaseRunning
	PhaseTerminal
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingFirstInput:
		return "awaiting_first_input"
	case PhaseRunning:
		return "running"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// PowerUpKind identifies a power-up effect.
type PowerUpKind int

const (
	PowerUpBonus PowerUpKind = iota
	PowerUpSlow
	PowerUpShrink
	powerUpKinds
)

// String returns the power-up name.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpBonus:
		return "bonus"
	case PowerUpSlow:
		return "slow"
	case PowerUpShrink:
		return "shrink"
	default:
		return "unknown"
	}
}

// PowerUp is an uncollected power-up on the grid.
type PowerUp struct {
	Cell      core.Cell
	Kind      PowerUpKind
	SpawnedAt time.Duration
}

// Effect is a timed power-up effect in force.
type Effect struct {
	Kind      PowerUpKind
	ExpiresAt time.Duration
}

// Command is an input to the simulation.
type Command interface {
	isCommand()
}

// SetDirection requests a heading change. DX and DY must form a unit
// vector along one axis.
type SetDirection struct {
	DX, DY int
}

func (SetDirection) isCommand() {}

// Direction vectors.
var (
	Up    = SetDirection{DX: 0, DY: -1}
	Down  = SetDirection{DX: 0, DY: 1}
	Left  = SetDirection{DX: -1, DY: 0}
	Right = SetDirection{DX: 1, DY: 0}
)

// freeCellAttempts bounds the random search for an empty cell.
const freeCellAttempts = 200

// Simulation is a single Snake session. Time is the sum of the dt values
// passed to Tick; the wall clock is never read.
type Simulation struct {
	diff     config.SnakeDifficulty
	powerUps config.SnakePowerUps

	body      []core.Cell // Head first
	dir       core.Cell
	queuedDir core.Cell
	obstacles core.CellSet

	food    core.Cell
	hasFood bool
	powerUp *PowerUp
	effect  *Effect

	phase     Phase
	score     int
	interval  time.Duration
	now       time.Duration
	startedAt time.Duration
	tick      uint64

	sounds []core.Sound
	rng    *core.RNG
}

// New starts a session at the named difficulty from the catalog.
// The error wraps config.ErrUnknownDifficulty when the name is not in the catalog.
func New(cat config.SnakeCatalog, difficulty string, seed int64) (*Simulation, error) {
	diff, err := cat.Resolve(difficulty)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		diff:      diff,
		powerUps:  cat.PowerUps,
		dir:       core.Cell{X: 1},
		queuedDir: core.Cell{X: 1},
		obstacles: core.NewCellSet(diff.Obstacles...),
		phase:     PhaseAwaitingFirstInput,
		interval:  diff.Speed(),
		rng:       core.NewRNG(seed),
	}

	cx, cy := diff.GridWidth/2, diff.GridHeight/2
	s.body = make([]core.Cell, 0, diff.InitialLength)
	for i := range diff.InitialLength {
		s.body = append(s.body, core.Cell{X: cx - i, Y: cy})
	}

	s.food = s.randomFreeCell()
	s.hasFood = true
	return s, nil
}

// Enqueue records a direction request. Requests that are not unit vectors or
// that exactly reverse the committed heading are dropped. The first accepted
// request starts the session clock.
func (s *Simulation) Enqueue(cmd Command) {
	c, ok := cmd.(SetDirection)
	if !ok || s.phase == PhaseTerminal {
		return
	}
	if abs(c.DX)+abs(c.DY) != 1 {
		return
	}
	if c.DX == -s.dir.X && c.DY == -s.dir.Y {
		return
	}

	s.queuedDir = core.Cell{X: c.DX, Y: c.DY}
	if s.phase == PhaseAwaitingFirstInput {
		s.phase = PhaseRunning
		s.startedAt = s.now
	}
}

// Tick advances the session by one move and dt of simulated time. It returns
// the terminal event on the tick that ends the session, nil otherwise.
func (s *Simulation) Tick(dt time.Duration) *core.Event {
	if s.phase != PhaseRunning {
		return nil
	}
	s.sounds = s.sounds[:0]
	s.tick++
	s.now += dt

	s.dir = s.queuedDir
	head := s.body[0].Add(s.dir.X, s.dir.Y)

	if !head.InBounds(s.diff.GridWidth, s.diff.GridHeight) ||
		slices.Contains(s.body, head) ||
		s.obstacles.Has(head) {
		return s.die()
	}

	s.body = slices.Insert(s.body, 0, head)

	if head == s.food {
		s.score += s.diff.FoodPoints
		s.emit(core.SoundEat)
		s.food = s.randomFreeCell()
		s.maybeSpawnPowerUp()
	} else {
		s.body = s.body[:len(s.body)-1]
	}

	if s.powerUp != nil && head == s.powerUp.Cell {
		s.apply(s.powerUp.Kind)
		s.powerUp = nil
	}

	if s.powerUp != nil && s.now-s.powerUp.SpawnedAt > s.powerUps.Lifetime() {
		s.powerUp = nil
	}

	if s.effect != nil && s.now > s.effect.ExpiresAt {
		s.interval = s.diff.Speed()
		s.effect = nil
	}

	s.checkInvariants()
	return nil
}

func (s *Simulation) maybeSpawnPowerUp() {
	if s.powerUp != nil {
		return
	}
	if s.rng.Float64() > s.powerUps.Chance {
		return
	}
	kind := PowerUpKind(s.rng.Intn(int(powerUpKinds)))
	s.powerUp = &PowerUp{Cell: s.randomFreeCell(), Kind: kind, SpawnedAt: s.now}
}

func (s *Simulation) apply(kind PowerUpKind) {
	s.emit(core.SoundPowerUp)
	switch kind {
	case PowerUpBonus:
		s.score += s.powerUps.BonusPoints
	case PowerUpSlow:
		s.interval = s.diff.Speed() * time.Duration(s.powerUps.SlowFactor)
		s.effect = &Effect{Kind: PowerUpSlow, ExpiresAt: s.now + s.powerUps.SlowDuration()}
	case PowerUpShrink:
		// Never below the starting length, so the head is never popped
		n := min(s.powerUps.ShrinkSegments, len(s.body)-s.diff.InitialLength)
		if n > 0 {
			s.body = s.body[:len(s.body)-n]
		}
	}
}

func (s *Simulation) die() *core.Event {
	s.phase = PhaseTerminal
	s.emit(core.SoundDie)
	s.emit(core.SoundGameOver)
	return &core.Event{
		Kind:  core.EventLoss,
		Score: s.score,
		Stats: core.Stats{
			Length:  len(s.body),
			Elapsed: s.now - s.startedAt,
		},
	}
}

// randomFreeCell picks a random cell clear of the body, obstacles, food and
// power-up. After freeCellAttempts misses it returns the last cell tried,
// which may be occupied.
func (s *Simulation) randomFreeCell() core.Cell {
	occupied := core.NewCellSet(s.body...)
	if s.hasFood {
		occupied.Add(s.food)
	}
	if s.powerUp != nil {
		occupied.Add(s.powerUp.Cell)
	}

	var c core.Cell
	for range freeCellAttempts {
		c = core.Cell{X: s.rng.Intn(s.diff.GridWidth), Y: s.rng.Intn(s.diff.GridHeight)}
		if !occupied.Has(c) && !s.obstacles.Has(c) {
			break
		}
	}
	return c
}

// checkInvariants panics if a committed move left the body in an impossible state.
func (s *Simulation) checkInvariants() {
	head := s.body[0]
	if !head.InBounds(s.diff.GridWidth, s.diff.GridHeight) {
		panic(fmt.Sprintf("snake: head %v outside %dx%d grid", head, s.diff.GridWidth, s.diff.GridHeight))
	}
	if len(s.body) < s.diff.InitialLength {
		panic(fmt.Sprintf("snake: length %d below initial %d", len(s.body), s.diff.InitialLength))
	}
	seen := make(core.CellSet, len(s.body))
	for _, c := range s.body {
		if seen.Has(c) {
			panic(fmt.Sprintf("snake: body overlaps itself at %v", c))
		}
		seen.Add(c)
	}
}

func (s *Simulation) emit(snd core.Sound) {
	s.sounds = append(s.sounds, snd)
}

// Interval returns the cadence the host should wait before the next Tick.
// It changes while a slow effect is active.
func (s *Simulation) Interval() time.Duration {
	return s.interval
}

// Phase returns the current state machine phase.
func (s *Simulation) Phase() Phase {
	return s.phase
}

// Difficulty returns the resolved tuning for the session.
func (s *Simulation) Difficulty() config.SnakeDifficulty {
	return s.diff
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
