package snake

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
)

const step = 150 * time.Millisecond

func newSim(t *testing.T, cat config.SnakeCatalog, difficulty string, seed int64) *Simulation {
	t.Helper()
	s, err := New(cat, difficulty, seed)
	if err != nil {
		t.Fatalf("New(%q): %v", difficulty, err)
	}
	return s
}

// quietCatalog is the default catalog with power-up spawning disabled and an
// optional wider easy grid.
func quietCatalog(width int) config.SnakeCatalog {
	cat := config.DefaultSnakeCatalog()
	cat.PowerUps.Chance = 0
	if width > 0 {
		d := cat.Difficulties[config.DifficultyEasy]
		d.GridWidth = width
		cat.Difficulties[config.DifficultyEasy] = d
	}
	return cat
}

// start commits a first input in the current heading.
func start(t *testing.T, s *Simulation) {
	t.Helper()
	s.Enqueue(SetDirection{DX: s.dir.X, DY: s.dir.Y})
	if s.Phase() != PhaseRunning {
		t.Fatalf("phase = %v after first input, expected running", s.Phase())
	}
}

// feed places food directly ahead of the head.
func feed(s *Simulation) {
	s.food = s.body[0].Add(s.queuedDir.X, s.queuedDir.Y)
}

func TestNewUnknownDifficulty(t *testing.T) {
	_, err := New(config.DefaultSnakeCatalog(), "nightmare", 1)
	if !errors.Is(err, config.ErrUnknownDifficulty) {
		t.Errorf("expected ErrUnknownDifficulty, got %v", err)
	}
}

func TestInitialState(t *testing.T) {
	s := newSim(t, config.DefaultSnakeCatalog(), config.DifficultyEasy, 1)
	snap := s.Snapshot()

	want := []core.Cell{{X: 7, Y: 10}, {X: 6, Y: 10}, {X: 5, Y: 10}}
	if !slices.Equal(snap.Body, want) {
		t.Errorf("body = %v, expected %v", snap.Body, want)
	}
	if snap.Dir != (core.Cell{X: 1}) {
		t.Errorf("dir = %v, expected right", snap.Dir)
	}
	if snap.Phase != PhaseAwaitingFirstInput {
		t.Errorf("phase = %v", snap.Phase)
	}
	if s.Interval() != 150*time.Millisecond {
		t.Errorf("Interval() = %v, expected 150ms", s.Interval())
	}
	if slices.Contains(snap.Body, snap.Food) || !snap.Food.InBounds(15, 20) {
		t.Errorf("food %v should be a free in-bounds cell", snap.Food)
	}
}

func TestTickBeforeFirstInputIsNoop(t *testing.T) {
	s := newSim(t, config.DefaultSnakeCatalog(), config.DifficultyEasy, 1)
	before := s.Snapshot()
	for range 10 {
		if ev := s.Tick(step); ev != nil {
			t.Fatal("no event expected before first input")
		}
	}
	if after := s.Snapshot(); after.Hash() != before.Hash() || after.Now != 0 {
		t.Error("ticks before the first input must not change state or advance the clock")
	}
}

func TestEnqueueValidation(t *testing.T) {
	tests := []struct {
		name    string
		cmd     SetDirection
		started bool
	}{
		{"zero vector", SetDirection{}, false},
		{"diagonal", SetDirection{DX: 1, DY: 1}, false},
		{"too long", SetDirection{DX: 2}, false},
		{"reverse of heading", Left, false},
		{"same heading", Right, true},
		{"perpendicular", Up, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newSim(t, config.DefaultSnakeCatalog(), config.DifficultyEasy, 1)
			s.Enqueue(tc.cmd)
			if got := s.Phase() == PhaseRunning; got != tc.started {
				t.Errorf("started = %v, expected %v", got, tc.started)
			}
		})
	}
}

func TestReversalRejectedAgainstCommittedHeading(t *testing.T) {
	s := newSim(t, quietCatalog(0), config.DifficultyEasy, 1)
	s.food = core.Cell{}

	s.Enqueue(Up)
	// Still heading right until the next tick commits Up
	s.Enqueue(Left)
	s.Tick(step)
	if s.dir != (core.Cell{Y: -1}) {
		t.Fatalf("dir = %v, expected up", s.dir)
	}

	s.Enqueue(Down)
	s.Tick(step)
	if s.dir != (core.Cell{Y: -1}) {
		t.Errorf("reversal of committed heading should be dropped, dir = %v", s.dir)
	}

	s.Enqueue(Left)
	s.Enqueue(Right) // last write wins
	s.Tick(step)
	if s.dir != (core.Cell{X: 1}) {
		t.Errorf("dir = %v, expected last accepted request (right)", s.dir)
	}
}

func TestWallIsTerminal(t *testing.T) {
	s := newSim(t, quietCatalog(0), config.DifficultyEasy, 1)
	s.food = core.Cell{}
	start(t, s)

	// Head at x=7 on a 15-wide grid: seven moves reach the edge
	for i := range 7 {
		if ev := s.Tick(step); ev != nil {
			t.Fatalf("unexpected event on move %d: %+v", i+1, ev)
		}
	}
	ev := s.Tick(step)
	if ev == nil || ev.Won() {
		t.Fatalf("expected loss at the wall, got %+v", ev)
	}
	if ev.Stats.Length != 3 || ev.Stats.Elapsed != 8*step {
		t.Errorf("stats = %+v, expected length 3 after %v", ev.Stats, 8*step)
	}
	if head := s.body[0]; head != (core.Cell{X: 14, Y: 10}) {
		t.Errorf("head = %v, rejected move must not be committed", head)
	}
	snap := s.Snapshot()
	if !slices.Contains(snap.Sounds, core.SoundDie) || !slices.Contains(snap.Sounds, core.SoundGameOver) {
		t.Errorf("sounds = %v", snap.Sounds)
	}
}

func TestObstacleIsTerminal(t *testing.T) {
	cat := quietCatalog(0)
	d := cat.Difficulties[config.DifficultyEasy]
	d.Obstacles = []core.Cell{{X: 9, Y: 10}}
	cat.Difficulties[config.DifficultyEasy] = d

	s := newSim(t, cat, config.DifficultyEasy, 1)
	s.food = core.Cell{}
	start(t, s)

	if ev := s.Tick(step); ev != nil {
		t.Fatalf("first move should be clear, got %+v", ev)
	}
	ev := s.Tick(step)
	if ev == nil || ev.Kind != core.EventLoss {
		t.Fatalf("expected loss on obstacle, got %+v", ev)
	}
	if ev.Stats.Length != 3 {
		t.Errorf("length = %d, expected unchanged 3", ev.Stats.Length)
	}
}

func TestSelfCollisionIncludesTail(t *testing.T) {
	s := newSim(t, quietCatalog(0), config.DifficultyEasy, 1)
	s.food = core.Cell{}

	// A tight loop heading up whose tail sits left of the head
	s.body = []core.Cell{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 5}}
	s.dir = core.Cell{Y: -1}
	s.queuedDir = s.dir

	s.Enqueue(Left)
	ev := s.Tick(step)
	if ev == nil || ev.Kind != core.EventLoss {
		t.Fatalf("moving into the tail should lose, got %+v", ev)
	}
	if ev.Stats.Length != 4 {
		t.Errorf("length = %d, expected 4", ev.Stats.Length)
	}
}

func TestEatingGrows(t *testing.T) {
	s := newSim(t, quietCatalog(0), config.DifficultyEasy, 1)
	start(t, s)

	for i := range 5 {
		feed(s)
		if ev := s.Tick(step); ev != nil {
			t.Fatalf("unexpected event on food %d: %+v", i+1, ev)
		}
		if !slices.Contains(s.Snapshot().Sounds, core.SoundEat) {
			t.Errorf("food %d: expected eat sound", i+1)
		}
	}

	if got := len(s.body); got != 3+5 {
		t.Errorf("length = %d, expected initial + 5", got)
	}
	if s.score != 50 {
		t.Errorf("score = %d, expected 5 x 10", s.score)
	}
	if slices.Contains(s.body, s.food) {
		t.Errorf("respawned food %v on body", s.food)
	}
}

func TestMovingWithoutFoodKeepsLength(t *testing.T) {
	s := newSim(t, quietCatalog(0), config.DifficultyEasy, 1)
	s.food = core.Cell{}
	start(t, s)

	s.Tick(step)
	want := []core.Cell{{X: 8, Y: 10}, {X: 7, Y: 10}, {X: 6, Y: 10}}
	if !slices.Equal(s.body, want) {
		t.Errorf("body = %v, expected %v", s.body, want)
	}
}

func TestBonusPowerUp(t *testing.T) {
	s := newSim(t, quietCatalog(0), config.DifficultyEasy, 1)
	s.food = core.Cell{}
	start(t, s)

	s.powerUp = &PowerUp{Cell: core.Cell{X: 8, Y: 10}, Kind: PowerUpBonus}
	s.Tick(step)

	if s.score != 50 {
		t.Errorf("score = %d, expected bonus 50", s.score)
	}
	if s.powerUp != nil {
		t.Error("collected power-up should be cleared")
	}
	if len(s.body) != 3 {
		t.Errorf("length = %d, bonus should not grow", len(s.body))
	}
	if !slices.Contains(s.Snapshot().Sounds, core.SoundPowerUp) {
		t.Error("expected power_up sound")
	}
}

func TestShrinkPowerUpNeverBelowInitialLength(t *testing.T) {
	s := newSim(t, quietCatalog(40), config.DifficultyEasy, 1)
	start(t, s)

	for range 3 {
		feed(s)
		s.Tick(step)
	}
	s.food = core.Cell{Y: 19}

	tests := []struct {
		before, after int
	}{
		{6, 4},
		{4, 3},
		{3, 3},
	}
	for _, tc := range tests {
		if len(s.body) != tc.before {
			t.Fatalf("length = %d, expected %d before shrink", len(s.body), tc.before)
		}
		next := s.body[0].Add(s.dir.X, s.dir.Y)
		s.powerUp = &PowerUp{Cell: next, Kind: PowerUpShrink, SpawnedAt: s.now}
		s.Tick(step)
		if len(s.body) != tc.after {
			t.Errorf("length %d after shrink = %d, expected %d", tc.before, len(s.body), tc.after)
		}
		if s.body[0] != next {
			t.Error("shrink must never remove the head")
		}
	}
}

func TestSlowPowerUpDoublesInterval(t *testing.T) {
	s := newSim(t, quietCatalog(60), config.DifficultyEasy, 1)
	s.body = []core.Cell{{X: 20, Y: 10}, {X: 19, Y: 10}, {X: 18, Y: 10}}
	s.food = core.Cell{}
	start(t, s)

	s.powerUp = &PowerUp{Cell: core.Cell{X: 21, Y: 10}, Kind: PowerUpSlow}
	s.Tick(step)

	if s.Interval() != 300*time.Millisecond {
		t.Fatalf("Interval() = %v, expected doubled 300ms", s.Interval())
	}
	expires := step + 5*time.Second
	if snap := s.Snapshot(); snap.EffectRemaining() != 5*time.Second {
		t.Errorf("EffectRemaining() = %v, expected 5s", snap.EffectRemaining())
	}

	// The host ticks at the slowed cadence until the expiry passes
	for s.now+s.Interval() <= expires {
		s.Tick(s.Interval())
		if s.Interval() != 300*time.Millisecond {
			t.Fatalf("reverted early at %v", s.now)
		}
	}
	s.Tick(s.Interval())
	if s.now <= expires {
		t.Fatalf("now = %v, expected past %v", s.now, expires)
	}
	if s.Interval() != 150*time.Millisecond || s.effect != nil {
		t.Errorf("Interval() = %v, expected base 150ms after expiry", s.Interval())
	}
}

func TestUncollectedPowerUpExpires(t *testing.T) {
	s := newSim(t, quietCatalog(60), config.DifficultyEasy, 1)
	s.body = []core.Cell{{X: 20, Y: 10}, {X: 19, Y: 10}, {X: 18, Y: 10}}
	s.food = core.Cell{}
	start(t, s)

	s.powerUp = &PowerUp{Cell: core.Cell{X: 0, Y: 19}, Kind: PowerUpBonus}
	for range 5 {
		s.Tick(time.Second)
	}
	if s.powerUp == nil {
		t.Fatal("power-up at exactly its lifetime should remain")
	}
	s.Tick(time.Second)
	if s.powerUp != nil {
		t.Error("power-up past its lifetime should be cleared")
	}
	if s.score != 0 {
		t.Errorf("expiry should not score, got %d", s.score)
	}
}

func TestPowerUpSpawnsOnlyWhenNoneActive(t *testing.T) {
	cat := quietCatalog(40)
	cat.PowerUps.Chance = 1
	s := newSim(t, cat, config.DifficultyEasy, 3)
	start(t, s)

	feed(s)
	s.Tick(step)
	first := s.powerUp
	if first == nil {
		t.Fatal("chance 1 should spawn a power-up on eat")
	}
	if slices.Contains(s.body, first.Cell) || first.Cell == s.food {
		t.Errorf("power-up %v spawned on an occupied cell", first.Cell)
	}

	// Park it off the snake's row so the next meal cannot collect it
	first.Cell = core.Cell{X: 0, Y: 19}
	feed(s)
	s.Tick(step)
	if s.powerUp != first {
		t.Error("a second power-up must not replace the active one")
	}
}

func TestTerminalIsAbsorbing(t *testing.T) {
	s := newSim(t, quietCatalog(0), config.DifficultyEasy, 1)
	s.food = core.Cell{}
	start(t, s)

	var ev *core.Event
	for ev == nil {
		ev = s.Tick(step)
	}
	before := s.Snapshot()

	s.Enqueue(Up)
	for range 5 {
		if again := s.Tick(step); again != nil {
			t.Fatal("terminal event reported twice")
		}
	}
	after := s.Snapshot()
	if after.Phase != PhaseTerminal || after.Hash() != before.Hash() {
		t.Error("terminal session must not change")
	}
	if !slices.Equal(after.Sounds, before.Sounds) {
		t.Errorf("sounds changed after the end: %v, expected %v", after.Sounds, before.Sounds)
	}
}

func TestAutopilotKeepsInvariants(t *testing.T) {
	for _, difficulty := range config.DifficultyNames {
		t.Run(difficulty, func(t *testing.T) {
			s := newSim(t, config.DefaultSnakeCatalog(), difficulty, 7)
			d := s.Difficulty()

			var ev *core.Event
			lastScore := 0
			for i := 0; i < 5000 && ev == nil; i++ {
				for _, cmd := range Autopilot(s) {
					s.Enqueue(cmd)
				}
				ev = s.Tick(s.Interval())

				if s.score < lastScore {
					t.Fatalf("score decreased: %d -> %d", lastScore, s.score)
				}
				lastScore = s.score
				if len(s.body) < d.InitialLength {
					t.Fatalf("length %d below initial %d", len(s.body), d.InitialLength)
				}
				if !s.body[0].InBounds(d.GridWidth, d.GridHeight) {
					t.Fatalf("head %v out of bounds", s.body[0])
				}
				if core.NewCellSet(s.body...).Len() != len(s.body) {
					t.Fatalf("body overlaps itself: %v", s.body)
				}
			}

			if lastScore < 100 {
				t.Errorf("score = %d, expected the bot to eat at least a few times", lastScore)
			}
			if ev != nil && ev.Stats.Length != len(s.body) {
				t.Errorf("event length %d != body %d", ev.Stats.Length, len(s.body))
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []uint64 {
		s := newSim(t, config.DefaultSnakeCatalog(), config.DifficultyMedium, 12345)
		var hashes []uint64
		for range 1000 {
			for _, cmd := range Autopilot(s) {
				s.Enqueue(cmd)
			}
			ev := s.Tick(s.Interval())
			snap := s.Snapshot()
			hashes = append(hashes, snap.Hash())
			if ev != nil {
				break
			}
		}
		return hashes
	}

	a, b := run(), run()
	if !slices.Equal(a, b) {
		t.Error("same seed and inputs should produce identical runs")
	}
}

func TestRandomFreeCellFallback(t *testing.T) {
	cat := config.DefaultSnakeCatalog()
	cat.Difficulties["tiny"] = config.SnakeDifficulty{
		SpeedMS: 100, GridWidth: 2, GridHeight: 1, InitialLength: 2, FoodPoints: 1,
	}

	// The body fills the grid, so no free cell exists
	s := newSim(t, cat, "tiny", 1)
	if !s.food.InBounds(2, 1) {
		t.Errorf("fallback cell %v should still be in bounds", s.food)
	}
}

func TestFirstFoodCanUseOrigin(t *testing.T) {
	cat := config.DefaultSnakeCatalog()
	cat.Difficulties["tiny"] = config.SnakeDifficulty{
		SpeedMS: 100, GridWidth: 2, GridHeight: 1, InitialLength: 1, FoodPoints: 1,
	}

	// The head takes (1,0), leaving (0,0) as the only free cell
	for seed := int64(1); seed <= 20; seed++ {
		s := newSim(t, cat, "tiny", seed)
		if s.food != (core.Cell{}) {
			t.Fatalf("seed %d: food at %v, expected (0,0)", seed, s.food)
		}
	}
}

func TestInvariantViolationPanics(t *testing.T) {
	s := newSim(t, config.DefaultSnakeCatalog(), config.DifficultyEasy, 1)
	s.body = []core.Cell{{X: 3, Y: 3}, {X: 2, Y: 3}, {X: 3, Y: 3}}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on overlapping body")
		}
	}()
	s.checkInvariants()
}

func TestSnapshotIsCopy(t *testing.T) {
	s := newSim(t, config.DefaultSnakeCatalog(), config.DifficultyMedium, 1)
	s.powerUp = &PowerUp{Cell: core.Cell{X: 1, Y: 1}, Kind: PowerUpSlow}

	snap := s.Snapshot()
	snap.Body[0] = core.Cell{X: -5}
	snap.Obstacles[0] = core.Cell{X: -5}
	snap.PowerUp.Kind = PowerUpBonus

	if s.body[0].X == -5 || s.diff.Obstacles[0].X == -5 || s.powerUp.Kind != PowerUpSlow {
		t.Error("mutating a snapshot must not affect the simulation")
	}
}
