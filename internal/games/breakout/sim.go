package breakout

import (
	"math"
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// FrameDuration is the reference frame that velocities are expressed against.
const FrameDuration = time.Second / 60

// Phase is the simulation state machine.
type Phase int

const (
	PhaseAwaitingLaunch Phase = iota // Ball glued to the paddle
	PhaseInPlay
	PhaseTerminal
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingLaunch:
		return "awaiting_launch"
	case PhaseInPlay:
		return "in_play"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Command is an input to the simulation. Commands are queued by Enqueue and
// applied together at the start of the next Tick.
type Command interface {
	isCommand()
}

// SetPaddleCenter moves the paddle so its center is at X (clamped to the arena).
type SetPaddleCenter struct {
	X float64
}

// Launch releases a glued ball.
type Launch struct{}

func (SetPaddleCenter) isCommand() {}
func (Launch) isCommand()          {}

// pending holds the commands received since the last tick.
type pending struct {
	paddleSet bool
	paddleX   float64
	launch    bool
}

// Simulation is a single Breakout session. It is not safe for concurrent use;
// the host serializes Enqueue and Tick.
type Simulation struct {
	arena        config.BreakoutArena
	diff         config.BreakoutDifficulty
	pointsPerHit int
	speedupEvery int

	ball   Ball
	paddle Paddle
	bricks []Brick

	phase         Phase
	score         int
	lives         int
	bricksCleared int
	totalBricks   int
	tick          uint64

	queue  pending
	sounds []core.Sound
	rng    *core.RNG
}

// New starts a session at the named difficulty from the catalog.
// The error wraps config.ErrUnknownDifficulty when the name is not in the catalog.
func New(cat config.BreakoutCatalog, difficulty string, seed int64) (*Simulation, error) {
	diff, err := cat.Resolve(difficulty)
	if err != nil {
		return nil, err
	}

	a := cat.Arena
	s := &Simulation{
		arena:        a,
		diff:         diff,
		pointsPerHit: cat.PointsPerHit,
		speedupEvery: cat.SpeedupEvery,
		paddle: Paddle{
			X: (a.Width - float64(diff.PaddleWidth)) / 2,
			Y: a.PaddleY(),
			W: float64(diff.PaddleWidth),
			H: a.PaddleHeight,
		},
		bricks: BuildBricks(a, diff.Layout),
		lives:  diff.Lives,
		phase:  PhaseAwaitingLaunch,
		rng:    core.NewRNG(seed),
	}
	s.totalBricks = len(s.bricks)
	s.ball.Radius = a.BallRadius
	s.glueBall()
	return s, nil
}

// Enqueue records a command for the next tick. Paddle commands are
// last-write-wins. Commands are dropped once the session has ended, and a
// paddle position that is not a finite number is ignored.
func (s *Simulation) Enqueue(cmd Command) {
	if s.phase == PhaseTerminal {
		return
	}
	switch c := cmd.(type) {
	case SetPaddleCenter:
		if math.IsNaN(c.X) || math.IsInf(c.X, 0) {
			return
		}
		s.queue.paddleSet = true
		s.queue.paddleX = c.X
	case Launch:
		s.queue.launch = true
	}
}

// Tick advances the simulation by dt and returns the terminal event on the
// tick that ends the session, nil otherwise.
func (s *Simulation) Tick(dt time.Duration) *core.Event {
	if s.phase == PhaseTerminal {
		return nil
	}
	s.sounds = s.sounds[:0]
	cmds := s.queue
	s.queue = pending{}
	s.tick++

	if cmds.paddleSet {
		s.movePaddle(cmds.paddleX)
	}

	if s.phase == PhaseAwaitingLaunch {
		s.glueBall()
		if !cmds.launch {
			return nil
		}
		s.launch()
	}

	k := float64(dt) / float64(FrameDuration)
	if k <= 0 {
		return nil
	}
	s.ball.Move(k)

	switch CheckWallCollision(&s.ball, s.arena) {
	case CollisionNone:
	case CollisionBottom:
		return s.loseLife()
	default:
		s.emit(core.SoundWall)
	}

	if CheckPaddleCollision(&s.ball, &s.paddle) {
		s.emit(core.SoundPaddle)
	}

	return s.collideBricks()
}

func (s *Simulation) movePaddle(centerX float64) {
	s.paddle.X = core.ClampF(centerX-s.paddle.W/2, 0, s.arena.Width-s.paddle.W)
}

// glueBall parks the ball on top of the paddle center.
func (s *Simulation) glueBall() {
	s.ball.Pos = core.Vec{X: s.paddle.CenterX(), Y: s.paddle.Y - s.ball.Radius}
	s.ball.Vel = core.Vec{}
}

// launchSpread is the total random deviation from straight up at launch.
const launchSpread = 0.5

func (s *Simulation) launch() {
	angle := -math.Pi/2 + (s.rng.Float64()-0.5)*launchSpread
	s.ball.SetHeading(angle, s.diff.BallSpeed)
	s.phase = PhaseInPlay
	s.emit(core.SoundLaunch)
}

func (s *Simulation) loseLife() *core.Event {
	s.lives--
	if s.lives <= 0 {
		s.lives = 0
		s.phase = PhaseTerminal
		s.emit(core.SoundGameOver)
		return s.event(core.EventLoss)
	}
	s.phase = PhaseAwaitingLaunch
	s.glueBall()
	s.emit(core.SoundLifeLost)
	return nil
}

// collideBricks resolves at most one brick per tick. A brick that contains the
// ball center takes priority; otherwise the first touching brick in layout order.
func (s *Simulation) collideBricks() *core.Event {
	idx := -1
	for i := range s.bricks {
		b := &s.bricks[i]
		if !b.Alive {
			continue
		}
		if b.Contains(s.ball.Pos) {
			idx = i
			break
		}
		if idx < 0 && core.CircleIntersectsRect(s.ball.Circle(), b.Rect) {
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}

	brick := &s.bricks[idx]
	ResolveBrickCollision(&s.ball, brick.Rect)

	brick.Hits--
	s.score += s.pointsPerHit
	if brick.Hits > 0 {
		s.emit(core.SoundBrickHit)
		return nil
	}

	brick.Alive = false
	s.bricksCleared++
	s.emit(core.SoundBrickBreak)

	if s.bricksCleared >= s.totalBricks {
		s.phase = PhaseTerminal
		s.emit(core.SoundWin)
		return s.event(core.EventWin)
	}
	if s.speedupEvery > 0 && s.bricksCleared%s.speedupEvery == 0 {
		s.speedUp()
	}
	return nil
}

// speedUp adds the difficulty's increment to the ball speed, keeping direction.
func (s *Simulation) speedUp() {
	speed := s.ball.Speed()
	if speed == 0 {
		return
	}
	s.ball.Vel = s.ball.Vel.Scale((speed + s.diff.SpeedIncrement) / speed)
}

func (s *Simulation) event(kind core.EventKind) *core.Event {
	return &core.Event{
		Kind:  kind,
		Score: s.score,
		Stats: core.Stats{
			Lives:         s.lives,
			BricksCleared: s.bricksCleared,
			TotalBricks:   s.totalBricks,
		},
	}
}

func (s *Simulation) emit(snd core.Sound) {
	s.sounds = append(s.sounds, snd)
}

// Phase returns the current state machine phase.
func (s *Simulation) Phase() Phase {
	return s.phase
}

// Arena returns the playfield geometry.
func (s *Simulation) Arena() config.BreakoutArena {
	return s.arena
}

// Interval returns the reference frame duration. Any dt may be passed to
// Tick; this is the cadence a scheduler should aim for.
func (s *Simulation) Interval() time.Duration {
	return FrameDuration
}
