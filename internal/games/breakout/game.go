package breakout

import (
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

// holdFrames is how long one key press keeps the paddle moving.
// Terminals deliver held keys as repeated presses, so this bridges the repeat gap.
const holdFrames = 8

// Game adapts a Breakout Simulation to the arcade platform.
type Game struct {
	sim        *Simulation
	catalog    config.BreakoutCatalog
	runtime    core.RuntimeConfig
	difficulty string

	// Keyboard paddle control
	paddleCenter float64
	moveDir      int
	moveFrames   int

	paused    bool
	autopilot bool
	event     *core.Event

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// NewGame creates a new Breakout game instance.
func NewGame() *Game {
	return &Game{minScreenW: 30, minScreenH: 15}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "breakout"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout"
}

// Reset loads the catalog and starts a new session at the configured difficulty.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cat, err := config.LoadBreakout(runtime.ConfigPath)
	if err != nil {
		return err
	}
	if runtime.Difficulty == "" {
		runtime.Difficulty = config.DifficultyEasy
	}

	sim, err := New(cat, runtime.Difficulty, runtime.Seed)
	if err != nil {
		return err
	}

	g.sim = sim
	g.catalog = cat
	g.runtime = runtime
	g.difficulty = runtime.Difficulty
	g.paddleCenter = sim.paddle.CenterX()
	g.moveDir = 0
	g.moveFrames = 0
	g.paused = false
	g.event = nil
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH
	return nil
}

// Resize updates the screen dimensions without restarting the session.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < g.minScreenW || h < g.minScreenH
}

// HandleAction maps input actions to simulation commands.
func (g *Game) HandleAction(a core.Action) {
	if g.sim == nil {
		return
	}

	switch a {
	case core.ActionRestart:
		if g.sim.Phase() == PhaseTerminal {
			g.runtime.Seed++
			//nolint:errcheck // Same catalog and difficulty already loaded once
			g.Reset(g.runtime)
		}
		return
	case core.ActionPause:
		if g.sim.Phase() != PhaseTerminal {
			g.paused = !g.paused
		}
		return
	}

	if g.paused {
		return
	}

	switch a {
	case core.ActionLeft:
		g.moveDir, g.moveFrames = -1, holdFrames
	case core.ActionRight:
		g.moveDir, g.moveFrames = 1, holdFrames
	case core.ActionLaunch, core.ActionUp, core.ActionConfirm:
		g.sim.Enqueue(Launch{})
	}
}

// Autoplay queues the bot's commands for the next Step.
func (g *Game) Autoplay() {
	g.autopilot = true
	for _, cmd := range Autopilot(g.sim) {
		g.sim.Enqueue(cmd)
	}
}

// Step advances the simulation by dt.
func (g *Game) Step(dt time.Duration) core.StepResult {
	if g.sim == nil || g.paused || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.autopilot {
		g.paddleCenter = g.sim.paddle.CenterX()
	} else if g.moveFrames > 0 {
		frames := float64(dt) / float64(FrameDuration)
		half := g.sim.paddle.W / 2
		g.paddleCenter = core.ClampF(
			g.paddleCenter+float64(g.moveDir)*g.catalog.Arena.PaddleNudge*frames,
			half, g.catalog.Arena.Width-half,
		)
		g.sim.Enqueue(SetPaddleCenter{X: g.paddleCenter})
		g.moveFrames--
	}

	ev := g.sim.Tick(dt)
	if ev != nil {
		g.event = ev
	}
	return core.StepResult{State: g.State(), Event: ev}
}

// Interval returns the frame cadence.
func (g *Game) Interval() time.Duration {
	return g.runtime.FrameInterval()
}

// Sounds returns the audio cues raised during the last Step.
func (g *Game) Sounds() []core.Sound {
	if g.sim == nil {
		return nil
	}
	return g.sim.Snapshot().Sounds
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.sim.score,
		GameOver: g.sim.Phase() == PhaseTerminal,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("breakout", func() registry.Game {
		return NewGame()
	})
}
