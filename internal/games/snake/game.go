package snake

import (
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

// Game adapts a Snake Simulation to the arcade platform.
type Game struct {
	sim        *Simulation
	runtime    core.RuntimeConfig
	difficulty string

	paused bool
	event  *core.Event

	minScreenW int
	minScreenH int
	tooSmall   bool
}

// NewGame creates a new Snake game instance.
func NewGame() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return NewGame()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset loads the catalog and starts a new session at the configured difficulty.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cat, err := config.LoadSnake(runtime.ConfigPath)
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
	g.runtime = runtime
	g.difficulty = runtime.Difficulty
	g.paused = false
	g.event = nil

	// Two columns per cell plus the border, one HUD row above
	d := sim.Difficulty()
	g.minScreenW = d.GridWidth*cellWidth + 2
	g.minScreenH = d.GridHeight + hudRows + 2
	g.Resize(runtime.ScreenW, runtime.ScreenH)
	return nil
}

// Resize updates the screen dimensions without restarting the session.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.tooSmall = w < g.minScreenW || h < g.minScreenH
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
		if g.sim.Phase() == PhaseRunning {
			g.paused = !g.paused
		}
		return
	}

	if g.paused {
		return
	}

	switch a {
	case core.ActionUp:
		g.sim.Enqueue(Up)
	case core.ActionDown:
		g.sim.Enqueue(Down)
	case core.ActionLeft:
		g.sim.Enqueue(Left)
	case core.ActionRight:
		g.sim.Enqueue(Right)
	}
}

// Autoplay queues the bot's direction for the next Step.
func (g *Game) Autoplay() {
	for _, cmd := range Autopilot(g.sim) {
		g.sim.Enqueue(cmd)
	}
}

// Step advances the snake by one move.
func (g *Game) Step(dt time.Duration) core.StepResult {
	if g.sim == nil || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	ev := g.sim.Tick(dt)
	if ev != nil {
		g.event = ev
	}
	return core.StepResult{State: g.State(), Event: ev}
}

// Interval returns the current move cadence, which a slow power-up stretches.
func (g *Game) Interval() time.Duration {
	if g.sim == nil {
		return time.Second / 10
	}
	return g.sim.Interval()
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
