package breakout

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

func testRuntime(t *testing.T, difficulty string) core.RuntimeConfig {
	t.Helper()
	// Keep user and local catalogs out of the search path
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	return core.RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Seed:       42,
		Difficulty: difficulty,
	}
}

func TestWallCollision(t *testing.T) {
	arena := config.DefaultBreakoutCatalog().Arena

	tests := []struct {
		name     string
		ball     Ball
		side     CollisionSide
		expected Ball
	}{
		{
			name:     "left wall",
			ball:     Ball{Pos: core.Vec{X: 3, Y: 300}, Vel: core.Vec{X: -2, Y: 1}, Radius: 6},
			side:     CollisionLeft,
			expected: Ball{Pos: core.Vec{X: 6, Y: 300}, Vel: core.Vec{X: 2, Y: 1}, Radius: 6},
		},
		{
			name:     "right wall",
			ball:     Ball{Pos: core.Vec{X: 398, Y: 300}, Vel: core.Vec{X: 2, Y: 1}, Radius: 6},
			side:     CollisionRight,
			expected: Ball{Pos: core.Vec{X: 394, Y: 300}, Vel: core.Vec{X: -2, Y: 1}, Radius: 6},
		},
		{
			name:     "top wall",
			ball:     Ball{Pos: core.Vec{X: 200, Y: 2}, Vel: core.Vec{X: 1, Y: -3}, Radius: 6},
			side:     CollisionTop,
			expected: Ball{Pos: core.Vec{X: 200, Y: 6}, Vel: core.Vec{X: 1, Y: 3}, Radius: 6},
		},
		{
			name:     "already moving away stays away",
			ball:     Ball{Pos: core.Vec{X: 4, Y: 300}, Vel: core.Vec{X: 2, Y: 1}, Radius: 6},
			side:     CollisionLeft,
			expected: Ball{Pos: core.Vec{X: 6, Y: 300}, Vel: core.Vec{X: 2, Y: 1}, Radius: 6},
		},
		{
			name:     "bottom edge",
			ball:     Ball{Pos: core.Vec{X: 200, Y: 595}, Vel: core.Vec{X: 1, Y: 3}, Radius: 6},
			side:     CollisionBottom,
			expected: Ball{Pos: core.Vec{X: 200, Y: 595}, Vel: core.Vec{X: 1, Y: 3}, Radius: 6},
		},
		{
			name:     "open space",
			ball:     Ball{Pos: core.Vec{X: 200, Y: 300}, Vel: core.Vec{X: 1, Y: 3}, Radius: 6},
			side:     CollisionNone,
			expected: Ball{Pos: core.Vec{X: 200, Y: 300}, Vel: core.Vec{X: 1, Y: 3}, Radius: 6},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.ball
			if side := CheckWallCollision(&b, arena); side != tc.side {
				t.Errorf("side = %v, expected %v", side, tc.side)
			}
			if b != tc.expected {
				t.Errorf("ball = %+v, expected %+v", b, tc.expected)
			}
		})
	}
}

func TestPaddleCollision(t *testing.T) {
	paddle := Paddle{X: 160, Y: 560, W: 80, H: 14}

	tests := []struct {
		name  string
		x, y  float64
		vy    float64
		hit   bool
		angle float64
	}{
		{"center", 200, 556, 4, true, -math.Pi / 2},
		{"left edge", 160, 556, 4, true, -math.Pi/2 - 0.35*math.Pi},
		{"right edge", 240, 556, 4, true, -math.Pi/2 + 0.35*math.Pi},
		{"moving up", 200, 556, -4, false, 0},
		{"above paddle", 200, 550, 4, false, 0},
		{"beside paddle", 100, 556, 4, false, 0},
		{"within radius of edge", 244, 556, 4, true, -math.Pi/2 + (84.0/80-0.5)*0.7*math.Pi},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := Ball{Pos: core.Vec{X: tc.x, Y: tc.y}, Vel: core.Vec{X: 3, Y: tc.vy}, Radius: 6}
			speed := b.Speed()

			if got := CheckPaddleCollision(&b, &paddle); got != tc.hit {
				t.Fatalf("hit = %v, expected %v", got, tc.hit)
			}
			if !tc.hit {
				return
			}
			if math.Abs(b.Speed()-speed) > 1e-9 {
				t.Errorf("speed changed: %v -> %v", speed, b.Speed())
			}
			if got := math.Atan2(b.Vel.Y, b.Vel.X); math.Abs(got-tc.angle) > 1e-9 {
				t.Errorf("angle = %v, expected %v", got, tc.angle)
			}
			if b.Pos.Y != paddle.Y-b.Radius {
				t.Errorf("ball y = %v, expected resting on paddle", b.Pos.Y)
			}
		})
	}
}

func TestResolveBrickEmbedded(t *testing.T) {
	brick := core.NewRect(100, 50, 45, 18)

	// Center two units deep through the bottom face, moving up
	b := Ball{Pos: core.Vec{X: 120, Y: 66}, Vel: core.Vec{X: 1, Y: -8}, Radius: 6}
	axis, ok := ResolveBrickCollision(&b, brick)
	if !ok || axis != core.AxisY {
		t.Fatalf("axis = %v ok = %v, expected y", axis, ok)
	}
	if b.Pos.Y != brick.Bottom()+6 {
		t.Errorf("y = %v, expected %v", b.Pos.Y, brick.Bottom()+6)
	}
	if b.Vel.Y != 8 {
		t.Errorf("vy = %v, expected reflected to 8", b.Vel.Y)
	}
	if brick.ContainsStrict(b.Pos) {
		t.Error("ball center still inside brick")
	}
}

func TestGameReset(t *testing.T) {
	g := NewGame()
	if err := g.Reset(testRuntime(t, config.DifficultyMedium)); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	// Play a few ticks
	g.HandleAction(core.ActionLaunch)
	for i := 0; i < 50; i++ {
		if i%2 == 0 {
			g.HandleAction(core.ActionRight)
		}
		g.Step(FrameDuration)
	}

	// Reset should clear state
	if err := g.Reset(g.runtime); err != nil {
		t.Fatal(err)
	}
	snap := g.sim.Snapshot()
	if snap.Score != 0 || snap.Phase != PhaseAwaitingLaunch || snap.Tick != 0 {
		t.Errorf("Reset should start a fresh session, got %+v", snap)
	}
	if snap.TotalBricks != 40 {
		t.Errorf("TotalBricks = %d, expected medium layout", snap.TotalBricks)
	}
}

func TestGameResetUnknownDifficulty(t *testing.T) {
	g := NewGame()
	err := g.Reset(testRuntime(t, "brutal"))
	if !errors.Is(err, config.ErrUnknownDifficulty) {
		t.Errorf("expected ErrUnknownDifficulty, got %v", err)
	}
}

func TestGamePaddleMovement(t *testing.T) {
	g := NewGame()
	if err := g.Reset(testRuntime(t, config.DifficultyEasy)); err != nil {
		t.Fatal(err)
	}
	start := g.sim.Snapshot().Paddle.CenterX()

	g.HandleAction(core.ActionRight)
	for i := 0; i < holdFrames+5; i++ {
		g.Step(FrameDuration)
	}

	moved := g.sim.Snapshot().Paddle.CenterX() - start
	if expected := 7.0 * holdFrames; math.Abs(moved-expected) > 1e-9 {
		t.Errorf("paddle moved %v, expected %v (one press holds for %d frames)", moved, expected, holdFrames)
	}

	g.HandleAction(core.ActionLeft)
	g.Step(FrameDuration)
	if got := g.sim.Snapshot().Paddle.CenterX() - start; math.Abs(got-(moved-7)) > 1e-9 {
		t.Errorf("left press should reverse immediately, offset %v", got)
	}
}

func TestGamePause(t *testing.T) {
	g := NewGame()
	if err := g.Reset(testRuntime(t, config.DifficultyEasy)); err != nil {
		t.Fatal(err)
	}
	g.HandleAction(core.ActionLaunch)
	g.Step(FrameDuration)

	g.HandleAction(core.ActionPause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	before := g.sim.Snapshot()
	for i := 0; i < 10; i++ {
		g.Step(FrameDuration)
	}
	if after := g.sim.Snapshot(); after.Hash() != before.Hash() {
		t.Error("paused game should not advance")
	}

	g.HandleAction(core.ActionPause)
	g.Step(FrameDuration)
	if g.State().Paused || g.sim.Snapshot().Tick == before.Tick {
		t.Error("unpaused game should advance")
	}
}

func TestGameAutoplayWinsAndRestarts(t *testing.T) {
	g := NewGame()
	if err := g.Reset(testRuntime(t, config.DifficultyEasy)); err != nil {
		t.Fatal(err)
	}

	var event *core.Event
	for i := 0; i < 500000 && event == nil; i++ {
		g.Autoplay()
		event = g.Step(g.Interval()).Event
	}
	if event == nil || !event.Won() {
		t.Fatalf("expected autoplay to win, got %+v", event)
	}
	if !g.State().GameOver {
		t.Error("State().GameOver should be set")
	}
	if res := g.Step(g.Interval()); res.Event != nil {
		t.Error("terminal event must be reported once")
	}

	g.HandleAction(core.ActionRestart)
	if g.State().GameOver || g.State().Score != 0 {
		t.Errorf("restart should begin a new session, got %+v", g.State())
	}
}

func TestGameInterval(t *testing.T) {
	g := NewGame()
	rt := testRuntime(t, config.DifficultyEasy)
	rt.TickRate = 30
	if err := g.Reset(rt); err != nil {
		t.Fatal(err)
	}
	if g.Interval() != time.Second/30 {
		t.Errorf("Interval() = %v, expected 1/30s", g.Interval())
	}
}

func TestGameRender(t *testing.T) {
	g := NewGame()
	if err := g.Reset(testRuntime(t, config.DifficultyHard)); err != nil {
		t.Fatal(err)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Score: 0", "hard", "Press SPACE to launch", string(PaddleChar), string(BallChar)} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	// Seven brick rows, one screen row each
	rows := 0
	for y := 0; y < screen.Height(); y++ {
		if strings.ContainsAny(screen.Row(y), "▒▓█") {
			rows++
		}
	}
	if rows != 7 {
		t.Errorf("brick rows drawn = %d, expected 7", rows)
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	g := NewGame()
	rt := testRuntime(t, config.DifficultyEasy)
	rt.ScreenW, rt.ScreenH = 20, 10
	if err := g.Reset(rt); err != nil {
		t.Fatal(err)
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("expected too-small message")
	}
	if res := g.Step(FrameDuration); res.State.GameOver {
		t.Error("too-small screen should not advance the game")
	}
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create("breakout")
	if err != nil {
		t.Fatalf("registry.Create: %v", err)
	}
	if g.Title() != "Breakout" {
		t.Errorf("Title() = %q", g.Title())
	}
	if _, ok := g.(registry.Autoplayer); !ok {
		t.Error("breakout should support autoplay")
	}
}
