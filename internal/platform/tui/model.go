package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/results"
)

// helpRows is the space reserved below the game screen for the key help line.
const helpRows = 1

// reportTimeout bounds how long a finished session waits on its sink.
const reportTimeout = 5 * time.Second

// reportedMsg carries the outcome of delivering a session result.
type reportedMsg struct {
	rec results.Record
	err error
}

// Model is the Bubble Tea model for running arcade games.
// It owns the tick cadence: every Step uses the interval the game asked for
// when the tick was scheduled, and ticks from a previous session are dropped.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	sink     results.Sink
	reporter *results.Once
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	logger   *log.Logger

	gen      uint64        // session generation, bumped on restart
	pending  time.Duration // dt of the tick in flight
	ticking  bool
	last     *results.Record
	quitting bool
	back     bool
}

// NewModel creates a model for game and starts its first session.
// A nil sink discards results; a nil logger uses the default logger.
func NewModel(game registry.Game, sink results.Sink, cfg core.RuntimeConfig, logger *log.Logger) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = config.DifficultyEasy
	}
	if sink == nil {
		sink = results.Discard
	}
	if logger == nil {
		logger = log.Default()
	}

	gameCfg := cfg
	gameCfg.ScreenH = max(cfg.ScreenH-helpRows, 0)
	if err := game.Reset(gameCfg); err != nil {
		return Model{}, fmt.Errorf("tui: start %s: %w", game.ID(), err)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, gameCfg.ScreenH),
		sink:     sink,
		reporter: results.NewOnce(sink),
		config:   cfg,
		keys:     DefaultKeyMap(),
		help:     h,
		logger:   logger.WithPrefix(game.ID()),
		gen:      1,
		pending:  game.Interval(),
		ticking:  true,
	}, nil
}

// Init starts the tick loop of the first session.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.gen, m.pending)
}

// schedule marks a tick in flight for the current session.
func (m *Model) schedule() tea.Cmd {
	m.pending = m.game.Interval()
	m.ticking = true
	return tickCmd(m.gen, m.pending)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)

	case reportedMsg:
		if msg.err != nil {
			m.logger.Error("could not record session", "error", msg.err)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input. Actions reach the game immediately;
// the simulation applies them at its next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.back = true
		return m, nil
	case core.ActionRestart:
		if !m.game.State().GameOver {
			return m, nil
		}
		m.game.HandleAction(action)
		m.gen++
		m.reporter = results.NewOnce(m.sink)
		return m, m.schedule()
	}

	m.game.HandleAction(action)
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	h := max(msg.Height-helpRows, 0)
	m.screen.Resize(msg.Width, h)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, h)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || !m.ticking {
		return m, nil
	}

	result := m.game.Step(m.pending)
	if result.Event == nil {
		return m, m.schedule()
	}

	// The session is over; the loop stays idle until restart
	m.ticking = false
	rec := results.Record{
		GameID:     m.game.ID(),
		Difficulty: m.config.Difficulty,
		Event:      *result.Event,
		At:         msg.At,
	}
	m.last = &rec
	return m, m.reportCmd(rec)
}

// reportCmd delivers rec to the session's one-shot reporter off the UI loop.
func (m Model) reportCmd(rec results.Record) tea.Cmd {
	reporter := m.reporter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		return reportedMsg{rec: rec, err: reporter.Report(ctx, rec)}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// LastResult returns the most recent finished session, if any.
func (m Model) LastResult() *results.Record {
	return m.last
}

// Run starts a Bubble Tea program for game and blocks until it exits.
// It reports whether the player asked to go back to the menu.
func Run(game registry.Game, sink results.Sink, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model, err := NewModel(game, sink, cfg, logger)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		backOnQuit{model},
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if b, ok := final.(backOnQuit); ok {
		return b.BackToMenu(), nil
	}
	return false, nil
}

// backOnQuit ends a standalone program when the player leaves the game.
// Inside an SSH session the session model handles that transition instead.
type backOnQuit struct {
	Model
}

// Update forwards to the game model and quits once it asks for the menu.
func (b backOnQuit) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := b.Model.Update(msg)
	if gm, ok := next.(Model); ok {
		b.Model = gm
	}
	if b.BackToMenu() {
		return b, tea.Quit
	}
	return b, cmd
}
