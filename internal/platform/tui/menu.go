package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/results"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

// MenuItem is a game and difficulty picked from the menu.
type MenuItem struct {
	GameID     string
	Title      string
	Difficulty string
}

// MenuModel is the Bubble Tea model for the game picker menu.
// Picking a game opens its difficulty list with the best result per difficulty.
type MenuModel struct {
	games     []registry.GameInfo
	cursor    int
	diffIndex int
	choosing  bool // difficulty list is open
	best      map[string]results.Best
	width     int
	height    int
	store     *storage.Store
	config    core.RuntimeConfig

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		games:  registry.List(),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		store:  store,
		config: cfg,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := MapKeyToMenuAction(msg)
	if action == MenuActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if m.choosing {
		return m.handleDifficultyKey(action)
	}

	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.games)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.games) > 0 {
			m.choosing = true
			m.diffIndex = 0
			m.loadBest(m.games[m.cursor].ID)
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

func (m MenuModel) handleDifficultyKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.diffIndex > 0 {
			m.diffIndex--
		}
	case MenuActionDown:
		if m.diffIndex < len(config.DifficultyNames)-1 {
			m.diffIndex++
		}
	case MenuActionSelect:
		g := m.games[m.cursor]
		m.selected = &MenuItem{
			GameID:     g.ID,
			Title:      g.Title,
			Difficulty: config.DifficultyNames[m.diffIndex],
		}
		return m, tea.Quit // Exit menu to start game
	case MenuActionBack:
		m.choosing = false
	}
	return m, nil
}

// loadBest reads the best result per difficulty. Without a store the list
// simply shows no records.
func (m *MenuModel) loadBest(gameID string) {
	m.best = make(map[string]results.Best)
	if m.store == nil {
		return
	}
	entries, err := m.store.BestScores(gameID)
	if err != nil {
		return
	}
	for _, e := range entries {
		m.best[e.Difficulty] = e.Best
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.choosing {
		return m.viewDifficulties()
	}

	var b strings.Builder

	// Title
	b.WriteString("\n")
	b.WriteString(centerText("  P O C K E T   A R C A D E  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	// Game list
	for i, g := range m.games {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+g.Title, m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

var starStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

func (m MenuModel) viewDifficulties() string {
	var b strings.Builder

	g := m.games[m.cursor]
	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(g.Title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, name := range config.DifficultyNames {
		cursor := "  "
		if i == m.diffIndex {
			cursor = "> "
		}
		record := "no record"
		if best, ok := m.best[name]; ok {
			record = fmt.Sprintf("best %d  %s", best.Score, starStyle.Render(StarString(best.Stars)))
		}
		line := fmt.Sprintf("%s%-8s %s", cursor, name, record)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Play  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// StarString renders a 0-3 star rating as filled and empty stars.
func StarString(stars int) string {
	stars = core.Clamp(stars, 0, 3)
	return strings.Repeat("★", stars) + strings.Repeat("☆", 3-stars)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Difficulty      string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
		result.Difficulty = m.Selected().Difficulty
	default:
		result.Quit = true
	}

	return result, nil
}
