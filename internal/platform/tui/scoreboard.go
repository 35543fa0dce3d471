package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

// maxScores bounds the rows loaded per game.
const maxScores = 100

// allDifficulties is the filter value that shows every difficulty.
const allDifficulties = "all"

// scoreboardFilters are the difficulty filters in cycling order.
var scoreboardFilters = append([]string{allDifficulties}, config.DifficultyNames...)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Filter   key.Binding
	Unfilter key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextGame, k.Filter, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Filter, k.Unfilter, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextGame: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next game")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev game")),
		Filter:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "difficulty")),
		Unfilter: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "difficulty")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the recorded sessions of one game at a time,
// optionally narrowed to a single difficulty.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	filter     int // index into scoreboardFilters
	store      *storage.Store
	scores     []storage.ScoreEntry
	best       map[string]storage.BestEntry
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a new scoreboard model. A nil store shows an
// empty board.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = newScoreTable(height)
	m.load()
	return m
}

func newScoreTable(height int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Level", Width: 7},
		{Title: "Stars", Width: 5},
		{Title: "Result", Width: 6},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)), // title, tabs, best line, help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Filter returns the difficulty filter in effect, "all" when unfiltered.
func (m ScoreboardModel) Filter() string {
	return scoreboardFilters[m.filter]
}

// load reads the current game's scores and best results from the store.
func (m *ScoreboardModel) load() {
	m.scores = nil
	m.best = make(map[string]storage.BestEntry)
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.gameCursor].ID
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = scores
		}
		if best, err := m.store.BestScores(id); err == nil {
			for _, e := range best {
				m.best[e.Difficulty] = e
			}
		}
	}
	m.refreshRows()
}

// visible returns the loaded scores that pass the difficulty filter.
func (m ScoreboardModel) visible() []storage.ScoreEntry {
	f := m.Filter()
	if f == allDifficulties {
		return m.scores
	}
	var out []storage.ScoreEntry
	for _, s := range m.scores {
		if s.Difficulty == f {
			out = append(out, s)
		}
	}
	return out
}

func (m *ScoreboardModel) refreshRows() {
	scores := m.visible()
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		outcome := "loss"
		if s.Won {
			outcome = "win"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(s.Score),
			s.Difficulty,
			StarString(s.Stars),
			outcome,
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			m.shiftGame(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.shiftGame(-1)
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			m.filter = (m.filter + 1) % len(scoreboardFilters)
			m.refreshRows()
			return m, nil

		case key.Matches(msg, m.keys.Unfilter):
			m.filter = (m.filter + len(scoreboardFilters) - 1) % len(scoreboardFilters)
			m.refreshRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-10, 3))
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) shiftGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (m.gameCursor + delta + len(m.games)) % len(m.games)
	m.load()
}

var (
	sbTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	sbActiveTab  = sbTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	sbBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	sbDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(sbTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.renderBestLine(), m.width))
	b.WriteString("\n\n")

	body := m.table.View()
	if len(m.visible()) == 0 {
		body = sbDimStyle.Italic(true).Padding(1, 2).
			Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	for _, line := range strings.Split(sbBoxStyle.Render(body), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sbDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTabs lists the games with the current one highlighted, followed by
// the difficulty filter.
func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, 0, len(m.games)+1)
	for i, g := range m.games {
		if i == m.gameCursor {
			tabs = append(tabs, sbActiveTab.Render(g.Title))
		} else {
			tabs = append(tabs, sbTabStyle.Render(g.Title))
		}
	}
	tabs = append(tabs, sbDimStyle.Render("  level: "+m.Filter()))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderBestLine summarizes the best result for each difficulty in catalog order.
func (m ScoreboardModel) renderBestLine() string {
	parts := make([]string, 0, len(config.DifficultyNames))
	for _, name := range config.DifficultyNames {
		e, ok := m.best[name]
		if !ok {
			parts = append(parts, name+": -")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %d %s", name, e.Score, starStyle.Render(StarString(e.Stars))))
	}
	return "Best  " + strings.Join(parts, "  |  ")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
