package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/results"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

func pressScoreboard(t *testing.T, m ScoreboardModel, msgs ...tea.Msg) ScoreboardModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		sb, ok := next.(ScoreboardModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = sb
	}
	return m
}

func seededStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	records := []results.Record{
		{GameID: results.GameBreakout, Difficulty: "easy", Event: core.Event{Kind: core.EventLoss, Score: 40}},
		{GameID: results.GameBreakout, Difficulty: "hard", Event: core.Event{Kind: core.EventWin, Score: 510, Stats: core.Stats{Lives: 3}}},
		{GameID: results.GameSnake, Difficulty: "medium", Event: core.Event{Kind: core.EventLoss, Score: 260}},
	}
	for _, rec := range records {
		rec.At = time.Now()
		if err := store.Report(context.Background(), rec); err != nil {
			t.Fatal(err)
		}
	}
	return store
}

func TestScoreboardEmptyWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 100, 30)
	view := m.View()
	if !strings.Contains(view, "No scores recorded yet") {
		t.Errorf("empty board expected: %q", view)
	}
	if !strings.Contains(view, "easy: -") {
		t.Error("every difficulty should be listed without a record")
	}
}

func TestScoreboardFilterByDifficulty(t *testing.T) {
	m := NewScoreboardModel(seededStore(t), 100, 30)
	if m.Filter() != "all" || len(m.visible()) != 2 {
		t.Fatalf("filter %q shows %d rows, expected all breakout rows", m.Filter(), len(m.visible()))
	}
	if !strings.Contains(m.View(), "hard: 510") {
		t.Error("best line should show the hard record")
	}

	tests := []struct {
		filter string
		rows   int
	}{
		{"easy", 1},
		{"medium", 0},
		{"hard", 1},
		{"all", 2},
	}
	for _, tc := range tests {
		m = pressScoreboard(t, m, tea.KeyMsg{Type: tea.KeyRight})
		if m.Filter() != tc.filter || len(m.visible()) != tc.rows {
			t.Errorf("filter = %q with %d rows, expected %q with %d", m.Filter(), len(m.visible()), tc.filter, tc.rows)
		}
	}

	m = pressScoreboard(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Filter() != "hard" {
		t.Errorf("left should step back to hard, got %q", m.Filter())
	}
}

func TestScoreboardSwitchGame(t *testing.T) {
	m := NewScoreboardModel(seededStore(t), 100, 30)

	m = pressScoreboard(t, m, keyTab)
	if m.games[m.gameCursor].ID != results.GameSnake || len(m.visible()) != 1 {
		t.Fatalf("tab should show snake scores, got %s with %d rows", m.games[m.gameCursor].ID, len(m.visible()))
	}
	if !strings.Contains(m.View(), "medium: 260") {
		t.Error("best line should follow the selected game")
	}

	m = pressScoreboard(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.games[m.gameCursor].ID != results.GameBreakout {
		t.Errorf("shift+tab should return to breakout, got %s", m.games[m.gameCursor].ID)
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := pressScoreboard(t, NewScoreboardModel(nil, 80, 24), keyEsc)
	if !m.IsGoingBack() || m.IsQuitting() || m.View() != "" {
		t.Error("esc should go back to the menu")
	}

	m = pressScoreboard(t, NewScoreboardModel(nil, 80, 24), runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}
