package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pocket-arcade/internal/results"
)

func sessionStep(t *testing.T, m SessionModel, msgs ...tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = sm
	}
	return m, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	sink := results.NewMemory()
	m := NewSessionModel(nil, sink, testConfig(t, ""), quietLogger())

	// Snake on easy
	m, cmd := sessionStep(t, m, keyDown, keyEnter, keyEnter)
	if m.gameModel == nil || cmd == nil {
		t.Fatal("selecting a difficulty should start the game")
	}
	if m.gameModel.config.Difficulty != "easy" || m.gameModel.game.ID() != "snake" {
		t.Errorf("game = %s on %s", m.gameModel.game.ID(), m.gameModel.config.Difficulty)
	}
	if !strings.Contains(m.View(), "Press an arrow key") {
		t.Error("game view should be shown")
	}

	m, _ = sessionStep(t, m, keyEsc)
	if m.gameModel != nil {
		t.Fatal("esc should leave the game")
	}
	if !strings.Contains(m.View(), "Select a game") {
		t.Error("menu should be shown after leaving the game")
	}

	// A tick from the abandoned game is harmless
	m, _ = sessionStep(t, m, TickMsg{Gen: 1})
	if m.gameModel != nil || m.quitting {
		t.Error("stale tick should not change the session")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := NewSessionModel(nil, results.Discard, testConfig(t, ""), quietLogger())

	m, _ = sessionStep(t, m, keyTab)
	if m.scoreboard == nil {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("empty scoreboard expected without a store")
	}

	m, _ = sessionStep(t, m, keyEsc)
	if m.scoreboard != nil || m.quitting {
		t.Error("esc should return to the menu")
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, results.Discard, testConfig(t, ""), quietLogger())
	m, cmd := sessionStep(t, m, runeKey('q'))
	if !m.quitting || cmd == nil || m.View() != "" {
		t.Error("q should end the session")
	}
}

func TestNewSSHServerInMemory(t *testing.T) {
	dir := t.TempDir()
	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(dir, "keys", "host_key"),
		IdleTimeout: time.Minute,
	})
	if err != nil {
		t.Fatalf("NewSSHServer: %v", err)
	}
	if srv.store != nil {
		t.Error("an empty database path should keep results in memory")
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
	if err := srv.Shutdown(); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}
