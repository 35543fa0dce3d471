package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/results"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

// newLogger returns the stderr logger. Interactive commands only surface
// warnings so log lines do not paint over the game.
func newLogger(interactive bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	})
	switch {
	case flagVerbose:
		logger.SetLevel(log.DebugLevel)
	case interactive:
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// runtimeConfig builds the runtime config from the global flags and the
// current terminal size.
func runtimeConfig(difficulty string) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.ConfigPath = flagConfig
	if difficulty != "" {
		cfg.Difficulty = difficulty
	}
	return cfg
}

// openSink opens the scores database and wraps it in a logging sink.
// With an empty --db path, or when the database cannot be opened, results are
// kept in memory for the lifetime of the process. The returned store may be nil.
func openSink(logger *log.Logger) (results.Sink, *storage.Store) {
	if flagDBPath == "" {
		return results.NewLogging(results.NewMemory(), logger), nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, results are kept in memory", "path", flagDBPath, "error", err)
		return results.NewLogging(results.NewMemory(), logger), nil
	}
	return results.NewLogging(store, logger), store
}

// closeStore closes store if one was opened.
func closeStore(store *storage.Store, logger *log.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close scores database", "error", err)
	}
}

// mustGame checks that gameID is registered, exiting with a hint otherwise.
func mustGame(gameID string) registry.Game {
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
	return game
}

// newSeed returns a fresh time-based seed.
func newSeed() int64 {
	return time.Now().UnixNano()
}
