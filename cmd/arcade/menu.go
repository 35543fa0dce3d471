package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/platform/tui"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Pick a game, then a difficulty. The difficulty list shows your best score
and stars for each level. Leaving a game returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Esc          - Back
  Tab          - Scoreboard
  Q            - Quit

Examples:
  arcade menu
  arcade menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger(true)
	sink, store := openSink(logger)
	defer closeStore(store, logger)

	cfg := runtimeConfig("")

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return // User quit from scoreboard
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		gameCfg := cfg
		gameCfg.Difficulty = menuResult.Difficulty
		if gameCfg.Seed == 0 {
			gameCfg.Seed = newSeed()
		}

		back, err := tui.Run(game, sink, gameCfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			continue
		}
		if !back {
			return // Quit from inside the game
		}
	}
}
