package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/platform/tui"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move the paddle or steer the snake
  Space/Enter  - Launch the ball
  P            - Pause
  R            - Restart (after game over)
  Esc/B        - Leave the game
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy, medium, hard

Examples:
  arcade play breakout
  arcade play snake --difficulty hard
  arcade play breakout --config ./my-breakout.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "easy", "Difficulty: easy, medium, hard")
}

func runPlay(_ *cobra.Command, args []string) {
	game := mustGame(args[0])
	logger := newLogger(true)

	sink, store := openSink(logger)
	runErr := func() error {
		defer closeStore(store, logger)
		_, err := tui.Run(game, sink, runtimeConfig(flagDifficulty), logger)
		return err
	}()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
