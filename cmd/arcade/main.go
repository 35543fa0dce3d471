// arcade is a terminal arcade for Breakout and Snake.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show best results and high scores for a game
//	arcade autoplay <game>   - Let the built-in bot play headless sessions
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.arcade/scores.db, empty keeps results in memory)
//	--config <path>    - Use a custom difficulty catalog
//	--verbose          - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/pocket-arcade/internal/games/breakout"
	_ "github.com/vovakirdan/pocket-arcade/internal/games/snake"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Pocket Arcade - Breakout and Snake in your terminal",
	Long: `Pocket Arcade is a terminal gaming platform with Breakout and Snake,
each playable on easy, medium and hard.

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  serve     - Start SSH server for remote play
  scores    - View best results and high scores
  autoplay  - Run headless bot sessions

Examples:
  arcade list
  arcade play snake --difficulty hard
  arcade menu
  arcade serve --ssh :2222
  arcade scores breakout
  arcade autoplay breakout --runs 20`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database (empty = in memory)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom difficulty catalog YAML")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(autoplayCmd)
}
