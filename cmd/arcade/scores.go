package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-arcade/internal/platform/tui"
	"github.com/vovakirdan/pocket-arcade/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show best results and high scores for a game",
	Long: `Display the best score and stars per difficulty, followed by the
top 10 sessions for the specified game.

Examples:
  arcade scores breakout
  arcade scores snake`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(_ *cobra.Command, args []string) {
	game := mustGame(args[0])
	gameID := game.ID()

	if flagDBPath == "" {
		fmt.Fprintln(os.Stderr, "Error: no scores database configured (--db is empty)")
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	if err := printScores(store, gameID, game.Title()); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	store.Close()
}

func printScores(store *storage.Store, gameID, title string) error {
	best, err := store.BestScores(gameID)
	if err != nil {
		return err
	}
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Best per difficulty
	fmt.Printf("  %-8s  %-8s  %s\n", "Level", "Best", "Stars")
	fmt.Printf("  %-8s  %-8s  %s\n", "-----", "----", "-----")
	for _, e := range best {
		fmt.Printf("  %-8s  %-8d  %s\n", e.Difficulty, e.Score, tui.StarString(e.Stars))
	}
	fmt.Println()

	// Print header
	fmt.Printf("  %-4s  %-8s  %-8s  %-5s  %-6s  %s\n", "Rank", "Score", "Level", "Stars", "Result", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-5s  %-6s  %s\n", "----", "-----", "-----", "-----", "------", "----")

	// Print scores
	for i, entry := range scores {
		outcome := "loss"
		if entry.Won {
			outcome = "win"
		}
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-8s  %-5s  %-6s  %s\n",
			i+1, entry.Score, entry.Difficulty, tui.StarString(entry.Stars), outcome, dateStr)
	}
	return nil
}
