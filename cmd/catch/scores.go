package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-catch/internal/registry"
	"github.com/vovakirdan/tui-catch/internal/storage"
)

var flagShowLevels bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores for a game mode (default: catch).
With --levels, show per-level attempts and the most recent level outcomes.

Examples:
  catch scores
  catch scores catch_endless
  catch scores --levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagShowLevels, "levels", false, "Show level history instead of high scores")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "catch"
	if len(args) > 0 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'catch levels' to see modes)", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagShowLevels {
		return printLevels(store, gameID, game.Title())
	}
	return printScores(store, gameID, game.Title())
}

func printScores(store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}

func printLevels(store *storage.Store, gameID, title string) error {
	summary, err := store.LevelSummary(gameID)
	if err != nil {
		return fmt.Errorf("retrieving level summary: %w", err)
	}

	fmt.Printf("Levels - %s\n", title)
	fmt.Println()

	if len(summary) == 0 {
		fmt.Println("No levels played yet.")
		return nil
	}

	fmt.Printf("  %-5s  %-6s  %-7s  %s\n", "Level", "Played", "Cleared", "Best catch")
	fmt.Printf("  %-5s  %-6s  %-7s  %s\n", "-----", "------", "-------", "----------")
	for _, s := range summary {
		fmt.Printf("  %-5d  %-6d  %-7d  %d\n", s.Level, s.Attempts, s.Completed, s.BestCatch)
	}

	recent, err := store.LevelResults(gameID, 5)
	if err != nil {
		return fmt.Errorf("retrieving level results: %w", err)
	}
	fmt.Println()
	fmt.Println("Recent:")
	for _, r := range recent {
		fmt.Printf("  %s  level %d  %-9s  caught %d  lives %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Level, r.Outcome, r.Collected, r.Lives)
	}
	return nil
}
