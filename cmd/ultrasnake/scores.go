package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ultrasnake/internal/registry"
	"github.com/vovakirdan/ultrasnake/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs",
	Long: `Display the best runs of a mode with run statistics.

Both modes share one high score; the run history is kept per mode.

Examples:
  ultrasnake scores
  ultrasnake scores ultrasnake_solo --limit 20
  ultrasnake scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the mode's run history and high score")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := modeFromArgs(args)
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("unknown mode %q (run 'ultrasnake list' to see the modes)", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		return clearScores(store, game)
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}
	all, err := store.AllScores(gameID)
	if err != nil {
		return err
	}
	high, err := store.HighScore(registry.ScoreKey(game))
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'ultrasnake play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %6s  %6s  %6s  %-7s  %6s  %s\n", "Rank", "Total", "You", "Opp", "Level", "Time", "Date")
	fmt.Printf("  %-4s  %6s  %6s  %6s  %-7s  %6s  %s\n", "----", "-----", "---", "---", "-----", "----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %6d  %6d  %6d  %-7s  %6s  %s\n",
			i+1, e.Total(), e.Score, e.OpponentScore, e.Difficulty,
			e.Duration.Round(100*time.Millisecond).String(), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	sum := storage.Summarize(all)
	fmt.Println()
	fmt.Printf("Best: %d\n", high)
	fmt.Printf("Runs: %d  Mean: %.1f  Median: %.0f  StdDev: %.1f\n", sum.Runs, sum.Mean, sum.Median, sum.StdDev)
	return nil
}

func clearScores(store *storage.Store, game registry.Game) error {
	if err := store.ClearScores(game.ID()); err != nil {
		return err
	}
	if err := store.ClearHighScore(registry.ScoreKey(game)); err != nil {
		return err
	}
	fmt.Printf("Cleared the scores of %s.\n", game.Title())
	return nil
}
