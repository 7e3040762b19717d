package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/companion/internal/platform/tui"
)

var (
	flagReset bool
	flagTop   int
)

var challengesCmd = &cobra.Command{
	Use:   "challenges",
	Short: "Show challenge progress and best runs",
	Long: `Print progress towards every configured challenge and the best
catch-game runs recorded in the database.

Examples:
  companion challenges
  companion challenges --top 20
  companion challenges --reset`,
	Args: cobra.NoArgs,
	RunE: runChallenges,
}

func init() {
	challengesCmd.Flags().BoolVar(&flagReset, "reset", false, "Clear all progress and runs")
	challengesCmd.Flags().IntVar(&flagTop, "top", 5, "Number of best runs to show")
}

func runChallenges(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog := newLogger(false)
	defer closeLog()

	store := openStore(logger)
	if store == nil {
		return errors.New("progress database unavailable")
	}
	defer store.Close()

	if flagReset {
		if err := store.ResetProgress(); err != nil {
			return err
		}
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("Progress and runs cleared.")
		return nil
	}

	rows, err := tui.LoadChallengeRows(store, cfg.Challenges)
	if err != nil {
		return err
	}
	fmt.Println("Challenges")
	for _, r := range rows {
		mark := " "
		if r.Done() {
			mark = "x"
		}
		fmt.Printf("  [%s] %-28s %5d / %d\n", mark, r.Title, min(r.Progress, r.Target), r.Target)
	}

	runs, err := store.TopRuns(flagTop)
	if err != nil {
		return err
	}
	fmt.Println("\nBest runs")
	if len(runs) == 0 {
		fmt.Println("  No runs yet. Press G in companion play to start one.")
		return nil
	}
	for i, r := range runs {
		fmt.Printf("  %2d. %6d  caught %3d  combo %3d  %-10s %s\n",
			i+1, r.Score, r.Caught, r.BestCombo, r.Reason, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
