package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelsim/internal/storage"
)

var (
	flagHistoryLimit  int
	flagHistoryAnimal string
	flagHistoryClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history <level>",
	Short: "Show recorded runs for a level",
	Long: `Display the runs recorded with 'levelsim check --record' for a level,
newest first, with aggregate stats. With --animal, also show that animal's
fun score across the same runs.

Examples:
  levelsim history city-park
  levelsim history city-park --animal turtle --limit 5
  levelsim history city-park --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().StringVar(&flagHistoryAnimal, "animal", "", "Show the fun trend for this animal ID")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the level's recorded runs")
}

func runHistory(cmd *cobra.Command, args []string) error {
	levelID := args[0]

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearRuns(levelID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared history for %s\n", levelID)
		return nil
	}

	stats, err := store.LevelStats(levelID)
	if err != nil {
		return err
	}
	runs, err := store.RecentRuns(levelID, flagHistoryLimit)
	if err != nil {
		return err
	}

	p, err := newPrinter(cmd, nil)
	if err != nil {
		return err
	}
	p.History(stats, runs)

	if flagHistoryAnimal != "" {
		trend, err := store.AnimalTrend(levelID, flagHistoryAnimal, flagHistoryLimit)
		if err != nil {
			return err
		}
		p.Trend(flagHistoryAnimal, trend)
	}
	return nil
}
