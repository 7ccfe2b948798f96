package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelsim/internal/lint"
	"github.com/vovakirdan/levelsim/internal/report"
	"github.com/vovakirdan/levelsim/internal/sim"
	"github.com/vovakirdan/levelsim/internal/storage"
)

var (
	flagRecord    bool
	flagStrict    bool
	flagSkipRules []string
)

var checkCmd = &cobra.Command{
	Use:   "check [level...]",
	Short: "Analyze levels and print feasibility reports",
	Long: `Simulate every animal on the given levels and print a report per level.

Arguments are level IDs from the level directory or paths to level files.
With no arguments every level is checked. The command exits with status 1
when any level has unresolved issues.

Examples:
  levelsim check
  levelsim check rooftop-garden city-park
  levelsim check ./drafts/level4.yaml --strict
  levelsim check --skip-rule platform-gap --record`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagRecord, "record", false, "Store the results in the history database")
	checkCmd.Flags().BoolVar(&flagStrict, "strict", false, "Fail levels with structural findings")
	checkCmd.Flags().StringArrayVar(&flagSkipRules, "skip-rule", nil, "Skip a structural rule by ID (repeatable)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	skip, err := lint.ValidateSkip(flagSkipRules)
	if err != nil {
		return fmt.Errorf("%w (run 'levelsim rules' to list them)", err)
	}
	color, err := useColor(os.Stdout)
	if err != nil {
		return err
	}
	an, err := newAnalyzer()
	if err != nil {
		return err
	}
	an.SkipRules(skip)

	lvls, err := resolveLevels(args)
	if err != nil {
		return err
	}
	results, err := analyzeAll(cmd.Context(), an, lvls)
	if err != nil {
		return err
	}

	p := report.NewPrinter(cmd.OutOrStdout(), an.Engine(), color)
	p.SetStrict(flagStrict)
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		p.Level(res)
	}
	if len(results) > 1 {
		p.Summary(results)
	}

	if flagRecord {
		if err := record(results); err != nil {
			return err
		}
	}

	for _, res := range results {
		if !res.Passed(flagStrict) {
			return errLevelsFailed
		}
	}
	return nil
}

func record(results []sim.LevelResult) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	for _, res := range results {
		if _, err := store.SaveRun(storage.RunFromResult(res, flagStrict)); err != nil {
			return err
		}
	}
	return nil
}
