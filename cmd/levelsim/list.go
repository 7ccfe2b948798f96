package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelsim/internal/physics"
	"github.com/vovakirdan/levelsim/internal/registry"
	"github.com/vovakirdan/levelsim/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available levels",
	Long: `Display all levels found in the level directory, sorted by number.

Examples:
  levelsim list
  levelsim list --levels ./drafts`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		lvls, err := resolveLevels(nil)
		if err != nil {
			return err
		}
		p, err := newPrinter(cmd, nil)
		if err != nil {
			return err
		}
		p.Levels(lvls)
		return nil
	},
}

var animalsCmd = &cobra.Command{
	Use:   "animals",
	Short: "Show the animal physics table",
	Long: `Display every playable animal with its run speed, single jump height,
effective jump height (with double jump or flutter) and abilities.

Examples:
  levelsim animals
  levelsim animals --animals ./animals.yaml --physics ./physics.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		p, err := newPrinter(cmd, physics.NewEngine(cfg.Physics))
		if err != nil {
			return err
		}
		p.PhysicsTable(cfg.Animals)
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List structural rules",
	Long: `Display the structural rules run against every level, in run order.
Rule IDs can be passed to 'levelsim check --skip-rule'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := newPrinter(cmd, nil)
		if err != nil {
			return err
		}
		p.Rules(registry.List())
		return nil
	},
}

func newPrinter(cmd *cobra.Command, engine *physics.Engine) (*report.Printer, error) {
	color, err := useColor(os.Stdout)
	if err != nil {
		return nil, err
	}
	return report.NewPrinter(cmd.OutOrStdout(), engine, color), nil
}
