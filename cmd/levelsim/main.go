// levelsim checks platformer levels for feasibility and fun by simulating
// every playable animal's jump physics over the tile grid.
//
// Usage:
//
//	levelsim check [level...]  - Analyze levels and print reports
//	levelsim list              - List available levels
//	levelsim animals           - Show the animal physics table
//	levelsim rules             - List structural rules
//	levelsim eggs <level>      - Check a seeded egg selection
//	levelsim history <level>   - Show recorded runs
//	levelsim browse            - Browse reports interactively
//	levelsim serve             - Serve the browser over SSH
//
// Global flags:
//
//	--levels <dir>   - Load levels from a directory instead of the built-in set
//	--db <path>      - Set history database path (default: ~/.levelsim/history.db)
//	--seed <value>   - Set RNG seed for egg selection
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// errLevelsFailed makes the process exit non-zero after a report has
// already explained what is wrong.
var errLevelsFailed = errors.New("levels need fixes")

var (
	// Global flags
	flagLevelsDir   string
	flagAnimalsPath string
	flagPhysicsPath string
	flagRulesPath   string
	flagDBPath      string
	flagSeed        int64
	flagLogLevel    string
	flagColor       string
	flagWorkers     int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errLevelsFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "levelsim",
	Short: "Level feasibility and fun simulator",
	Long: `levelsim decides, for every playable animal, whether each egg, the nest
and every water slide of a level can be reached, and scores how fun the
level is for that animal.

Available commands:
  check    - Analyze levels and print reports (exit 1 when any level fails)
  list     - Show all available levels
  animals  - Show the animal physics table
  rules    - Show the structural rules
  eggs     - Check one seeded egg selection
  history  - Show recorded runs for a level
  browse   - Interactive report browser
  serve    - Start SSH server for remote browsing

Examples:
  levelsim check
  levelsim check city-park --strict
  levelsim check ./my-level.yaml --skip-rule platform-gap
  levelsim eggs rooftop-garden --seed 7
  levelsim serve --ssh :2222`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in levels)")
	pf.StringVar(&flagAnimalsPath, "animals", "", "Path to animals.yaml")
	pf.StringVar(&flagPhysicsPath, "physics", "", "Path to physics.yaml")
	pf.StringVar(&flagRulesPath, "rules", "", "Path to rules.yaml")
	pf.StringVar(&flagDBPath, "db", "~/.levelsim/history.db", "Path to history database")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed for egg selection (0 = random based on time)")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&flagColor, "color", "auto", "Color output: auto, always or never")
	pf.IntVar(&flagWorkers, "workers", 0, "Animals analyzed in parallel (0 = all)")

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(animalsCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(eggsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
}
