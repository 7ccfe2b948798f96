package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/levelsim/internal/config"
	"github.com/vovakirdan/levelsim/internal/levels"
	"github.com/vovakirdan/levelsim/internal/sim"
)

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "levelsim",
		Level:           level,
	}), nil
}

func loadConfig() (config.Config, error) {
	return config.Load(config.Paths{
		Physics: flagPhysicsPath,
		Animals: flagAnimalsPath,
		Rules:   flagRulesPath,
	})
}

func levelLoader() *levels.Loader {
	if flagLevelsDir == "" {
		return levels.Builtin()
	}
	return levels.NewLoader(flagLevelsDir)
}

// resolveLevels loads the levels named by args: level IDs from the level
// directory or paths to level files. No args means every level.
func resolveLevels(args []string) ([]levels.Level, error) {
	loader := levelLoader()
	if len(args) == 0 {
		lvls, err := loader.LoadAll()
		if err != nil {
			return nil, err
		}
		if len(lvls) == 0 {
			return nil, fmt.Errorf("no levels found in %s", loader.Root)
		}
		return lvls, nil
	}

	lvls := make([]levels.Level, 0, len(args))
	for _, arg := range args {
		var lvl levels.Level
		var err error
		if levels.IsLevelFile(arg) {
			lvl, err = levels.LoadPath(arg)
		} else {
			lvl, err = loader.LoadByID(arg)
		}
		if err != nil {
			return nil, err
		}
		lvls = append(lvls, lvl)
	}
	return lvls, nil
}

// useColor decides whether output to f gets ANSI styling.
func useColor(f *os.File) (bool, error) {
	switch flagColor {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		return term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid --color %q (want auto, always or never)", flagColor)
	}
}

// analyzeAll runs the analyzer over every level in order.
func analyzeAll(ctx context.Context, an *sim.Analyzer, lvls []levels.Level) ([]sim.LevelResult, error) {
	results := make([]sim.LevelResult, 0, len(lvls))
	for i := range lvls {
		res, err := an.Analyze(ctx, &lvls[i])
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// newAnalyzer wires config and logging into an analyzer.
func newAnalyzer() (*sim.Analyzer, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return sim.NewAnalyzer(cfg, logger, flagWorkers), nil
}
