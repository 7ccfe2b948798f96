package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/levelsim/internal/platform/tui"
	"github.com/vovakirdan/levelsim/internal/storage"
)

var browseCmd = &cobra.Command{
	Use:   "browse [level...]",
	Short: "Browse level reports interactively",
	Long: `Analyze the levels and open an interactive browser over the results.

Controls:
  ↑/↓ or j/k  - Select level
  Enter       - Open report
  Esc         - Back to the level list
  s           - Record the selected result in history
  ?           - Toggle help
  q           - Quit

Examples:
  levelsim browse
  levelsim browse --levels ./drafts`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	session, closeStore, err := buildSession(cmd, args)
	if err != nil {
		return err
	}
	defer closeStore()

	width, height := 100, 40
	if w, h, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
		width, height = w, h
	}
	return tui.Run(session, width, height)
}

// buildSession analyzes the levels for the browser. A history database
// that cannot be opened only disables recording.
func buildSession(cmd *cobra.Command, args []string) (tui.Session, func(), error) {
	an, err := newAnalyzer()
	if err != nil {
		return tui.Session{}, nil, err
	}
	lvls, err := resolveLevels(args)
	if err != nil {
		return tui.Session{}, nil, err
	}
	results, err := analyzeAll(cmd.Context(), an, lvls)
	if err != nil {
		return tui.Session{}, nil, err
	}
	color, err := useColor(os.Stdout)
	if err != nil {
		return tui.Session{}, nil, err
	}

	session := tui.Session{
		Results: results,
		Engine:  an.Engine(),
		Color:   color,
	}
	closeStore := func() {}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
	} else {
		session.Store = store
		closeStore = func() { store.Close() }
	}
	return session, closeStore, nil
}
