package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelsim/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve [level...]",
	Short: "Start the level browser SSH server",
	Long: `Analyze the levels once and start an SSH server that lets designers
browse the reports remotely.

Every SSH connection gets its own browser over the same results. Runs
recorded with 's' go to the server's history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.levelsim/host_key

Examples:
  levelsim serve                           # Listen on :23235 with auto-generated key
  levelsim serve --ssh :2222               # Listen on port 2222
  levelsim serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235
  ssh -t localhost -p 23235 city-park   # browse only the named levels`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, args []string) error {
	session, closeStore, err := buildSession(cmd, args)
	if err != nil {
		return err
	}
	defer closeStore()
	// Remote terminals pick their own colors.
	session.Color = true

	logger, err := newLogger()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("log-level") {
		logger.SetLevel(log.InfoLevel)
	}
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}
	server, err := tui.NewSSHServer(cfg, session, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Starting levelsim SSH server on %s\n", server.Addr())
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")
	return server.ListenAndServe()
}
