package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/levelsim/internal/sim"
)

// SSHServerConfig holds configuration for the report server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.levelsim/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves the level browser over SSH. Connections browse the
// results analyzed at startup; the SSH command line may name level IDs to
// narrow a connection to those levels:
//
//	ssh -p 23235 host city-park underground-tunnels
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	session Session
	logger  *log.Logger
}

type levelsKey struct{}

// NewSSHServer creates a report server over an analyzed session.
func NewSSHServer(cfg SSHServerConfig, s Session, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "levelsim-ssh",
		})
	}

	srv := &SSHServer{
		config:  cfg,
		session: s,
		logger:  logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".levelsim", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	// The last middleware runs first: log, pick levels, then browse.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.levelsMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// Select narrows a session to the results for the given level IDs, in the
// order asked. No IDs keeps every result. Unknown IDs are returned.
func Select(s Session, ids []string) (Session, []string) {
	if len(ids) == 0 {
		return s, nil
	}
	byID := make(map[string]sim.LevelResult, len(s.Results))
	for _, res := range s.Results {
		byID[res.Level.ID] = res
	}

	var unknown []string
	picked := make([]sim.LevelResult, 0, len(ids))
	for _, id := range ids {
		res, ok := byID[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		picked = append(picked, res)
	}
	s.Results = picked
	return s, unknown
}

// levelsMiddleware resolves the levels named on the SSH command line and
// refuses the connection when any is unknown.
func (s *SSHServer) levelsMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		picked, unknown := Select(s.session, sess.Command())
		if len(unknown) > 0 {
			s.logger.Warn("unknown levels requested", "user", sess.User(), "levels", unknown)
			wish.Fatalf(sess, "unknown level: %s\navailable: %s\n",
				strings.Join(unknown, ", "), strings.Join(levelIDs(s.session), ", "))
			return
		}
		sess.Context().SetValue(levelsKey{}, picked)
		next(sess)
	}
}

func levelIDs(s Session) []string {
	ids := make([]string, len(s.Results))
	for i, res := range s.Results {
		ids[i] = res.Level.ID
	}
	return ids
}

// teaHandler opens a browser over the connection's levels, sized to its PTY.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "levelsim needs a terminal: connect with ssh -t")
		return nil, nil
	}

	picked, ok := sess.Context().Value(levelsKey{}).(Session)
	if !ok {
		picked = s.session
	}
	return NewModel(picked, pty.Window.Width, pty.Window.Height), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs each connection with the levels it asked for.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		started := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"levels", sess.Command(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(started).Round(time.Second),
		)
	}
}

// ListenAndServe starts the server and blocks until interrupted.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "levels", len(s.session.Results))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
