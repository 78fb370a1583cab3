package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-agi/internal/config"
	"github.com/vovakirdan/tui-agi/internal/interp"
	"github.com/vovakirdan/tui-agi/internal/resource"
	"github.com/vovakirdan/tui-agi/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.agi/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Engine configures the journal and the logger. Sessions run under the
	// config their LoadedGame carries.
	Engine config.EngineConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Engine:      config.DefaultEngineConfig(),
	}
}

// LoadedGame is a game ready to run in a session.
type LoadedGame struct {
	ID        string
	Resources resource.Game
	Config    config.EngineConfig
}

// GameLoader opens the game a session asked for. The name is the first
// word of the SSH command, or "" for the default game.
type GameLoader func(name string) (LoadedGame, error)

// SSHServer wraps a Wish SSH server that runs one interpreter per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	load   GameLoader
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, load GameLoader) (*SSHServer, error) {
	logger := cfg.Engine.NewLogger(os.Stderr, "agi-ssh")

	var store *storage.Store
	if cfg.Engine.Journal.Enabled {
		var err error
		store, err = storage.Open(cfg.Engine.Journal.Path)
		if err != nil {
			logger.Warn("could not open journal database", "error", err)
			// Continue without storage
		}
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		load:   load,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".agi", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session. The
// command "journal" opens the journal viewer; any other command names the
// game to play.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}
	opts := []tea.ProgramOption{tea.WithAltScreen()}

	name := ""
	if cmd := sshSession.Command(); len(cmd) > 0 {
		name = cmd[0]
	}
	if name == "journal" {
		if s.store == nil {
			wish.Fatalln(sshSession, "journal is disabled")
			return nil, nil
		}
		return NewJournalModel(s.store, pty.Window.Width, pty.Window.Height), opts
	}

	game, err := s.load(name)
	if err != nil {
		s.logger.Error("cannot load game", "user", sshSession.User(), "game", name, "error", err)
		wish.Fatalln(sshSession, fmt.Sprintf("cannot load game %q", name))
		return nil, nil
	}

	var journal interp.Journal
	var session *storage.SessionJournal
	if s.store != nil {
		session, err = s.store.Journal(game.ID, sshSession.User())
		if err != nil {
			s.logger.Warn("cannot start journal session", "error", err)
		} else {
			journal = session
		}
	}

	model := NewModel(game.Resources, Options{
		Config:   game.Config,
		Journal:  journal,
		Logger:   s.logger.With("user", sshSession.User(), "game", game.ID),
		Lipgloss: bubbletea.MakeRenderer(sshSession),
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
	})

	if session != nil {
		counters := model.Counters()
		go func() {
			<-sshSession.Context().Done()
			ticks, faults := counters.Load()
			if err := session.End(ticks, faults); err != nil {
				s.logger.Warn("cannot end journal session", "error", err)
			}
		}()
	}

	return model, opts
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
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

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
