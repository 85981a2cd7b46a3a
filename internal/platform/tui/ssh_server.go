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

	"github.com/vovakirdan/procne/internal/campaign"
	"github.com/vovakirdan/procne/internal/config"
	"github.com/vovakirdan/procne/internal/core"
	"github.com/vovakirdan/procne/internal/registry"
	"github.com/vovakirdan/procne/internal/sim"
	"github.com/vovakirdan/procne/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.procne/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// FPS is the frame rate of every session.
	FPS int

	// Game is the tuning shared by every session.
	Game config.Config

	// Difficulty is recorded with every run.
	Difficulty string

	// NewNarrator builds the narrator of one session. Nil disables narration.
	NewNarrator func() sim.Narrator
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.procne/runs.db",
		IdleTimeout: 30 * time.Minute,
		FPS:         60,
		Game:        config.DefaultConfig(),
		Difficulty:  string(config.DifficultyNormal),
	}
}

// SSHServer serves one single-player campaign per SSH session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "procne-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".procne", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	rt := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.FPS,
		Seed:     time.Now().UnixNano(),
	}

	return NewSessionModel(s.config, s.store, rt, s.logger.With("user", sshSession.User())), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
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

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages the flow of one remote player: menu, then campaign.
type SessionModel struct {
	config  SSHServerConfig
	store   *storage.Store
	runtime core.RuntimeConfig
	logger  *log.Logger
	menu    MenuModel
	game    *Model
	failure error
}

// NewSessionModel creates a session that starts on the episode picker.
func NewSessionModel(cfg SSHServerConfig, store *storage.Store, rt core.RuntimeConfig, logger *log.Logger) SessionModel {
	return SessionModel{
		config:  cfg,
		store:   store,
		runtime: rt,
		logger:  logger,
		menu:    NewMenuModel(rt.ScreenW, rt.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	if m.game != nil {
		next, cmd := m.game.Update(msg)
		if g, ok := next.(Model); ok {
			m.game = &g
		}
		return m, cmd
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	res := m.menu.result()
	switch {
	case res.WantsRuns:
		// The runs board is local-only; remote players go straight back.
		m.menu = NewMenuModel(m.runtime.ScreenW, m.runtime.ScreenH)
		return m, nil
	case m.menu.quitting:
		return m, tea.Quit
	case m.menu.Selected() < 0:
		return m, cmd
	}

	c, err := m.newCampaign(res.StartIndex)
	if err != nil {
		m.logger.Error("campaign not started", "err", err)
		m.failure = err
		return m, tea.Quit
	}
	game := NewModel(c, m.config.Game, m.runtime, m.logger)
	m.game = &game
	return m, game.Init()
}

func (m SessionModel) newCampaign(start int) (*campaign.Campaign, error) {
	opts := []campaign.Option{
		campaign.WithLogger(m.logger),
		campaign.WithSeed(m.runtime.Seed),
		campaign.WithDifficulty(m.config.Difficulty),
		campaign.WithStartIndex(start),
	}
	if m.store != nil {
		opts = append(opts, campaign.WithRunSink(m.store))
	}
	if m.config.NewNarrator != nil {
		opts = append(opts, campaign.WithNarrator(m.config.NewNarrator()))
	}
	return campaign.New(m.config.Game, registry.Campaign(), opts...)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.failure != nil {
		return "procne: " + m.failure.Error() + "\n"
	}
	if m.game != nil {
		return m.game.View()
	}
	return m.menu.View()
}
