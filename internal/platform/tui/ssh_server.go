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

	"github.com/LaMitaOne/glint/internal/engine"
	"github.com/LaMitaOne/glint/internal/registry"
	"github.com/LaMitaOne/glint/internal/storage"
)

// shutdownTimeout bounds how long Shutdown waits for live sessions.
const shutdownTimeout = 30 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key is auto-generated at .ssh/glint_ed25519.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Engine options applied to every remote viewer session.
	Engine engine.Options

	// SaveRuns records a run row when a remote viewer closes.
	SaveRuns bool
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.glint/runs.db",
		IdleTimeout: 30 * time.Minute,
		SaveRuns:    true,
	}
}

// SSHServer wraps a Wish SSH server for the glint platform.
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
		Prefix:          "glint-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = filepath.Join(".ssh", "glint_ed25519")
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

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	store := s.store
	if !s.config.SaveRuns {
		store = nil
	}

	model := NewSessionModel(store, s.config.Engine, pty.Window.Width, pty.Window.Height)

	return model, []tea.ProgramOption{
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
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
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

// sessionPhase tracks which screen a remote session is showing.
type sessionPhase int

const (
	phaseMenu sessionPhase = iota
	phaseViewer
	phaseStats
)

// SessionModel manages the full remote session flow:
// menu -> viewer -> menu, with a stats browser on the side.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store      *storage.Store
	engineOpts engine.Options
	width      int
	height     int

	phase    sessionPhase
	menu     MenuModel
	viewer   *Viewer
	stats    *StatsModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, opts engine.Options, width, height int) SessionModel {
	return SessionModel{
		store:      store,
		engineOpts: opts,
		width:      width,
		height:     height,
		phase:      phaseMenu,
		menu:       NewMenuModel(width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Track window size globally so new phases start at the right size
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.phase {
	case phaseViewer:
		return m.updateViewer(msg)
	case phaseStats:
		return m.updateStats(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates while the picker is on screen.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsStats() {
		stats := NewStatsModel(m.store, m.width, m.height)
		m.stats = &stats
		m.phase = phaseStats
		return m, m.stats.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		effect, err := registry.Create(selected.EffectID)
		if err != nil {
			// Shouldn't happen since the menu only shows registered effects
			return m, nil
		}

		viewer := NewViewer(effect, ViewerConfig{
			Cols:      m.width,
			Rows:      m.height,
			Engine:    m.engineOpts,
			Store:     m.store,
			InSession: true,
		})
		m.viewer = &viewer
		m.phase = phaseViewer

		return m, m.viewer.Init()
	}

	return m, cmd
}

// updateViewer handles updates while an effect is running.
func (m SessionModel) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.viewer.Update(msg)
	if viewerModel, ok := newModel.(Viewer); ok {
		m.viewer = &viewerModel
	}

	if m.viewer.BackToMenu() {
		m.viewer = nil
		m.phase = phaseMenu
		m.menu = NewMenuModel(m.width, m.height)
		return m, m.menu.Init()
	}

	if m.viewer.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateStats handles updates while the stats browser is on screen.
func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.stats.Update(msg)
	if statsModel, ok := newModel.(StatsModel); ok {
		m.stats = &statsModel
	}

	if m.stats.IsGoingBack() {
		m.stats = nil
		m.phase = phaseMenu
		m.menu = NewMenuModel(m.width, m.height)
		return m, m.menu.Init()
	}

	if m.stats.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current phase.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseViewer:
		if m.viewer != nil {
			return m.viewer.View()
		}
	case phaseStats:
		if m.stats != nil {
			return m.stats.View()
		}
	}

	return m.menu.View()
}
