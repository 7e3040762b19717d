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

	"github.com/vovakirdan/companion/internal/capability"
	"github.com/vovakirdan/companion/internal/config"
	"github.com/vovakirdan/companion/internal/core"
	"github.com/vovakirdan/companion/internal/storage"
	"github.com/vovakirdan/companion/internal/wardrobe"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.companion/host_key.
	HostKeyPath string

	// DBPath is the path to the progress database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// FPS is the frame rate of every session.
	FPS int

	// Companion tunes every session's engine.
	Companion config.CompanionConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.companion/companion.db",
		IdleTimeout: 30 * time.Minute,
		FPS:         60,
		Companion:   config.Default(),
	}
}

// SSHServer serves one companion per SSH session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	sink   *storage.Sink
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "companion-ssh",
		})
	}

	// Progress is shared by every visitor; run without it if it won't open.
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open progress database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		sink:   storage.NewSink(store, logger),
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".companion", "host_key")
	}

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

	logger := s.logger.With("user", sshSession.User())
	opts := Options{
		Config: s.config.Companion,
		Runtime: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.config.FPS,
			Seed:     time.Now().UnixNano(),
		},
		Sink:     s.sink,
		Recorder: s.sink,
		// Visitors get a fresh companion; outfits last for the connection.
		Wardrobe: wardrobe.NewStore(nil, logger),
		Haptics:  capability.NewBellHaptics(sshSession),
		Logger:   logger,
		Embedded: true,
	}

	return NewSessionModel(s.store, opts), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
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

// SessionModel manages one visitor's flow: menu -> companion or
// challenges -> menu.
type SessionModel struct {
	store      *storage.Store
	opts       Options
	menu       MenuModel
	companion  *Model
	challenges *ChallengesModel
	quitting   bool
}

// NewSessionModel creates a new session model. opts.Embedded should be set.
func NewSessionModel(store *storage.Store, opts Options) SessionModel {
	return SessionModel{
		store: store,
		opts:  opts,
		menu:  NewMenuModel(store, opts.profileName(), opts.Runtime),
	}
}

func (o Options) profileName() string {
	if o.Wardrobe != nil {
		return o.Wardrobe.Profile().Name
	}
	return "Your companion"
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch {
	case m.companion != nil:
		return m.updateCompanion(msg)
	case m.challenges != nil:
		return m.updateChallenges(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Selected() {
	case ScreenCompanion:
		companion := NewModel(m.opts)
		m.companion = &companion
		return m, m.companion.Init()

	case ScreenChallenges:
		challenges := NewChallengesModel(m.store, m.opts.Config.Challenges,
			m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.challenges = &challenges
		return m, m.challenges.Init()
	}

	return m, cmd
}

func (m SessionModel) updateCompanion(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.companion.Update(msg)
	if companion, ok := newModel.(Model); ok {
		m.companion = &companion
	}

	if m.companion.Done() {
		m.companion = nil
		// ctrl+c ends the whole connection.
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) updateChallenges(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, _ := m.challenges.Update(msg)
	if challenges, ok := newModel.(ChallengesModel); ok {
		m.challenges = &challenges
	}

	if m.challenges.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.challenges.IsGoingBack() {
		m.challenges = nil
		return m.backToMenu()
	}
	return m, nil
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.store, m.opts.profileName(), m.opts.Runtime)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.companion != nil:
		return m.companion.View()
	case m.challenges != nil:
		return m.challenges.View()
	}
	return m.menu.View()
}
