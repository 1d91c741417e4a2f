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

	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/games/rush"
	"github.com/vovakirdan/lanerush/internal/lobby"
	"github.com/vovakirdan/lanerush/internal/registry"
	"github.com/vovakirdan/lanerush/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.lanerush/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.lanerush/scores.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server. All sessions share one scores
// database and one waiting-room board, so join codes opened in one
// session are visible from every other.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	board  *lobby.Board
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lanerush-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		board:  lobby.NewBoard(lobby.DefaultBoardConfig()),
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".lanerush", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
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

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: 60,
		Seed:     time.Now().UnixNano(),
	}

	// Create session model that handles menu + game flow
	model := NewSessionModel(s.store, s.board, cfg, sshSession.User())

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

	s.board.Start()

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

	s.board.Stop()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionState names the screen an SSH session is currently on.
type sessionState int

const (
	sessionStateMenu sessionState = iota
	sessionStateGame
	sessionStateScoreboard
	sessionStateRoom
)

// SessionModel manages the full session flow: menu -> match -> menu,
// with detours through the scoreboard and the waiting room.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	board    *lobby.Board
	config   core.RuntimeConfig
	username string

	state      sessionState
	menu       MenuModel
	gameModel  *GameModel
	scoreboard *ScoreboardModel
	room       *RoomModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, board *lobby.Board, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		store:    store,
		board:    board,
		config:   cfg,
		username: username,
		state:    sessionStateMenu,
		menu:     NewMenuModel(cfg, board != nil),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.state {
	case sessionStateGame:
		return m.updateGame(msg)
	case sessionStateScoreboard:
		return m.updateScoreboard(msg)
	case sessionStateRoom:
		return m.updateRoom(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		sb := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		m.state = sessionStateScoreboard
		return m, m.scoreboard.Init()
	}

	if m.menu.WantsHost() && m.board != nil {
		room := NewRoomModel(m.board, m.username, m.config.ScreenW, m.config.ScreenH)
		m.room = &room
		m.state = sessionStateRoom
		return m, m.room.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		rush.SetPlayerNames(m.username)
		rush.SetBotNames()
		return m.startGame(selected.GameID)
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	// Check if user quit game (back to menu)
	if m.gameModel.BackToMenu() {
		return m.backToMenu()
	}

	// Check if user quit entirely
	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateScoreboard handles updates when viewing the scoreboard.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsGoingBack() {
		return m.backToMenu()
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateRoom handles updates during the waiting-room flow.
func (m SessionModel) updateRoom(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.room.Update(msg)
	if room, ok := newModel.(RoomModel); ok {
		m.room = &room
	}

	if !m.room.Done() {
		return m, cmd
	}

	result := m.room.Result()
	m.room = nil

	switch {
	case result.Quit:
		m.quitting = true
		return m, tea.Quit

	case result.Start:
		// The lineup only carries names: everyone plays their own
		// local match, styled after the room's seats.
		names := seatBotNames(result.Lineup, result.Lane)
		rush.SetPlayerNames(m.username)
		rush.SetBotNames(names...)
		return m.startGame("rush")

	default:
		return m.backToMenu()
	}
}

// seatBotNames picks the bot display names for a room lineup, in lane
// order, skipping the local player's own seat. Empty entries keep the
// configured roster names.
func seatBotNames(lineup [3]lobby.Seat, ownLane int) []string {
	names := make([]string, 0, 2)
	for lane, seat := range lineup {
		if lane == ownLane {
			continue
		}
		if seat.IsBot {
			names = append(names, "")
		} else {
			names = append(names, seat.Name)
		}
	}
	return names
}

// startGame switches the session into a running match.
func (m SessionModel) startGame(gameID string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID)
	if err != nil {
		// Shouldn't happen since menu only shows registered games
		return m.backToMenu()
	}

	m.config.Seed = time.Now().UnixNano()
	gameModel := NewGameModel(game, m.store, m.config, gameID == "rush_duo")
	m.gameModel = &gameModel
	m.state = sessionStateGame

	return m, m.gameModel.Init()
}

// backToMenu resets the session to a fresh menu.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.state = sessionStateMenu
	m.gameModel = nil
	m.scoreboard = nil
	m.room = nil
	m.menu = NewMenuModel(m.config, m.board != nil)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case sessionStateGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case sessionStateScoreboard:
		if m.scoreboard != nil {
			return m.scoreboard.View()
		}
	case sessionStateRoom:
		if m.room != nil {
			return m.room.View()
		}
	}

	return m.menu.View()
}
