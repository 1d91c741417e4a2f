package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/registry"
	"github.com/vovakirdan/lanerush/internal/storage"
)

// GameModel is the Bubble Tea model for running one game mode. The
// simulation is dt-driven: each tick the model measures the wall-clock
// delta since the previous tick and forwards it to the game, so a slow
// terminal never slows the match down.
type GameModel struct {
	game         registry.Game
	screen       *core.Screen
	store        *storage.Store
	config       core.RuntimeConfig
	inputFrame   core.MultiInputFrame
	gameState    core.GameState
	keyMapper    *KeyMapper
	lastTick     time.Time
	quitting     bool
	backToMenu   bool
	resultsSaved bool // Whether results have been recorded for current game over
}

// NewGameModel creates a game model. duo routes the up arrow to the
// second keyboard seat.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, duo bool) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewMultiInputFrame(),
		keyMapper:  NewKeyMapper(duo),
	}
}

// Init initializes the model and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToMultiFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu once the match is over or paused
	if action := m.keyMapper.MapKeyToMenuAction(msg); action == MenuActionBack &&
		(m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, nil
	}

	return m, nil
}

// handleResize processes window resize events. The match itself is world-
// unit based and survives a resize; only the screen buffer changes.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the simulation by the measured wall-clock delta.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := 1.0 / float64(m.config.TickRate)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	// Check for restart
	if m.inputFrame.Player1().Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.resultsSaved = false
		m.lastTick = time.Time{}
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame, dt)
	m.gameState = result.State

	if m.gameState.GameOver && !m.resultsSaved {
		m.saveResults()
		m.resultsSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveResults records the finished match: one run row per human lane plus
// the full ranked outcome. Best effort; the overlay shows the standings
// either way.
func (m *GameModel) saveResults() {
	if m.store == nil {
		return
	}

	results := m.game.Results()
	if len(results) == 0 {
		return
	}

	for _, r := range results {
		if r.IsBot {
			continue
		}
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveRun(m.game.ID(), r.Name, r.Time)
	}

	rec := storage.MatchRecord{
		MatchID:  fmt.Sprintf("match-%d", time.Now().UnixNano()),
		ModeID:   m.game.ID(),
		Winner:   results[0].Name,
		Duration: results[0].Time,
	}
	for i, r := range results {
		rec.Lanes = append(rec.Lanes, storage.MatchLane{
			Lane:    r.Lane,
			Player:  r.Name,
			IsBot:   r.IsBot,
			Seconds: r.Time,
			Rank:    i + 1,
		})
	}
	//nolint:errcheck // Best-effort save
	m.store.SaveMatch(rec)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".lanerush", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for one game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, duo bool) error {
	model := NewGameModel(game, store, cfg, duo)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
