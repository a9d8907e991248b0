package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bowling/internal/core"
	"github.com/vovakirdan/tui-bowling/internal/registry"
	"github.com/vovakirdan/tui-bowling/internal/storage"
)

// Model is the Bubble Tea model for a single bowling lane.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	logger     *log.Logger
	player     string
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	saved      int // rounds persisted so far
	embedded   bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given lane.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		logger:     logger,
		player:     player,
		inputFrame: core.NewInputFrame(),
	}
}

// Init builds the lane and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

// handleKey queues lane actions for the next tick. Several keys can arrive
// between two ticks; they are applied in arrival order.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack {
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize only resizes the screen buffer; the lane keeps rolling.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick runs one host frame with the time elapsed since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	dtime := frameTime(m.lastTick, now)
	m.lastTick = now

	result := m.game.Frame(dtime, m.inputFrame)
	m.gameState = result.State
	for _, r := range result.Rounds {
		m.saveRound(r)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveRound persists a finished round. Failures are logged; play continues.
func (m *Model) saveRound(r core.RoundOutcome) {
	m.logger.Info("round finished",
		"lane", m.game.ID(),
		"player", m.player,
		"round", r.Round,
		"pins", r.PinsDown,
		"ended_by", r.EndedBy,
	)
	if m.store == nil {
		return
	}
	_, err := m.store.SaveRound(storage.RoundRecord{
		GameID:   m.game.ID(),
		Player:   m.player,
		Round:    r.Round,
		PinsDown: r.PinsDown,
		Steps:    r.Steps,
		SimTime:  r.SimTime,
		EndedBy:  r.EndedBy,
	})
	if err != nil {
		m.logger.Warn("could not save round", "error", err)
		return
	}
	m.saved++
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".bowling", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the lane picker.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// RoundsSaved returns how many rounds this model persisted.
func (m Model) RoundsSaved() int {
	return m.saved
}

// Run starts the Bubble Tea program for a single lane.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) error {
	model := NewModel(game, store, cfg, player, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
