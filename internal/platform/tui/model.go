package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starfield-dodge/internal/config"
	"github.com/vovakirdan/starfield-dodge/internal/core"
	"github.com/vovakirdan/starfield-dodge/internal/games/dodge/sim"
	"github.com/vovakirdan/starfield-dodge/internal/storage"
)

// Game is what the platform needs from a game: pure logic driven by fixed
// ticks, plus the difficulty and session result hooks the picker and the
// run history use.
type Game interface {
	ID() string
	Title() string

	// Reset sizes the game to the screen and starts a fresh session.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the pre-sized screen buffer.
	Render(dst *core.Screen)

	State() core.GameState

	// SetDifficulty selects the difficulty for the next restart.
	SetDifficulty(d config.Difficulty)
	Difficulty() config.Difficulty

	// LastResult returns the record of the session that just ended.
	LastResult() (sim.Record, bool)
}

// GameModel is the Bubble Tea model that runs a game session.
type GameModel struct {
	game          Game
	screen        *core.Screen
	store         *storage.Store
	config        core.RuntimeConfig
	inputFrame    core.InputFrame
	gameState     core.GameState
	keyMapper     *KeyMapper
	logger        *log.Logger
	screenshotDir string
	quitting      bool
	backToMenu    bool
	resized       bool // Screen changed while the summary was showing
}

// NewGameModel creates a model for the given game. store may be nil.
func NewGameModel(game Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = log.Default()
	}

	return GameModel{
		game:          game,
		screen:        core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:         store,
		config:        cfg,
		inputFrame:    core.NewInputFrame(),
		keyMapper:     NewKeyMapper(),
		logger:        logger,
		screenshotDir: defaultScreenshotDir(),
	}
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "dodge-screenshots")
	}
	return filepath.Join(home, ".dodge", "screenshots")
}

// Init starts the first session and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("session started", "difficulty", m.game.Difficulty(), "width", m.config.ScreenW, "height", m.config.ScreenH)
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
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.gameState.GameOver {
		if d, ok := m.keyMapper.MapDifficultyKey(msg); ok {
			m.game.SetDifficulty(d)
			return m, nil
		}
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to the picker only from a stopped screen
	if action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, nil
	}

	// The canvas still has the old size; rebuild it for the new session.
	if action == core.ActionRestart && m.resized {
		m.resized = false
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize resizes the screen and restarts a running session on the
// new canvas. A finished session keeps its summary until the next restart.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.gameState.GameOver {
		m.resized = true
		return m, nil
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Ended {
		m.recordRun()
	}

	return m, tickCmd(m.config.TickRate)
}

// recordRun logs the finished session and appends it to the run history.
// Persistence failures are logged and never interrupt play.
func (m GameModel) recordRun() {
	rec, ok := m.game.LastResult()
	if !ok {
		return
	}
	difficulty := m.game.Difficulty()
	m.logger.Info("session ended",
		"difficulty", difficulty,
		"elapsed", sim.FormatDuration(rec.Elapsed),
		"best", sim.FormatDuration(rec.Best),
		"new_record", rec.NewRecord,
	)
	if rec.SaveErr != nil {
		m.logger.Warn("could not save best time", "error", rec.SaveErr)
	}
	if m.store == nil {
		return
	}
	run, err := m.store.SaveRun(string(difficulty), rec.Elapsed, rec.NewRecord)
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.logger.Debug("run saved", "run_id", run.RunID)
}

// saveScreenshot writes the current frame as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the picker.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}
