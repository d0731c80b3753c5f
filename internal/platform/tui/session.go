package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starfield-dodge/internal/config"
	"github.com/vovakirdan/starfield-dodge/internal/core"
	"github.com/vovakirdan/starfield-dodge/internal/games/dodge"
	"github.com/vovakirdan/starfield-dodge/internal/games/dodge/sim"
	"github.com/vovakirdan/starfield-dodge/internal/storage"
)

// SessionOptions configure a SessionModel.
type SessionOptions struct {
	Store   *storage.Store // nil keeps the best time in memory and skips run history
	Game    config.DodgeConfig
	Runtime core.RuntimeConfig

	// Difficulty, when set, skips the picker and starts playing at once.
	Difficulty config.Difficulty

	Feedback sim.Feedback
	Logger   *log.Logger
}

type sessionScreen int

const (
	screenPicker sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow: picker -> game -> picker, with the
// run history reachable from the picker. It is the top-level model for
// both local play and SSH sessions.
type SessionModel struct {
	opts      SessionOptions
	config    core.RuntimeConfig
	screen    sessionScreen
	game      *dodge.Game
	menu      MenuModel
	scores    ScoreboardModel
	gameModel *GameModel
	quitting  bool
}

// NewSessionModel creates a session. The game instance lives for the whole
// session so the best time survives trips back to the picker.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	gameOpts := dodge.Options{
		Config:     opts.Game,
		Difficulty: opts.Difficulty,
		Feedback:   opts.Feedback,
	}
	if opts.Store != nil {
		gameOpts.Best = opts.Store.Slot(storage.BestTimeSlot)
	}
	game := dodge.New(gameOpts)
	if err := game.LoadBest(); err != nil {
		opts.Logger.Warn("could not load best time", "error", err)
	}

	m := SessionModel{
		opts:   opts,
		config: opts.Runtime,
		game:   game,
	}
	m.menu = NewMenuModel(opts.Store, opts.Game.Difficulty, opts.Runtime).WithBest(game.Best())
	if opts.Difficulty != "" {
		m.startGame(opts.Difficulty)
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == screenGame {
		return m.gameModel.Init()
	}
	return m.menu.Init()
}

// Update routes messages to the active screen. Children quit their own
// programs when they finish; those commands are dropped here and the
// session moves to the next screen instead.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updatePicker(msg)
	}
}

func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Ticks left over from a finished game end their chain here.
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	newMenu, cmd := m.menu.Update(msg)
	if menu, ok := newMenu.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()
	case m.menu.Chosen():
		m.config = m.menu.Config()
		m.startGame(m.menu.Selected())
		return m, m.gameModel.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gm, ok := newModel.(GameModel); ok {
		m.gameModel = &gm
	}

	if m.gameModel.IsQuitting() {
		m.game.Stop()
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.game.Stop()
		m.gameModel = nil
		m.showPicker()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		m.showPicker()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m *SessionModel) startGame(d config.Difficulty) {
	m.game.SetDifficulty(d)
	gm := NewGameModel(m.game, m.opts.Store, m.config, m.opts.Logger)
	m.gameModel = &gm
	m.screen = screenGame
}

// showPicker rebuilds the picker so it reflects the latest best time,
// including one saved by another session sharing the store.
func (m *SessionModel) showPicker() {
	if err := m.game.LoadBest(); err != nil {
		m.opts.Logger.Warn("could not reload best time", "error", err)
	}
	difficulties := m.opts.Game.Difficulty
	difficulties.Default = m.game.Difficulty()
	m.menu = NewMenuModel(m.opts.Store, difficulties, m.config).WithBest(m.game.Best())
	m.screen = screenPicker
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// IsQuitting returns true once the session has ended.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}

// Game returns the session's game.
func (m SessionModel) Game() *dodge.Game {
	return m.game
}

// Run plays a local session on the current terminal.
func Run(opts SessionOptions) error {
	p := tea.NewProgram(NewSessionModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
