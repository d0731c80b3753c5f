package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/starfield-dodge/internal/config"
	"github.com/vovakirdan/starfield-dodge/internal/core"
	"github.com/vovakirdan/starfield-dodge/internal/games/dodge/sim"
	"github.com/vovakirdan/starfield-dodge/internal/storage"
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the difficulty picker shown before a session. It behaves
// like a radio group: exactly one difficulty is selected at a time.
type MenuModel struct {
	difficulties config.DifficultyConfig
	cursor       int
	width        int
	height       int
	best         string
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	quitting     bool
	chosen       bool
	scoreboard   bool
}

// NewMenuModel creates a picker with the cursor on the configured default.
// store may be nil.
func NewMenuModel(store *storage.Store, difficulties config.DifficultyConfig, cfg core.RuntimeConfig) MenuModel {
	cursor := 0
	for i, d := range config.Difficulties {
		if d == difficulties.Default {
			cursor = i
		}
	}

	best := "--:--.---"
	if store != nil {
		if d, ok, err := store.BestTime(storage.BestTimeSlot); err == nil && ok {
			best = sim.FormatDuration(d)
		}
	}

	return MenuModel{
		difficulties: difficulties,
		cursor:       cursor,
		width:        cfg.ScreenW,
		height:       cfg.ScreenH,
		best:         best,
		config:       cfg,
		keyMapper:    NewKeyMapper(),
	}
}

// WithBest overrides the best time shown above the list.
func (m MenuModel) WithBest(d time.Duration, ok bool) MenuModel {
	if ok {
		m.best = sim.FormatDuration(d)
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if d, ok := m.keyMapper.MapDifficultyKey(msg); ok {
		m.selectDifficulty(d)
		m.chosen = true
		return m, tea.Quit
	}

	n := len(config.Difficulties)
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionPrev:
		m.cursor = (m.cursor - 1 + n) % n
	case MenuActionNext:
		m.cursor = (m.cursor + 1) % n
	case MenuActionSelect:
		m.chosen = true
		return m, tea.Quit
	case MenuActionScoreboard:
		m.scoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *MenuModel) selectDifficulty(d config.Difficulty) {
	for i, item := range config.Difficulties {
		if item == d {
			m.cursor = i
		}
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S T A R F I E L D   D O D G E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Best "+m.best, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a difficulty", m.width))
	b.WriteString("\n\n")

	for i, d := range config.Difficulties {
		count, _ := m.difficulties.ObstacleCount(d)
		line := fmt.Sprintf("( ) %d  %-6s  %2d asteroids", i+1, d, count)
		if i == m.cursor {
			line = menuSelectedStyle.Render(fmt.Sprintf("(*) %d  %-6s  %2d asteroids", i+1, d, count))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Arrows: Choose  |  1-3/Enter: Play  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the difficulty under the cursor.
func (m MenuModel) Selected() config.Difficulty {
	return config.Difficulties[m.cursor]
}

// Chosen returns true once the player confirmed a difficulty.
func (m MenuModel) Chosen() bool {
	return m.chosen
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring printable cells
// so styled strings line up.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
