package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starfield-dodge/internal/config"
	"github.com/vovakirdan/starfield-dodge/internal/core"
)

func newTestMenu() MenuModel {
	return NewMenuModel(nil, config.DefaultDodgeConfig().Difficulty, core.DefaultConfig())
}

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	menu, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, want MenuModel", next)
	}
	return menu, cmd
}

func TestMenuStartsOnDefault(t *testing.T) {
	m := newTestMenu()
	if m.Selected() != config.DifficultyMedium {
		t.Errorf("Selected() = %q, want medium", m.Selected())
	}
	if !strings.Contains(m.View(), "(*) 2  medium") {
		t.Errorf("View() should mark medium:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "Best --:--.---") {
		t.Errorf("View() should show an empty best time:\n%s", m.View())
	}
}

func TestMenuNavigationWraps(t *testing.T) {
	m := newTestMenu()

	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Selected() != config.DifficultyHard {
		t.Fatalf("after down: %q, want hard", m.Selected())
	}
	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Selected() != config.DifficultyEasy {
		t.Fatalf("after wrap: %q, want easy", m.Selected())
	}
	m, _ = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Selected() != config.DifficultyHard {
		t.Fatalf("after up: %q, want hard", m.Selected())
	}
	if m.Chosen() {
		t.Error("navigation alone should not choose")
	}
}

func TestMenuNumberKeyChooses(t *testing.T) {
	m, cmd := updateMenu(t, newTestMenu(), runeKey("1"))
	if !m.Chosen() || m.Selected() != config.DifficultyEasy {
		t.Errorf("Chosen() = %v, Selected() = %q; want true, easy", m.Chosen(), m.Selected())
	}
	if cmd == nil {
		t.Error("choosing should end the picker program")
	}
}

func TestMenuEnterChoosesCursor(t *testing.T) {
	m, _ := updateMenu(t, newTestMenu(), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Chosen() || m.Selected() != config.DifficultyMedium {
		t.Errorf("Chosen() = %v, Selected() = %q", m.Chosen(), m.Selected())
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m, _ := updateMenu(t, newTestMenu(), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should request the scoreboard")
	}

	m, _ = updateMenu(t, newTestMenu(), runeKey("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting picker should render nothing")
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m, _ := updateMenu(t, newTestMenu(), tea.WindowSizeMsg{Width: 120, Height: 40})
	cfg := m.Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %dx%d, want 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestMenuWithBest(t *testing.T) {
	m := newTestMenu().WithBest(65432*time.Millisecond, true)
	if !strings.Contains(m.View(), "Best 01:05.432") {
		t.Errorf("View() should show the best time:\n%s", m.View())
	}

	m = newTestMenu().WithBest(time.Second, false)
	if !strings.Contains(m.View(), "Best --:--.---") {
		t.Error("WithBest(ok=false) should keep the placeholder")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q, want %q", got, "  ab")
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("centerText should not trim, got %q", got)
	}
}
