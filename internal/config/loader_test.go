package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := decode("dodge.yaml", defaultDodgeYAML)
	if err != nil {
		t.Fatalf("embedded defaults failed to parse: %v", err)
	}
	if cfg != DefaultDodgeConfig() {
		t.Errorf("embedded defaults differ from DefaultDodgeConfig():\n got %+v\nwant %+v", cfg, DefaultDodgeConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadCustomYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("player:\n  speed: 25\ndifficulty:\n  hard: 40\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDodge(path)
	if err != nil {
		t.Fatalf("LoadDodge() failed: %v", err)
	}
	if cfg.Player.Speed != 25 {
		t.Errorf("Player.Speed = %v, expected 25", cfg.Player.Speed)
	}
	if cfg.Difficulty.Hard != 40 {
		t.Errorf("Difficulty.Hard = %d, expected 40", cfg.Difficulty.Hard)
	}
	// Unspecified fields keep defaults
	if cfg.Player.Size != 90 {
		t.Errorf("Player.Size = %v, expected default 90", cfg.Player.Size)
	}
	if cfg.Collision.Offset != -45 {
		t.Errorf("Collision.Offset = %v, expected default -45", cfg.Collision.Offset)
	}
}

func TestLoadCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	data := []byte("[canvas]\nwidth = 1280.0\nheight = 720.0\n\n[obstacles]\nsize = 64.0\n\n[difficulty]\ndefault = \"hard\"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDodge(path)
	if err != nil {
		t.Fatalf("LoadDodge() failed: %v", err)
	}
	if cfg.Canvas.Width != 1280 || cfg.Canvas.Height != 720 {
		t.Errorf("Canvas = %vx%v, expected 1280x720", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Obstacles.Size != 64 {
		t.Errorf("Obstacles.Size = %v, expected 64", cfg.Obstacles.Size)
	}
	if cfg.Difficulty.Default != DifficultyHard {
		t.Errorf("Difficulty.Default = %q, expected hard", cfg.Difficulty.Default)
	}
}

func TestLoadCustomMissingFile(t *testing.T) {
	_, err := LoadDodge(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
	if !strings.Contains(err.Error(), "failed to read config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadCustomInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("player:\n  size: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDodge(path); err == nil {
		t.Error("expected validation error for negative player size")
	}
}

func TestCanvasSize(t *testing.T) {
	cfg := DefaultDodgeConfig()
	w, h := cfg.CanvasSize(80, 23)
	if w != 960 || h != 552 {
		t.Errorf("derived canvas = %vx%v, expected 960x552", w, h)
	}

	cfg.Canvas.Width = 1000
	w, h = cfg.CanvasSize(80, 23)
	if w != 1000 || h != 552 {
		t.Errorf("fixed width canvas = %vx%v, expected 1000x552", w, h)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
		ok   bool
	}{
		{"easy", DifficultyEasy, true},
		{"Medium", DifficultyMedium, true},
		{"normal", DifficultyMedium, true},
		{" HARD ", DifficultyHard, true},
		{"nightmare", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := ParseDifficulty(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseDifficulty(%q) = (%q, %v), expected (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestObstacleCount(t *testing.T) {
	d := DefaultDodgeConfig().Difficulty
	tests := []struct {
		d    Difficulty
		want int
		ok   bool
	}{
		{DifficultyEasy, 5, true},
		{DifficultyMedium, 15, true},
		{DifficultyHard, 25, true},
		{Difficulty("insane"), 0, false},
	}
	for _, tc := range tests {
		got, ok := d.ObstacleCount(tc.d)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ObstacleCount(%q) = (%d, %v), expected (%d, %v)", tc.d, got, ok, tc.want, tc.ok)
		}
	}
}
