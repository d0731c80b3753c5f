package config

import (
	"fmt"
	"strings"
)

// Difficulty is the player's chosen obstacle density.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the selectable levels in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty maps a user-supplied name to a Difficulty.
// Matching is case-insensitive; "normal" is accepted as an alias for medium.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, true
	case "medium", "normal":
		return DifficultyMedium, true
	case "hard":
		return DifficultyHard, true
	default:
		return "", false
	}
}

// DifficultyConfig maps each difficulty to an obstacle count.
type DifficultyConfig struct {
	Default Difficulty `yaml:"default" toml:"default"`
	Easy    int        `yaml:"easy" toml:"easy"`
	Medium  int        `yaml:"medium" toml:"medium"`
	Hard    int        `yaml:"hard" toml:"hard"`
}

// ObstacleCount returns the obstacle count for d.
// The boolean is false for difficulties outside the closed set.
func (c DifficultyConfig) ObstacleCount(d Difficulty) (int, bool) {
	switch d {
	case DifficultyEasy:
		return c.Easy, true
	case DifficultyMedium:
		return c.Medium, true
	case DifficultyHard:
		return c.Hard, true
	default:
		return 0, false
	}
}

func (c DifficultyConfig) validate() error {
	if c.Easy < 0 || c.Medium < 0 || c.Hard < 0 {
		return fmt.Errorf("difficulty counts must not be negative (easy=%d medium=%d hard=%d)", c.Easy, c.Medium, c.Hard)
	}
	if _, ok := c.ObstacleCount(c.Default); !ok {
		return fmt.Errorf("difficulty.default %q is not one of easy, medium, hard", c.Default)
	}
	return nil
}
