// Package config provides YAML/TOML game configuration loading and
// difficulty selection for Starfield Dodge.
package config

import (
	"errors"
	"fmt"
)

// DodgeConfig contains all tunables for the simulation.
type DodgeConfig struct {
	Canvas     CanvasConfig     `yaml:"canvas" toml:"canvas"`
	Player     PlayerConfig     `yaml:"player" toml:"player"`
	Particles  ParticleConfig   `yaml:"particles" toml:"particles"`
	Obstacles  ObstacleConfig   `yaml:"obstacles" toml:"obstacles"`
	Collision  CollisionConfig  `yaml:"collision" toml:"collision"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// CanvasConfig defines the logical playfield.
// Width and Height of 0 mean "derive from the terminal" using the cell scale.
type CanvasConfig struct {
	Width      float64 `yaml:"width" toml:"width"`
	Height     float64 `yaml:"height" toml:"height"`
	CellWidth  float64 `yaml:"cell_width" toml:"cell_width"`
	CellHeight float64 `yaml:"cell_height" toml:"cell_height"`
}

// PlayerConfig defines the ship. Its position is the sprite center.
type PlayerConfig struct {
	Size  float64 `yaml:"size" toml:"size"`
	Speed float64 `yaml:"speed" toml:"speed"`
}

// ParticleConfig defines the decorative star field.
type ParticleConfig struct {
	Count       int     `yaml:"count" toml:"count"`
	SpawnOffset float64 `yaml:"spawn_offset" toml:"spawn_offset"`
	MinRadius   float64 `yaml:"min_radius" toml:"min_radius"`
	RadiusRange float64 `yaml:"radius_range" toml:"radius_range"`
	DriftX      float64 `yaml:"drift_x" toml:"drift_x"`
	RiseMin     float64 `yaml:"rise_min" toml:"rise_min"`
	RiseRange   float64 `yaml:"rise_range" toml:"rise_range"`
}

// ObstacleConfig defines the asteroids. Their position is the sprite top-left.
type ObstacleConfig struct {
	Size        float64 `yaml:"size" toml:"size"`
	SpawnOffset float64 `yaml:"spawn_offset" toml:"spawn_offset"`
	RecycleY    float64 `yaml:"recycle_y" toml:"recycle_y"`
	DriftBias   float64 `yaml:"drift_bias" toml:"drift_bias"`
}

// CollisionConfig holds the sprite-to-hitbox correction.
type CollisionConfig struct {
	// Offset is applied inward on every side of the player's square sprite.
	// Negative values shrink the hitbox; -Size/2 reduces it to the center point.
	Offset float64 `yaml:"offset" toml:"offset"`
}

// Validate checks that the config describes a playable game.
func (c DodgeConfig) Validate() error {
	var errs []error
	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		errs = append(errs, errors.New("canvas size must not be negative"))
	}
	if (c.Canvas.Width == 0 || c.Canvas.Height == 0) && (c.Canvas.CellWidth <= 0 || c.Canvas.CellHeight <= 0) {
		errs = append(errs, errors.New("cell_width and cell_height must be positive when the canvas size is derived"))
	}
	if c.Player.Size <= 0 {
		errs = append(errs, errors.New("player.size must be positive"))
	}
	if c.Player.Speed < 0 {
		errs = append(errs, errors.New("player.speed must not be negative"))
	}
	if c.Particles.Count < 0 {
		errs = append(errs, errors.New("particles.count must not be negative"))
	}
	if c.Obstacles.Size <= 0 {
		errs = append(errs, errors.New("obstacles.size must be positive"))
	}
	if err := c.Difficulty.validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// CanvasSize resolves the logical canvas for a terminal playfield of
// cols x rows cells.
func (c DodgeConfig) CanvasSize(cols, rows int) (w, h float64) {
	w, h = c.Canvas.Width, c.Canvas.Height
	if w == 0 {
		w = float64(cols) * c.Canvas.CellWidth
	}
	if h == 0 {
		h = float64(rows) * c.Canvas.CellHeight
	}
	return w, h
}
