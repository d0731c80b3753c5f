package config

import (
	_ "embed"
)

//go:embed defaults/dodge.yaml
var defaultDodgeYAML []byte

// DefaultDodgeConfig returns the hardcoded default configuration.
// It mirrors defaults/dodge.yaml and is the fallback if the embed fails to parse.
func DefaultDodgeConfig() DodgeConfig {
	return DodgeConfig{
		Canvas: CanvasConfig{
			Width:      0,
			Height:     0,
			CellWidth:  12,
			CellHeight: 24,
		},
		Player: PlayerConfig{
			Size:  90,
			Speed: 10,
		},
		Particles: ParticleConfig{
			Count:       40,
			SpawnOffset: 150,
			MinRadius:   0.5,
			RadiusRange: 2,
			DriftX:      2,
			RiseMin:     2,
			RiseRange:   4,
		},
		Obstacles: ObstacleConfig{
			Size:        80,
			SpawnOffset: 150,
			RecycleY:    -50,
			DriftBias:   2,
		},
		Collision: CollisionConfig{
			Offset: -45,
		},
		Difficulty: DifficultyConfig{
			Default: DifficultyMedium,
			Easy:    5,
			Medium:  15,
			Hard:    25,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `dodge config`.
func DefaultYAML() []byte {
	return defaultDodgeYAML
}
