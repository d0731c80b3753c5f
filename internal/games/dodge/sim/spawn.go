package sim

import (
	"math/rand"

	"github.com/vovakirdan/starfield-dodge/internal/config"
	"github.com/vovakirdan/starfield-dodge/internal/core"
)

// Spawner creates particles and obstacles and draws recycle positions.
// All randomness in the simulation flows through its RNG.
type Spawner struct {
	rng       *rand.Rand
	canvas    Canvas
	particles config.ParticleConfig
	obstacles config.ObstacleConfig
}

// NewSpawner creates a spawner for the given canvas.
func NewSpawner(rng *rand.Rand, canvas Canvas, particles config.ParticleConfig, obstacles config.ObstacleConfig) *Spawner {
	return &Spawner{
		rng:       rng,
		canvas:    canvas,
		particles: particles,
		obstacles: obstacles,
	}
}

// Particle creates a star below the bottom edge drifting upward.
// It is recycled into the canvas on its first tick.
func (s *Spawner) Particle() Particle {
	cfg := s.particles
	return Particle{
		Pos: core.Vec2{
			X: s.rng.Float64() * s.canvas.W,
			Y: s.canvas.H + cfg.SpawnOffset,
		},
		Vel: core.Vec2{
			X: s.rng.Float64()*2*cfg.DriftX - cfg.DriftX,
			Y: -s.rng.Float64()*cfg.RiseRange - cfg.RiseMin,
		},
		Radius: s.rng.Float64()*cfg.RadiusRange + cfg.MinRadius,
	}
}

// Obstacle creates an asteroid on a uniformly chosen edge.
func (s *Spawner) Obstacle() Obstacle {
	return s.ObstacleFrom(Edge(s.rng.Intn(4)))
}

// ObstacleFrom creates an asteroid just outside the given edge, heading
// across the canvas. Every asteroid also gets the drift bias on both axes.
func (s *Spawner) ObstacleFrom(edge Edge) Obstacle {
	w, h := s.canvas.W, s.canvas.H
	off := s.obstacles.SpawnOffset

	var pos, vel core.Vec2
	switch edge {
	case EdgeTop:
		pos = core.Vec2{X: s.rng.Float64() * w, Y: -off}
		vel = core.Vec2{X: s.rng.Float64() - 0.5, Y: s.rng.Float64() + 0.5}
	case EdgeBottom:
		pos = core.Vec2{X: s.rng.Float64() * w, Y: h + off}
		vel = core.Vec2{X: s.rng.Float64() - 0.5, Y: -(s.rng.Float64() + 0.5)}
	case EdgeLeft:
		pos = core.Vec2{X: -off, Y: s.rng.Float64() * h}
		vel = core.Vec2{X: s.rng.Float64() + 0.5, Y: s.rng.Float64() - 0.5}
	default:
		pos = core.Vec2{X: w + off, Y: s.rng.Float64() * h}
		vel = core.Vec2{X: -(s.rng.Float64() + 0.5), Y: s.rng.Float64() - 0.5}
	}

	bias := s.obstacles.DriftBias
	vel = vel.Add(core.Vec2{X: bias, Y: bias})

	return Obstacle{Pos: pos, Vel: vel, Size: s.obstacles.Size}
}

// InCanvas returns a uniformly random position inside the canvas.
func (s *Spawner) InCanvas() core.Vec2 {
	return core.Vec2{
		X: s.rng.Float64() * s.canvas.W,
		Y: s.rng.Float64() * s.canvas.H,
	}
}

// AboveTop returns a recycle position for an asteroid that fell past the
// bottom edge: random x, fixed y just above the top.
func (s *Spawner) AboveTop() core.Vec2 {
	return core.Vec2{
		X: s.rng.Float64() * s.canvas.W,
		Y: s.obstacles.RecycleY,
	}
}
