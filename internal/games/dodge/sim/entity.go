// Package sim provides the real-time simulation for Starfield Dodge:
// entity storage, motion integration, collision detection, the session
// clock, and the loop that ties them together.
// This package is UI-agnostic and deterministic for a given RNG seed and clock.
package sim

import "github.com/vovakirdan/starfield-dodge/internal/core"

// Canvas is the logical playfield size in canvas units.
type Canvas struct {
	W, H float64
}

// Center returns the middle of the canvas.
func (c Canvas) Center() core.Vec2 {
	return core.Vec2{X: c.W / 2, Y: c.H / 2}
}

// Player is the ship. Pos is the center of its square sprite.
type Player struct {
	Pos   core.Vec2
	Size  float64 // Edge length of the square sprite
	Speed float64 // Displacement per directional input event
}

// Nudge displaces the player by Speed along the direction of a, n times.
// Non-directional actions are ignored.
func (p *Player) Nudge(a core.Action, n int) {
	step := p.Speed * float64(n)
	switch a {
	case core.ActionLeft:
		p.Pos.X -= step
	case core.ActionRight:
		p.Pos.X += step
	case core.ActionUp:
		p.Pos.Y -= step
	case core.ActionDown:
		p.Pos.Y += step
	}
}

// Particle is a decorative star. Pos is its center.
type Particle struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
}

// Obstacle is an asteroid. Pos is the top-left corner of its square sprite.
type Obstacle struct {
	Pos  core.Vec2
	Vel  core.Vec2
	Size float64
}

// Edge identifies the canvas side an obstacle spawns from.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "unknown"
	}
}
