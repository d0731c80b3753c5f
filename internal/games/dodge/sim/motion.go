package sim

import "math"

// Integrator advances entities by one tick and applies the boundary rules:
//   - player: toroidal wrap per axis
//   - particle: leaving the canvas on any edge respawns it anywhere inside
//   - obstacle: only falling past the bottom respawns it above the top;
//     exits through the other edges are left alone
//
// Velocities are never changed by a respawn.
type Integrator struct {
	canvas  Canvas
	spawner *Spawner
}

// NewIntegrator creates an integrator for the given canvas.
func NewIntegrator(canvas Canvas, spawner *Spawner) *Integrator {
	return &Integrator{canvas: canvas, spawner: spawner}
}

// Advance runs one tick over the player and every stored entity.
func (in *Integrator) Advance(p *Player, store *EntityStore) {
	in.WrapPlayer(p)
	in.AdvanceParticles(store.Particles())
	in.AdvanceObstacles(store.Obstacles())
}

// WrapPlayer moves the player to the opposite edge on any axis it has left.
// The player has no velocity of its own; input moves it between ticks.
func (in *Integrator) WrapPlayer(p *Player) {
	p.Pos.X = wrapAxis(p.Pos.X, in.canvas.W)
	p.Pos.Y = wrapAxis(p.Pos.Y, in.canvas.H)
}

// wrapAxis resets v to 0 past the far edge and to the far edge below 0.
// The far edge is the last representable coordinate inside [0, extent),
// so a wrapped value never sits on the excluded boundary.
func wrapAxis(v, extent float64) float64 {
	if v >= extent {
		return 0
	}
	if v < 0 {
		return math.Nextafter(extent, 0)
	}
	return v
}

// AdvanceParticles moves every particle and respawns any that left the canvas.
func (in *Integrator) AdvanceParticles(ps []Particle) {
	for i := range ps {
		p := &ps[i]
		p.Pos = p.Pos.Add(p.Vel)
		if p.Pos.X > in.canvas.W || p.Pos.X < 0 || p.Pos.Y > in.canvas.H || p.Pos.Y < 0 {
			p.Pos = in.spawner.InCanvas()
		}
	}
}

// AdvanceObstacles moves every obstacle and respawns those below the bottom edge.
func (in *Integrator) AdvanceObstacles(obs []Obstacle) {
	for i := range obs {
		o := &obs[i]
		o.Pos = o.Pos.Add(o.Vel)
		if o.Pos.Y > in.canvas.H {
			o.Pos = in.spawner.AboveTop()
		}
	}
}
