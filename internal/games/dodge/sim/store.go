package sim

// EntityStore owns the live particle and obstacle collections.
type EntityStore struct {
	spawner   *Spawner
	particles []Particle
	obstacles []Obstacle
}

// NewEntityStore creates an empty store backed by the given spawner.
func NewEntityStore(spawner *Spawner) *EntityStore {
	return &EntityStore{spawner: spawner}
}

// Reset replaces both collections with freshly spawned entities.
// New slices are allocated, so references into the old ones go stale.
// Negative counts are treated as zero.
func (s *EntityStore) Reset(particleCount, obstacleCount int) {
	s.particles = make([]Particle, max(particleCount, 0))
	for i := range s.particles {
		s.particles[i] = s.spawner.Particle()
	}

	s.obstacles = make([]Obstacle, max(obstacleCount, 0))
	for i := range s.obstacles {
		s.obstacles[i] = s.spawner.Obstacle()
	}
}

// Particles returns the live particle slice for in-place updates.
func (s *EntityStore) Particles() []Particle {
	return s.particles
}

// Obstacles returns the live obstacle slice for in-place updates.
func (s *EntityStore) Obstacles() []Obstacle {
	return s.obstacles
}
