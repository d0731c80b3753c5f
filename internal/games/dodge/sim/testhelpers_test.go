package sim

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/starfield-dodge/internal/config"
)

var testCanvas = Canvas{W: 960, H: 552}

func testConfig() config.DodgeConfig {
	return config.DefaultDodgeConfig()
}

func testSpawner(seed int64) *Spawner {
	cfg := testConfig()
	return NewSpawner(rand.New(rand.NewSource(seed)), testCanvas, cfg.Particles, cfg.Obstacles)
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

// recorder captures every hook call made by a Loop.
type recorder struct {
	frames     int
	lastFrame  Frame
	timerCalls int
	elapsed    time.Duration
	best       time.Duration
	hasBest    bool
	summary    []bool
	collisions int
}

func (r *recorder) Render(f Frame) {
	r.frames++
	r.lastFrame = f
}

func (r *recorder) ShowTimer(elapsed, best time.Duration, hasBest bool) {
	r.timerCalls++
	r.elapsed, r.best, r.hasBest = elapsed, best, hasBest
}

func (r *recorder) SetSummaryVisible(v bool) { r.summary = append(r.summary, v) }

func (r *recorder) Collision() { r.collisions++ }

func (r *recorder) hooks() Hooks {
	return Hooks{Renderer: r, Timer: r, Summary: r, Feedback: r}
}
