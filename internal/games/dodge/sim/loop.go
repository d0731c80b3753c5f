package sim

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/vovakirdan/starfield-dodge/internal/config"
	"github.com/vovakirdan/starfield-dodge/internal/core"
)

// ErrNotRunning is returned by Run when the loop has no active session.
var ErrNotRunning = errors.New("sim: loop is not running")

// State is the loop's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateEnded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Frame is what a renderer sees after each tick. The slices alias the
// store's live collections and are valid until the next Tick or Restart.
type Frame struct {
	Canvas    Canvas
	Player    Player
	Particles []Particle
	Obstacles []Obstacle
	Hitbox    core.Box
	Tick      uint64
}

// Renderer draws a frame.
type Renderer interface {
	Render(f Frame)
}

// TimerView shows the running time and the best time.
type TimerView interface {
	ShowTimer(elapsed, best time.Duration, hasBest bool)
}

// SummaryView toggles the end-of-session summary.
type SummaryView interface {
	SetSummaryVisible(visible bool)
}

// Feedback plays the crash cue.
type Feedback interface {
	Collision()
}

// Hooks are the loop's outputs. Any field may be nil.
type Hooks struct {
	Renderer Renderer
	Timer    TimerView
	Summary  SummaryView
	Feedback Feedback
}

// Loop is the session state machine. It owns the player, the entity store,
// and the clock, and is driven one Tick at a time by its host.
type Loop struct {
	cfg        config.DodgeConfig
	canvas     Canvas
	clock      *Clock
	hooks      Hooks
	store      *EntityStore
	integrator *Integrator
	collider   CollisionDetector

	state      State
	difficulty config.Difficulty
	obstacles  int
	player     Player
	input      core.InputFrame
	ticks      uint64
	last       Record
	hasLast    bool
}

// NewLoop creates an idle loop. The obstacle count starts at the
// configured default difficulty.
func NewLoop(cfg config.DodgeConfig, canvas Canvas, rng *rand.Rand, clock *Clock, hooks Hooks) *Loop {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if clock == nil {
		clock = NewClock(nil, nil)
	}
	spawner := NewSpawner(rng, canvas, cfg.Particles, cfg.Obstacles)

	l := &Loop{
		cfg:        cfg,
		canvas:     canvas,
		clock:      clock,
		hooks:      hooks,
		store:      NewEntityStore(spawner),
		integrator: NewIntegrator(canvas, spawner),
		collider:   CollisionDetector{Offset: cfg.Collision.Offset},
		input:      core.NewInputFrame(),
		player: Player{
			Pos:   canvas.Center(),
			Size:  cfg.Player.Size,
			Speed: cfg.Player.Speed,
		},
	}

	l.difficulty = config.DifficultyMedium
	if n, ok := cfg.Difficulty.ObstacleCount(cfg.Difficulty.Default); ok {
		l.difficulty = cfg.Difficulty.Default
		l.obstacles = n
	} else {
		l.obstacles, _ = cfg.Difficulty.ObstacleCount(l.difficulty)
	}
	return l
}

// Restart begins a new session from any state. An unknown difficulty keeps
// the previous obstacle count and difficulty.
func (l *Loop) Restart(d config.Difficulty) {
	if n, ok := l.cfg.Difficulty.ObstacleCount(d); ok {
		l.difficulty = d
		l.obstacles = n
	}

	l.store.Reset(l.cfg.Particles.Count, l.obstacles)
	l.player.Pos = l.canvas.Center()
	l.input.Clear()
	l.ticks = 0
	l.hasLast = false

	l.clock.Reset()
	l.clock.Start()
	l.state = StateRunning

	if l.hooks.Summary != nil {
		l.hooks.Summary.SetSummaryVisible(false)
	}
}

// Input buffers a directional action for the next tick. It is ignored
// unless a session is running.
func (l *Loop) Input(a core.Action) {
	if l.state != StateRunning {
		return
	}
	l.input.Set(a)
}

// InputFrame buffers every action in f for the next tick.
func (l *Loop) InputFrame(f core.InputFrame) {
	if l.state != StateRunning {
		return
	}
	for a, n := range f.Actions {
		for range n {
			l.input.Set(a)
		}
	}
}

// Tick advances the session by one frame and reports whether it ended on
// this tick. It does nothing unless the loop is running.
func (l *Loop) Tick() bool {
	if l.state != StateRunning {
		return false
	}
	l.clock.Start()
	l.ticks++

	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown} {
		if n := l.input.Count(a); n > 0 {
			l.player.Nudge(a, n)
		}
	}
	l.input.Clear()

	l.integrator.Advance(&l.player, l.store)

	if l.hooks.Renderer != nil {
		l.hooks.Renderer.Render(l.Frame())
	}
	if l.hooks.Timer != nil {
		best, ok := l.clock.Best()
		l.hooks.Timer.ShowTimer(l.clock.Elapsed(), best, ok)
	}

	if _, hit := l.collider.Check(l.player, l.store.Obstacles()); !hit {
		return false
	}

	l.state = StateEnded
	if l.hooks.Feedback != nil {
		l.hooks.Feedback.Collision()
	}
	l.last = l.clock.Finalize()
	l.hasLast = true
	if l.hooks.Timer != nil {
		l.hooks.Timer.ShowTimer(l.last.Elapsed, l.last.Best, true)
	}
	if l.hooks.Summary != nil {
		l.hooks.Summary.SetSummaryVisible(true)
	}
	return true
}

// Stop abandons a running session without recording it.
func (l *Loop) Stop() {
	if l.state != StateRunning {
		return
	}
	l.state = StateIdle
	l.input.Clear()
	l.clock.Reset()
}

// Run ticks the loop once per frame from frames until the session ends,
// ctx is done, or Stop is called. It returns the session record when the
// session ended by collision.
func (l *Loop) Run(ctx context.Context, frames FrameSource) (Record, error) {
	if l.state != StateRunning {
		return Record{}, ErrNotRunning
	}
	for {
		if err := frames.Next(ctx); err != nil {
			return Record{}, err
		}
		if l.Tick() {
			return l.last, nil
		}
		if l.state != StateRunning {
			return Record{}, ErrNotRunning
		}
	}
}

// Frame returns a snapshot of the current entity state.
func (l *Loop) Frame() Frame {
	return Frame{
		Canvas:    l.canvas,
		Player:    l.player,
		Particles: l.store.Particles(),
		Obstacles: l.store.Obstacles(),
		Hitbox:    l.collider.PlayerBox(l.player),
		Tick:      l.ticks,
	}
}

// State returns the lifecycle state.
func (l *Loop) State() State { return l.state }

// Player returns a copy of the player.
func (l *Loop) Player() Player { return l.player }

// Difficulty returns the difficulty of the current or last session.
func (l *Loop) Difficulty() config.Difficulty { return l.difficulty }

// ObstacleCount returns the obstacle count the next Restart will use
// when its difficulty is unknown.
func (l *Loop) ObstacleCount() int { return l.obstacles }

// Ticks returns the number of ticks processed in the current session.
func (l *Loop) Ticks() uint64 { return l.ticks }

// Canvas returns the playfield size.
func (l *Loop) Canvas() Canvas { return l.canvas }

// Clock returns the session clock.
func (l *Loop) Clock() *Clock { return l.clock }

// LastResult returns the record of the most recently ended session.
func (l *Loop) LastResult() (Record, bool) { return l.last, l.hasLast }
