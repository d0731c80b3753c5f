// Package dodge adapts the simulation loop to the terminal platform:
// it maps input frames to loop calls, tracks pause, and rasterises the
// canvas into a character screen.
package dodge

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/starfield-dodge/internal/config"
	"github.com/vovakirdan/starfield-dodge/internal/core"
	"github.com/vovakirdan/starfield-dodge/internal/games/dodge/sim"
)

const (
	// ID is the game identifier used for storage and logging.
	ID = "dodge"
	// Title is the display name.
	Title = "Starfield Dodge"

	hudHeight = 1
	minWidth  = 30
	minHeight = 10
)

// Options configure a Game.
type Options struct {
	Config     config.DodgeConfig
	Difficulty config.Difficulty // Initial selection; empty uses the config default
	Best       sim.BestStore     // nil keeps the best time in memory
	Feedback   sim.Feedback      // Crash cue; may be nil
	Now        func() time.Time  // nil uses time.Now
}

// Game is one player's Starfield Dodge session host.
type Game struct {
	cfg      config.DodgeConfig
	feedback sim.Feedback
	time     *pausableTime
	clock    *sim.Clock
	loop     *sim.Loop
	view     view

	selected config.Difficulty
	paused   bool
	tooSmall bool
	screenW  int
	screenH  int
}

// New creates a game. Call LoadBest before the first Reset to pick up a
// persisted best time.
func New(opts Options) *Game {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	pt := &pausableTime{now: now}

	selected := opts.Difficulty
	if _, ok := opts.Config.Difficulty.ObstacleCount(selected); !ok {
		selected = opts.Config.Difficulty.Default
	}

	return &Game{
		cfg:      opts.Config,
		feedback: opts.Feedback,
		time:     pt,
		clock:    sim.NewClock(opts.Best, pt.Now),
		selected: selected,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return Title }

// LoadBest reads the persisted best time into the session clock.
func (g *Game) LoadBest() error {
	if err := g.clock.LoadBest(); err != nil {
		return err
	}
	g.view.best, g.view.hasBest = g.clock.Best()
	return nil
}

// Best returns the best time known to the session clock.
func (g *Game) Best() (time.Duration, bool) { return g.clock.Best() }

// Reset sizes the canvas to the screen and starts a fresh session at the
// selected difficulty.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH
	g.tooSmall = cfg.ScreenW < minWidth || cfg.ScreenH < minHeight
	g.paused = false
	g.time.Resume()

	w, h := g.cfg.CanvasSize(cfg.ScreenW, cfg.ScreenH-hudHeight)
	canvas := sim.Canvas{W: w, H: h}
	rng := rand.New(rand.NewSource(cfg.Seed))

	g.loop = sim.NewLoop(g.cfg, canvas, rng, g.clock, sim.Hooks{
		Renderer: &g.view,
		Timer:    &g.view,
		Summary:  &g.view,
		Feedback: g.feedback,
	})
	g.restart()
}

func (g *Game) restart() {
	g.paused = false
	g.time.Resume()
	g.loop.Restart(g.selected)
	g.view.elapsed = 0
	g.view.frame = g.loop.Frame()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.loop == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if g.loop.State() != sim.StateRunning {
		// Left/right pick the next difficulty on the summary screen.
		if in.Has(core.ActionLeft) {
			g.cycleDifficulty(-1)
		}
		if in.Has(core.ActionRight) {
			g.cycleDifficulty(1)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		if g.paused {
			g.time.Pause()
		} else {
			g.time.Resume()
		}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.loop.InputFrame(in)
	ended := g.loop.Tick()
	return core.StepResult{State: g.State(), Ended: ended}
}

// Stop abandons the running session without recording it.
func (g *Game) Stop() {
	if g.loop != nil {
		g.loop.Stop()
	}
}

// SetDifficulty selects the difficulty for the next restart.
// Unknown names are ignored.
func (g *Game) SetDifficulty(d config.Difficulty) {
	if _, ok := g.cfg.Difficulty.ObstacleCount(d); ok {
		g.selected = d
	}
}

// Selected returns the difficulty the next restart will use.
func (g *Game) Selected() config.Difficulty { return g.selected }

// Difficulty returns the difficulty of the current or last session.
func (g *Game) Difficulty() config.Difficulty {
	if g.loop == nil {
		return g.selected
	}
	return g.loop.Difficulty()
}

// LastResult returns the record of the session that just ended.
func (g *Game) LastResult() (sim.Record, bool) {
	if g.loop == nil {
		return sim.Record{}, false
	}
	return g.loop.LastResult()
}

func (g *Game) cycleDifficulty(delta int) {
	levels := config.Difficulties
	idx := 0
	for i, d := range levels {
		if d == g.selected {
			idx = i
		}
	}
	idx = (idx + delta + len(levels)) % len(levels)
	g.selected = levels[idx]
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		ElapsedMs: g.view.elapsed.Milliseconds(),
		BestMs:    g.view.best.Milliseconds(),
		HasBest:   g.view.hasBest,
		Paused:    g.paused,
	}
	if g.loop != nil && g.loop.State() == sim.StateEnded {
		st.GameOver = true
		if rec, ok := g.loop.LastResult(); ok {
			st.NewRecord = rec.NewRecord
		}
	}
	return st
}

// view receives the loop's hook calls and keeps what the next Render needs.
type view struct {
	frame   sim.Frame
	elapsed time.Duration
	best    time.Duration
	hasBest bool
	summary bool
}

func (v *view) Render(f sim.Frame) { v.frame = f }

func (v *view) ShowTimer(elapsed, best time.Duration, hasBest bool) {
	v.elapsed, v.best, v.hasBest = elapsed, best, hasBest
}

func (v *view) SetSummaryVisible(visible bool) { v.summary = visible }

// pausableTime is a clock that stands still while paused, so the session
// timer excludes paused spans.
type pausableTime struct {
	now      func() time.Time
	paused   bool
	pausedAt time.Time
	offset   time.Duration
}

func (p *pausableTime) Now() time.Time {
	if p.paused {
		return p.pausedAt.Add(-p.offset)
	}
	return p.now().Add(-p.offset)
}

func (p *pausableTime) Pause() {
	if p.paused {
		return
	}
	p.pausedAt = p.now()
	p.paused = true
}

func (p *pausableTime) Resume() {
	if !p.paused {
		return
	}
	p.offset += p.now().Sub(p.pausedAt)
	p.paused = false
}
