package sim

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/starfield-dodge/internal/config"
	"github.com/vovakirdan/starfield-dodge/internal/core"
)

func newTestLoop(seed int64, now func() time.Time, rec *recorder) (*Loop, *MemoryBest) {
	store := &MemoryBest{}
	clock := NewClock(store, now)
	var hooks Hooks
	if rec != nil {
		hooks = rec.hooks()
	}
	return NewLoop(testConfig(), testCanvas, rand.New(rand.NewSource(seed)), clock, hooks), store
}

// obstacleAbove places a single obstacle centered horizontally on the
// player, gap units above its center, falling at speed per tick.
func obstacleAbove(l *Loop, gap, speed float64) {
	c := l.canvas.Center()
	l.store.obstacles = []Obstacle{{
		Pos:  core.Vec2{X: c.X - 40, Y: c.Y - 80 - gap},
		Vel:  core.Vec2{X: 0, Y: speed},
		Size: 80,
	}}
}

func TestLoopStartsIdle(t *testing.T) {
	l, _ := newTestLoop(1, nil, nil)
	if l.State() != StateIdle {
		t.Errorf("new loop state = %v, want idle", l.State())
	}
	if l.Tick() {
		t.Error("tick on an idle loop should not end a session")
	}
	if l.Ticks() != 0 {
		t.Error("idle loop should not count ticks")
	}
}

func TestRestartHard(t *testing.T) {
	rec := &recorder{}
	fc := newFakeClock()
	l, _ := newTestLoop(1, fc.Now, rec)
	l.Restart(config.DifficultyHard)

	if l.State() != StateRunning {
		t.Fatalf("state = %v, want running", l.State())
	}
	if got := len(l.store.Obstacles()); got != 25 {
		t.Errorf("hard obstacles = %d, want 25", got)
	}
	if got := len(l.store.Particles()); got != 40 {
		t.Errorf("particles = %d, want 40", got)
	}
	if l.Player().Pos != testCanvas.Center() {
		t.Errorf("player = %+v, want canvas center", l.Player().Pos)
	}
	if len(rec.summary) != 1 || rec.summary[0] {
		t.Errorf("restart should hide the summary, calls = %v", rec.summary)
	}
	fc.Advance(time.Second)
	if got := l.Clock().Elapsed(); got != time.Second {
		t.Errorf("elapsed = %v, restart should start the clock", got)
	}
}

func TestRestartUnknownDifficultyKeepsCount(t *testing.T) {
	l, _ := newTestLoop(1, nil, nil)
	l.Restart(config.DifficultyEasy)
	l.Restart(config.Difficulty("nightmare"))

	if l.State() != StateRunning {
		t.Errorf("restart with unknown difficulty should still run, state = %v", l.State())
	}
	if got := len(l.store.Obstacles()); got != 5 {
		t.Errorf("obstacles = %d, want previous count 5", got)
	}
	if l.Difficulty() != config.DifficultyEasy {
		t.Errorf("difficulty = %v, want easy", l.Difficulty())
	}
}

func TestRestartCountsPerDifficulty(t *testing.T) {
	tests := []struct {
		d    config.Difficulty
		want int
	}{
		{config.DifficultyEasy, 5},
		{config.DifficultyMedium, 15},
		{config.DifficultyHard, 25},
	}
	l, _ := newTestLoop(1, nil, nil)
	for _, tt := range tests {
		l.Restart(tt.d)
		if got := len(l.store.Obstacles()); got != tt.want {
			t.Errorf("%s: obstacles = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestTickAppliesInput(t *testing.T) {
	l, _ := newTestLoop(1, nil, nil)
	l.Restart(config.DifficultyEasy)
	l.store.obstacles = nil
	start := l.Player().Pos

	l.Input(core.ActionRight)
	l.Input(core.ActionRight)
	l.Input(core.ActionUp)
	l.Tick()

	got := l.Player().Pos
	if got.X != start.X+20 || got.Y != start.Y-10 {
		t.Errorf("player = %+v, want (%f, %f)", got, start.X+20, start.Y-10)
	}

	l.Tick()
	if l.Player().Pos != got {
		t.Error("input should be consumed by the tick that applied it")
	}
}

func TestInputIgnoredUnlessRunning(t *testing.T) {
	l, _ := newTestLoop(1, nil, nil)
	l.Input(core.ActionLeft)
	l.Restart(config.DifficultyEasy)
	l.store.obstacles = nil
	start := l.Player().Pos
	l.Tick()
	if l.Player().Pos != start {
		t.Error("input buffered while idle should not move the player")
	}
}

func TestTickCollisionEndsSession(t *testing.T) {
	fc := newFakeClock()
	rec := &recorder{}
	l, store := newTestLoop(1, fc.Now, rec)
	l.Restart(config.DifficultyEasy)
	obstacleAbove(l, 20, 10)

	for i := 1; i <= 2; i++ {
		fc.Advance(time.Second)
		if l.Tick() {
			t.Fatalf("tick %d should not collide", i)
		}
	}
	fc.Advance(time.Second)
	if !l.Tick() {
		t.Fatal("tick 3 should collide")
	}

	if l.State() != StateEnded {
		t.Errorf("state = %v, want ended", l.State())
	}
	if rec.collisions != 1 {
		t.Errorf("collision cues = %d, want 1", rec.collisions)
	}
	if rec.frames != 3 {
		t.Errorf("renders = %d, want 3", rec.frames)
	}
	if last := rec.summary[len(rec.summary)-1]; !last {
		t.Error("summary should be visible after a collision")
	}
	res, ok := l.LastResult()
	if !ok || res.Elapsed != 3*time.Second || !res.NewRecord {
		t.Errorf("result = %+v (%v), want 3s new record", res, ok)
	}
	if store.Saves() != 1 {
		t.Errorf("store saves = %d, want 1", store.Saves())
	}
}

func TestNoTicksAfterEnded(t *testing.T) {
	rec := &recorder{}
	l, _ := newTestLoop(1, nil, rec)
	l.Restart(config.DifficultyEasy)
	obstacleAbove(l, -40, 0)
	if !l.Tick() {
		t.Fatal("obstacle on top of the player should collide")
	}

	frames, ticks := rec.frames, l.Ticks()
	pos := l.store.Obstacles()[0].Pos
	for i := 0; i < 10; i++ {
		if l.Tick() {
			t.Fatal("ended loop should not end again")
		}
	}
	if rec.frames != frames || l.Ticks() != ticks {
		t.Error("ended loop should not render or count ticks")
	}
	if l.store.Obstacles()[0].Pos != pos {
		t.Error("ended loop should not move entities")
	}
	if rec.collisions != 1 {
		t.Errorf("collision cues = %d, want 1", rec.collisions)
	}
}

func TestStopDoesNotFinalize(t *testing.T) {
	l, store := newTestLoop(1, nil, nil)
	l.Restart(config.DifficultyMedium)
	l.Stop()

	if l.State() != StateIdle {
		t.Errorf("state after stop = %v, want idle", l.State())
	}
	if _, ok := l.LastResult(); ok {
		t.Error("stop should not produce a session result")
	}
	if store.Saves() != 0 {
		t.Error("stop should not persist a best time")
	}
}

func TestRunUntilCollision(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	frames := NewVirtualFrames(start, 16*time.Millisecond, 0)
	l, _ := newTestLoop(1, frames.Now, nil)
	l.Restart(config.DifficultyEasy)
	obstacleAbove(l, 20, 10)

	rec, err := l.Run(context.Background(), frames)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if frames.Frames() != 3 {
		t.Errorf("frames = %d, want 3", frames.Frames())
	}
	if rec.Elapsed != 48*time.Millisecond {
		t.Errorf("elapsed = %v, want 48ms", rec.Elapsed)
	}
}

func TestRunStopsOnFrameLimit(t *testing.T) {
	frames := NewVirtualFrames(time.Now(), time.Millisecond, 5)
	l, _ := newTestLoop(1, frames.Now, nil)
	l.Restart(config.DifficultyEasy)
	l.store.obstacles = nil

	if _, err := l.Run(context.Background(), frames); !errors.Is(err, ErrFrameLimit) {
		t.Errorf("Run error = %v, want ErrFrameLimit", err)
	}
	if l.Ticks() != 5 {
		t.Errorf("ticks = %d, want 5", l.Ticks())
	}
}

func TestRunCancelled(t *testing.T) {
	frames := NewVirtualFrames(time.Now(), time.Millisecond, 0)
	l, _ := newTestLoop(1, frames.Now, nil)
	l.Restart(config.DifficultyEasy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Run(ctx, frames); !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestRunRequiresRunning(t *testing.T) {
	l, _ := newTestLoop(1, nil, nil)
	frames := NewVirtualFrames(time.Now(), time.Millisecond, 0)
	if _, err := l.Run(context.Background(), frames); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Run error = %v, want ErrNotRunning", err)
	}
}

func TestLoopDeterminism(t *testing.T) {
	run := func() []Obstacle {
		frames := NewVirtualFrames(time.Unix(0, 0), 16*time.Millisecond, 120)
		l, _ := newTestLoop(42, frames.Now, nil)
		l.Restart(config.DifficultyHard)
		_, _ = l.Run(context.Background(), frames)
		return append([]Obstacle(nil), l.store.Obstacles()...)
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("obstacle counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("obstacle %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateIdle, "idle"},
		{StateRunning, "running"},
		{StateEnded, "ended"},
		{State(7), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
