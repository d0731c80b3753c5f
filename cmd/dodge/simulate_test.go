package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starfield-dodge/internal/config"
)

func testSimOptions() simOptions {
	return simOptions{
		Runs:       4,
		Difficulty: config.DifficultyHard,
		Seed:       42,
		FPS:        60,
		MaxSeconds: 20,
		Cols:       80,
		Rows:       23,
	}
}

func TestSimulateDeterministic(t *testing.T) {
	cfg := config.DefaultDodgeConfig()
	logger := log.New(io.Discard)

	a, err := simulate(context.Background(), cfg, testSimOptions(), logger)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	b, err := simulate(context.Background(), cfg, testSimOptions(), logger)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	if len(a) != 4 || len(b) != 4 {
		t.Fatalf("expected 4 results, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("run %d differs: %+v vs %+v", i, a[i], b[i])
		}
		if a[i].Seed != 42+int64(i) {
			t.Errorf("run %d seed = %d", i, a[i].Seed)
		}
	}
}

func TestSimulateRespectsTimeLimit(t *testing.T) {
	results, err := simulate(context.Background(), config.DefaultDodgeConfig(), testSimOptions(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	limit := 20 * time.Second
	for i, r := range results {
		if r.Elapsed > limit {
			t.Errorf("run %d elapsed %v past the limit", i, r.Elapsed)
		}
		if r.Frames == 0 || r.Frames > 20*60 {
			t.Errorf("run %d frames = %d", i, r.Frames)
		}
		if r.Survived && r.NewRecord {
			t.Errorf("run %d: a cut-off session is not a finished record", i)
		}
	}
}

func TestSimulateRecordsOnlyImprove(t *testing.T) {
	results, err := simulate(context.Background(), config.DefaultDodgeConfig(), testSimOptions(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}

	var best time.Duration
	hasBest := false
	for i, r := range results {
		if r.Survived {
			continue
		}
		want := !hasBest || r.Elapsed > best
		if r.NewRecord != want {
			t.Errorf("run %d: NewRecord = %v with elapsed %v and prior best %v", i, r.NewRecord, r.Elapsed, best)
		}
		if want {
			best, hasBest = r.Elapsed, true
		}
	}
}

func TestSimulateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := simulate(ctx, config.DefaultDodgeConfig(), testSimOptions(), log.New(io.Discard))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSimulateRealtime(t *testing.T) {
	opts := testSimOptions()
	opts.Runs = 1
	opts.Realtime = true
	opts.FPS = 120
	opts.MaxSeconds = 1

	start := time.Now()
	results, err := simulate(context.Background(), config.DefaultDodgeConfig(), opts, log.New(io.Discard))
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	r := results[0]
	if r.Frames == 0 {
		t.Error("wall-clock run should deliver frames")
	}
	if time.Since(start) > 3*time.Second {
		t.Errorf("run took %v, the deadline is 1s", time.Since(start))
	}
	if r.Survived && r.Elapsed < 900*time.Millisecond {
		t.Errorf("survived run ended early at %v", r.Elapsed)
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"localhost:2222": "2222",
		"noport":         "noport",
	}
	for in, want := range tests {
		if got := portOf(in); got != want {
			t.Errorf("portOf(%q) = %q, want %q", in, got, want)
		}
	}
}
