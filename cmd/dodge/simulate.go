package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starfield-dodge/internal/config"
	"github.com/vovakirdan/starfield-dodge/internal/games/dodge/sim"
)

var (
	flagSimRuns       int
	flagSimDifficulty string
	flagSimMaxSeconds int
	flagSimCols       int
	flagSimRows       int
	flagSimRealtime   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless sessions and report survival times",
	Long: `Run sessions on a virtual clock with no input: the ship sits in
the middle of the field until an asteroid hits it. Useful for checking
how a difficulty or a tuning file plays out.

Examples:
  dodge simulate
  dodge simulate --runs 50 --difficulty hard
  dodge simulate --seed 42 --config ./my-dodge.yaml
  dodge simulate --runs 1 --realtime --max-seconds 30`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 10, "Number of sessions")
	simulateCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty: easy, medium, hard (default from config)")
	simulateCmd.Flags().IntVar(&flagSimMaxSeconds, "max-seconds", 600, "Stop a session that survives this long")
	simulateCmd.Flags().IntVar(&flagSimCols, "cols", 80, "Terminal columns the canvas is derived from")
	simulateCmd.Flags().IntVar(&flagSimRows, "rows", 23, "Terminal rows the canvas is derived from")
	simulateCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace frames on the wall clock instead of a virtual one")
}

// simOptions control a batch of headless sessions.
type simOptions struct {
	Runs       int
	Difficulty config.Difficulty
	Seed       int64
	FPS        int
	MaxSeconds int
	Cols, Rows int
	Realtime   bool // Wall-clock frames; MaxSeconds becomes a deadline
}

// simFrames is a frame source that counts what it delivered.
type simFrames interface {
	sim.FrameSource
	Frames() uint64
}

// simResult is the outcome of one headless session.
type simResult struct {
	Seed      int64
	Elapsed   time.Duration
	Frames    uint64
	Survived  bool // Hit the time limit without a collision
	NewRecord bool
}

// simulate plays opts.Runs sessions back to back. Session i uses seed
// opts.Seed+i and all sessions share one in-memory best time.
func simulate(ctx context.Context, cfg config.DodgeConfig, opts simOptions, logger *log.Logger) ([]simResult, error) {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	difficulty := opts.Difficulty
	if difficulty == "" {
		difficulty = cfg.Difficulty.Default
	}

	w, h := cfg.CanvasSize(opts.Cols, opts.Rows)
	canvas := sim.Canvas{W: w, H: h}
	step := time.Second / time.Duration(opts.FPS)
	limit := uint64(opts.MaxSeconds) * uint64(opts.FPS)
	best := &sim.MemoryBest{}

	results := make([]simResult, 0, opts.Runs)
	for i := range opts.Runs {
		seed := opts.Seed + int64(i)
		res, err := simulateOne(ctx, cfg, canvas, difficulty, seed, best, opts, step, limit)
		if err != nil {
			return results, err
		}

		logger.Debug("session finished",
			"seed", seed,
			"difficulty", difficulty,
			"elapsed", sim.FormatDuration(res.Elapsed),
			"survived", res.Survived,
		)
		results = append(results, res)
	}
	return results, nil
}

// simulateOne plays a single session. Virtual frames end at the frame
// limit; wall-clock frames end at a MaxSeconds deadline.
func simulateOne(ctx context.Context, cfg config.DodgeConfig, canvas sim.Canvas, difficulty config.Difficulty,
	seed int64, best sim.BestStore, opts simOptions, step time.Duration, limit uint64,
) (simResult, error) {
	var (
		frames simFrames
		now    func() time.Time
		runCtx = ctx
	)
	if opts.Realtime {
		tf := sim.NewTickerFrames(opts.FPS)
		defer tf.Stop()
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(opts.MaxSeconds)*time.Second)
		defer cancel()
		frames = tf
	} else {
		vf := sim.NewVirtualFrames(time.Unix(0, 0), step, limit)
		frames, now = vf, vf.Now
	}

	clock := sim.NewClock(best, now)
	if err := clock.LoadBest(); err != nil {
		return simResult{}, err
	}

	loop := sim.NewLoop(cfg, canvas, rand.New(rand.NewSource(seed)), clock, sim.Hooks{})
	loop.Restart(difficulty)

	res := simResult{Seed: seed}
	rec, err := loop.Run(runCtx, frames)
	switch {
	case err == nil:
		res.Elapsed = rec.Elapsed
		res.NewRecord = rec.NewRecord
	case errors.Is(err, sim.ErrFrameLimit),
		opts.Realtime && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		res.Elapsed = clock.Elapsed()
		res.Survived = true
		loop.Stop()
	default:
		return simResult{}, err
	}
	res.Frames = frames.Frames()
	return res, nil
}

func runSimulate(_ *cobra.Command, _ []string) {
	difficulty := parseDifficultyFlag(flagSimDifficulty)
	gameCfg := loadConfig()

	logger, closeLog, err := newLogger(os.Stderr, "dodge-sim")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if difficulty == "" {
		difficulty = gameCfg.Difficulty.Default
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("simulating", "runs", flagSimRuns, "difficulty", difficulty, "seed", seed)
	results, err := simulate(ctx, gameCfg, simOptions{
		Runs:       flagSimRuns,
		Difficulty: difficulty,
		Seed:       seed,
		FPS:        flagFPS,
		MaxSeconds: flagSimMaxSeconds,
		Cols:       flagSimCols,
		Rows:       flagSimRows,
		Realtime:   flagSimRealtime,
	}, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printSimResults(results, difficulty)
}

func printSimResults(results []simResult, difficulty config.Difficulty) {
	if len(results) == 0 {
		fmt.Println("No sessions completed.")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "Run", "Seed", "Time", "")
	fmt.Printf("  %-4s  %-20s  %-10s  %s\n", "---", "----", "----", "")

	var total, longest time.Duration
	shortest := results[0].Elapsed
	survived := 0
	for i, r := range results {
		note := ""
		switch {
		case r.Survived:
			note = "time limit"
			survived++
		case r.NewRecord:
			note = "new best"
		}
		fmt.Printf("  %-4d  %-20d  %-10s  %s\n", i+1, r.Seed, sim.FormatDuration(r.Elapsed), note)

		total += r.Elapsed
		longest = max(longest, r.Elapsed)
		shortest = min(shortest, r.Elapsed)
	}

	fmt.Println()
	fmt.Printf("%d runs at %s: shortest %s, average %s, longest %s",
		len(results), difficulty,
		sim.FormatDuration(shortest),
		sim.FormatDuration(total/time.Duration(len(results))),
		sim.FormatDuration(longest),
	)
	if survived > 0 {
		fmt.Printf(", %d hit the time limit", survived)
	}
	fmt.Println()
}
