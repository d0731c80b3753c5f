package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/starfield-dodge/internal/audio"
	"github.com/vovakirdan/starfield-dodge/internal/core"
	"github.com/vovakirdan/starfield-dodge/internal/platform/tui"
	"github.com/vovakirdan/starfield-dodge/internal/storage"
)

var (
	flagDifficulty string
	flagMute       bool
	flagVolume     float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Starfield Dodge",
	Long: `Start a session. Without --difficulty a picker is shown first.

Controls:
  Arrows/WASD/HJKL  - Steer the ship
  P/Space           - Pause
  R/Enter           - Restart
  1/2/3             - Pick difficulty (after a crash)
  B/Esc             - Back to the picker (paused or after a crash)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy    - 5 asteroids
  medium  - 15 asteroids
  hard    - 25 asteroids

Examples:
  dodge play
  dodge play --difficulty hard
  dodge play --mute
  dodge play --config ./my-dodge.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard (skips the picker)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable the crash sound")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.8, "Crash sound volume (0-1)")
}

func runPlay(_ *cobra.Command, _ []string) {
	difficulty := parseDifficultyFlag(flagDifficulty)
	gameCfg := loadConfig()

	// The alt screen owns stdout, so logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard, "dodge")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - best time stays in memory
		store = nil
	}

	sound := audio.NewPlayer(flagVolume, flagMute, logger)
	if err := sound.Init(); err != nil {
		logger.Warn("audio disabled", "error", err)
		sound.SetMuted(true)
	}

	runErr := tui.Run(tui.SessionOptions{
		Store:      store,
		Game:       gameCfg,
		Runtime:    cfg,
		Difficulty: difficulty,
		Feedback:   sound,
		Logger:     logger,
	})

	sound.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
