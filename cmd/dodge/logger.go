package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starfield-dodge/internal/config"
)

// newLogger builds the command logger. Logs go to --log-file when set and
// to fallback otherwise. The returned close func must be called on exit.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConfig loads the game tuning from --config or the search path.
func loadConfig() config.DodgeConfig {
	cfg, err := config.LoadDodge(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// parseDifficultyFlag validates a --difficulty value. Empty is allowed.
func parseDifficultyFlag(s string) config.Difficulty {
	if s == "" {
		return ""
	}
	d, ok := config.ParseDifficulty(s)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (want easy, medium or hard)\n", s)
		os.Exit(1)
	}
	return d
}
