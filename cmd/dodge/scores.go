package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/starfield-dodge/internal/config"
	"github.com/vovakirdan/starfield-dodge/internal/games/dodge/sim"
	"github.com/vovakirdan/starfield-dodge/internal/platform/tui"
	"github.com/vovakirdan/starfield-dodge/internal/storage"
)

var (
	flagScoresDifficulty string
	flagScoresLimit      int
	flagScoresTable      bool
	flagScoresClear      bool
	flagScoresRecent     bool
	flagScoresRun        string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best time and longest runs",
	Long: `Display the all-time best survival time, the longest runs and
per-difficulty statistics.

Examples:
  dodge scores
  dodge scores --difficulty hard --limit 5
  dodge scores --recent --limit 20
  dodge scores --run 3f1c2a9e-...
  dodge scores --table
  dodge scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresDifficulty, "difficulty", "", "Only show runs at this difficulty")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTable, "table", false, "Browse runs in an interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history (the best time is kept)")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "List the latest runs instead of the longest")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show a single run by its run ID")
}

func runScores(_ *cobra.Command, _ []string) {
	difficulty := parseDifficultyFlag(flagScoresDifficulty)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Run history cleared.")
		return
	}

	if flagScoresRun != "" {
		if err := showRun(os.Stdout, store, flagScoresRun); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flagScoresTable {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if v, err := store.SchemaVersion(); err == nil {
		fmt.Printf("Database: %s (schema v%d)\n", flagDBPath, v)
	}

	best, ok, err := store.BestTime(storage.BestTimeSlot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading best time: %v\n", err)
		os.Exit(1)
	}
	if ok {
		fmt.Printf("Best: %s\n", sim.FormatDuration(best))
	} else {
		fmt.Println("Best: --:--.---")
	}
	fmt.Println()

	if flagScoresRecent {
		runs, err := store.RecentRuns(flagScoresLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Recent Runs")
		fmt.Println()
		printRunTable(os.Stdout, runs, "#")
		return
	}

	runs, err := store.TopRuns(string(difficulty), flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	title := "all difficulties"
	if difficulty != "" {
		title = string(difficulty)
	}
	fmt.Printf("Longest Runs - %s\n", title)
	fmt.Println()

	if !printRunTable(os.Stdout, runs, "Rank") {
		return
	}

	stats, err := store.Stats()
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Println("Statistics")
	for _, d := range config.Difficulties {
		st, ok := stats[string(d)]
		if !ok {
			continue
		}
		fmt.Printf("  %-6s  %3d runs  longest %s  average %s  total %s\n",
			d, st.Runs, sim.FormatDuration(st.Longest), sim.FormatDuration(st.Average), sim.FormatDuration(st.Total))
	}
}

// printRunTable writes runs as a numbered table. It reports false when
// there was nothing to print.
func printRunTable(w io.Writer, runs []storage.Run, numbering string) bool {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'dodge play' to set the first time!")
		return false
	}

	fmt.Fprintf(w, "  %-4s  %-10s  %-6s  %-6s  %-16s  %s\n", numbering, "Time", "Level", "Record", "Date", "Run ID")
	fmt.Fprintf(w, "  %-4s  %-10s  %-6s  %-6s  %-16s  %s\n", "----", "----", "-----", "------", "----", "------")

	for i, r := range runs {
		record := ""
		if r.NewRecord {
			record = "yes"
		}
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-10s  %-6s  %-6s  %-16s  %s\n", i+1, sim.FormatDuration(r.Elapsed), r.Difficulty, record, dateStr, r.RunID)
	}
	return true
}

// showRun prints the details of one run.
func showRun(w io.Writer, store *storage.Store, runID string) error {
	run, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with ID %q", runID)
	}

	fmt.Fprintf(w, "Run:        %s\n", run.RunID)
	fmt.Fprintf(w, "Difficulty: %s\n", run.Difficulty)
	fmt.Fprintf(w, "Time:       %s\n", sim.FormatDuration(run.Elapsed))
	fmt.Fprintf(w, "New record: %v\n", run.NewRecord)
	fmt.Fprintf(w, "Played:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}
