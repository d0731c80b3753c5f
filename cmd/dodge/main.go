// dodge is Starfield Dodge: steer a ship through a drifting asteroid field
// for as long as you can, right in the terminal.
//
// Usage:
//
//	dodge play               - Pick a difficulty and play
//	dodge serve              - Start SSH server for remote play
//	dodge scores             - Show the best time and longest runs
//	dodge simulate           - Run headless sessions and report survival times
//	dodge config             - Print the default configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible sessions
//	--db <path>          - Set database path (default: ~/.dodge/scores.db)
//	--config <path>      - Load tuning from a YAML or TOML file
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dodge",
	Short: "Starfield Dodge - survive the asteroid field in your terminal",
	Long: `Starfield Dodge is a terminal arcade game. Steer your ship around a
field of falling asteroids; the timer runs until the first hit and your
best survival time is kept between sessions.

Available commands:
  play      - Pick a difficulty and play
  serve     - Start SSH server for remote play
  scores    - View the best time and run history
  simulate  - Run headless sessions without input
  config    - Print the default configuration

Examples:
  dodge play
  dodge play --difficulty hard
  dodge serve --ssh :2222
  dodge scores --difficulty easy
  dodge simulate --runs 20 --difficulty hard`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dodge/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}
