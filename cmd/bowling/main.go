// bowling is a terminal bowling lane driven by a fixed-timestep rigid-body
// simulation.
//
// Usage:
//
//	bowling list               - List lane variants
//	bowling play [variant]     - Bowl (lane picker when no variant is given)
//	bowling simulate           - Run a lane headless and print a digest
//	bowling scores [variant]   - Show the best rounds
//	bowling serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Host frame rate (default: 60)
//	--db <path>          - Database path (default: ~/.bowling/scores.db)
//	--config <path>      - Lane config YAML
//	--log-level <level>  - debug, info, warn, error
//
// BOWLING_DB, BOWLING_CONFIG and BOWLING_LOG_LEVEL (also read from .env)
// override the flag defaults.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bowling/internal/bowling"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bowling",
	Short: "Bowl in your terminal",
	Long: `A bowling lane simulated with rigid-body physics and drawn in the terminal.

Available commands:
  list      - Show lane variants
  play      - Bowl on a lane
  simulate  - Run a lane without a terminal UI
  scores    - View the best rounds
  serve     - Start SSH server for remote play

Examples:
  bowling play
  bowling play bowling_strict
  bowling simulate --frames 600 --nudge -2
  bowling scores bowling
  bowling serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		bowling.SetConfigPath(flagConfig)
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		return nil
	},
}

func init() {
	// A missing .env is normal
	_ = godotenv.Load()

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Host frame rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envOr("BOWLING_DB", "~/.bowling/scores.db"), "Path to rounds database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", os.Getenv("BOWLING_CONFIG"), "Path to custom lane config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", envOr("BOWLING_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newLogger creates a logger writing to w at the level from --log-level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// fail prints an error and exits with status 1.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
