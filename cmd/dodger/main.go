// dodger is Space Dodger: steer a craft around falling squares, in the
// terminal, in a window, or over SSH.
//
// Usage:
//
//	dodger play          - Play in the terminal
//	dodger window        - Play in a desktop window
//	dodger serve         - Start SSH server for remote play
//	dodger scores        - Show past runs and stats
//	dodger simulate      - Run headless games with the autopilot
//	dodger config        - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.dodger/scores.db)
//	--config <path>     - Load tuning from a YAML file
//	--log-file <path>   - Write logs to a file
//	--debug             - Enable debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-dodger/internal/config"
	"github.com/vovakirdan/space-dodger/internal/core"
	"github.com/vovakirdan/space-dodger/internal/games/dodger"
	"github.com/vovakirdan/space-dodger/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dodger",
	Short: "Space Dodger - dodge the falling squares",
	Long: `Space Dodger steers a craft around squares falling from the top of
the screen. Every square that falls past the bottom scores a point; the
squares speed up as your score grows. Touching one ends the run.

Available commands:
  play      - Play in the terminal
  window    - Play in a desktop window
  serve     - Start SSH server for remote play
  scores    - View past runs
  simulate  - Headless autopilot runs
  config    - Print the effective configuration

Examples:
  dodger play
  dodger window --fps 120
  dodger serve --ssh :2222
  dodger scores --limit 20
  dodger simulate --runs 50`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dodger/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the process logger. Logs go to --log-file when set,
// otherwise to fallback.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func()) {
	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			out, closeFn = f, func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn
}

// runtimeConfig returns the runtime config from the global flags.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// session bundles what every playing command needs: tuning, logging and
// persistence.
type session struct {
	cfg      config.DodgerConfig
	logger   *log.Logger
	store    *storage.Store
	keeper   *storage.HighScoreKeeper
	closeLog func()
}

// openSession loads config and opens the score store. A store that cannot
// be opened is logged and play continues without persistence.
func openSession(logOut io.Writer, prefix string) *session {
	logger, closeLog := newLogger(logOut, prefix)

	cfg, err := config.LoadDodger(flagConfig)
	if err != nil {
		closeLog()
		fatal("%v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		store = nil
	}

	return &session{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		keeper:   storage.NewHighScoreKeeper(store, dodger.ID, logger),
		closeLog: closeLog,
	}
}

// newGame builds a game wired to the session's config, keeper and logger.
func (s *session) newGame() *dodger.Game {
	return dodger.New(
		dodger.WithConfig(s.cfg),
		dodger.WithHighScores(s.keeper),
		dodger.WithLogger(s.logger),
	)
}

// Close flushes pending writes and releases the store.
func (s *session) Close() {
	if err := s.keeper.Close(); err != nil {
		s.logger.Warn("could not flush scores", "error", err)
	}
	if s.store != nil {
		s.store.Close()
	}
	s.closeLog()
}
