// platformer is a side-scrolling platform game for the terminal.
//
// Usage:
//
//	platformer play             - Play the campaign from world 1
//	platformer menu             - Start menu to pick a mode interactively
//	platformer levels           - List level builders
//	platformer levels show <id> - Print a built level as text
//	platformer serve            - Start SSH server for remote play
//	platformer scores [mode]    - Show the run history
//
// Global flags:
//
//	--fps <rate>        - Set render rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible levels
//	--db <path>         - Set database path (default: ~/.platformer/runs.db)
//	--config <path>     - Load a custom game config YAML
//	--difficulty <name> - Apply a difficulty preset
//	--levels <dir>      - Load extra levels from a directory
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Log destination, "-" for stderr
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "TUI Platformer - Run and jump through tile worlds in your terminal",
	Long: `TUI Platformer is a side-scrolling platform game rendered in the terminal.

Available commands:
  play     - Play the campaign or endless mode directly
  menu     - Interactive mode picker
  levels   - List and preview level builders
  serve    - Start SSH server for remote play
  scores   - View the run history

Examples:
  platformer play
  platformer play --world 3 --difficulty hard
  platformer play --endless --seed 42
  platformer levels show random --seed 7
  platformer serve --ssh :2222`,
}

func init() {
	defaultLog := config.UserPath("platformer.log")
	defaultLevels := config.UserPath("levels")

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Render rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.platformer/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", defaultLevels, "Directory with extra level files (.yaml, .toml, .lua)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", defaultLog, `Log file ("-" for stderr)`)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// app holds what every command sets up from the global flags.
type app struct {
	cfg    *config.PlatformerConfig
	logger *log.Logger
	closer io.Closer
}

func (a *app) Close() {
	if a.closer != nil {
		a.closer.Close() //nolint:errcheck // Log file, nothing left to report to
	}
}

// setup loads the config, applies the difficulty preset, opens the log and
// registers the user's level files.
func setup() (*app, error) {
	logger, closer, err := newLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return nil, err
	}
	a := &app{logger: logger, closer: closer}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		a.Close()
		return nil, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			a.Close()
			return nil, fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	a.cfg = &cfg

	if flagLevelsDir != "" {
		n, err := level.LoadDir(flagLevelsDir, registry.Default, logger)
		if err != nil {
			logger.Warn("could not load level directory", "dir", flagLevelsDir, "error", err)
		} else if n > 0 {
			logger.Info("loaded user levels", "dir", flagLevelsDir, "count", n)
		}
	}
	return a, nil
}

// newLogger opens the log destination. The game owns the terminal, so
// logs go to a file unless "-" asks for stderr.
func newLogger(path, level string) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var (
		w      io.Writer = io.Discard
		closer io.Closer
	)
	switch path {
	case "":
	case "-":
		w = os.Stderr
	default:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		//nolint:gosec // Path comes from the command line
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "platformer",
		Level:           lvl,
	})
	return logger, closer, nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	if flagFPS > 0 {
		rc.FrameFPS = flagFPS
	}
	rc.Seed = flagSeed
	return rc
}

// openStore opens the run history. Failure only disables it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		logger.Warn("could not open run database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func (a *app) env(store *storage.Store) tui.Env {
	return tui.Env{
		Config:  a.cfg,
		Store:   store,
		Logger:  a.logger,
		Runtime: runtimeConfig(),
		Player:  os.Getenv("USER"),
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
