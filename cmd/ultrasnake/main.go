// ultrasnake is a terminal snake duel against an AI opponent.
//
// Usage:
//
//	ultrasnake list            - List game modes
//	ultrasnake play [mode]     - Play a mode (default: ultrasnake)
//	ultrasnake menu            - Pick mode, difficulty and theme interactively
//	ultrasnake scores [mode]   - Show the best runs
//	ultrasnake serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.ultrasnake/scores.db)
//	--log-file <path>     - Write debug logs to a file
//	--config <path>       - Custom rules YAML
//	--difficulty <name>   - easy, normal or hard
//	--no-opponent         - Play without the AI opponent
//	--theme <name>        - neon, retro or classic
//	--mute                - Disable sound
//	--record <path>       - Record the event stream as CSV
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ultrasnake/internal/core"
	"github.com/vovakirdan/ultrasnake/internal/games/ultrasnake"
	"github.com/vovakirdan/ultrasnake/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogFile    string
	flagConfig     string
	flagDifficulty string
	flagNoOpponent bool
	flagTheme      string
	flagMute       bool
	flagRecord     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ultrasnake",
	Short: "Ultra Snake - a snake duel in your terminal",
	Long: `Ultra Snake pits your snake against an AI opponent on a shared board.
Eat food, pick up power-ups, freeze the opponent with ice shards and call
in an ally to take it down.

Available commands:
  list     - Show the game modes
  play     - Start a run directly
  menu     - Choose mode, difficulty and theme first
  scores   - View the best runs
  serve    - Start SSH server for remote play

Examples:
  ultrasnake play
  ultrasnake play --difficulty hard --theme retro
  ultrasnake play --no-opponent
  ultrasnake menu
  ultrasnake serve --ssh :2222
  ultrasnake scores`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.ultrasnake/scores.db", "Path to scores database")
	pf.StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")
	pf.StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard")
	pf.BoolVar(&flagNoOpponent, "no-opponent", false, "Play without the AI opponent")
	pf.StringVar(&flagTheme, "theme", "neon", "Board theme: neon, retro, classic")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound")
	pf.StringVar(&flagRecord, "record", "", "Record game events to this CSV file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// runtimeConfig builds the game settings from the flags and terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.ConfigPath = flagConfig
	cfg.Difficulty = flagDifficulty
	cfg.Theme = flagTheme
	cfg.Sound = !flagMute
	return cfg
}

// modeFromArgs picks the mode from the optional argument and --no-opponent.
func modeFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if flagNoOpponent {
		return ultrasnake.SoloGameID
	}
	return ultrasnake.GameID
}

// newLogger returns a logger writing to --log-file, or to fallback when the
// flag is empty. The returned closer releases the file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, io.Closer, error) {
	w, closer := fallback, io.Closer(nopCloser{})
	level := log.InfoLevel

	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closer = f, f
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore opens the score database. Failure is not fatal: the game runs
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
