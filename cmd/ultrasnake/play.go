package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ultrasnake/internal/platform/tui"
	"github.com/vovakirdan/ultrasnake/internal/registry"
	"github.com/vovakirdan/ultrasnake/internal/telemetry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Start a run",
	Long: `Start a run of the given mode (default: ultrasnake).

Controls:
  WASD/Arrows/HJKL  - Steer
  Space             - Fire an ice shard
  P                 - Pause
  R                 - New run
  Esc/B             - Leave (when paused or after game over)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slower opponent that rarely dodges, long freezes
  normal - The default duel
  hard   - Fast, evasive opponent and short freezes

Examples:
  ultrasnake play
  ultrasnake play ultrasnake_solo
  ultrasnake play --difficulty hard
  ultrasnake play --config ./my-rules.yaml --record run.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := modeFromArgs(args)
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'ultrasnake list' to see the modes)", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	logger, logCloser, err := newLogger(io.Discard, "ultrasnake")
	if err != nil {
		return err
	}
	defer logCloser.Close()

	recorder, err := telemetry.NewRecorder(flagRecord)
	if err != nil {
		return err
	}
	defer recorder.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	services := tui.Services{Store: store, Logger: logger, Recorder: recorder}
	if _, err := tui.Run(game, services, runtimeConfig()); err != nil {
		return err
	}
	return nil
}
