package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ultrasnake/internal/platform/tui"
	"github.com/vovakirdan/ultrasnake/internal/registry"
	"github.com/vovakirdan/ultrasnake/internal/telemetry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Choose mode, difficulty and theme before playing",
	Long: `Start with the setup menu. Pick a mode, difficulty, theme and sound,
then Start. Leaving a run with Esc returns to the menu.

Controls:
  Up/Down/j/k     - Navigate
  Left/Right/h/l  - Change a setting
  Enter/Space     - Select
  Tab             - High scores
  Q               - Quit

Examples:
  ultrasnake menu
  ultrasnake menu --fps 30
  ultrasnake menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	cfg := runtimeConfig()
	gameID := modeFromArgs(nil)

	for {
		res, err := tui.RunMenu(cfg, gameID)
		if err != nil {
			return err
		}
		cfg, gameID = res.Config, res.GameID

		if res.Quit {
			return nil
		}

		if res.WantsScoreboard {
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
			continue
		}

		game, err := registry.Create(gameID)
		if err != nil {
			return err
		}

		back, err := tui.Run(game, services, cfg)
		if err != nil {
			return err
		}
		recorder.NextRun()
		// A fixed --seed replays the first run only.
		cfg.Seed = 0
		if !back {
			return nil
		}
	}
}
