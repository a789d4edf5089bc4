package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-catch/internal/games/catch"
	"github.com/vovakirdan/tui-catch/internal/platform/tui"
	"github.com/vovakirdan/tui-catch/internal/registry"
	"github.com/vovakirdan/tui-catch/internal/storage"
)

var (
	flagMode  string
	flagLevel int
	flagBell  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a mode directly",
	Long: `Start playing without the menu.

Controls:
  Left/Right, A/D    - Move the basket
  Shift+Left/Right   - Move three times faster
  Enter              - Start the level
  N                  - Next level (after completing one)
  P                  - Pause
  R                  - Restart (after game over)
  Q/Ctrl+C           - Quit

Examples:
  catch play
  catch play --level 3
  catch play --mode endless
  catch play --config ./my-catch.yaml`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "campaign", "Game mode: campaign or endless")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Campaign level to start on")
	playCmd.Flags().BoolVar(&flagBell, "bell", true, "Ring the terminal bell on catches and misses")
}

func gameIDForMode(mode string) (string, error) {
	switch mode {
	case "campaign", "":
		return "catch", nil
	case "endless":
		return "catch_endless", nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected campaign or endless)", mode)
	}
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameID, err := gameIDForMode(flagMode)
	if err != nil {
		return err
	}
	if flagLevel < 1 || flagLevel > len(gameCfg.Levels) {
		return fmt.Errorf("--level must be between 1 and %d", len(gameCfg.Levels))
	}
	catch.SetStartLevel(flagLevel)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	cfg := runtimeConfig()
	logger.Info("starting game", "game", gameID, "level", flagLevel, "seed", cfg.Seed)

	if _, err := tui.Run(game, store, cfg, tui.WithBell(flagBell), tui.WithLogger(logger)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
