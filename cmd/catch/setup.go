package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/core"
	"github.com/vovakirdan/tui-catch/internal/games/catch"
)

var (
	logger  = log.New(io.Discard)
	gameCfg config.CatchConfig
)

// setup validates the game configuration and configures logging before any
// command runs. Interactive commands log only to --log-file so output never
// lands on the game screen.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = io.Discard
	if !interactive(cmd) {
		w = os.Stderr
	}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "catch",
		Level:           level,
	})
	catch.SetLogger(logger.WithPrefix("game"))

	cfg, err := config.LoadCatch(flagConfig)
	if err != nil {
		return err
	}
	gameCfg = cfg
	catch.SetConfigPath(flagConfig)
	return nil
}

func interactive(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "catch", "menu", "play":
		return true
	}
	return false
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
