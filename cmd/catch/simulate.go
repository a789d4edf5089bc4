package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-catch/internal/core"
	"github.com/vovakirdan/tui-catch/internal/games/catch"
	"github.com/vovakirdan/tui-catch/internal/storage"
	"github.com/vovakirdan/tui-catch/internal/telemetry"
)

var (
	flagSeconds float64
	flagJitter  float64
	flagOutDir  string
	flagSave    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless autopilot session",
	Long: `Run the campaign without a terminal. An autopilot plays while frame
deltas are drawn around 1/fps with the given jitter, so the fixed-step
accumulator sees uneven frames like a real display would.

With --out, the run writes:
  frames.csv    - one row per display frame
  config.yaml   - the game configuration used
  summary.yaml  - aggregate statistics

Examples:
  catch simulate
  catch simulate --seconds 120 --seed 42 --out ./run1
  catch simulate --fps 30 --jitter 0.8`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&flagSeconds, "seconds", 60, "Wall-clock seconds to simulate")
	simulateCmd.Flags().Float64Var(&flagJitter, "jitter", 0.3, "Relative frame delta jitter (0 = steady frames)")
	simulateCmd.Flags().StringVar(&flagOutDir, "out", "", "Directory for telemetry output")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Save the score and level results to the database")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive")
	}
	if flagJitter < 0 || flagJitter >= 1 {
		return fmt.Errorf("--jitter must be in [0, 1)")
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rec, err := telemetry.NewRecorder(flagOutDir)
	if err != nil {
		return err
	}
	defer rec.Close()

	game := catch.NewWithConfig(catch.ModeCampaign, gameCfg)
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed})

	pilot := catch.NewAutopilot()
	jitter := rand.New(rand.NewPCG(uint64(seed), 0x5eed))
	base := 1.0 / float64(flagFPS)

	logger.Info("simulation started", "seed", seed, "seconds", flagSeconds, "fps", flagFPS, "jitter", flagJitter)

	var results []core.LevelResult
	var elapsed float64
	var frame uint64
	for elapsed < flagSeconds {
		delta := base * (1 + flagJitter*(2*jitter.Float64()-1))
		res := game.Frame(delta, pilot.Input(game))
		elapsed += delta
		frame++

		s := game.Simulator()
		if err := rec.Record(telemetry.FrameRecord{
			Frame:       frame,
			Delta:       delta,
			Steps:       res.Steps,
			Alpha:       s.Alpha(),
			Accumulator: s.Accumulator(),
			Bodies:      s.Population(),
			SimTime:     s.Time(),
			Level:       int(game.Level()),
			Phase:       game.Phase().String(),
			Lives:       game.Lives(),
			Collected:   game.Collected(),
		}); err != nil {
			return err
		}

		results = append(results, game.DrainLevelResults()...)
		rec.SetScore(res.State.Score)
		if res.State.GameOver {
			break
		}
	}

	if err := rec.WriteConfig(gameCfg); err != nil {
		return err
	}
	if err := rec.WriteSummary(); err != nil {
		return err
	}

	summary := rec.Summary()
	logger.Info("simulation finished",
		"frames", summary.Frames,
		"steps", summary.TotalSteps,
		"score", summary.Score,
		"level", game.Level(),
		"phase", game.Phase())

	if flagSave {
		saveSimulation(game, results, summary.Score)
	}

	fmt.Printf("Seed:        %d\n", seed)
	fmt.Printf("Frames:      %d\n", summary.Frames)
	fmt.Printf("Steps:       %d (max %d per frame, mean %.2f)\n", summary.TotalSteps, summary.MaxSteps, summary.MeanSteps)
	fmt.Printf("Frame delta: %.4fs +/- %.4fs\n", summary.MeanDelta, summary.StdDelta)
	fmt.Printf("Alpha:       p50 %.3f  p95 %.3f\n", summary.AlphaP50, summary.AlphaP95)
	fmt.Printf("Sim time:    %.2fs\n", summary.SimTime)
	fmt.Printf("Reached:     %s (%s)\n", game.Level(), game.Phase())
	fmt.Printf("Score:       %d\n", summary.Score)
	for _, r := range results {
		fmt.Printf("  level %d %-9s caught %d, %d lives left\n", r.Level, r.Outcome, r.Collected, r.Lives)
	}
	if dir := rec.Dir(); dir != "" {
		fmt.Printf("Telemetry written to %s\n", dir)
	}
	return nil
}

func saveSimulation(game *catch.Game, results []core.LevelResult, score int) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return
	}
	defer store.Close()

	for _, r := range results {
		if _, err := store.SaveLevelResult(r); err != nil {
			logger.Warn("saving level result", "level", r.Level, "error", err)
		}
	}
	if _, err := store.SaveScore(game.ID(), score); err != nil {
		logger.Warn("saving score", "error", err)
	}
}
