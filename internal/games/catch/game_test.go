package catch

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/core"
)

func newTestGame(mode GameMode, seed int64) *Game {
	g := NewWithConfig(mode, config.DefaultCatchConfig())
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g.Reset(cfg)
	return g
}

// begin starts the current level and runs one fixed step so its entry
// effects have been applied.
func begin(g *Game) {
	g.Step(core.NewInputFrame(core.ActionStart))
	g.Frame(g.cfg.Physics.FixedStep, core.NewInputFrame())
}

func TestGameIDs(t *testing.T) {
	tests := []struct {
		game  *Game
		id    string
		title string
	}{
		{New(), "catch", "Catch"},
		{NewEndless(), "catch_endless", "Catch (Endless)"},
	}
	for _, tt := range tests {
		if tt.game.ID() != tt.id || tt.game.Title() != tt.title {
			t.Errorf("ID()/Title() = %q/%q, expected %q/%q", tt.game.ID(), tt.game.Title(), tt.id, tt.title)
		}
	}
}

func TestGameWaitsOnIntro(t *testing.T) {
	g := newTestGame(ModeCampaign, 1)
	for i := 0; i < 120; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Started() {
		t.Error("Started() = true without a start signal")
	}
	if len(g.BodyPositions()) != 0 {
		t.Errorf("bodies = %d on intro, expected 0", len(g.BodyPositions()))
	}
}

func TestGameStepsInLockstep(t *testing.T) {
	g := newTestGame(ModeCampaign, 1)
	g.Step(core.NewInputFrame(core.ActionStart))

	total := 0
	for i := 0; i < 50; i++ {
		total += g.Frame(0.02, core.NewInputFrame()).Steps
	}
	if total != 50 {
		t.Errorf("steps over 50 frames of one step = %d, expected 50", total)
	}
}

func TestGameDeterministic(t *testing.T) {
	run := func() uint64 {
		g := newTestGame(ModeCampaign, 42)
		pilot := NewAutopilot()
		for i := 0; i < 1200; i++ {
			g.Step(pilot.Input(g))
		}
		return g.Snapshot().Hash()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("snapshot hashes differ: %x != %x", a, b)
	}
}

func TestGameSeedChangesSpawns(t *testing.T) {
	positions := func(seed int64) core.Vec3 {
		g := newTestGame(ModeCampaign, seed)
		g.Step(core.NewInputFrame(core.ActionStart))
		g.Step(core.NewInputFrame())
		return g.BodyPositions()[0]
	}
	if positions(1) == positions(2) {
		t.Error("different seeds spawned identical balls")
	}
}

func TestGameCompletesLevelAndAdvances(t *testing.T) {
	g := newTestGame(ModeCampaign, 1)
	begin(g)

	g.rules.collected = g.cfg.Levels[0].Target
	g.Step(core.NewInputFrame())

	if g.Phase() != PhaseCompleted {
		t.Fatalf("Phase() = %v, expected completed", g.Phase())
	}
	if g.State().GameOver {
		t.Error("GameOver after level 1, expected only after the last level")
	}
	results := g.DrainLevelResults()
	if len(results) != 1 || results[0].Outcome != "completed" || results[0].Level != 1 {
		t.Fatalf("DrainLevelResults() = %+v, expected one completed level 1", results)
	}
	if len(g.DrainLevelResults()) != 0 {
		t.Error("DrainLevelResults() returned results twice")
	}

	g.Step(core.NewInputFrame(core.ActionNext))
	if g.Level() != LevelTwo || g.Phase() != PhaseNotStarted {
		t.Fatalf("after next = %v/%v, expected Level 2/not_started", g.Level(), g.Phase())
	}
	if len(g.BodyPositions()) != 0 {
		t.Errorf("bodies = %d after advancing, expected a cleared field", len(g.BodyPositions()))
	}
	if g.Lives() != g.cfg.Levels[1].Lives || g.Collected() != 0 {
		t.Errorf("Lives()/Collected() = %d/%d, expected %d/0", g.Lives(), g.Collected(), g.cfg.Levels[1].Lives)
	}
}

func TestGameWinAfterLastLevel(t *testing.T) {
	g := newTestGame(ModeCampaign, 1)
	for lvl := range g.cfg.Levels {
		if lvl > 0 {
			g.Step(core.NewInputFrame(core.ActionNext))
		}
		begin(g)
		g.rules.collected = g.cfg.Levels[lvl].Target
		g.Step(core.NewInputFrame())
	}

	if !g.Won() || !g.State().GameOver {
		t.Fatalf("Won()/GameOver = %v/%v, expected true/true", g.Won(), g.State().GameOver)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(ModeCampaign, 1)
	begin(g)
	g.rules.lives = 0
	g.Step(core.NewInputFrame())

	if !g.State().GameOver || g.Phase() != PhaseFailed {
		t.Fatalf("GameOver/Phase = %v/%v, expected true/failed", g.State().GameOver, g.Phase())
	}

	g.Step(core.NewInputFrame(core.ActionRestart))
	if g.Started() || g.State().GameOver || g.State().Score != 0 {
		t.Errorf("after restart Started()=%v GameOver=%v Score=%d, expected a fresh run",
			g.Started(), g.State().GameOver, g.State().Score)
	}
}

func TestEndlessNeverCompletes(t *testing.T) {
	g := newTestGame(ModeEndless, 1)
	begin(g)
	g.rules.collected = 1000
	g.Step(core.NewInputFrame())

	if g.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v, expected playing", g.Phase())
	}
	if g.Simulator().TimeScale() != g.cfg.Endless.TimeScale {
		t.Errorf("TimeScale() = %v, expected %v", g.Simulator().TimeScale(), g.cfg.Endless.TimeScale)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(ModeCampaign, 1)
	g.Step(core.NewInputFrame(core.ActionStart))
	g.Step(core.NewInputFrame(core.ActionPause))

	if !g.State().Paused {
		t.Fatal("Paused = false after pause")
	}
	before := g.Simulator().StepsTaken()
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Simulator().StepsTaken() != before {
		t.Errorf("StepsTaken() moved while paused: %d -> %d", before, g.Simulator().StepsTaken())
	}

	g.Step(core.NewInputFrame(core.ActionPause))
	if g.State().Paused {
		t.Error("Paused = true after unpause")
	}
}

func TestGameEventsPerFrame(t *testing.T) {
	g := newTestGame(ModeCampaign, 1)
	begin(g)
	g.Simulator().Clear()
	g.Simulator().Spawn(newBodyAt(g.Agent()))

	g.Frame(g.cfg.Physics.FixedStep, core.NewInputFrame())
	events := g.Events()
	if len(events) != 1 || events[0].Kind != EventCatch {
		t.Fatalf("Events() = %+v, expected one catch", events)
	}

	g.Frame(0, core.NewInputFrame())
	if len(g.Events()) != 0 {
		t.Errorf("Events() = %+v after an empty frame, expected none", g.Events())
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(ModeCampaign, 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Target: 0/5", "Lives: 5/5", "Press Enter to Start Game!", "Score: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if !strings.ContainsRune(out, '┌') {
		t.Error("render missing overlay frame")
	}

	begin(g)
	g.rules.lives = 0
	g.Step(core.NewInputFrame())
	screen.Clear()
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("render missing game over panel")
	}
}

func TestAutopilotCatchesBalls(t *testing.T) {
	g := newTestGame(ModeCampaign, 7)
	pilot := NewAutopilot()
	for i := 0; i < 60*60 && !g.Ended(); i++ {
		g.Step(pilot.Input(g))
	}
	if g.State().Score == 0 {
		t.Error("autopilot caught nothing in a minute of play")
	}
}

func TestInvalidConfigFallsBackToDefaults(t *testing.T) {
	cfg := config.DefaultCatchConfig()
	cfg.Levels = nil
	g := NewWithConfig(ModeCampaign, cfg)
	g.Reset(core.DefaultConfig())

	if got := len(g.Config().Levels); got != len(config.DefaultCatchConfig().Levels) {
		t.Fatalf("len(Config().Levels) = %d, expected the default table", got)
	}
	begin(g)
	if g.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v, expected %v", g.Phase(), PhasePlaying)
	}
}
