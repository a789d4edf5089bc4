// Package catch implements the falling-ball catching game on top of the
// fixed-timestep simulator.
package catch

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/core"
	"github.com/vovakirdan/tui-catch/internal/registry"
	"github.com/vovakirdan/tui-catch/internal/sim"
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Play through the level table
	ModeEndless                  // Single level that never completes
)

// EventKind classifies a gameplay event.
type EventKind int

const (
	EventCatch EventKind = iota
	EventMiss
)

// Event is a catch or miss observed during a frame.
type Event struct {
	Kind EventKind
	Body uint64
	At   core.Vec3
}

const flashFrames = 30

var (
	configPath string
	startLevel Level
	logger     = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetStartLevel makes new campaign games begin on level n (1-based).
func SetStartLevel(n int) {
	startLevel = Level(n)
}

// SetLogger routes the package's diagnostics to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the catch game.
type Game struct {
	mode     GameMode
	cfg      config.CatchConfig
	fixedCfg bool

	runtime core.RuntimeConfig
	sim     *sim.Simulator
	rules   *Rules
	flow    *Flow

	paused    bool
	frames    uint64
	lastSteps int

	events  []Event
	flash   EventKind
	flashes int

	results []core.LevelResult
}

// New creates a new campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// NewWithConfig creates a game that always uses cfg instead of loading the
// configuration from disk. An invalid cfg is replaced by the defaults on Reset.
func NewWithConfig(mode GameMode, cfg config.CatchConfig) *Game {
	return &Game{mode: mode, cfg: cfg, fixedCfg: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "catch_endless"
	}
	return "catch"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Catch (Endless)"
	}
	return "Catch"
}

// Reset replaces the whole game state.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixedCfg {
		cfg, err := config.LoadCatch(configPath)
		if err != nil {
			logger.Warn("using default config", "err", err)
			cfg = config.DefaultCatchConfig()
		}
		g.cfg = cfg
	} else if err := g.cfg.Validate(); err != nil {
		logger.Warn("using default config", "err", err)
		g.cfg = config.DefaultCatchConfig()
	}

	levels := g.cfg.Levels
	start := startLevel
	if g.mode == ModeEndless {
		levels = []config.LevelConfig{g.cfg.Endless}
		start = LevelIntro
	}

	seed := uint64(runtime.Seed)
	g.flow = NewFlow(len(levels), start)
	g.rules = NewRules(g.cfg, levels, g.flow, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), g)
	g.sim = sim.MustNew(sim.Config{
		FixedStep:    g.cfg.Physics.FixedStep,
		MaxFrameTime: g.cfg.Physics.MaxFrameTime,
		TimeScale:    1,
	}, g.rules)

	g.paused = false
	g.frames = 0
	g.lastSteps = 0
	g.events = g.events[:0]
	g.flashes = 0
	g.results = nil
}

// Step advances the game by one nominal display frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	return g.Frame(g.runtime.FrameDelta(), in)
}

// Frame advances the game by delta seconds of wall-clock time.
func (g *Game) Frame(delta float64, in core.InputFrame) core.StepResult {
	g.events = g.events[:0]
	if g.flashes > 0 {
		g.flashes--
	}

	if in.Has(core.ActionRestart) && g.State().GameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && g.flow.Started() && !g.flow.Ended() {
		g.paused = !g.paused
	}
	if g.paused {
		g.lastSteps = 0
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionStart) && g.flow.Start() {
		logger.Info("level started", "game", g.ID(), "level", g.flow.Level())
	}
	if in.Has(core.ActionNext) && g.flow.NextLevel() {
		g.sim.Clear()
		logger.Info("advanced", "game", g.ID(), "level", g.flow.Level())
	}

	g.rules.SetControls(Controls{
		Left:     in.Has(core.ActionLeft),
		Right:    in.Has(core.ActionRight),
		Forward:  in.Has(core.ActionForward),
		Backward: in.Has(core.ActionBackward),
		Boost:    in.Has(core.ActionBoost),
	})

	if !finiteDelta(delta) {
		logger.Debug("non-finite frame delta", "delta", delta)
	}
	g.lastSteps = g.sim.Advance(delta)
	g.frames++

	g.evaluate()

	return core.StepResult{State: g.State(), Steps: g.lastSteps}
}

// evaluate runs the level progression check and records terminal outcomes.
func (g *Game) evaluate() {
	before := g.flow.Phase()
	after := g.flow.Evaluate(g.rules.Lives(), g.rules.Collected(), g.rules.CurrentLevel().Target)
	if before == after || !g.flow.Ended() {
		return
	}
	res := core.LevelResult{
		GameID:    g.ID(),
		Level:     int(g.flow.Level()),
		Outcome:   after.String(),
		Collected: g.rules.Collected(),
		Lives:     g.rules.Lives(),
		Steps:     g.sim.StepsTaken(),
	}
	g.results = append(g.results, res)
	logger.Info("level ended", "game", res.GameID, "level", res.Level, "outcome", res.Outcome,
		"collected", res.Collected, "lives", res.Lives)
}

// OnCatch implements EventSink.
func (g *Game) OnCatch(b *sim.Body) {
	g.events = append(g.events, Event{Kind: EventCatch, Body: b.ID, At: b.Center})
	g.flash, g.flashes = EventCatch, flashFrames
	logger.Debug("caught", "body", b.ID, "collected", g.rules.Collected())
}

// OnMiss implements EventSink.
func (g *Game) OnMiss(b *sim.Body) {
	g.events = append(g.events, Event{Kind: EventMiss, Body: b.ID, At: b.Center})
	g.flash, g.flashes = EventMiss, flashFrames
	logger.Debug("missed", "body", b.ID, "lives", g.rules.Lives())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.rules.Total(),
		GameOver: g.flow.Phase() == PhaseFailed || g.flow.Won(),
		Paused:   g.paused,
	}
}

// Events returns the catches and misses of the last frame.
func (g *Game) Events() []Event { return g.events }

// DrainLevelResults returns and forgets the level outcomes recorded so far.
func (g *Game) DrainLevelResults() []core.LevelResult {
	res := g.results
	g.results = nil
	return res
}

// Lives returns the lives left on the current level.
func (g *Game) Lives() int { return g.rules.Lives() }

// Collected returns the balls caught on the current level.
func (g *Game) Collected() int { return g.rules.Collected() }

// Level returns the current level.
func (g *Game) Level() Level { return g.flow.Level() }

// Phase returns the current level's phase.
func (g *Game) Phase() Phase { return g.flow.Phase() }

// Started reports whether the run has left the intro screen.
func (g *Game) Started() bool { return g.flow.Started() }

// Ended reports whether the current level is over.
func (g *Game) Ended() bool { return g.flow.Ended() }

// Won reports whether every level was completed.
func (g *Game) Won() bool { return g.flow.Won() }

// Agent returns the agent position.
func (g *Game) Agent() core.Vec3 { return g.rules.Agent() }

// BodyPositions returns the interpolated position of every live body.
func (g *Game) BodyPositions() []core.Vec3 {
	bodies := g.sim.Bodies()
	out := make([]core.Vec3, len(bodies))
	for i, b := range bodies {
		out[i] = b.Blended()
	}
	return out
}

// Simulator exposes the underlying simulator for telemetry.
func (g *Game) Simulator() *sim.Simulator { return g.sim }

// Config returns the configuration the game was reset with.
func (g *Game) Config() config.CatchConfig { return g.cfg }

// Register games on package load
func init() {
	registry.Register("catch", func() registry.Game {
		return New()
	})
	registry.Register("catch_endless", func() registry.Game {
		return NewEndless()
	})
}
