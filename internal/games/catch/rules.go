package catch

import (
	"math"
	"math/rand/v2"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/core"
	"github.com/vovakirdan/tui-catch/internal/sim"
)

// EventSink receives gameplay events as they happen inside a fixed step.
type EventSink interface {
	OnCatch(b *sim.Body)
	OnMiss(b *sim.Body)
}

// Controls is the held state of the agent's movement keys for one frame.
type Controls struct {
	Left, Right       bool
	Forward, Backward bool
	Boost             bool
}

// Rules is the per-step game policy. It implements sim.Updater and runs, in
// order: level-entry effects, spawning, gravity, catch, ground, agent control
// and culling.
type Rules struct {
	cfg    config.CatchConfig
	levels []config.LevelConfig
	flow   *Flow
	rng    *rand.Rand
	sink   EventSink

	agent     core.Vec3
	controls  Controls
	lives     int
	collected int
	total     int
}

// NewRules creates the rule engine for the given level table. The table is
// indexed by Level-1. sink may be nil.
func NewRules(cfg config.CatchConfig, levels []config.LevelConfig, flow *Flow, rng *rand.Rand, sink EventSink) *Rules {
	r := &Rules{
		cfg:    cfg,
		levels: levels,
		flow:   flow,
		rng:    rng,
		sink:   sink,
		agent:  core.Vec3(cfg.Agent.Start),
	}
	if len(levels) > 0 {
		r.lives = levels[0].Lives
	}
	return r
}

// Update advances the game rules by one fixed step of dt seconds.
func (r *Rules) Update(s *sim.Simulator, dt float64) {
	r.enterLevel(s)

	if r.flow.Phase() == PhasePlaying {
		r.spawn(s)
		for _, b := range s.Bodies() {
			r.applyGravity(b, dt)
			r.checkCatch(b)
			r.checkGround(b)
		}
	}

	r.moveAgent(dt)
	s.Retain(r.keep)
}

// enterLevel applies the entered level's one-time effects. The level latch
// guarantees they run once per level per run.
func (r *Rules) enterLevel(s *sim.Simulator) {
	lvl, pending := r.flow.PendingEntry()
	if !pending || !r.flow.Latch(lvl) {
		return
	}
	lc := r.levelConfig(lvl)
	s.SetTimeScale(lc.TimeScale)
	r.collected = 0
	r.lives = lc.Lives
	logger.Debug("level entered", "level", lvl, "lives", lc.Lives, "target", lc.Target, "time_scale", lc.TimeScale)
}

func (r *Rules) spawn(s *sim.Simulator) {
	want := r.CurrentLevel().TargetBodies()
	for s.Population() < want {
		sp := r.cfg.Spawn
		x := sp.Spread * (r.rng.Float64() - 0.5)
		pos := core.Vec3{x, sp.Height, r.cfg.World.PlayPlaneZ}
		s.Spawn(sim.NewBody(pos, r.randomVelocity(sp.Speed), sp.Radius))
	}
}

// randomVelocity returns a uniformly jittered direction scaled to speed.
func (r *Rules) randomVelocity(speed float64) core.Vec3 {
	dir := core.Vec3{r.rng.Float64() - 0.5, r.rng.Float64() - 0.5, r.rng.Float64() - 0.5}
	if dir.Len() == 0 {
		dir = core.Vec3{0, -1, 0}
	}
	return dir.Normalize().Mul(speed)
}

func (r *Rules) applyGravity(b *sim.Body, dt float64) {
	b.Velocity[core.AxisY] += dt * r.cfg.Physics.Gravity
	b.Center[core.AxisZ] = r.cfg.World.PlayPlaneZ
}

func (r *Rules) checkCatch(b *sim.Body) {
	if core.Distance(b.Center, r.agent) >= r.cfg.Agent.Radius {
		return
	}
	b.Velocity[core.AxisY] = 0
	r.collected++
	r.total++
	if r.sink != nil {
		r.sink.OnCatch(b)
	}
}

func (r *Rules) checkGround(b *sim.Body) {
	if b.Center.Y() > r.cfg.World.GroundY || b.Velocity.Y() >= 0 {
		return
	}
	b.Velocity[core.AxisY] = bounce(b.Velocity.Y(), r.cfg.Physics.Restitution)
	if r.lives > 0 {
		r.lives--
	}
	if r.sink != nil {
		r.sink.OnMiss(b)
	}
}

// bounce reflects a vertical velocity off the ground, losing energy.
func bounce(vy, restitution float64) float64 {
	return vy * -restitution
}

func (r *Rules) moveAgent(dt float64) {
	a := r.cfg.Agent
	speed := a.Speed
	if r.controls.Boost {
		speed *= a.Boost
	}
	step := speed * dt

	if r.controls.Left {
		r.agent[core.AxisX] -= step
	}
	if r.controls.Right {
		r.agent[core.AxisX] += step
	}
	if a.AllowDepth {
		if r.controls.Forward {
			r.agent[core.AxisZ] -= step
		}
		if r.controls.Backward {
			r.agent[core.AxisZ] += step
		}
	}
	if a.BoundX > 0 {
		r.agent[core.AxisX] = core.ClampF(r.agent.X(), -a.BoundX, a.BoundX)
	}
}

// keep decides whether a body stays alive after this step: it must be finite,
// inside the play volume and either still moving or above the resting height.
func (r *Rules) keep(b *sim.Body) bool {
	w := r.cfg.World
	if !core.IsFinite(b.Center) || b.Center.Len() >= w.MaxRadius {
		return false
	}
	return b.Speed() > w.RestingSpeed || b.Center.Y() >= w.RestingHeight
}

// SetControls replaces the held controls used by subsequent steps.
func (r *Rules) SetControls(c Controls) { r.controls = c }

// CurrentLevel returns the configuration of the current level. On the intro
// screen it is the first level.
func (r *Rules) CurrentLevel() config.LevelConfig {
	return r.levelConfig(r.flow.Level())
}

func (r *Rules) levelConfig(l Level) config.LevelConfig {
	i := int(l) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(r.levels) {
		i = len(r.levels) - 1
	}
	return r.levels[i]
}

// Agent returns the agent position.
func (r *Rules) Agent() core.Vec3 { return r.agent }

// Lives returns the lives left on the current level.
func (r *Rules) Lives() int { return r.lives }

// Collected returns the balls caught on the current level.
func (r *Rules) Collected() int { return r.collected }

// Total returns the balls caught over the whole run.
func (r *Rules) Total() int { return r.total }

// AgentRadius returns the catch radius.
func (r *Rules) AgentRadius() float64 { return r.cfg.Agent.Radius }

func finiteDelta(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0)
}
