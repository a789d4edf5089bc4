package catch

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/vovakirdan/tui-catch/internal/config"
	"github.com/vovakirdan/tui-catch/internal/core"
	"github.com/vovakirdan/tui-catch/internal/sim"
)

type recorder struct {
	catches, misses int
}

func (r *recorder) OnCatch(*sim.Body) { r.catches++ }
func (r *recorder) OnMiss(*sim.Body)  { r.misses++ }

type rulesFixture struct {
	cfg   config.CatchConfig
	flow  *Flow
	rules *Rules
	sim   *sim.Simulator
	rec   *recorder
}

// newFixture builds rules over the default config. When playing is true the
// first level has been started.
func newFixture(t *testing.T, playing bool) *rulesFixture {
	t.Helper()
	cfg := config.DefaultCatchConfig()
	f := &rulesFixture{cfg: cfg, rec: &recorder{}}
	f.flow = NewFlow(len(cfg.Levels), LevelIntro)
	if playing {
		f.flow.Start()
	}
	f.rules = NewRules(cfg, cfg.Levels, f.flow, rand.New(rand.NewPCG(1, 2)), f.rec)
	s, err := sim.New(sim.Config{
		FixedStep:    cfg.Physics.FixedStep,
		MaxFrameTime: cfg.Physics.MaxFrameTime,
		TimeScale:    1,
	}, f.rules)
	if err != nil {
		t.Fatalf("sim.New() error = %v", err)
	}
	f.sim = s
	return f
}

func (f *rulesFixture) step() {
	f.rules.Update(f.sim, f.cfg.Physics.FixedStep)
}

func TestCatchInsideAgentRadius(t *testing.T) {
	tests := []struct {
		name string
		vy   float64
	}{
		{"slow fall", -3},
		{"fast fall", -500},
		{"rising", 40},
		{"at rest", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			b := f.sim.Spawn(sim.NewBody(f.rules.Agent(), core.Vec3{0, tt.vy, 0}, 1))

			f.step()

			if b.Velocity.Y() != 0 {
				t.Errorf("caught body vy = %v, expected 0", b.Velocity.Y())
			}
			if f.rules.Collected() != 1 || f.rules.Total() != 1 {
				t.Errorf("Collected()/Total() = %d/%d, expected 1/1", f.rules.Collected(), f.rules.Total())
			}
			if f.rec.catches != 1 {
				t.Errorf("catch events = %d, expected 1", f.rec.catches)
			}
			// A caught ball comes to rest below the resting height and is
			// culled in the same step, so it is never counted twice.
			if f.sim.Population() != 0 {
				t.Errorf("Population() = %d, expected caught body culled", f.sim.Population())
			}
		})
	}
}

func TestNoCatchOutsideAgentRadius(t *testing.T) {
	f := newFixture(t, true)
	agent := f.rules.Agent()
	f.sim.Spawn(sim.NewBody(agent.Add(core.Vec3{f.cfg.Agent.Radius, 0, 0}), core.Vec3{0, 10, 0}, 1))

	f.step()

	if f.rules.Collected() != 0 {
		t.Errorf("Collected() = %d, expected 0 at exactly the agent radius", f.rules.Collected())
	}
}

func TestGroundBounce(t *testing.T) {
	f := newFixture(t, true)
	b := f.sim.Spawn(sim.NewBody(core.Vec3{20, -8.1, 5}, core.Vec3{0, -5, 0}, 1))
	dt := f.cfg.Physics.FixedStep

	f.step()

	// Gravity is applied before the ground check within the step.
	want := (5 - dt*f.cfg.Physics.Gravity) * f.cfg.Physics.Restitution
	if math.Abs(b.Velocity.Y()-want) > 1e-9 {
		t.Errorf("bounced vy = %v, expected %v", b.Velocity.Y(), want)
	}
	if f.rules.Lives() != f.cfg.Levels[0].Lives-1 {
		t.Errorf("Lives() = %d, expected %d", f.rules.Lives(), f.cfg.Levels[0].Lives-1)
	}
	if f.rec.misses != 1 {
		t.Errorf("miss events = %d, expected 1", f.rec.misses)
	}
}

func TestBounce(t *testing.T) {
	if got := bounce(-5, 0.4); math.Abs(got-2) > 1e-12 {
		t.Errorf("bounce(-5, 0.4) = %v, expected 2", got)
	}
}

func TestGroundIgnoresRisingBody(t *testing.T) {
	f := newFixture(t, true)
	f.sim.Spawn(sim.NewBody(core.Vec3{20, -8.5, 5}, core.Vec3{0, 6, 0}, 1))

	f.step()

	if f.rules.Lives() != f.cfg.Levels[0].Lives {
		t.Errorf("Lives() = %d, expected no life lost for a rising body", f.rules.Lives())
	}
}

func TestLivesFloorAtZero(t *testing.T) {
	f := newFixture(t, true)
	f.step()
	f.sim.Clear()
	f.rules.lives = 1

	for i := 0; i < 3; i++ {
		f.sim.Spawn(sim.NewBody(core.Vec3{-20 + float64(i), -9, 5}, core.Vec3{0, -5, 0}, 1))
	}
	f.step()

	if f.rules.Lives() != 0 {
		t.Errorf("Lives() = %d, expected 0", f.rules.Lives())
	}
	if f.rec.misses != 3 {
		t.Errorf("miss events = %d, expected 3", f.rec.misses)
	}
}

func TestLevelTwoEntryRunsOnce(t *testing.T) {
	f := newFixture(t, true)
	f.step()

	f.rules.collected = f.cfg.Levels[0].Target
	if f.flow.Evaluate(f.rules.Lives(), f.rules.Collected(), f.cfg.Levels[0].Target) != PhaseCompleted {
		t.Fatal("level 1 did not complete")
	}
	if !f.flow.NextLevel() {
		t.Fatal("NextLevel() rejected")
	}

	f.step()
	lvl2 := f.cfg.Levels[1]
	if f.sim.TimeScale() != lvl2.TimeScale || f.rules.Collected() != 0 || f.rules.Lives() != lvl2.Lives {
		t.Fatalf("after entry: scale=%v collected=%d lives=%d, expected %v/0/%d",
			f.sim.TimeScale(), f.rules.Collected(), f.rules.Lives(), lvl2.TimeScale, lvl2.Lives)
	}

	// Mutate the state, fire the signal again and step: nothing is reset.
	f.rules.collected = 3
	f.rules.lives = 2
	f.sim.SetTimeScale(7)
	if f.flow.NextLevel() {
		t.Error("second NextLevel() accepted")
	}
	f.step()
	f.step()

	if f.rules.Collected() != 3 || f.rules.Lives() != 2 || f.sim.TimeScale() != 7 {
		t.Errorf("after repeat: scale=%v collected=%d lives=%d, expected 7/3/2",
			f.sim.TimeScale(), f.rules.Collected(), f.rules.Lives())
	}
}

func TestTimeScaleIsAbsolutePerLevel(t *testing.T) {
	f := newFixture(t, true)
	f.sim.SetTimeScale(5)
	f.step()

	if f.sim.TimeScale() != f.cfg.Levels[0].TimeScale {
		t.Errorf("TimeScale() = %v, expected %v", f.sim.TimeScale(), f.cfg.Levels[0].TimeScale)
	}
}

func TestCulling(t *testing.T) {
	tests := []struct {
		name     string
		center   core.Vec3
		velocity core.Vec3
		keep     bool
	}{
		{"outside max radius", core.Vec3{50, 0, 0}, core.Vec3{0, 10, 0}, false},
		{"far and at rest", core.Vec3{50, 0, 0}, core.Vec3{}, false},
		{"resting low", core.Vec3{0, -5, 5}, core.Vec3{}, false},
		{"resting high", core.Vec3{0, 10, 5}, core.Vec3{}, true},
		{"moving low", core.Vec3{0, -5, 5}, core.Vec3{0, -5, 0}, true},
		{"at resting height", core.Vec3{0, 0.8, 0}, core.Vec3{}, true},
		{"non-finite", core.Vec3{math.NaN(), 10, 5}, core.Vec3{0, 5, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.sim.Spawn(sim.NewBody(tt.center, tt.velocity, 1))

			f.step()

			if got := f.sim.Population() == 1; got != tt.keep {
				t.Errorf("kept = %v, expected %v", got, tt.keep)
			}
		})
	}
}

func TestSpawnWhilePlaying(t *testing.T) {
	f := newFixture(t, true)

	f.sim.Advance(f.cfg.Physics.FixedStep)

	bodies := f.sim.Bodies()
	if len(bodies) != 1 {
		t.Fatalf("live bodies = %d, expected 1", len(bodies))
	}
	b := bodies[0]
	if b.Center.Y() != f.cfg.Spawn.Height || b.Center.Z() != f.cfg.World.PlayPlaneZ {
		t.Errorf("spawned at %v, expected y=%v z=%v", b.Center, f.cfg.Spawn.Height, f.cfg.World.PlayPlaneZ)
	}
	if math.Abs(b.Center.X()) > f.cfg.Spawn.Spread/2 {
		t.Errorf("spawn x = %v outside ±%v", b.Center.X(), f.cfg.Spawn.Spread/2)
	}
	if math.Abs(b.Speed()-f.cfg.Spawn.Speed) > 1e-9 {
		t.Errorf("spawn speed = %v, expected %v", b.Speed(), f.cfg.Spawn.Speed)
	}
}

func TestNoSpawnBeforeStart(t *testing.T) {
	f := newFixture(t, false)
	for i := 0; i < 10; i++ {
		f.step()
	}
	if f.sim.Population() != 0 {
		t.Errorf("Population() = %d before start, expected 0", f.sim.Population())
	}
}

func TestAgentControl(t *testing.T) {
	dt := config.DefaultCatchConfig().Physics.FixedStep
	speed := config.DefaultCatchConfig().Agent.Speed

	tests := []struct {
		name     string
		controls Controls
		wantX    float64
	}{
		{"idle", Controls{}, 0},
		{"right", Controls{Right: true}, speed * dt},
		{"left", Controls{Left: true}, -speed * dt},
		{"boosted", Controls{Right: true, Boost: true}, 3 * speed * dt},
		{"both cancel", Controls{Left: true, Right: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.rules.SetControls(tt.controls)
			f.step()
			if got := f.rules.Agent().X(); math.Abs(got-tt.wantX) > 1e-12 {
				t.Errorf("agent x = %v, expected %v", got, tt.wantX)
			}
		})
	}
}

func TestAgentClampedToBounds(t *testing.T) {
	f := newFixture(t, false)
	f.rules.SetControls(Controls{Right: true, Boost: true})
	for i := 0; i < 500; i++ {
		f.step()
	}
	if got := f.rules.Agent().X(); got != f.cfg.Agent.BoundX {
		t.Errorf("agent x = %v, expected clamp at %v", got, f.cfg.Agent.BoundX)
	}
}

func TestDepthMovementDisabledByDefault(t *testing.T) {
	f := newFixture(t, false)
	z := f.rules.Agent().Z()
	f.rules.SetControls(Controls{Forward: true})
	f.step()
	if f.rules.Agent().Z() != z {
		t.Errorf("agent z = %v, expected %v with depth disabled", f.rules.Agent().Z(), z)
	}
}

func newBodyAt(p core.Vec3) *sim.Body {
	return sim.NewBody(p, core.Vec3{0, -1, 0}, 1)
}
