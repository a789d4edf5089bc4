// Package sim implements a fixed-timestep simulation driver.
//
// Display frames arrive with arbitrary real-time deltas; the Simulator banks
// them in an accumulator and drains it in constant-size steps, so the game
// rules always see the same dt regardless of frame rate. After stepping, every
// body gets an interpolated render position between its two latest states.
package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-catch/internal/core"
)

// Defaults for the optional Config fields left at zero.
const (
	DefaultFixedStep    = 1.0 / 50.0
	DefaultMaxFrameTime = 0.1
)

var (
	// ErrNilUpdater is returned when a Simulator is built without step logic.
	ErrNilUpdater = errors.New("sim: updater is required")
	// ErrInvalidStep is returned for a non-positive or non-finite fixed step.
	ErrInvalidStep = errors.New("sim: fixed step must be a positive finite number")
	// ErrInvalidConfig is returned for an unusable frame-time cap or time scale.
	ErrInvalidConfig = errors.New("sim: invalid configuration")
)

// Updater is the per-step policy driven by the Simulator.
// Update is called exactly once per fixed step, before bodies are integrated.
type Updater interface {
	Update(s *Simulator, dt float64)
}

// UpdaterFunc adapts a plain function to the Updater interface.
type UpdaterFunc func(s *Simulator, dt float64)

// Update calls f(s, dt).
func (f UpdaterFunc) Update(s *Simulator, dt float64) {
	f(s, dt)
}

// Config configures a Simulator.
type Config struct {
	FixedStep    float64 // Seconds of simulated time per step
	MaxFrameTime float64 // Cap on scaled real time banked per Advance call
	TimeScale    float64 // Multiplier applied to incoming real-time deltas
}

// Simulator owns simulated time and the live body set.
// It is not safe for concurrent use; one goroutine drives Advance and reads
// the results after it returns.
type Simulator struct {
	updater Updater

	fixedStep    float64
	maxFrameTime float64
	timeScale    float64

	time        float64
	accumulator float64
	alpha       float64
	stepsTaken  uint64
	nextID      uint64

	bodies   []*Body
	pending  []*Body
	stepping bool
}

// New creates a Simulator. It fails fast when no updater is supplied or the
// configuration is unusable, rather than on the first step.
// FixedStep is required; a zero MaxFrameTime or TimeScale takes the default.
func New(cfg Config, u Updater) (*Simulator, error) {
	if u == nil {
		return nil, ErrNilUpdater
	}
	if !(cfg.FixedStep > 0) || math.IsInf(cfg.FixedStep, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidStep, cfg.FixedStep)
	}
	if cfg.MaxFrameTime < 0 || !finite(cfg.MaxFrameTime) {
		return nil, fmt.Errorf("%w: max frame time %v", ErrInvalidConfig, cfg.MaxFrameTime)
	}
	if !finite(cfg.TimeScale) {
		return nil, fmt.Errorf("%w: time scale %v", ErrInvalidConfig, cfg.TimeScale)
	}
	if cfg.MaxFrameTime == 0 {
		cfg.MaxFrameTime = DefaultMaxFrameTime
	}
	if cfg.TimeScale == 0 {
		cfg.TimeScale = 1
	}

	return &Simulator{
		updater:      u,
		fixedStep:    cfg.FixedStep,
		maxFrameTime: cfg.MaxFrameTime,
		timeScale:    cfg.TimeScale,
	}, nil
}

// MustNew is like New but panics on a configuration error.
func MustNew(cfg Config, u Updater) *Simulator {
	s, err := New(cfg, u)
	if err != nil {
		panic(err)
	}
	return s
}

// Advance banks realDelta seconds of wall-clock time and runs as many fixed
// steps as the accumulator allows. It returns the number of steps taken.
//
// Non-finite deltas count as zero elapsed time. The scaled delta is capped at
// ±MaxFrameTime so a long stall cannot trigger an unbounded burst of steps.
func (s *Simulator) Advance(realDelta float64) int {
	if math.IsNaN(realDelta) || math.IsInf(realDelta, 0) {
		realDelta = 0
	}

	scaled := realDelta * s.timeScale
	s.accumulator += core.ClampF(scaled, -s.maxFrameTime, s.maxFrameTime)

	direction := core.Sign(scaled)
	if direction == 0 {
		direction = core.Sign(s.accumulator)
	}

	steps := 0
	for math.Abs(s.accumulator) >= s.fixedStep {
		s.step()
		s.time += direction * s.fixedStep
		s.accumulator -= direction * s.fixedStep
		s.stepsTaken++
		steps++
	}

	s.alpha = s.accumulator / s.fixedStep
	for _, b := range s.bodies {
		b.Blend(s.alpha)
	}
	return steps
}

// step runs the updater, integrates live bodies, then admits bodies spawned
// during the update.
func (s *Simulator) step() {
	s.stepping = true
	s.updater.Update(s, s.fixedStep)
	s.stepping = false

	for _, b := range s.bodies {
		b.Advance(s.fixedStep)
	}

	if len(s.pending) > 0 {
		s.bodies = append(s.bodies, s.pending...)
		s.pending = s.pending[:0]
	}
}

// Spawn queues a body. It joins the live set at the end of the current step
// (or immediately when called outside a step), so it is neither updated nor
// integrated during the step that created it.
func (s *Simulator) Spawn(b *Body) *Body {
	s.nextID++
	b.ID = s.nextID
	if !s.stepping {
		s.bodies = append(s.bodies, b)
		return b
	}
	s.pending = append(s.pending, b)
	return b
}

// Retain removes every live body for which keep returns false.
// Order of the survivors is preserved.
func (s *Simulator) Retain(keep func(*Body) bool) int {
	kept := s.bodies[:0]
	removed := 0
	for _, b := range s.bodies {
		if keep(b) {
			kept = append(kept, b)
		} else {
			removed++
		}
	}
	for i := len(kept); i < len(s.bodies); i++ {
		s.bodies[i] = nil
	}
	s.bodies = kept
	return removed
}

// Clear removes all live and pending bodies.
func (s *Simulator) Clear() {
	s.bodies = nil
	s.pending = nil
}

// Bodies returns the live bodies. Callers must not retain the slice across
// Advance calls.
func (s *Simulator) Bodies() []*Body {
	return s.bodies
}

// Population returns live plus pending bodies.
func (s *Simulator) Population() int {
	return len(s.bodies) + len(s.pending)
}

// Alpha returns the interpolation factor computed by the last Advance call.
// It lies in (-1, 1).
func (s *Simulator) Alpha() float64 {
	return s.alpha
}

// Time returns the simulated time in seconds.
func (s *Simulator) Time() float64 {
	return s.time
}

// Accumulator returns the banked, not yet simulated time.
func (s *Simulator) Accumulator() float64 {
	return s.accumulator
}

// StepsTaken returns the total number of fixed steps performed.
func (s *Simulator) StepsTaken() uint64 {
	return s.stepsTaken
}

// FixedStep returns the step size in seconds.
func (s *Simulator) FixedStep() float64 {
	return s.fixedStep
}

// TimeScale returns the multiplier applied to incoming deltas.
func (s *Simulator) TimeScale() float64 {
	return s.timeScale
}

// SetTimeScale changes the multiplier applied to subsequent deltas.
func (s *Simulator) SetTimeScale(scale float64) {
	if !finite(scale) {
		return
	}
	s.timeScale = scale
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
