package catch

import (
	"math"

	"github.com/vovakirdan/tui-catch/internal/core"
)

// Autopilot plays the game without a human: it starts and advances levels,
// and steers the basket under the lowest falling ball.
type Autopilot struct {
	// Deadzone is the horizontal distance at which the basket stops moving.
	Deadzone float64
	// BoostDistance is the distance beyond which the basket boosts.
	BoostDistance float64
}

// NewAutopilot returns an autopilot with defaults tuned for the default config.
func NewAutopilot() *Autopilot {
	return &Autopilot{Deadzone: 0.5, BoostDistance: 6}
}

// Input decides the input frame for the game's next frame.
func (a *Autopilot) Input(g *Game) core.InputFrame {
	in := core.NewInputFrame()

	switch g.Phase() {
	case PhaseNotStarted:
		in.Set(core.ActionStart)
		return in
	case PhaseCompleted:
		if !g.Won() {
			in.Set(core.ActionNext)
		}
		return in
	case PhaseFailed:
		return in
	}

	target, ok := a.target(g)
	if !ok {
		return in
	}
	dx := target.X() - g.Agent().X()
	switch {
	case dx > a.Deadzone:
		in.Set(core.ActionRight)
	case dx < -a.Deadzone:
		in.Set(core.ActionLeft)
	}
	if math.Abs(dx) > a.BoostDistance {
		in.Set(core.ActionBoost)
	}
	return in
}

// target picks the lowest ball that is still falling, or the lowest ball when
// none is falling.
func (a *Autopilot) target(g *Game) (core.Vec3, bool) {
	var best core.Vec3
	found, falling := false, false
	for _, b := range g.sim.Bodies() {
		isFalling := b.Velocity.Y() < 0
		if falling && !isFalling {
			continue
		}
		if !found || (isFalling && !falling) || b.Center.Y() < best.Y() {
			best = b.Center
			found = true
			falling = isFalling
		}
	}
	return best, found
}
