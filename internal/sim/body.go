package sim

import (
	"github.com/vovakirdan/tui-catch/internal/core"
)

// Body is a simulated point mass.
//
// Center and Previous are written only inside a simulation step: Previous holds
// the position as of the last completed step and Center the position as of the
// current one. Blended is the render-only interpolation between the two.
type Body struct {
	ID       uint64
	Center   core.Vec3
	Previous core.Vec3
	Velocity core.Vec3
	Radius   float64

	blended core.Vec3
}

// NewBody creates a body at rest history: its previous position equals its
// current one, so a freshly spawned body never renders a streak.
func NewBody(center, velocity core.Vec3, radius float64) *Body {
	return &Body{
		Center:   center,
		Previous: center,
		Velocity: velocity,
		Radius:   radius,
		blended:  center,
	}
}

// Advance integrates velocity into position over dt seconds.
func (b *Body) Advance(dt float64) {
	b.Previous = b.Center
	b.Center = b.Center.Add(b.Velocity.Mul(dt))
}

// Blend computes the render transform a fraction alpha of the way from the
// previous step's position to the current one.
func (b *Body) Blend(alpha float64) {
	b.blended = core.Lerp(b.Previous, b.Center, alpha)
}

// Blended returns the last interpolated position computed by Blend.
func (b *Body) Blended() core.Vec3 {
	return b.blended
}

// Speed returns the magnitude of the body's velocity.
func (b *Body) Speed() float64 {
	return b.Velocity.Len()
}
