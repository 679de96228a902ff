package flight

import "github.com/lao-tseu-is-alive/go-butterflies/pkg/geometry"

// Integrate moves a flying butterfly along its velocity and turns it toward its
// heading. Resting butterflies do not move.
func (b *Butterfly) Integrate(dt float64, p *Params) {
	if b.IsResting() {
		return
	}

	b.Position = b.Position.Add(b.Velocity.Mul(p.StepsPerSecond * dt))

	if b.Velocity.LenSqr() <= p.TurnThreshold {
		return
	}
	if heading, ok := geometry.LookRotation(b.Velocity, geometry.UnitY); ok {
		b.Orientation = b.Orientation.Slerp(heading, p.TurnBlend)
	}
}
