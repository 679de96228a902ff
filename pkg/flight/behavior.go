package flight

import (
	"math"

	"github.com/lao-tseu-is-alive/go-butterflies/pkg/geometry"
)

// Behave runs one frame of the Cruising / Seeking / Resting state machine.
// dt is the frame duration and elapsed the meadow time, both in seconds.
func (b *Butterfly) Behave(dt, elapsed float64, sites []geometry.Vector3D, p *Params) {
	if s, ok := b.state.(RestingState); ok {
		b.rest(s, dt, elapsed, p)
		return
	}

	b.decision -= dt
	if b.decision <= 0 {
		b.decide(sites, p)
	}

	if s, ok := b.state.(SeekingState); ok {
		b.steer(s.Target, p)
	}
}

// decide picks between trying to land on a site and roaming in a new direction.
func (b *Butterfly) decide(sites []geometry.Vector3D, p *Params) {
	if len(sites) > 0 && b.rng.Float64() < p.LandingProbability {
		i := int(b.rng.Float64() * float64(len(sites)))
		if i >= len(sites) {
			i = len(sites) - 1
		}
		b.Seek(sites[i], p.SeekBudget.Sample(b.rng))
		return
	}
	b.Cruise(RandomVelocity(b.rng, p.CruiseSpeed), p.CruiseInterval.Sample(b.rng))
}

// steer lands when close enough, otherwise bends velocity 5% (SteerBlend) toward
// the direct line to the target.
func (b *Butterfly) steer(target geometry.Vector3D, p *Params) {
	if b.Position.DistanceTo(target) < p.ArrivalRadius {
		b.Land(p.RestDuration.Sample(b.rng))
		return
	}
	desired := target.Sub(b.Position).Normalize().Mul(p.SeekSpeed)
	b.Velocity = b.Velocity.Lerp(desired, p.SteerBlend)
}

// rest counts down the rest time and takes off when it runs out. While resting the
// heading sways slightly around the vertical axis.
func (b *Butterfly) rest(s RestingState, dt, elapsed float64, p *Params) {
	s.Remaining -= dt
	if s.Remaining <= 0 {
		b.Cruise(RandomVelocity(b.rng, p.CruiseSpeed), p.TakeOffInterval.Sample(b.rng))
		return
	}
	b.state = s

	yaw := math.Sin(elapsed*p.RestWobbleRate) * p.RestWobbleAmplitude
	if yaw != 0 {
		b.Orientation = b.Orientation.Mul(geometry.AxisAngle(geometry.UnitY, yaw)).Normalize()
	}
}
