// Package flight holds the per-butterfly rules: the cruise/seek/rest state machine,
// motion integration, wall bouncing and wing flapping.
package flight

import (
	"math"

	"github.com/lao-tseu-is-alive/go-butterflies/pkg/geometry"
)

// Butterfly is one autonomous agent. It is mutated once per frame by the meadow
// that owns it and read by renderers through snapshots.
type Butterfly struct {
	ID      string
	Variant int
	Scale   float64

	Position    geometry.Vector3D
	Velocity    geometry.Vector3D
	Orientation geometry.Quaternion

	// Fixed at creation, only used to desynchronize wing animation.
	FlapPhase float64
	FlapSpeed float64

	LeftWing  float64
	RightWing float64

	state    State
	decision float64 // seconds until the next cruise/seek decision
	rng      Random
}

// Spawn describes where and as what a butterfly is born.
type Spawn struct {
	ID       string
	Variant  int
	Position geometry.Vector3D
}

// New creates a cruising butterfly. Flap speed, flap phase, velocity and the first
// decision countdown are drawn from rng, in that order.
func New(spawn Spawn, rng Random, p *Params) *Butterfly {
	b := &Butterfly{
		ID:          spawn.ID,
		Variant:     spawn.Variant,
		Scale:       0.8 + float64(spawn.Variant)*0.2,
		Position:    spawn.Position,
		Orientation: geometry.Identity(),
		state:       CruisingState{},
		rng:         rng,
	}
	b.FlapSpeed = p.FlapSpeed.Sample(rng)
	b.FlapPhase = rng.Float64() * 2 * math.Pi
	b.Velocity = RandomVelocity(rng, p.CruiseSpeed)
	b.decision = p.InitialDecision.Sample(rng)
	return b
}

// State returns the active behavior.
func (b *Butterfly) State() State {
	return b.state
}

// Kind returns the tag of the active behavior.
func (b *Butterfly) Kind() StateKind {
	return b.state.Kind()
}

// Target returns the landing site being sought, if any.
func (b *Butterfly) Target() (geometry.Vector3D, bool) {
	if s, ok := b.state.(SeekingState); ok {
		return s.Target, true
	}
	return geometry.Vector3D{}, false
}

// RestRemaining returns the seconds of rest left, if resting.
func (b *Butterfly) RestRemaining() (float64, bool) {
	if s, ok := b.state.(RestingState); ok {
		return s.Remaining, true
	}
	return 0, false
}

// IsResting reports whether the butterfly sits on a landing site.
func (b *Butterfly) IsResting() bool {
	return b.state.Kind() == Resting
}

// Decision returns the seconds left before the next cruise/seek decision.
func (b *Butterfly) Decision() float64 {
	return b.decision
}

// Cruise switches to roaming with the given velocity and decision countdown.
func (b *Butterfly) Cruise(velocity geometry.Vector3D, decideIn float64) {
	b.state = CruisingState{}
	b.Velocity = velocity
	b.decision = decideIn
}

// Seek switches to steering toward target; decideIn is the time budget to get there.
func (b *Butterfly) Seek(target geometry.Vector3D, decideIn float64) {
	b.state = SeekingState{Target: target}
	b.decision = decideIn
}

// Land stops the butterfly where it is for restFor seconds.
func (b *Butterfly) Land(restFor float64) {
	b.state = RestingState{Remaining: restFor}
	b.Velocity = geometry.Vector3D{}
}

// abortSeek drops the landing attempt and keeps flying with the current velocity.
func (b *Butterfly) abortSeek() {
	if b.state.Kind() == Seeking {
		b.state = CruisingState{}
	}
}
