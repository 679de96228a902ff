package flight

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lao-tseu-is-alive/go-butterflies/pkg/geometry"
)

const frame = 1.0 / 60

// scripted replays a fixed sequence of draws, wrapping around at the end.
type scripted struct {
	values []float64
	next   int
}

func (s *scripted) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

var testSites = []geometry.Vector3D{
	{X: -2, Y: 1}, {X: 2, Y: 1}, {X: -2, Y: -1.5}, {X: 2, Y: -1.5},
}

func newTestButterfly(t *testing.T, p *Params) *Butterfly {
	t.Helper()
	return New(Spawn{ID: "Butterfly-000", Position: geometry.Vector3D{}}, NewRandom(42, 0), p)
}

func TestNew(t *testing.T) {
	p := DefaultParams()
	b := New(Spawn{ID: "Butterfly-002", Variant: 2, Position: geometry.Vector3D{X: 1}}, NewRandom(7, 2), &p)

	assert.Equal(t, "Butterfly-002", b.ID)
	assert.InDelta(t, 1.2, b.Scale, 1e-12)
	assert.Equal(t, Cruising, b.Kind())
	assert.Equal(t, geometry.Identity(), b.Orientation)
	assert.GreaterOrEqual(t, b.FlapSpeed, 0.8)
	assert.LessOrEqual(t, b.FlapSpeed, 1.2)
	assert.GreaterOrEqual(t, b.FlapPhase, 0.0)
	assert.Less(t, b.FlapPhase, 2*math.Pi)
	assert.GreaterOrEqual(t, b.Decision(), 5.0)
	assert.LessOrEqual(t, b.Decision(), 10.0)
	for axis := 0; axis < 3; axis++ {
		assert.LessOrEqual(t, math.Abs(b.Velocity.Component(axis)), p.CruiseSpeed)
	}
}

func TestBehave_DecideToSeek(t *testing.T) {
	p := DefaultParams()
	b := newTestButterfly(t, &p)
	b.decision = 0.01
	// landing roll 0.1 < 0.3, site roll 0.6 -> index 2, budget roll 0.5 -> 10.5s
	b.rng = &scripted{values: []float64{0.1, 0.6, 0.5}}

	b.Behave(frame, 0, testSites, &p)

	target, ok := b.Target()
	require.True(t, ok)
	assert.Equal(t, testSites[2], target)
	assert.Equal(t, Seeking, b.Kind())
	assert.InDelta(t, 10.5, b.Decision(), 1e-9)
}

func TestBehave_DecideToCruise(t *testing.T) {
	p := DefaultParams()
	b := newTestButterfly(t, &p)
	b.Seek(testSites[0], 0.01)
	// landing roll 0.9 fails, velocity rolls, interval roll 0 -> 8s
	b.rng = &scripted{values: []float64{0.9, 1, 0.5, 0, 0}}

	b.Behave(frame, 0, testSites, &p)

	_, seeking := b.Target()
	assert.False(t, seeking, "a roam decision clears the target")
	assert.Equal(t, Cruising, b.Kind())
	assert.True(t, b.Velocity.Eq(geometry.Vector3D{X: 0.01, Y: 0, Z: -0.01}), "velocity %v", b.Velocity)
	assert.InDelta(t, 8.0, b.Decision(), 1e-9)
}

func TestBehave_NoSitesNeverSeeks(t *testing.T) {
	p := DefaultParams()
	p.LandingProbability = 1
	b := newTestButterfly(t, &p)
	b.decision = 0

	b.Behave(frame, 0, nil, &p)

	assert.Equal(t, Cruising, b.Kind())
}

func TestBehave_SeekingSteersTowardTarget(t *testing.T) {
	p := DefaultParams()
	b := newTestButterfly(t, &p)
	b.Position = geometry.Vector3D{}
	b.Velocity = geometry.Vector3D{}
	b.Seek(geometry.Vector3D{X: 3}, 10)

	b.Behave(frame, 0, testSites, &p)

	// 5% of the way from zero to (0.02, 0, 0)
	assert.True(t, b.Velocity.Eq(geometry.Vector3D{X: 0.001}), "velocity %v", b.Velocity)
	assert.Equal(t, Seeking, b.Kind())
}

func TestBehave_SeekingArrival(t *testing.T) {
	p := DefaultParams()
	b := newTestButterfly(t, &p)
	target := geometry.Vector3D{X: 2, Y: 1}
	b.Position = target.Sub(geometry.Vector3D{X: 0.10})
	b.Velocity = geometry.Vector3D{X: 0.02, Y: 0.005}
	b.Seek(target, 10)
	before := b.Position

	b.Behave(frame, 0, testSites, &p)
	b.Integrate(frame, &p)

	assert.Equal(t, Resting, b.Kind())
	assert.True(t, b.Velocity.IsZero())
	_, seeking := b.Target()
	assert.False(t, seeking)
	remaining, ok := b.RestRemaining()
	require.True(t, ok)
	assert.GreaterOrEqual(t, remaining, 4.0)
	assert.LessOrEqual(t, remaining, 7.0)
	assert.Equal(t, before, b.Position, "a landed butterfly does not drift")
}

func TestBehave_RestingTimeout(t *testing.T) {
	p := DefaultParams()
	b := newTestButterfly(t, &p)
	b.Land(0.05)
	require.True(t, b.IsResting())

	b.Behave(0.1, 1, testSites, &p)

	assert.False(t, b.IsResting())
	assert.Equal(t, Cruising, b.Kind())
	assert.False(t, b.Velocity.IsZero(), "takes off with a fresh velocity")
	assert.GreaterOrEqual(t, b.Decision(), 10.0)
	assert.LessOrEqual(t, b.Decision(), 20.0)
}

func TestBehave_RestingCountsDownAndWobbles(t *testing.T) {
	p := DefaultParams()
	b := newTestButterfly(t, &p)
	b.Land(5)
	before := b.Orientation

	b.Behave(0.5, 2, testSites, &p)

	remaining, ok := b.RestRemaining()
	require.True(t, ok)
	assert.InDelta(t, 4.5, remaining, 1e-12)
	assert.True(t, b.Velocity.IsZero())
	assert.False(t, b.Orientation.Eq(before, 1e-12), "resting heading sways")
	wantYaw := math.Sin(2*p.RestWobbleRate) * p.RestWobbleAmplitude
	assert.InDelta(t, wantYaw, b.Orientation.Yaw(), 1e-9)
}

func TestIntegrate(t *testing.T) {
	p := DefaultParams()
	b := newTestButterfly(t, &p)
	b.Position = geometry.Vector3D{X: 1, Y: 1, Z: 1}
	b.Velocity = geometry.Vector3D{X: 0.02}

	b.Integrate(0.5, &p)

	// 0.02 per step * 60 steps/s * 0.5 s
	assert.True(t, b.Position.Eq(geometry.Vector3D{X: 1.6, Y: 1, Z: 1}), "position %v", b.Position)

	heading, ok := geometry.LookRotation(b.Velocity, geometry.UnitY)
	require.True(t, ok)
	assert.InDelta(t, 0.05, turnedFraction(geometry.Identity(), b.Orientation, heading), 1e-6,
		"orientation turns 5%% of the way toward the heading")
}

func TestIntegrate_SlowButterflyKeepsHeading(t *testing.T) {
	p := DefaultParams()
	b := newTestButterfly(t, &p)
	b.Velocity = geometry.Vector3D{X: 0.005, Y: 0.005}

	b.Integrate(frame, &p)

	assert.Equal(t, geometry.Identity(), b.Orientation)
}

func TestIntegrate_Resting(t *testing.T) {
	p := DefaultParams()
	b := newTestButterfly(t, &p)
	b.Position = geometry.Vector3D{X: 1}
	b.Land(3)

	b.Integrate(1, &p)

	assert.Equal(t, geometry.Vector3D{X: 1}, b.Position)
}

func TestWingAngle_Bounded(t *testing.T) {
	p := DefaultParams()
	rng := NewRandom(1, 1)
	for i := 0; i < 10_000; i++ {
		elapsed := rng.Float64() * 1e6
		phase := rng.Float64() * 2 * math.Pi
		speed := rng.Float64() * 10
		a := WingAngle(elapsed, phase, speed, &p)
		require.LessOrEqual(t, math.Abs(a), math.Pi/3+1e-12, "elapsed=%v phase=%v speed=%v", elapsed, phase, speed)
	}

	p.FlapAmplitude = math.Pi
	assert.LessOrEqual(t, math.Abs(WingAngle(0, math.Pi/2, 1, &p)), math.Pi/3+1e-12, "amplitude is capped")
	assert.Equal(t, 0.0, WingAngle(math.Inf(1), 0, 1, &p), "non-finite time degrades to rest position")
}

func TestFlap_SameAngleBothWings(t *testing.T) {
	p := DefaultParams()
	b := newTestButterfly(t, &p)
	b.Flap(1.234, &p)
	assert.Equal(t, b.LeftWing, b.RightWing)
	assert.InDelta(t, WingAngle(1.234, b.FlapPhase, b.FlapSpeed, &p), b.LeftWing, 1e-12)
}

func TestParams_Validate(t *testing.T) {
	p := DefaultParams()
	require.NoError(t, p.Validate())

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"probability above one", func(p *Params) { p.LandingProbability = 1.5 }},
		{"zero arrival radius", func(p *Params) { p.ArrivalRadius = 0 }},
		{"inverted rest range", func(p *Params) { p.RestDuration = Range{Min: 7, Max: 4} }},
		{"negative decision range", func(p *Params) { p.CruiseInterval = Range{Min: -1, Max: 4} }},
		{"steer blend above one", func(p *Params) { p.SteerBlend = 2 }},
		{"zero steps", func(p *Params) { p.StepsPerSecond = 0 }},
		{"flap too wide", func(p *Params) { p.FlapAmplitude = math.Pi / 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

// turnedFraction measures how far q moved from start toward end, as a fraction of the arc.
func turnedFraction(start, q, end geometry.Quaternion) float64 {
	total := math.Acos(math.Min(1, math.Abs(start.Dot(end))))
	done := math.Acos(math.Min(1, math.Abs(start.Dot(q))))
	return done / total
}
