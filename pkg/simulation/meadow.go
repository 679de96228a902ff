// Package simulation runs a meadow of butterflies frame by frame: the ordered
// per-frame pipeline, the clock that feeds it, the cancellable run loop and the
// actor that hosts it for the windowed viewer.
package simulation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-butterflies/pkg/flight"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/geometry"
)

// Variants is the number of wing color families.
const Variants = 3

// Meadow owns the butterflies and advances them one frame at a time.
// It is not safe for concurrent use; Driver serializes access.
type Meadow struct {
	params flight.Params
	zone   flight.Bounds
	sites  []geometry.Vector3D

	butterflies []*flight.Butterfly
	elapsed     float64
	frame       uint64

	logger log.Logger
}

// NewMeadow validates cfg and spawns cfg.Count butterflies inside the spawn zone.
// Butterfly i draws from its own random stream of cfg.Seed.
func NewMeadow(cfg *Config, logger log.Logger) (*Meadow, error) {
	if logger == nil {
		logger = log.DiscardLogger
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sites, err := cfg.Sites()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	m := &Meadow{
		params:      cfg.Flight,
		zone:        cfg.FlightZone.Bounds(),
		sites:       sites,
		butterflies: make([]*flight.Butterfly, 0, cfg.Count),
		logger:      logger,
	}

	spawn := cfg.SpawnZone.Bounds()
	for i := 0; i < cfg.Count; i++ {
		rng := flight.NewRandom(cfg.Seed, uint64(i))
		pos := geometry.Vector3D{
			X: spawn.Min.X + rng.Float64()*(spawn.Max.X-spawn.Min.X),
			Y: spawn.Min.Y + rng.Float64()*(spawn.Max.Y-spawn.Min.Y),
			Z: spawn.Min.Z + rng.Float64()*(spawn.Max.Z-spawn.Min.Z),
		}
		b := flight.New(flight.Spawn{
			ID:       fmt.Sprintf("Butterfly-%03d", i),
			Variant:  i % Variants,
			Position: pos,
		}, rng, &m.params)
		m.butterflies = append(m.butterflies, b)
		logger.Debugf("spawned %s at %v heading %v", b.ID, b.Position, b.Velocity)
	}
	logger.Infof("meadow ready: %d butterflies, %d landing sites", len(m.butterflies), len(m.sites))
	return m, nil
}

// Step advances every butterfly by dt seconds (flap, behave, move, bounce, in that
// order) and returns the resulting snapshot. Negative or non-finite dt counts as 0.
func (m *Meadow) Step(dt float64) *Snapshot {
	if !(dt > 0) || math.IsInf(dt, 1) {
		dt = 0
	}
	m.elapsed += dt
	m.frame++

	for _, b := range m.butterflies {
		b.Flap(m.elapsed, &m.params)
		b.Behave(dt, m.elapsed, m.sites, &m.params)
		b.Integrate(dt, &m.params)
		if m.zone.Enforce(b) {
			m.logger.Debugf("frame %d: %s bounced at %v", m.frame, b.ID, b.Position)
		}
	}
	return m.Snapshot()
}

// Snapshot captures the current state without advancing it.
func (m *Meadow) Snapshot() *Snapshot {
	s := &Snapshot{
		Frame:       m.frame,
		Elapsed:     m.elapsed,
		Butterflies: make([]Pose, len(m.butterflies)),
		Sites:       append([]geometry.Vector3D(nil), m.sites...),
		Zone:        m.zone,
	}
	for i, b := range m.butterflies {
		s.Butterflies[i] = poseOf(b)
	}
	return s
}

// Butterflies exposes the live agents, for tests and tooling.
func (m *Meadow) Butterflies() []*flight.Butterfly {
	return m.butterflies
}

// Params returns the current behavior parameters.
func (m *Meadow) Params() flight.Params {
	return m.params
}

// Tunable parameter names accepted by Tune.
const (
	TuneLandingProbability = "landingProbability"
	TuneFlapRate           = "flapRate"
	TuneFlapAmplitude      = "flapAmplitude"
	TuneArrivalRadius      = "arrivalRadius"
)

// Tune changes behavior parameters while the meadow runs. Either every value is
// applied or none is.
func (m *Meadow) Tune(values map[string]float64) error {
	p := m.params
	var unknown []string
	for name, v := range values {
		switch name {
		case TuneLandingProbability:
			p.LandingProbability = v
		case TuneFlapRate:
			p.FlapRate = v
		case TuneFlapAmplitude:
			p.FlapAmplitude = v
		case TuneArrivalRadius:
			p.ArrivalRadius = v
		default:
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown parameter(s) %s", ErrInvalidConfig, strings.Join(unknown, ", "))
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(m.sites) == 0 && p.LandingProbability > 0 {
		return fmt.Errorf("%w: no landing sites while landingProbability is above zero", ErrInvalidConfig)
	}
	m.params = p
	m.logger.Debugf("tuned %v", values)
	return nil
}

// Release drops every butterfly. The meadow is empty afterwards.
func (m *Meadow) Release() {
	m.logger.Debugf("releasing %d butterflies", len(m.butterflies))
	m.butterflies = nil
}
