package flight

import (
	"errors"
	"fmt"
	"math"
)

// MaxFlapAmplitude is the largest wing rotation the flap animation may reach (60°).
const MaxFlapAmplitude = math.Pi / 3

// Range is a closed interval used for uniform random draws.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Sample draws a uniform value in [Min, Max].
func (r Range) Sample(rng Random) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

func (r Range) validate(name string) error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) {
		return fmt.Errorf("%s: range is NaN", name)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%s: min %.3f is greater than max %.3f", name, r.Min, r.Max)
	}
	if r.Min < 0 {
		return fmt.Errorf("%s: min %.3f must not be negative", name, r.Min)
	}
	return nil
}

// Params holds the behavior constants shared by every butterfly of a meadow.
type Params struct {
	// Decision making
	LandingProbability float64 `json:"landingProbability"` // chance a decision picks a landing site
	ArrivalRadius      float64 `json:"arrivalRadius"`      // distance at which a seeking butterfly lands
	InitialDecision    Range   `json:"initialDecision"`    // first countdown after spawn
	SeekBudget         Range   `json:"seekBudget"`         // countdown after choosing a landing site
	CruiseInterval     Range   `json:"cruiseInterval"`     // countdown after choosing to roam
	RestDuration       Range   `json:"restDuration"`       // time spent resting once landed
	TakeOffInterval    Range   `json:"takeOffInterval"`    // countdown after taking off again

	// Motion
	CruiseSpeed    float64 `json:"cruiseSpeed"`    // half-width of the per-component random velocity
	SeekSpeed      float64 `json:"seekSpeed"`      // magnitude of the direct-line velocity toward a site
	SteerBlend     float64 `json:"steerBlend"`     // per-frame lerp factor toward the direct-line velocity
	TurnBlend      float64 `json:"turnBlend"`      // per-frame slerp factor toward the heading
	TurnThreshold  float64 `json:"turnThreshold"`  // squared speed below which heading is kept
	StepsPerSecond float64 `json:"stepsPerSecond"` // velocity is expressed per step, not per second

	// Animation
	FlapAmplitude       float64 `json:"flapAmplitude"`       // radians, at most MaxFlapAmplitude
	FlapRate            float64 `json:"flapRate"`            // base angular speed, radians per second
	FlapSpeed           Range   `json:"flapSpeed"`           // per-butterfly multiplier of FlapRate
	RestWobbleRate      float64 `json:"restWobbleRate"`      // radians per second of the resting yaw sine
	RestWobbleAmplitude float64 `json:"restWobbleAmplitude"` // yaw radians added per frame at the sine peak
}

// DefaultParams returns the tuning used on the bento page.
func DefaultParams() Params {
	return Params{
		LandingProbability: 0.3,
		ArrivalRadius:      0.15,
		InitialDecision:    Range{Min: 5, Max: 10},
		SeekBudget:         Range{Min: 8, Max: 13},
		CruiseInterval:     Range{Min: 8, Max: 16},
		RestDuration:       Range{Min: 4, Max: 7},
		TakeOffInterval:    Range{Min: 10, Max: 20},

		CruiseSpeed:    0.01,
		SeekSpeed:      0.02,
		SteerBlend:     0.05,
		TurnBlend:      0.05,
		TurnThreshold:  0.0001,
		StepsPerSecond: 60,

		FlapAmplitude:       MaxFlapAmplitude,
		FlapRate:            8,
		FlapSpeed:           Range{Min: 0.8, Max: 1.2},
		RestWobbleRate:      0.5,
		RestWobbleAmplitude: 0.005,
	}
}

// Validate reports every inconsistent parameter.
func (p *Params) Validate() error {
	var errs []error

	if p.LandingProbability < 0 || p.LandingProbability > 1 || math.IsNaN(p.LandingProbability) {
		errs = append(errs, fmt.Errorf("landingProbability %.3f must be within [0, 1]", p.LandingProbability))
	}
	if !(p.ArrivalRadius > 0) {
		errs = append(errs, fmt.Errorf("arrivalRadius %.3f must be positive", p.ArrivalRadius))
	}
	for name, r := range map[string]Range{
		"initialDecision": p.InitialDecision,
		"seekBudget":      p.SeekBudget,
		"cruiseInterval":  p.CruiseInterval,
		"restDuration":    p.RestDuration,
		"takeOffInterval": p.TakeOffInterval,
		"flapSpeed":       p.FlapSpeed,
	} {
		if err := r.validate(name); err != nil {
			errs = append(errs, err)
		}
	}
	if p.CruiseSpeed < 0 || p.SeekSpeed < 0 {
		errs = append(errs, errors.New("cruiseSpeed and seekSpeed must not be negative"))
	}
	if p.SteerBlend < 0 || p.SteerBlend > 1 {
		errs = append(errs, fmt.Errorf("steerBlend %.3f must be within [0, 1]", p.SteerBlend))
	}
	if p.TurnBlend < 0 || p.TurnBlend > 1 {
		errs = append(errs, fmt.Errorf("turnBlend %.3f must be within [0, 1]", p.TurnBlend))
	}
	if p.TurnThreshold < 0 {
		errs = append(errs, fmt.Errorf("turnThreshold %.5f must not be negative", p.TurnThreshold))
	}
	if !(p.StepsPerSecond > 0) {
		errs = append(errs, fmt.Errorf("stepsPerSecond %.1f must be positive", p.StepsPerSecond))
	}
	if p.FlapAmplitude < 0 || p.FlapAmplitude > MaxFlapAmplitude+1e-12 {
		errs = append(errs, fmt.Errorf("flapAmplitude %.3f must be within [0, π/3]", p.FlapAmplitude))
	}
	if p.FlapRate < 0 || p.RestWobbleRate < 0 || p.RestWobbleAmplitude < 0 {
		errs = append(errs, errors.New("flapRate, restWobbleRate and restWobbleAmplitude must not be negative"))
	}

	return errors.Join(errs...)
}
