package flight

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-butterflies/pkg/geometry"
)

// Random is the only source of randomness a butterfly consults.
// *rand.Rand satisfies it; tests may plug a scripted sequence.
type Random interface {
	Float64() float64
}

// NewRandom returns a PCG source for one butterfly. The same seed and stream
// always replay the same draws.
func NewRandom(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// RandomVelocity draws each component uniformly in [-speed, speed].
func RandomVelocity(rng Random, speed float64) geometry.Vector3D {
	return geometry.Vector3D{
		X: (rng.Float64() - 0.5) * 2 * speed,
		Y: (rng.Float64() - 0.5) * 2 * speed,
		Z: (rng.Float64() - 0.5) * 2 * speed,
	}
}
