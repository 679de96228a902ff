package flight

import (
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-butterflies/pkg/geometry"
)

// Bounds is the axis-aligned flight zone every butterfly is confined to.
type Bounds struct {
	Min geometry.Vector3D `json:"min"`
	Max geometry.Vector3D `json:"max"`
}

// NewBounds builds a zone from per-axis intervals.
func NewBounds(x, y, z [2]float64) Bounds {
	return Bounds{
		Min: geometry.Vector3D{X: x[0], Y: y[0], Z: z[0]},
		Max: geometry.Vector3D{X: x[1], Y: y[1], Z: z[1]},
	}
}

// Validate rejects empty or inverted zones.
func (bb Bounds) Validate() error {
	for axis := 0; axis < 3; axis++ {
		lo, hi := bb.Min.Component(axis), bb.Max.Component(axis)
		if math.IsNaN(lo) || math.IsNaN(hi) || lo >= hi {
			return fmt.Errorf("axis %c: interval [%.3f, %.3f] is empty", "xyz"[axis], lo, hi)
		}
	}
	return nil
}

// Contains reports whether p lies inside the zone, borders included.
func (bb Bounds) Contains(p geometry.Vector3D) bool {
	for axis := 0; axis < 3; axis++ {
		v := p.Component(axis)
		if !(v >= bb.Min.Component(axis) && v <= bb.Max.Component(axis)) {
			return false
		}
	}
	return true
}

// Center returns the middle of the zone.
func (bb Bounds) Center() geometry.Vector3D {
	return bb.Min.Lerp(bb.Max, 0.5)
}

// Size returns the extent of the zone on each axis.
func (bb Bounds) Size() geometry.Vector3D {
	return bb.Max.Sub(bb.Min)
}

// Enforce bounces b off the walls of the zone: on every axis where the position is
// outside, the velocity component is reflected and the position clamped. A seeking
// butterfly that hits a wall gives up its landing attempt. Calling Enforce again
// without moving is a no-op. It reports whether any wall was hit.
func (bb Bounds) Enforce(b *Butterfly) bool {
	hit := false
	for axis := 0; axis < 3; axis++ {
		lo, hi := bb.Min.Component(axis), bb.Max.Component(axis)
		p := b.Position.Component(axis)
		v := b.Velocity.Component(axis)

		switch {
		case math.IsNaN(p):
			p, v = (lo+hi)/2, 0
		case p < lo:
			p, v = lo, -v
		case p > hi:
			p, v = hi, -v
		default:
			continue
		}

		b.Position = b.Position.WithComponent(axis, p)
		b.Velocity = b.Velocity.WithComponent(axis, v)
		hit = true
	}
	if hit {
		b.abortSeek()
	}
	return hit
}
