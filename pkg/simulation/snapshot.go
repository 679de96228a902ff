package simulation

import (
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/flight"
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/geometry"
)

// Pose is what a renderer needs to draw one butterfly.
type Pose struct {
	ID      string
	Variant int
	Scale   float64

	Position    geometry.Vector3D
	Orientation geometry.Quaternion
	LeftWing    float64
	RightWing   float64

	State flight.StateKind
}

// Snapshot is the meadow after a frame. It is a fresh value every frame, so
// renderers may keep it while the meadow moves on.
type Snapshot struct {
	Frame   uint64
	Elapsed float64 // seconds of meadow time

	Butterflies []Pose
	Sites       []geometry.Vector3D
	Zone        flight.Bounds
}

// Count returns how many butterflies are in the given state.
func (s *Snapshot) Count(kind flight.StateKind) int {
	n := 0
	for i := range s.Butterflies {
		if s.Butterflies[i].State == kind {
			n++
		}
	}
	return n
}

func poseOf(b *flight.Butterfly) Pose {
	return Pose{
		ID:          b.ID,
		Variant:     b.Variant,
		Scale:       b.Scale,
		Position:    b.Position,
		Orientation: b.Orientation,
		LeftWing:    b.LeftWing,
		RightWing:   b.RightWing,
		State:       b.Kind(),
	}
}
