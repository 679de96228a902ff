package render

import (
	"github.com/lao-tseu-is-alive/go-butterflies/pkg/geometry"
)

// Side selects a wing.
type Side int

const (
	Left Side = iota
	Right
)

// Wing outline in body space for the right wing at rest: hinge front, tip front,
// tip back, hinge back. Forward is -Z, up is +Y.
var rightWing = [4]geometry.Vector3D{
	{X: 0, Y: 0, Z: -0.08},
	{X: 0.32, Y: 0, Z: -0.18},
	{X: 0.24, Y: 0, Z: 0.16},
	{X: 0, Y: 0, Z: 0.08},
}

// WingQuad returns the world-space corners of one wing of a butterfly with the
// given pose. A positive angle raises both wings.
func WingQuad(position geometry.Vector3D, orientation geometry.Quaternion, scale, angle float64, side Side) [4]geometry.Vector3D {
	hinge := geometry.AxisAngle(geometry.UnitZ, angle)
	mirror := 1.0
	if side == Left {
		hinge = geometry.AxisAngle(geometry.UnitZ, -angle)
		mirror = -1
	}
	var out [4]geometry.Vector3D
	for i, v := range rightWing {
		local := hinge.Rotate(geometry.Vector3D{X: v.X * mirror, Y: v.Y, Z: v.Z})
		out[i] = position.Add(orientation.Rotate(local.Mul(scale)))
	}
	return out
}
