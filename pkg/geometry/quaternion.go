package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quaternion is a unit rotation. The zero value is not a rotation; use Identity.
type Quaternion struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Identity returns the rotation that leaves every vector unchanged.
func Identity() Quaternion {
	return Quaternion{W: 1}
}

// AxisAngle returns the rotation of angle radians around axis.
// A degenerate axis gives the identity.
func AxisAngle(axis Vector3D, angle float64) Quaternion {
	n := axis.Normalize()
	if n.IsZero() {
		return Identity()
	}
	return fromQuat(mgl64.QuatRotate(angle, n.mgl()))
}

// String implements the fmt.Stringer interface.
func (q Quaternion) String() string {
	return fmt.Sprintf("[%.3f; %.3f, %.3f, %.3f]", q.W, q.X, q.Y, q.Z)
}

// Mul composes two rotations: the result applies other first, then q.
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return fromQuat(q.quat().Mul(other.quat()))
}

// Rotate applies the rotation to v.
func (q Quaternion) Rotate(v Vector3D) Vector3D {
	return fromMgl(q.quat().Rotate(v.mgl()))
}

// Dot returns the 4D dot product of two quaternions.
func (q Quaternion) Dot(other Quaternion) float64 {
	return q.W*other.W + q.X*other.X + q.Y*other.Y + q.Z*other.Z
}

// Len returns the 4D norm.
func (q Quaternion) Len() float64 {
	return math.Sqrt(q.Dot(q))
}

// Normalize returns q scaled to unit length, or the identity if q is degenerate.
func (q Quaternion) Normalize() Quaternion {
	l := q.Len()
	if l < Epsilon {
		return Identity()
	}
	return Quaternion{W: q.W / l, X: q.X / l, Y: q.Y / l, Z: q.Z / l}
}

// Eq reports whether q and other describe the same rotation within tolerance.
// q and -q are the same rotation.
func (q Quaternion) Eq(other Quaternion, tolerance float64) bool {
	return math.Abs(math.Abs(q.Normalize().Dot(other.Normalize()))-1) <= tolerance
}

// Slerp spherically interpolates from q toward target by t in [0, 1], taking the shortest arc.
func (q Quaternion) Slerp(target Quaternion, t float64) Quaternion {
	from := q.Normalize()
	to := target.Normalize()
	if from.Dot(to) < 0 {
		to = Quaternion{W: -to.W, X: -to.X, Y: -to.Y, Z: -to.Z}
	}
	return fromQuat(mgl64.QuatSlerp(from.quat(), to.quat(), t)).Normalize()
}

// LookRotation returns the orientation whose local -Z axis points along forward
// with local +Y as close as possible to up, the convention of a look-at view matrix.
//
// ok is false when forward has no usable length; callers keep their previous orientation.
// When forward is parallel to up the basis is nudged so a rotation can still be built.
func LookRotation(forward, up Vector3D) (q Quaternion, ok bool) {
	if forward.LenSqr() < Epsilon*Epsilon {
		return Identity(), false
	}

	z := forward.Mul(-1).Normalize()
	x := up.Cross(z)
	if x.LenSqr() < Epsilon*Epsilon {
		if math.Abs(up.Z) >= 1-Epsilon {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	if x.IsZero() {
		return Identity(), false
	}
	y := z.Cross(x)

	m := mgl64.Mat3FromCols(x.mgl(), y.mgl(), z.mgl())
	return fromQuat(mgl64.Mat4ToQuat(m.Mat4())).Normalize(), true
}

// Yaw returns the rotation around the world Y axis encoded by q, in radians.
func (q Quaternion) Yaw() float64 {
	f := q.Rotate(Vector3D{Z: -1})
	return math.Atan2(-f.X, -f.Z)
}

func (q Quaternion) quat() mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
}

func fromQuat(m mgl64.Quat) Quaternion {
	return Quaternion{W: m.W, X: m.V[0], Y: m.V[1], Z: m.V[2]}
}
