// Package render holds what every butterfly renderer shares: the perspective camera
// that flattens the meadow onto a screen and the reference-counted library of
// drawing resources.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lao-tseu-is-alive/go-butterflies/pkg/geometry"
)

// Camera is a perspective camera looking down -Z from Eye.
type Camera struct {
	Eye  geometry.Vector3D
	FovY float64 // vertical field of view, degrees
	Near float64
	Far  float64
}

// DefaultCamera sits 7 units in front of the page with a 75° field of view.
func DefaultCamera() Camera {
	return Camera{
		Eye:  geometry.Vector3D{Z: 7},
		FovY: 75,
		Near: 0.1,
		Far:  1000,
	}
}

// Projection is a camera bound to a viewport size.
type Projection struct {
	width, height float64
	tanHalf       float64
	viewProj      mgl64.Mat4
}

// Viewport prepares projections for a width x height pixel surface.
func (c Camera) Viewport(width, height int) Projection {
	w, h := float64(max(width, 1)), float64(max(height, 1))
	fov := mgl64.DegToRad(c.FovY)
	eye := mgl64.Vec3{c.Eye.X, c.Eye.Y, c.Eye.Z}
	view := mgl64.LookAtV(eye, eye.Sub(mgl64.Vec3{0, 0, 1}), mgl64.Vec3{0, 1, 0})
	proj := mgl64.Perspective(fov, w/h, c.Near, c.Far)
	return Projection{
		width:    w,
		height:   h,
		tanHalf:  math.Tan(fov / 2),
		viewProj: proj.Mul4(view),
	}
}

// Project returns the pixel coordinates of p (origin top-left) and how many pixels
// one world unit spans at its depth. ok is false when p is behind the near plane.
func (pr Projection) Project(p geometry.Vector3D) (x, y, unit float64, ok bool) {
	clip := pr.viewProj.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	if clip.W() <= 0 || clip.Z() < -clip.W() {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) / 2 * pr.width
	y = (1 - ndc.Y()) / 2 * pr.height
	unit = pr.height / (2 * pr.tanHalf * clip.W())
	return x, y, unit, true
}

// Size returns the viewport dimensions in pixels.
func (pr Projection) Size() (float64, float64) {
	return pr.width, pr.height
}
