// Package render implements the mesh-to-SVG rendering pipeline: camera
// projection, perspective divide, viewport mapping, painter's-algorithm
// depth ordering, back-face culling, and polygon emission.
package render

import "github.com/chazu/hedron/pkg/geom"

// Camera combines a right-handed look-at view transform with a
// perspective projection.
//
// Preconditions: 0 < near < far, aspect > 0, fovy in degrees in
// (0, 180). Violations are a caller error; construction never fails,
// it just projects garbage geometry.
type Camera struct {
	view geom.Mat4
	proj geom.Mat4
}

// NewCamera builds a camera at eye looking toward target.
func NewCamera(fovy, aspect, near, far float64, eye, target, up geom.Vec3) Camera {
	return Camera{
		view: geom.LookAt(eye, target, up),
		proj: geom.Perspective(fovy, aspect, near, far),
	}
}

// Projection returns the combined matrix projection x view, mapping a
// world-space point to clip space in one multiplication.
func (c Camera) Projection() geom.Mat4 {
	return c.proj.Mul(c.view)
}
