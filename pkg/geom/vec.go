// Package geom provides the vector and matrix math used by the
// rendering pipeline: 3D vectors, homogeneous 4D vectors, column-major
// 4x4 matrices, and triangular faces.
package geom

import "math"

// Vec3 is a point or direction in 3D space. Positions and offsets share
// the one type; homogeneous lifting (w=1 for points) happens at the
// projection stage.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is a shorthand constructor.
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Normalize returns the unit vector in v's direction. The zero vector
// normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// IsFinite reports whether all three components are finite.
func (v Vec3) IsFinite() bool {
	return !math.IsInf(v.X, 0) && !math.IsNaN(v.X) &&
		!math.IsInf(v.Y, 0) && !math.IsNaN(v.Y) &&
		!math.IsInf(v.Z, 0) && !math.IsNaN(v.Z)
}

// Vec4 is a homogeneous coordinate.
type Vec4 struct {
	X, Y, Z, W float64
}

// Homogeneous lifts a point to homogeneous coordinates with w=1.
func (v Vec3) Homogeneous() Vec4 { return Vec4{v.X, v.Y, v.Z, 1} }

// Divide performs the perspective divide. Division by a zero or
// negative w proceeds with standard floating-point semantics; points at
// or behind the eye plane produce non-finite results by design.
func (v Vec4) Divide() Vec3 { return Vec3{v.X / v.W, v.Y / v.W, v.Z / v.W} }

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }
