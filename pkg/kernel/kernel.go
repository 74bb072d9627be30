// Package kernel defines the abstract solid-modeling kernel interface.
// Implementations provide constructive solid geometry behind this
// interface and tessellate solids into renderable triangle faces. The
// abstraction allows swapping backends without changing the rest of
// the system.
package kernel

import "github.com/chazu/hedron/pkg/geom"

// Solid is an opaque handle to a kernel solid. Implementations wrap
// their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract solid-modeling interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// ToFaces tessellates a solid into triangle faces with outward
	// winding, each face carrying its own three points.
	ToFaces(s Solid) ([]geom.Face, error)
}
