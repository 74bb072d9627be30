// Package shape provides procedurally generated triangle meshes for
// the standard solids, plus face-level transform helpers. Each shape
// is wound consistently within itself; the winding decides which side
// of a face survives back-face culling.
package shape

import (
	"math"

	"github.com/chazu/hedron/pkg/geom"
)

// fromIndexed expands an indexed vertex/triangle table into faces that
// each carry their own three points.
func fromIndexed(vertices []geom.Vec3, indices [][3]int) []geom.Face {
	faces := make([]geom.Face, len(indices))
	for i, idx := range indices {
		faces[i] = geom.Face{vertices[idx[0]], vertices[idx[1]], vertices[idx[2]]}
	}
	return faces
}

// Cube returns a unit cube centered on the origin: 12 triangles.
func Cube() []geom.Face {
	vertices := []geom.Vec3{
		geom.V3(-0.5, -0.5, -0.5),
		geom.V3(-0.5, 0.5, -0.5),
		geom.V3(0.5, 0.5, -0.5),
		geom.V3(0.5, -0.5, -0.5),
		geom.V3(-0.5, -0.5, 0.5),
		geom.V3(-0.5, 0.5, 0.5),
		geom.V3(0.5, 0.5, 0.5),
		geom.V3(0.5, -0.5, 0.5),
	}
	indices := [][3]int{
		{0, 3, 1}, {1, 3, 2},
		{0, 1, 5}, {0, 5, 4},
		{1, 2, 5}, {6, 5, 2},
		{7, 6, 2}, {7, 2, 3},
		{7, 3, 0}, {4, 7, 0},
		{5, 6, 4}, {4, 6, 7},
	}
	return fromIndexed(vertices, indices)
}

// Octahedron returns a regular octahedron with unit-distance apexes:
// 8 triangles.
func Octahedron() []geom.Face {
	f := math.Sqrt2 / 2
	vertices := []geom.Vec3{
		geom.V3(0, -1, 0),
		geom.V3(-f, 0, f),
		geom.V3(f, 0, f),
		geom.V3(f, 0, -f),
		geom.V3(-f, 0, -f),
		geom.V3(0, 1, 0),
	}
	indices := [][3]int{
		{0, 2, 1}, {0, 3, 2}, {0, 4, 3}, {0, 1, 4},
		{5, 1, 2}, {5, 2, 3}, {5, 3, 4}, {5, 4, 1},
	}
	return fromIndexed(vertices, indices)
}

// Icosahedron returns a regular icosahedron inscribed in the unit
// sphere: 20 triangles.
func Icosahedron() []geom.Face {
	vertices := []geom.Vec3{
		geom.V3(0.000, 0.000, 1.000),
		geom.V3(0.894, 0.000, 0.447),
		geom.V3(0.276, 0.851, 0.447),
		geom.V3(-0.724, 0.526, 0.447),
		geom.V3(-0.724, -0.526, 0.447),
		geom.V3(0.276, -0.851, 0.447),
		geom.V3(0.724, 0.526, -0.447),
		geom.V3(-0.276, 0.851, -0.447),
		geom.V3(-0.894, 0.000, -0.447),
		geom.V3(-0.276, -0.851, -0.447),
		geom.V3(0.724, -0.526, -0.447),
		geom.V3(0.000, 0.000, -1.000),
	}
	indices := [][3]int{
		{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 5}, {0, 5, 1},
		{11, 7, 6}, {11, 8, 7}, {11, 9, 8}, {11, 10, 9}, {11, 6, 10},
		{1, 6, 2}, {2, 7, 3}, {3, 8, 4}, {4, 9, 5}, {5, 10, 1},
		{6, 7, 2}, {7, 8, 3}, {8, 9, 4}, {9, 10, 5}, {10, 6, 1},
	}
	return fromIndexed(vertices, indices)
}

// ScaleFaces returns a copy of faces with every point scaled uniformly
// about the origin.
func ScaleFaces(faces []geom.Face, s float64) []geom.Face {
	out := make([]geom.Face, len(faces))
	for i, f := range faces {
		out[i] = geom.Face{f[0].Scale(s), f[1].Scale(s), f[2].Scale(s)}
	}
	return out
}

// TranslateFaces returns a copy of faces with every point offset by t.
func TranslateFaces(faces []geom.Face, t geom.Vec3) []geom.Face {
	out := make([]geom.Face, len(faces))
	for i, f := range faces {
		out[i] = geom.Face{f[0].Add(t), f[1].Add(t), f[2].Add(t)}
	}
	return out
}

// RotateFaces returns a copy of faces rotated by Euler angles in
// degrees, applied X then Y then Z about the origin.
func RotateFaces(faces []geom.Face, angles geom.Vec3) []geom.Face {
	m := geom.RotateZ(geom.DegToRad(angles.Z)).
		Mul(geom.RotateY(geom.DegToRad(angles.Y))).
		Mul(geom.RotateX(geom.DegToRad(angles.X)))
	out := make([]geom.Face, len(faces))
	for i, f := range faces {
		out[i] = geom.Face{
			m.TransformPoint(f[0]),
			m.TransformPoint(f[1]),
			m.TransformPoint(f[2]),
		}
	}
	return out
}
