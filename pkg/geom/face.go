package geom

// Face is a triangle. Each face carries its own three points in
// authored winding order; there is no shared-vertex topology.
type Face [3]Vec3

// Winding returns the z component of the cross product of the face's
// edge vectors (p2-p1) x (p3-p1). In 2D-mapped output space the sign
// encodes orientation: positive is counter-clockwise (front-facing),
// negative is clockwise, zero is degenerate.
func (f Face) Winding() float64 {
	return f[1].Sub(f[0]).Cross(f[2].Sub(f[0])).Z
}

// Centroid returns the mean of the three points.
func (f Face) Centroid() Vec3 {
	return Vec3{
		(f[0].X + f[1].X + f[2].X) / 3,
		(f[0].Y + f[1].Y + f[2].Y) / 3,
		(f[0].Z + f[1].Z + f[2].Z) / 3,
	}
}

// IsFinite reports whether all nine coordinates are finite.
func (f Face) IsFinite() bool {
	return f[0].IsFinite() && f[1].IsFinite() && f[2].IsFinite()
}
