package render

import "github.com/chazu/hedron/pkg/geom"

// Viewport is the axis-aligned rectangle of output document space that
// normalized device coordinates are mapped into. It is independent of
// the camera and used only for the final 2D remap.
type Viewport struct {
	MinX, MinY    float64
	Width, Height float64
}

// DefaultViewport matches the document's default unit view box.
func DefaultViewport() Viewport {
	return Viewport{MinX: -0.5, MinY: -0.5, Width: 1, Height: 1}
}

// Map remaps a perspective-divided point from device space [-1,1] to
// output space. Y flips because document coordinates grow downward
// while device coordinates grow upward. Z passes through unchanged for
// depth ordering.
func (vp Viewport) Map(p geom.Vec3) geom.Vec3 {
	return geom.Vec3{
		X: (1+p.X)*vp.Width/2 + vp.MinX,
		Y: (1-p.Y)*vp.Height/2 + vp.MinY,
		Z: p.Z,
	}
}
