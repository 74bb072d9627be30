package render

import "github.com/chazu/hedron/pkg/geom"

// Mesh is an ordered collection of triangular faces plus optional
// styling. Face order carries no meaning beyond input order; the depth
// sort reorders emission per mesh.
type Mesh struct {
	Faces []geom.Face

	// Style entries override the engine's group-level attributes for
	// this mesh's drawing group. Keys are SVG attribute names.
	Style map[string]string

	// Styler, when non-nil, supplies per-polygon attributes keyed by a
	// face's input index and its mapped winding. Nil (the default)
	// leaves polygons styled by the group alone.
	Styler FaceStyler
}

// NewMesh wraps faces in a mesh with no style overrides and no styler.
func NewMesh(faces []geom.Face) Mesh {
	return Mesh{Faces: faces, Style: map[string]string{}}
}

// FaceStyler supplies per-face style attributes at emission time.
type FaceStyler interface {
	// Style returns SVG attributes for the face at the given input
	// index with the given signed 2D winding.
	Style(index int, winding float64) map[string]string
}

// ConstantStyler applies the same attributes to every face.
type ConstantStyler map[string]string

func (s ConstantStyler) Style(index int, winding float64) map[string]string {
	return map[string]string(s)
}

// WindingStyler selects attributes by winding sign. Faces with
// non-positive winding are culled before emission, so Negative only
// shows up if a caller styles faces outside the pipeline.
type WindingStyler struct {
	Positive map[string]string
	Negative map[string]string
}

func (s WindingStyler) Style(index int, winding float64) map[string]string {
	if winding > 0 {
		return s.Positive
	}
	return s.Negative
}

// PaletteStyler cycles fill colors by face index.
type PaletteStyler []string

func (s PaletteStyler) Style(index int, winding float64) map[string]string {
	if len(s) == 0 {
		return nil
	}
	return map[string]string{"fill": s[index%len(s)]}
}
