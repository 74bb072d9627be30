package render

import (
	"sort"

	"github.com/chazu/hedron/pkg/geom"
	"github.com/chazu/hedron/pkg/svgdoc"
)

// Default document parameters, matching the default viewport.
const (
	DefaultWidth  = 512
	DefaultHeight = 512
)

// DefaultViewBox is the document view box the default viewport maps
// into.
func DefaultViewBox() svgdoc.ViewBox {
	return svgdoc.ViewBox{MinX: -0.5, MinY: -0.5, Width: 1, Height: 1}
}

// Style is the group-level drawing style applied to every mesh group.
type Style struct {
	Fill           string
	FillOpacity    float64
	Stroke         string
	StrokeLinejoin string
	StrokeWidth    float64
}

// DefaultStyle is opaque white fill with a thin black rounded stroke.
func DefaultStyle() Style {
	return Style{
		Fill:           "white",
		FillOpacity:    1,
		Stroke:         "black",
		StrokeLinejoin: "round",
		StrokeWidth:    0.005,
	}
}

// Attrs returns the style as ordered SVG attributes.
func (s Style) Attrs() []svgdoc.Attr {
	return []svgdoc.Attr{
		{Key: "fill", Value: s.Fill},
		{Key: "fill-opacity", Value: fnum(s.FillOpacity)},
		{Key: "stroke", Value: s.Stroke},
		{Key: "stroke-linejoin", Value: s.StrokeLinejoin},
		{Key: "stroke-width", Value: fnum(s.StrokeWidth)},
	}
}

// Engine orchestrates one or more views into a single document. Views
// are owned by value and processed in input order; that order decides
// document element order, nothing else.
type Engine struct {
	Views   []View
	Width   int
	Height  int
	ViewBox svgdoc.ViewBox
	Style   Style
}

// NewEngine builds an engine with the default document parameters.
func NewEngine(views ...View) *Engine {
	return &Engine{
		Views:   views,
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		ViewBox: DefaultViewBox(),
		Style:   DefaultStyle(),
	}
}

// Render runs the pipeline for every view and mesh and returns the
// assembled document. The pipeline is synchronous and touches no state
// outside its arguments, so rendering the same views twice yields
// byte-identical documents.
func (e *Engine) Render() *svgdoc.Document {
	doc := svgdoc.New(e.ViewBox, e.Width, e.Height)
	for _, view := range e.Views {
		projection := view.Camera.Projection()
		for _, mesh := range view.Scene.Meshes {
			doc.AddGroup(e.renderMesh(projection, view.Viewport, mesh))
		}
	}
	return doc
}

// mappedFace is a face carried through the pipeline with its input
// index (for the styler) and centroid depth (for ordering).
type mappedFace struct {
	face  geom.Face
	index int
	depth float64
}

// renderMesh runs project -> divide -> viewport-map -> depth-sort ->
// cull -> emit for one mesh and returns its drawing group.
func (e *Engine) renderMesh(projection geom.Mat4, vp Viewport, mesh Mesh) svgdoc.Group {
	mapped := make([]mappedFace, len(mesh.Faces))
	for i, face := range mesh.Faces {
		var out geom.Face
		for j, p := range face {
			// No frustum clipping: w <= 0 divides propagate non-finite
			// coordinates through the rest of the pipeline.
			clip := projection.MulVec4(p.Homogeneous())
			out[j] = vp.Map(clip.Divide())
		}
		mapped[i] = mappedFace{face: out, index: i, depth: out.Centroid().Z}
	}

	// Ascending centroid depth, then reversed: farthest drawn first so
	// nearer faces overpaint it. NaN depths compare equal either way,
	// which leaves their relative order to the sort.
	sort.Slice(mapped, func(a, b int) bool {
		return mapped[a].depth < mapped[b].depth
	})
	for i, j := 0, len(mapped)-1; i < j; i, j = i+1, j-1 {
		mapped[i], mapped[j] = mapped[j], mapped[i]
	}

	group := svgdoc.Group{Attrs: e.groupAttrs(mesh)}
	for _, mf := range mapped {
		winding := mf.face.Winding()
		if winding <= 0 {
			// Back-facing or degenerate; silently dropped.
			continue
		}
		poly := svgdoc.Polygon{
			Points: []svgdoc.Point{
				{X: mf.face[0].X, Y: mf.face[0].Y},
				{X: mf.face[1].X, Y: mf.face[1].Y},
				{X: mf.face[2].X, Y: mf.face[2].Y},
			},
		}
		if mesh.Styler != nil {
			poly.Attrs = sortedAttrs(mesh.Styler.Style(mf.index, winding))
		}
		group.Polygons = append(group.Polygons, poly)
	}
	return group
}

// groupAttrs merges a mesh's style overrides into the engine's group
// style. Overridden keys keep their position; extra keys append in
// sorted order so output stays deterministic.
func (e *Engine) groupAttrs(mesh Mesh) []svgdoc.Attr {
	attrs := e.Style.Attrs()
	if len(mesh.Style) == 0 {
		return attrs
	}
	seen := make(map[string]bool, len(attrs))
	for i, a := range attrs {
		seen[a.Key] = true
		if v, ok := mesh.Style[a.Key]; ok {
			attrs[i].Value = v
		}
	}
	var extra []string
	for k := range mesh.Style {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		attrs = append(attrs, svgdoc.Attr{Key: k, Value: mesh.Style[k]})
	}
	return attrs
}
