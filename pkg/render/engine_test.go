package render

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/hedron/pkg/geom"
	"github.com/chazu/hedron/pkg/shape"
)

// demoCamera is the standard test shot: a narrow lens at (13, 2, 20)
// looking at the origin.
func demoCamera() Camera {
	return NewCamera(15, 1, 10, 100,
		geom.V3(13, 2, 20), geom.V3(0, 0, 0), geom.V3(0, 1, 0))
}

// frontTriangle returns a triangle at the given depth that survives the
// back-face cull under axisCamera: clockwise in world XY as seen from
// +Z, which the y-flip turns into positive document winding.
func frontTriangle(z float64) geom.Face {
	return geom.Face{geom.V3(0, 1, z), geom.V3(1, -1, z), geom.V3(-1, -1, z)}
}

// backTriangle is frontTriangle with reversed vertex order, so it culls.
func backTriangle(z float64) geom.Face {
	f := frontTriangle(z)
	return geom.Face{f[2], f[1], f[0]}
}

// axisCamera looks straight down -Z from (0, 0, 20).
func axisCamera() Camera {
	return NewCamera(30, 1, 1, 100,
		geom.V3(0, 0, 20), geom.V3(0, 0, 0), geom.V3(0, 1, 0))
}

func TestRenderOctahedronScene(t *testing.T) {
	mesh := NewMesh(shape.ScaleFaces(shape.Octahedron(), 15))
	view := NewView(demoCamera(), NewScene(mesh))

	doc := NewEngine(view).Render()

	if len(doc.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(doc.Groups))
	}
	polys := doc.Groups[0].Polygons

	// A closed convex solid seen from outside always has faces of both
	// winding signs, so some but never all of the 8 faces survive.
	if len(polys) < 1 || len(polys) > 7 {
		t.Fatalf("expected between 1 and 7 polygons, got %d", len(polys))
	}

	for i, p := range polys {
		if len(p.Points) != 3 {
			t.Errorf("polygon %d: expected 3 points, got %d", i, len(p.Points))
		}
		for j, pt := range p.Points {
			if math.IsNaN(pt.X) || math.IsInf(pt.X, 0) || math.IsNaN(pt.Y) || math.IsInf(pt.Y, 0) {
				t.Errorf("polygon %d point %d is not finite: %+v", i, j, pt)
			}
		}
	}
}

func TestRenderCullComplement(t *testing.T) {
	// Reversing every face flips each projected winding, so the culled
	// and emitted sets swap.
	faces := shape.ScaleFaces(shape.Octahedron(), 15)
	reversed := make([]geom.Face, len(faces))
	for i, f := range faces {
		reversed[i] = geom.Face{f[2], f[1], f[0]}
	}

	cam := demoCamera()
	forward := NewEngine(NewView(cam, NewScene(NewMesh(faces)))).Render()
	backward := NewEngine(NewView(cam, NewScene(NewMesh(reversed)))).Render()

	total := forward.PolygonCount() + backward.PolygonCount()
	if total != len(faces) {
		t.Errorf("emitted face counts should partition the mesh: %d + %d != %d",
			forward.PolygonCount(), backward.PolygonCount(), len(faces))
	}
}

func TestRenderBackFaceCulled(t *testing.T) {
	mesh := NewMesh([]geom.Face{backTriangle(0)})
	doc := NewEngine(NewView(axisCamera(), NewScene(mesh))).Render()

	if len(doc.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(doc.Groups))
	}
	if n := len(doc.Groups[0].Polygons); n != 0 {
		t.Errorf("back-facing triangle should be culled, got %d polygons", n)
	}
}

func TestRenderDegenerateFaceDropped(t *testing.T) {
	p := geom.V3(1, 1, 0)
	mesh := NewMesh([]geom.Face{
		{p, p, p}, // zero-area, winding 0
		frontTriangle(0),
	})
	doc := NewEngine(NewView(axisCamera(), NewScene(mesh))).Render()

	if n := doc.PolygonCount(); n != 1 {
		t.Errorf("expected only the real triangle to emit, got %d polygons", n)
	}
}

func TestRenderEmptyMesh(t *testing.T) {
	doc := NewEngine(NewView(demoCamera(), NewScene(NewMesh(nil)))).Render()

	if len(doc.Groups) != 1 {
		t.Fatalf("empty mesh should still contribute its group, got %d groups", len(doc.Groups))
	}
	if n := len(doc.Groups[0].Polygons); n != 0 {
		t.Errorf("expected 0 polygons, got %d", n)
	}
}

func TestRenderGroupPerMeshInOrder(t *testing.T) {
	a := NewMesh([]geom.Face{frontTriangle(0)})
	a.Style["fill"] = "#aaa"
	b := NewMesh([]geom.Face{frontTriangle(1)})
	b.Style["fill"] = "#bbb"

	doc := NewEngine(NewView(axisCamera(), NewScene(a, b))).Render()

	if len(doc.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(doc.Groups))
	}
	if got := doc.Groups[0].Attrs[0].Value; got != "#aaa" {
		t.Errorf("group 0 should carry the first mesh's fill, got %q", got)
	}
	if got := doc.Groups[1].Attrs[0].Value; got != "#bbb" {
		t.Errorf("group 1 should carry the second mesh's fill, got %q", got)
	}
}

func TestRenderDepthOrderFarToNear(t *testing.T) {
	// Two front-facing triangles; the one at z=5 sits nearer the camera
	// at z=20, so the z=0 triangle must be emitted first.
	far := frontTriangle(0)
	near := geom.Face{geom.V3(0, 0.5, 5), geom.V3(0.5, -0.5, 5), geom.V3(-0.5, -0.5, 5)}
	mesh := NewMesh([]geom.Face{near, far})
	mesh.Styler = PaletteStyler{"near-color", "far-color"}

	doc := NewEngine(NewView(axisCamera(), NewScene(mesh))).Render()

	polys := doc.Groups[0].Polygons
	if len(polys) != 2 {
		t.Fatalf("expected 2 polygons, got %d", len(polys))
	}
	// The styler is keyed by input index, so fills identify the faces
	// regardless of emission order.
	if polys[0].Attrs[0].Value != "far-color" {
		t.Errorf("first emitted polygon should be the far face, got %q", polys[0].Attrs[0].Value)
	}
	if polys[1].Attrs[0].Value != "near-color" {
		t.Errorf("second emitted polygon should be the near face, got %q", polys[1].Attrs[0].Value)
	}
}

func TestRenderStylerAttrsSorted(t *testing.T) {
	mesh := NewMesh([]geom.Face{frontTriangle(0)})
	mesh.Styler = ConstantStyler{"stroke": "red", "fill": "blue", "opacity": "0.5"}

	doc := NewEngine(NewView(axisCamera(), NewScene(mesh))).Render()

	attrs := doc.Groups[0].Polygons[0].Attrs
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	want := []string{"fill", "opacity", "stroke"}
	for i, key := range want {
		if attrs[i].Key != key {
			t.Errorf("attr %d: expected key %q, got %q", i, key, attrs[i].Key)
		}
	}
}

func TestRenderStyleOverrides(t *testing.T) {
	mesh := NewMesh([]geom.Face{frontTriangle(0)})
	mesh.Style["stroke"] = "#123456"
	mesh.Style["opacity"] = "0.25"

	doc := NewEngine(NewView(axisCamera(), NewScene(mesh))).Render()

	attrs := doc.Groups[0].Attrs
	// Overridden keys keep the default style's position.
	if attrs[2].Key != "stroke" || attrs[2].Value != "#123456" {
		t.Errorf("expected stroke override in place, got %+v", attrs[2])
	}
	// Unknown keys append after the defaults.
	last := attrs[len(attrs)-1]
	if last.Key != "opacity" || last.Value != "0.25" {
		t.Errorf("expected opacity appended, got %+v", last)
	}
	// Untouched defaults survive.
	if attrs[0].Key != "fill" || attrs[0].Value != "white" {
		t.Errorf("expected default fill, got %+v", attrs[0])
	}
}

func TestRenderDeterministic(t *testing.T) {
	mesh := NewMesh(shape.ScaleFaces(shape.Icosahedron(), 15))
	eng := NewEngine(NewView(demoCamera(), NewScene(mesh)))

	first := eng.Render().String()
	second := eng.Render().String()
	if first != second {
		t.Fatal("rendering the same views twice should be byte-identical")
	}
	if !strings.Contains(first, "<polygon") {
		t.Fatal("expected at least one polygon in output")
	}
}

func TestRenderMultipleViews(t *testing.T) {
	mesh := NewMesh(shape.ScaleFaces(shape.Octahedron(), 15))
	v1 := NewView(demoCamera(), NewScene(mesh))
	v2 := View{
		Camera:   axisCamera(),
		Scene:    NewScene(NewMesh([]geom.Face{frontTriangle(0)})),
		Viewport: Viewport{MinX: 0, MinY: 0, Width: 1, Height: 1},
	}

	doc := NewEngine(v1, v2).Render()
	if len(doc.Groups) != 2 {
		t.Fatalf("expected one group per mesh across views, got %d", len(doc.Groups))
	}
}
