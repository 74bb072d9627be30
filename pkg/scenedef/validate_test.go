package scenedef

import (
	"strings"
	"testing"

	"github.com/chazu/hedron/pkg/geom"
)

// validCamera returns camera data that passes every check.
func validCamera() CameraData {
	return CameraData{
		Fovy:   15,
		Aspect: 1,
		Near:   10,
		Far:    100,
		Eye:    geom.V3(13, 2, 20),
		Target: geom.V3(0, 0, 0),
		Up:     geom.V3(0, 1, 0),
	}
}

// wellFormedGraph builds a minimal graph that validates with no errors.
func wellFormedGraph() *Graph {
	g := New()

	camID := NewNodeID("camera/main")
	g.AddNode(&Node{ID: camID, Kind: NodeCamera, Name: "main", Data: validCamera()})

	meshID := NewNodeID("mesh/gem")
	g.AddNode(&Node{ID: meshID, Kind: NodeMesh, Name: "gem",
		Data: MeshData{Source: SourceShape, Shape: ShapeOctahedron}})

	sceneID := NewNodeID("scene/all")
	g.AddNode(&Node{ID: sceneID, Kind: NodeGroup, Name: "all",
		Children: []NodeID{meshID}, Data: GroupData{}})

	viewID := NewNodeID("view/main")
	g.AddNode(&Node{ID: viewID, Kind: NodeView,
		Data: ViewData{Camera: camID, Scene: sceneID}})
	g.AddRoot(viewID)

	return g
}

func hasIssue(issues []Issue, substr string) bool {
	for _, is := range issues {
		if strings.Contains(is.Message, substr) {
			return true
		}
	}
	return false
}

func TestValidateWellFormed(t *testing.T) {
	issues := Validate(wellFormedGraph())
	if errs := Errors(issues); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateNoViewsWarns(t *testing.T) {
	issues := Validate(New())
	if errs := Errors(issues); len(errs) > 0 {
		t.Errorf("an empty graph should not error, got %v", errs)
	}
	if !hasIssue(issues, "no views") {
		t.Errorf("expected a no-views warning, got %v", issues)
	}
}

func TestValidateCycle(t *testing.T) {
	g := wellFormedGraph()
	// Make the scene contain a transform whose child points back at it.
	a := NewNodeID("place/a")
	b := NewNodeID("place/b")
	g.AddNode(&Node{ID: a, Kind: NodeTransform, Children: []NodeID{b}, Data: TransformData{}})
	g.AddNode(&Node{ID: b, Kind: NodeTransform, Children: []NodeID{a}, Data: TransformData{}})

	issues := Validate(g)
	if !hasIssue(Errors(issues), "cycle") {
		t.Errorf("expected a cycle error, got %v", issues)
	}
}

func TestValidateDuplicateID(t *testing.T) {
	g := wellFormedGraph()
	gem := g.Lookup("gem")
	g.AddNode(&Node{ID: gem.ID, Kind: NodeMesh, Name: "gem",
		Data: MeshData{Source: SourceShape, Shape: ShapeCube}})

	issues := Validate(g)
	if !hasIssue(Errors(issues), "duplicate node ID") {
		t.Errorf("expected a duplicate-ID error, got %v", issues)
	}
}

func TestValidateDanglingReference(t *testing.T) {
	g := wellFormedGraph()
	scene := g.Lookup("all")
	scene.Children = append(scene.Children, NewNodeID("mesh/gone"))

	issues := Validate(g)
	if !hasIssue(Errors(issues), "missing node") {
		t.Errorf("expected a missing-node error, got %v", issues)
	}
}

func TestValidateRootMustBeView(t *testing.T) {
	g := wellFormedGraph()
	g.AddRoot(g.Lookup("gem").ID)

	issues := Validate(g)
	if !hasIssue(Errors(issues), "root must be a view") {
		t.Errorf("expected a root-kind error, got %v", issues)
	}
}

func TestValidateViewReferences(t *testing.T) {
	g := New()
	camID := NewNodeID("camera/main")
	g.AddNode(&Node{ID: camID, Kind: NodeCamera, Data: validCamera()})

	viewID := NewNodeID("view/main")
	// Scene reference missing entirely; camera points at a real node.
	g.AddNode(&Node{ID: viewID, Kind: NodeView, Data: ViewData{Camera: camID}})
	g.AddRoot(viewID)

	issues := Validate(g)
	if !hasIssue(Errors(issues), "missing its scene") {
		t.Errorf("expected a missing-scene error, got %v", issues)
	}

	// Camera reference pointing at the wrong node kind.
	vd := g.Get(viewID).Data.(ViewData)
	vd.Camera = viewID
	g.Get(viewID).Data = vd
	issues = Validate(g)
	if !hasIssue(Errors(issues), "camera reference points at") {
		t.Errorf("expected a wrong-kind error, got %v", issues)
	}
}

func TestValidateCamera(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CameraData)
		wantMsg string
	}{
		{"near after far", func(c *CameraData) { c.Near = 200 }, "near < far"},
		{"zero near", func(c *CameraData) { c.Near = 0 }, "near < far"},
		{"bad aspect", func(c *CameraData) { c.Aspect = -1 }, "aspect"},
		{"fovy too wide", func(c *CameraData) { c.Fovy = 180 }, "fovy"},
		{"zero up", func(c *CameraData) { c.Up = geom.Vec3{} }, "up direction"},
		{"eye on target", func(c *CameraData) { c.Eye = c.Target }, "coincide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := wellFormedGraph()
			cd := validCamera()
			tt.mutate(&cd)
			g.Lookup("main").Data = cd

			issues := Validate(g)
			if !hasIssue(Errors(issues), tt.wantMsg) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantMsg, issues)
			}
		})
	}
}

func TestValidateViewport(t *testing.T) {
	g := wellFormedGraph()
	vpID := NewNodeID("viewport/bad")
	g.AddNode(&Node{ID: vpID, Kind: NodeViewport, Data: ViewportData{Width: 0, Height: 1}})

	issues := Validate(g)
	if !hasIssue(Errors(issues), "extent must be positive") {
		t.Errorf("expected a viewport extent error, got %v", issues)
	}
}

func TestValidateMeshSources(t *testing.T) {
	g := wellFormedGraph()

	g.AddNode(&Node{ID: NewNodeID("mesh/nopath"), Kind: NodeMesh,
		Data: MeshData{Source: SourceFile}})
	g.AddNode(&Node{ID: NewNodeID("mesh/badsolid"), Kind: NodeMesh,
		Data: MeshData{Source: SourceSolid, Solid: &SolidExpr{Op: SolidUnion}}})

	issues := Validate(g)
	errs := Errors(issues)
	if !hasIssue(errs, "file path is empty") {
		t.Errorf("expected an empty-path error, got %v", issues)
	}
	if !hasIssue(errs, "invalid solid expression") {
		t.Errorf("expected a solid expression error, got %v", issues)
	}
}

func TestValidateEmptySceneWarns(t *testing.T) {
	g := wellFormedGraph()
	g.Lookup("all").Children = nil

	issues := Validate(g)
	if errs := Errors(issues); len(errs) > 0 {
		t.Errorf("an empty scene should not error, got %v", errs)
	}
	if !hasIssue(issues, "scene is empty") {
		t.Errorf("expected an empty-scene warning, got %v", issues)
	}
}

func TestIssueError(t *testing.T) {
	is := Issue{NodeID: NewNodeID("mesh/gem"), Message: "boom", Severity: SeverityError}
	if got := is.Error(); !strings.Contains(got, "mesh/gem") || !strings.Contains(got, "boom") {
		t.Errorf("Error() = %q", got)
	}
	graphLevel := Issue{Message: "graph-wide", Severity: SeverityWarning}
	if got := graphLevel.Error(); !strings.Contains(got, "warning") {
		t.Errorf("Error() = %q", got)
	}
}
