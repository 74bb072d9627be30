package scenedef

import "fmt"

// Severity indicates whether a validation finding blocks rendering or
// is merely informational.
type Severity int

const (
	SeverityError   Severity = iota // blocks rendering
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Issue describes a single validation finding.
type Issue struct {
	NodeID   NodeID // which node has the problem (zero if graph-level)
	Message  string
	Severity Severity
}

func (e Issue) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// Errors filters the issues down to blocking findings.
func Errors(issues []Issue) []Issue {
	var errs []Issue
	for _, is := range issues {
		if is.Severity == SeverityError {
			errs = append(errs, is)
		}
	}
	return errs
}

// Validate runs all structural checks on the scene graph and returns
// the findings. An empty slice means the graph renders cleanly. The
// function is read-only and never mutates the graph.
func Validate(g *Graph) []Issue {
	var issues []Issue
	issues = append(issues, validateDuplicates(g)...)
	issues = append(issues, validateDAG(g)...)
	issues = append(issues, validateReferences(g)...)
	issues = append(issues, validateRoots(g)...)
	issues = append(issues, validateCameras(g)...)
	issues = append(issues, validateViewports(g)...)
	issues = append(issues, validateMeshes(g)...)
	return issues
}

// validateDuplicates reports node IDs that were added more than once.
// The later node replaced the earlier one, so whatever referenced the
// ID now points at different data than the script declared.
func validateDuplicates(g *Graph) []Issue {
	var issues []Issue
	for _, id := range g.Duplicates {
		issues = append(issues, Issue{
			NodeID:   id,
			Message:  fmt.Sprintf("duplicate node ID %s: a later node replaced this one", id.Short()),
			Severity: SeverityError,
		})
	}
	return issues
}

// validateDAG checks for cycles using DFS with 3-color marking: white
// unvisited, gray on the current path, black fully explored. A gray
// node reached again is a cycle.
func validateDAG(g *Graph) []Issue {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int)
	var issues []Issue

	var visit func(id NodeID) bool
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			issues = append(issues, Issue{
				NodeID:   id,
				Message:  fmt.Sprintf("cycle detected: node %s is part of a cycle", id.Short()),
				Severity: SeverityError,
			})
			return true
		}
		color[id] = gray
		n := g.Nodes[id]
		if n != nil {
			for _, cid := range n.Children {
				if visit(cid) {
					break
				}
			}
		}
		color[id] = black
		return false
	}

	for id := range g.Nodes {
		visit(id)
	}
	return issues
}

// validateReferences checks that every child reference resolves.
func validateReferences(g *Graph) []Issue {
	var issues []Issue
	for _, n := range g.Nodes {
		for _, cid := range n.Children {
			if g.Nodes[cid] == nil {
				issues = append(issues, Issue{
					NodeID:   n.ID,
					Message:  fmt.Sprintf("references missing node %s", cid.Short()),
					Severity: SeverityError,
				})
			}
		}
	}
	return issues
}

// validateRoots checks that roots are views wired to real cameras and
// scenes. A graph with no views renders an empty document; that is a
// warning, not an error.
func validateRoots(g *Graph) []Issue {
	var issues []Issue
	if len(g.Roots) == 0 {
		issues = append(issues, Issue{
			Message:  "graph defines no views; the document will be empty",
			Severity: SeverityWarning,
		})
	}
	for _, id := range g.Roots {
		n := g.Nodes[id]
		if n == nil {
			issues = append(issues, Issue{
				Message:  fmt.Sprintf("root %s does not exist", id.Short()),
				Severity: SeverityError,
			})
			continue
		}
		if n.Kind != NodeView {
			issues = append(issues, Issue{
				NodeID:   n.ID,
				Message:  fmt.Sprintf("root must be a view, got %s", n.Kind),
				Severity: SeverityError,
			})
			continue
		}
		vd, ok := n.Data.(ViewData)
		if !ok {
			issues = append(issues, Issue{
				NodeID:   n.ID,
				Message:  fmt.Sprintf("view has unexpected data type %T", n.Data),
				Severity: SeverityError,
			})
			continue
		}
		issues = append(issues, checkRef(g, n.ID, "camera", vd.Camera, NodeCamera)...)
		issues = append(issues, checkRef(g, n.ID, "scene", vd.Scene, NodeGroup)...)
		if !vd.Viewport.IsZero() {
			issues = append(issues, checkRef(g, n.ID, "viewport", vd.Viewport, NodeViewport)...)
		}
	}
	return issues
}

func checkRef(g *Graph, from NodeID, what string, id NodeID, want NodeKind) []Issue {
	if id.IsZero() {
		return []Issue{{
			NodeID:   from,
			Message:  fmt.Sprintf("view is missing its %s", what),
			Severity: SeverityError,
		}}
	}
	n := g.Nodes[id]
	if n == nil {
		return []Issue{{
			NodeID:   from,
			Message:  fmt.Sprintf("%s %s does not exist", what, id.Short()),
			Severity: SeverityError,
		}}
	}
	if n.Kind != want {
		return []Issue{{
			NodeID:   from,
			Message:  fmt.Sprintf("%s reference points at a %s node", what, n.Kind),
			Severity: SeverityError,
		}}
	}
	return nil
}

// validateCameras checks camera invariants: 0 < near < far, aspect > 0,
// fovy in (0, 180), and a usable up direction. The renderer itself
// never guards these; the script layer rejects them up front so a bad
// scene fails the run instead of emitting garbage geometry.
func validateCameras(g *Graph) []Issue {
	var issues []Issue
	add := func(id NodeID, msg string) {
		issues = append(issues, Issue{NodeID: id, Message: msg, Severity: SeverityError})
	}
	for _, n := range g.Nodes {
		if n.Kind != NodeCamera {
			continue
		}
		cd, ok := n.Data.(CameraData)
		if !ok {
			add(n.ID, fmt.Sprintf("camera has unexpected data type %T", n.Data))
			continue
		}
		if cd.Near <= 0 || cd.Far <= 0 || cd.Near >= cd.Far {
			add(n.ID, fmt.Sprintf("near/far must satisfy 0 < near < far, got near=%g far=%g", cd.Near, cd.Far))
		}
		if cd.Aspect <= 0 {
			add(n.ID, fmt.Sprintf("aspect must be positive, got %g", cd.Aspect))
		}
		if cd.Fovy <= 0 || cd.Fovy >= 180 {
			add(n.ID, fmt.Sprintf("fovy must be in (0, 180) degrees, got %g", cd.Fovy))
		}
		if cd.Up.Length() == 0 {
			add(n.ID, "up direction must be nonzero")
		}
		if cd.Eye == cd.Target {
			add(n.ID, "eye and target coincide")
		}
	}
	return issues
}

// validateViewports rejects empty output rectangles.
func validateViewports(g *Graph) []Issue {
	var issues []Issue
	for _, n := range g.Nodes {
		if n.Kind != NodeViewport {
			continue
		}
		vd, ok := n.Data.(ViewportData)
		if !ok {
			issues = append(issues, Issue{
				NodeID:   n.ID,
				Message:  fmt.Sprintf("viewport has unexpected data type %T", n.Data),
				Severity: SeverityError,
			})
			continue
		}
		if vd.Width <= 0 || vd.Height <= 0 {
			issues = append(issues, Issue{
				NodeID:   n.ID,
				Message:  fmt.Sprintf("viewport extent must be positive, got %gx%g", vd.Width, vd.Height),
				Severity: SeverityError,
			})
		}
	}
	return issues
}

// validateMeshes checks mesh sources and scene contents.
func validateMeshes(g *Graph) []Issue {
	var issues []Issue
	for _, n := range g.Nodes {
		switch n.Kind {
		case NodeMesh:
			md, ok := n.Data.(MeshData)
			if !ok {
				issues = append(issues, Issue{
					NodeID:   n.ID,
					Message:  fmt.Sprintf("mesh has unexpected data type %T", n.Data),
					Severity: SeverityError,
				})
				continue
			}
			switch md.Source {
			case SourceFile:
				if md.Path == "" {
					issues = append(issues, Issue{
						NodeID:   n.ID,
						Message:  "mesh file path is empty",
						Severity: SeverityError,
					})
				}
			case SourceSolid:
				if err := md.Solid.Check(); err != nil {
					issues = append(issues, Issue{
						NodeID:   n.ID,
						Message:  fmt.Sprintf("invalid solid expression: %v", err),
						Severity: SeverityError,
					})
				}
			}
		case NodeGroup:
			if len(n.Children) == 0 {
				issues = append(issues, Issue{
					NodeID:   n.ID,
					Message:  "scene is empty; its view contributes no polygons",
					Severity: SeverityWarning,
				})
			}
		}
	}
	return issues
}
