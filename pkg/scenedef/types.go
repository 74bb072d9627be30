// Package scenedef defines the declarative scene graph produced by
// scene-script evaluation: cameras, viewports, mesh sources,
// transforms, scene groups, and views, plus structural validation.
package scenedef

import (
	"fmt"

	"github.com/chazu/hedron/pkg/geom"
)

// NodeID identifies a graph node. IDs are path-like and unique within
// a graph.
type NodeID string

// ZeroID is the absent node reference.
const ZeroID NodeID = ""

// IsZero reports whether the ID is the absent reference.
func (id NodeID) IsZero() bool { return id == ZeroID }

// NewNodeID derives a stable ID from a path-like name.
func NewNodeID(path string) NodeID { return NodeID(path) }

// Short returns a truncated form for error messages.
func (id NodeID) Short() string {
	if len(id) <= 24 {
		return string(id)
	}
	return string(id[:21]) + "..."
}

// NodeKind enumerates the types of nodes in the scene graph.
type NodeKind int

const (
	NodeCamera   NodeKind = iota // pinhole camera definition
	NodeViewport                 // output-space rectangle
	NodeMesh                     // mesh source (shape, file, or solid)
	NodeTransform                // spatial transformation wrapping a child
	NodeGroup                    // scene: ordered mesh collection
	NodeView                     // camera + scene + viewport binding
)

func (k NodeKind) String() string {
	switch k {
	case NodeCamera:
		return "camera"
	case NodeViewport:
		return "viewport"
	case NodeMesh:
		return "mesh"
	case NodeTransform:
		return "transform"
	case NodeGroup:
		return "scene"
	case NodeView:
		return "view"
	default:
		return "unknown"
	}
}

// Node is the fundamental element of the scene graph.
type Node struct {
	ID       NodeID
	Kind     NodeKind
	Name     string
	Children []NodeID
	Data     NodeData
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}

// CameraData holds pinhole camera parameters. Fovy is in degrees.
type CameraData struct {
	Fovy   float64
	Aspect float64
	Near   float64
	Far    float64
	Eye    geom.Vec3
	Target geom.Vec3
	Up     geom.Vec3
}

func (CameraData) nodeData() {}

// ViewportData is an output-space rectangle in document units.
type ViewportData struct {
	MinX, MinY    float64
	Width, Height float64
}

func (ViewportData) nodeData() {}

// MeshSource distinguishes where a mesh's faces come from.
type MeshSource int

const (
	SourceShape MeshSource = iota // procedural polyhedron
	SourceFile                    // OFF mesh file
	SourceSolid                   // CSG solid tessellated by the kernel
)

// ShapeKind enumerates the procedural polyhedra.
type ShapeKind int

const (
	ShapeCube ShapeKind = iota
	ShapeOctahedron
	ShapeIcosahedron
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCube:
		return "cube"
	case ShapeOctahedron:
		return "octahedron"
	case ShapeIcosahedron:
		return "icosahedron"
	default:
		return "unknown"
	}
}

// MeshData describes one mesh source plus its style overrides.
type MeshData struct {
	Source MeshSource
	Shape  ShapeKind  // SourceShape
	Path   string     // SourceFile
	Solid  *SolidExpr // SourceSolid
	Style  map[string]string
}

func (MeshData) nodeData() {}

// TransformData is a spatial transformation applied to a child node.
// Created by the (place ...) form. Order of application: scale, then
// rotation, then translation.
type TransformData struct {
	Scale       *float64
	Rotation    *geom.Vec3 // Euler angles in degrees
	Translation *geom.Vec3
}

func (TransformData) nodeData() {}

// GroupData marks a scene grouping. Created by the (scene ...) form.
type GroupData struct{}

func (GroupData) nodeData() {}

// ViewData binds a camera and a scene, with an optional viewport
// (ZeroID selects the default unit viewport).
type ViewData struct {
	Camera   NodeID
	Scene    NodeID
	Viewport NodeID
}

func (ViewData) nodeData() {}

// SolidOp enumerates CSG solid-expression operators.
type SolidOp int

const (
	SolidBox          SolidOp = iota // Args: x, y, z dimensions
	SolidCylinder                    // Args: height, radius
	SolidUnion                       // 2 children
	SolidDifference                  // 2 children
	SolidIntersection                // 2 children
	SolidTranslate                   // Args: offset; 1 child
	SolidRotate                      // Args: Euler degrees; 1 child
)

func (op SolidOp) String() string {
	switch op {
	case SolidBox:
		return "box"
	case SolidCylinder:
		return "cylinder"
	case SolidUnion:
		return "union"
	case SolidDifference:
		return "difference"
	case SolidIntersection:
		return "intersection"
	case SolidTranslate:
		return "move"
	case SolidRotate:
		return "spin"
	default:
		return "unknown"
	}
}

// SolidExpr is a kernel-independent CSG expression tree, evaluated
// against a kernel.Kernel at compose time.
type SolidExpr struct {
	Op       SolidOp
	Args     [3]float64
	Children []*SolidExpr
}

// arity returns the required child count for the operator.
func (op SolidOp) arity() int {
	switch op {
	case SolidBox, SolidCylinder:
		return 0
	case SolidTranslate, SolidRotate:
		return 1
	default:
		return 2
	}
}

// Check validates the expression tree's arity recursively.
func (e *SolidExpr) Check() error {
	if e == nil {
		return fmt.Errorf("nil solid expression")
	}
	if len(e.Children) != e.Op.arity() {
		return fmt.Errorf("%s takes %d operand(s), got %d", e.Op, e.Op.arity(), len(e.Children))
	}
	for _, c := range e.Children {
		if err := c.Check(); err != nil {
			return err
		}
	}
	return nil
}
