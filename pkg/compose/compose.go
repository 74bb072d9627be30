// Package compose walks a scene graph and produces renderable views.
// Mesh sources are resolved here: procedural shapes from their vertex
// tables, OFF files through the loaders package, and CSG solids
// through a geometry kernel.
package compose

import (
	"fmt"

	"github.com/chazu/hedron/pkg/geom"
	"github.com/chazu/hedron/pkg/kernel"
	"github.com/chazu/hedron/pkg/loaders"
	"github.com/chazu/hedron/pkg/render"
	"github.com/chazu/hedron/pkg/scenedef"
	"github.com/chazu/hedron/pkg/shape"
)

// transformStack accumulates spatial transforms during graph
// traversal. Scales multiply, rotations and translations sum. Nesting
// is additive, not matrix composition: an inner translation is not
// rotated or scaled by an outer transform.
type transformStack struct {
	scales       []float64
	rotations    []geom.Vec3
	translations []geom.Vec3
}

func (ts *transformStack) push(td scenedef.TransformData) {
	scale := 1.0
	if td.Scale != nil {
		scale = *td.Scale
	}
	var rot, trans geom.Vec3
	if td.Rotation != nil {
		rot = *td.Rotation
	}
	if td.Translation != nil {
		trans = *td.Translation
	}
	ts.scales = append(ts.scales, scale)
	ts.rotations = append(ts.rotations, rot)
	ts.translations = append(ts.translations, trans)
}

func (ts *transformStack) pop() {
	ts.scales = ts.scales[:len(ts.scales)-1]
	ts.rotations = ts.rotations[:len(ts.rotations)-1]
	ts.translations = ts.translations[:len(ts.translations)-1]
}

func (ts *transformStack) accumulatedScale() float64 {
	s := 1.0
	for _, v := range ts.scales {
		s *= v
	}
	return s
}

func (ts *transformStack) accumulatedRotation() geom.Vec3 {
	var sum geom.Vec3
	for _, r := range ts.rotations {
		sum = sum.Add(r)
	}
	return sum
}

func (ts *transformStack) accumulatedTranslation() geom.Vec3 {
	var sum geom.Vec3
	for _, t := range ts.translations {
		sum = sum.Add(t)
	}
	return sum
}

// Compose resolves every root view of the graph into a render.View.
// The graph should be validated first; Compose reports the first
// structural problem it hits but does not repeat full validation. It
// is read-only and never mutates the graph.
func Compose(g *scenedef.Graph, k kernel.Kernel) ([]render.View, error) {
	if g == nil {
		return nil, nil
	}

	var views []render.View
	for _, root := range g.Views() {
		view, err := composeView(g, k, root)
		if err != nil {
			return nil, fmt.Errorf("compose: view %s: %w", root.ID.Short(), err)
		}
		views = append(views, view)
	}
	return views, nil
}

func composeView(g *scenedef.Graph, k kernel.Kernel, n *scenedef.Node) (render.View, error) {
	vd, ok := n.Data.(scenedef.ViewData)
	if !ok {
		return render.View{}, fmt.Errorf("unexpected data type %T", n.Data)
	}

	camNode := g.Get(vd.Camera)
	if camNode == nil {
		return render.View{}, fmt.Errorf("camera %s does not exist", vd.Camera.Short())
	}
	cd, ok := camNode.Data.(scenedef.CameraData)
	if !ok {
		return render.View{}, fmt.Errorf("camera %s has unexpected data type %T", vd.Camera.Short(), camNode.Data)
	}
	camera := render.NewCamera(cd.Fovy, cd.Aspect, cd.Near, cd.Far, cd.Eye, cd.Target, cd.Up)

	viewport := render.DefaultViewport()
	if !vd.Viewport.IsZero() {
		vpNode := g.Get(vd.Viewport)
		if vpNode == nil {
			return render.View{}, fmt.Errorf("viewport %s does not exist", vd.Viewport.Short())
		}
		vpd, ok := vpNode.Data.(scenedef.ViewportData)
		if !ok {
			return render.View{}, fmt.Errorf("viewport %s has unexpected data type %T", vd.Viewport.Short(), vpNode.Data)
		}
		viewport = render.Viewport{MinX: vpd.MinX, MinY: vpd.MinY, Width: vpd.Width, Height: vpd.Height}
	}

	sceneNode := g.Get(vd.Scene)
	if sceneNode == nil {
		return render.View{}, fmt.Errorf("scene %s does not exist", vd.Scene.Short())
	}
	ts := &transformStack{}
	meshes, err := walkNode(g, k, sceneNode, ts)
	if err != nil {
		return render.View{}, err
	}

	return render.View{
		Camera:   camera,
		Scene:    render.Scene{Meshes: meshes},
		Viewport: viewport,
	}, nil
}

// walkNode recursively traverses a scene node and its children,
// collecting meshes in declaration order.
func walkNode(g *scenedef.Graph, k kernel.Kernel, n *scenedef.Node, ts *transformStack) ([]render.Mesh, error) {
	switch n.Kind {
	case scenedef.NodeMesh:
		mesh, err := composeMesh(k, n, ts)
		if err != nil {
			return nil, err
		}
		return []render.Mesh{mesh}, nil

	case scenedef.NodeTransform:
		td, ok := n.Data.(scenedef.TransformData)
		if !ok {
			return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
		}
		ts.push(td)
		var meshes []render.Mesh
		for _, child := range g.Children(n) {
			collected, err := walkNode(g, k, child, ts)
			if err != nil {
				ts.pop()
				return nil, err
			}
			meshes = append(meshes, collected...)
		}
		ts.pop()
		return meshes, nil

	case scenedef.NodeGroup:
		var meshes []render.Mesh
		for _, child := range g.Children(n) {
			collected, err := walkNode(g, k, child, ts)
			if err != nil {
				return nil, err
			}
			meshes = append(meshes, collected...)
		}
		return meshes, nil

	default:
		return nil, fmt.Errorf("node %s: a %s cannot appear inside a scene", n.ID.Short(), n.Kind)
	}
}

// composeMesh resolves a mesh node's faces and applies the accumulated
// transform: scale, then rotation, then translation.
func composeMesh(k kernel.Kernel, n *scenedef.Node, ts *transformStack) (render.Mesh, error) {
	md, ok := n.Data.(scenedef.MeshData)
	if !ok {
		return render.Mesh{}, fmt.Errorf("mesh node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}

	faces, err := resolveFaces(k, n, md)
	if err != nil {
		return render.Mesh{}, err
	}

	if s := ts.accumulatedScale(); s != 1 {
		faces = shape.ScaleFaces(faces, s)
	}
	if r := ts.accumulatedRotation(); r != (geom.Vec3{}) {
		faces = shape.RotateFaces(faces, r)
	}
	if t := ts.accumulatedTranslation(); t != (geom.Vec3{}) {
		faces = shape.TranslateFaces(faces, t)
	}

	mesh := render.NewMesh(faces)
	for key, value := range md.Style {
		mesh.Style[key] = value
	}
	return mesh, nil
}

func resolveFaces(k kernel.Kernel, n *scenedef.Node, md scenedef.MeshData) ([]geom.Face, error) {
	switch md.Source {
	case scenedef.SourceShape:
		switch md.Shape {
		case scenedef.ShapeCube:
			return shape.Cube(), nil
		case scenedef.ShapeOctahedron:
			return shape.Octahedron(), nil
		case scenedef.ShapeIcosahedron:
			return shape.Icosahedron(), nil
		default:
			return nil, fmt.Errorf("mesh node %s: unknown shape %v", n.ID.Short(), md.Shape)
		}

	case scenedef.SourceFile:
		faces, err := loaders.LoadOFF(md.Path)
		if err != nil {
			return nil, fmt.Errorf("mesh node %s: %w", n.ID.Short(), err)
		}
		return faces, nil

	case scenedef.SourceSolid:
		if k == nil {
			return nil, fmt.Errorf("mesh node %s: no geometry kernel configured", n.ID.Short())
		}
		solid, err := evalSolid(k, md.Solid)
		if err != nil {
			return nil, fmt.Errorf("mesh node %s: %w", n.ID.Short(), err)
		}
		faces, err := k.ToFaces(solid)
		if err != nil {
			return nil, fmt.Errorf("mesh node %s: %w", n.ID.Short(), err)
		}
		return faces, nil

	default:
		return nil, fmt.Errorf("mesh node %s: unknown source %v", n.ID.Short(), md.Source)
	}
}

// evalSolid evaluates a CSG expression tree against the kernel.
func evalSolid(k kernel.Kernel, e *scenedef.SolidExpr) (kernel.Solid, error) {
	if err := e.Check(); err != nil {
		return nil, err
	}
	switch e.Op {
	case scenedef.SolidBox:
		return k.Box(e.Args[0], e.Args[1], e.Args[2]), nil
	case scenedef.SolidCylinder:
		return k.Cylinder(e.Args[0], e.Args[1]), nil
	case scenedef.SolidTranslate:
		child, err := evalSolid(k, e.Children[0])
		if err != nil {
			return nil, err
		}
		return k.Translate(child, e.Args[0], e.Args[1], e.Args[2]), nil
	case scenedef.SolidRotate:
		child, err := evalSolid(k, e.Children[0])
		if err != nil {
			return nil, err
		}
		return k.Rotate(child, e.Args[0], e.Args[1], e.Args[2]), nil
	case scenedef.SolidUnion, scenedef.SolidDifference, scenedef.SolidIntersection:
		a, err := evalSolid(k, e.Children[0])
		if err != nil {
			return nil, err
		}
		b, err := evalSolid(k, e.Children[1])
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case scenedef.SolidUnion:
			return k.Union(a, b), nil
		case scenedef.SolidDifference:
			return k.Difference(a, b), nil
		default:
			return k.Intersection(a, b), nil
		}
	default:
		return nil, fmt.Errorf("unknown solid operator %v", e.Op)
	}
}
