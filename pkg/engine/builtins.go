package engine

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/hedron/pkg/geom"
	"github.com/chazu/hedron/pkg/scenedef"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms scene Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: mesh-file -> mesh_file
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a geom.Vec3.
type sexpVec3 struct {
	vec geom.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpMesh wraps a scenedef.MeshData so it can be returned from the shape
// and mesh-file builtins and consumed by defmesh, place, and scene.
type sexpMesh struct {
	data scenedef.MeshData
}

func (m *sexpMesh) SexpString(ps *zygo.PrintState) string {
	switch m.data.Source {
	case scenedef.SourceShape:
		return fmt.Sprintf("(%s)", m.data.Shape)
	case scenedef.SourceFile:
		return fmt.Sprintf("(mesh-file %q)", m.data.Path)
	default:
		return "(solid-mesh)"
	}
}
func (m *sexpMesh) Type() *zygo.RegisteredType { return nil }

// sexpSolid wraps a CSG expression tree built by the solid builtins.
type sexpSolid struct {
	expr *scenedef.SolidExpr
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s ...)", s.expr.Op)
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// sexpNodeRef wraps a scenedef.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   scenedef.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value; treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (geom.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toSolid extracts a solid expression from a sexpSolid.
func toSolid(s zygo.Sexp) (*scenedef.SolidExpr, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v.expr, nil
	}
	return nil, fmt.Errorf("expected solid expression, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Node ID generation
// ---------------------------------------------------------------------------

// nodeCounter provides unique suffixes for anonymous nodes.
var nodeCounter uint64

func nextNodeSuffix() string {
	n := atomic.AddUint64(&nodeCounter, 1)
	return fmt.Sprintf("_anon_%d", n)
}

// ---------------------------------------------------------------------------
// Style keywords
// ---------------------------------------------------------------------------

// styleKeys maps DSL style keywords to SVG presentation attributes.
var styleKeys = map[string]string{
	"fill":            "fill",
	"fill-opacity":    "fill-opacity",
	"stroke":          "stroke",
	"stroke-width":    "stroke-width",
	"stroke-linejoin": "stroke-linejoin",
}

// styleFromKW collects style keyword arguments into an attribute map.
// Numeric values are formatted the same way the SVG writer formats
// coordinates, so the script author sees what the document will carry.
func styleFromKW(kw map[string]zygo.Sexp) (map[string]string, error) {
	var style map[string]string
	for key, attr := range styleKeys {
		v, ok := kw[key]
		if !ok {
			continue
		}
		var value string
		switch sv := v.(type) {
		case *zygo.SexpStr:
			value = sv.S
		case *zygo.SexpInt:
			value = strconv.FormatInt(sv.Val, 10)
		case *zygo.SexpFloat:
			value = strconv.FormatFloat(sv.Val, 'g', -1, 64)
		default:
			return nil, fmt.Errorf("%s: expected string or number, got %T", key, v)
		}
		if style == nil {
			style = make(map[string]string)
		}
		style[attr] = value
	}
	return style, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all scene DSL builtins into a zygomys
// environment. The builtins operate on the provided graph, populating it
// during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, g *scenedef.Graph) {

	// meshNode turns a mesh or solid value into a graph node and returns
	// its ID. An existing node reference passes through unchanged.
	meshNode := func(s zygo.Sexp) (scenedef.NodeID, error) {
		switch v := s.(type) {
		case *sexpNodeRef:
			return v.id, nil
		case *sexpMesh:
			id := scenedef.NewNodeID("mesh/" + nextNodeSuffix())
			g.AddNode(&scenedef.Node{ID: id, Kind: scenedef.NodeMesh, Data: v.data})
			return id, nil
		case *sexpSolid:
			id := scenedef.NewNodeID("mesh/" + nextNodeSuffix())
			g.AddNode(&scenedef.Node{
				ID:   id,
				Kind: scenedef.NodeMesh,
				Data: scenedef.MeshData{Source: scenedef.SourceSolid, Solid: v.expr},
			})
			return id, nil
		}
		return scenedef.ZeroID, fmt.Errorf("expected mesh, solid, or node reference, got %T (%s)",
			s, s.SexpString(nil))
	}

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: geom.V3(x, y, z)}, nil
	})

	// -----------------------------------------------------------------------
	// (camera :fovy 15 :aspect 1 :near 10 :far 100
	//         :eye (vec3 13 2 20) :target (vec3 0 0 0) :up (vec3 0 1 0))
	// -----------------------------------------------------------------------
	env.AddFunction("camera", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		cd := scenedef.CameraData{
			Fovy:   15,
			Aspect: 1,
			Near:   10,
			Far:    100,
			Eye:    geom.V3(13, 2, 20),
			Up:     geom.V3(0, 1, 0),
		}

		for key, dst := range map[string]*float64{
			"fovy": &cd.Fovy, "aspect": &cd.Aspect, "near": &cd.Near, "far": &cd.Far,
		} {
			if v, ok := pa.kw[key]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("camera: %s: %w", key, err)
				}
				*dst = f
			}
		}
		for key, dst := range map[string]*geom.Vec3{
			"eye": &cd.Eye, "target": &cd.Target, "up": &cd.Up,
		} {
			if v, ok := pa.kw[key]; ok {
				vec, err := toVec3(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("camera: %s: %w", key, err)
				}
				*dst = vec
			}
		}

		camName := ""
		if len(pa.positional) > 0 {
			n, err := toString(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("camera: name: %w", err)
			}
			camName = n
		}

		idPath := "camera/" + nextNodeSuffix()
		if camName != "" {
			idPath = "camera/" + camName
		}
		id := scenedef.NewNodeID(idPath)
		g.AddNode(&scenedef.Node{ID: id, Kind: scenedef.NodeCamera, Name: camName, Data: cd})

		return &sexpNodeRef{id: id, name: camName}, nil
	})

	// -----------------------------------------------------------------------
	// (viewport :min-x -0.5 :min-y -0.5 :width 1 :height 1)
	// -----------------------------------------------------------------------
	env.AddFunction("viewport", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		vd := scenedef.ViewportData{MinX: -0.5, MinY: -0.5, Width: 1, Height: 1}

		for key, dst := range map[string]*float64{
			"min-x": &vd.MinX, "min-y": &vd.MinY, "width": &vd.Width, "height": &vd.Height,
		} {
			if v, ok := pa.kw[key]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("viewport: %s: %w", key, err)
				}
				*dst = f
			}
		}

		id := scenedef.NewNodeID("viewport/" + nextNodeSuffix())
		g.AddNode(&scenedef.Node{ID: id, Kind: scenedef.NodeViewport, Data: vd})

		return &sexpNodeRef{id: id}, nil
	})

	// -----------------------------------------------------------------------
	// (cube) (octahedron) (icosahedron)
	// -----------------------------------------------------------------------
	for builtin, kind := range map[string]scenedef.ShapeKind{
		"cube":        scenedef.ShapeCube,
		"octahedron":  scenedef.ShapeOctahedron,
		"icosahedron": scenedef.ShapeIcosahedron,
	} {
		kind := kind
		env.AddFunction(builtin, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 0 {
				return zygo.SexpNull, fmt.Errorf("%s takes no arguments, got %d", name, len(args))
			}
			return &sexpMesh{data: scenedef.MeshData{Source: scenedef.SourceShape, Shape: kind}}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (mesh-file "bunny.off")
	//
	// Note: registered as "mesh_file" because zygomys does not support
	// hyphens in identifiers. The preprocessor converts mesh-file to
	// mesh_file in the source.
	// -----------------------------------------------------------------------
	env.AddFunction("mesh_file", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("mesh-file requires a path argument")
		}
		path, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mesh-file: path: %w", err)
		}
		return &sexpMesh{data: scenedef.MeshData{Source: scenedef.SourceFile, Path: path}}, nil
	})

	// -----------------------------------------------------------------------
	// CSG primitives: (box x y z), (cylinder height radius)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("box requires 3 dimensions, got %d", len(args))
		}
		var dims [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: dimension %d: %w", i, err)
			}
			dims[i] = f
		}
		return &sexpSolid{expr: &scenedef.SolidExpr{Op: scenedef.SolidBox, Args: dims}}, nil
	})

	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("cylinder requires height and radius, got %d arguments", len(args))
		}
		h, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: height: %w", err)
		}
		r, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: radius: %w", err)
		}
		return &sexpSolid{expr: &scenedef.SolidExpr{Op: scenedef.SolidCylinder, Args: [3]float64{h, r, 0}}}, nil
	})

	// -----------------------------------------------------------------------
	// CSG combinators: (union a b), (difference a b), (intersection a b)
	// -----------------------------------------------------------------------
	for builtin, op := range map[string]scenedef.SolidOp{
		"union":        scenedef.SolidUnion,
		"difference":   scenedef.SolidDifference,
		"intersection": scenedef.SolidIntersection,
	} {
		op := op
		env.AddFunction(builtin, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires 2 solids, got %d arguments", name, len(args))
			}
			a, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: first operand: %w", name, err)
			}
			b, err := toSolid(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: second operand: %w", name, err)
			}
			return &sexpSolid{expr: &scenedef.SolidExpr{Op: op, Children: []*scenedef.SolidExpr{a, b}}}, nil
		})
	}

	// -----------------------------------------------------------------------
	// CSG transforms: (move solid x y z), (spin solid x y z)
	// Spin angles are Euler degrees around the X, Y, Z axes.
	// -----------------------------------------------------------------------
	for builtin, op := range map[string]scenedef.SolidOp{
		"move": scenedef.SolidTranslate,
		"spin": scenedef.SolidRotate,
	} {
		op := op
		env.AddFunction(builtin, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 4 {
				return zygo.SexpNull, fmt.Errorf("%s requires a solid and 3 numbers, got %d arguments", name, len(args))
			}
			child, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: solid: %w", name, err)
			}
			var vals [3]float64
			for i, a := range args[1:] {
				f, err := toFloat64(a)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: value %d: %w", name, i, err)
				}
				vals[i] = f
			}
			return &sexpSolid{expr: &scenedef.SolidExpr{
				Op:       op,
				Args:     vals,
				Children: []*scenedef.SolidExpr{child},
			}}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (defmesh "name" (octahedron) :fill "#9cf" :stroke "black" :stroke-width 0.01)
	// -----------------------------------------------------------------------
	env.AddFunction("defmesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("defmesh requires a name and a body expression")
		}

		meshName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defmesh: name: %w", err)
		}

		var md scenedef.MeshData
		switch body := pa.positional[1].(type) {
		case *sexpMesh:
			md = body.data
		case *sexpSolid:
			md = scenedef.MeshData{Source: scenedef.SourceSolid, Solid: body.expr}
		default:
			return zygo.SexpNull, fmt.Errorf("defmesh: expected mesh or solid expression, got %T", pa.positional[1])
		}

		style, err := styleFromKW(pa.kw)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defmesh: %w", err)
		}
		md.Style = style

		id := scenedef.NewNodeID("mesh/" + meshName)
		g.AddNode(&scenedef.Node{ID: id, Kind: scenedef.NodeMesh, Name: meshName, Data: md})

		return &sexpNodeRef{id: id, name: meshName}, nil
	})

	// -----------------------------------------------------------------------
	// (mesh "name")
	// -----------------------------------------------------------------------
	env.AddFunction("mesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("mesh requires a name argument")
		}

		meshName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mesh: name: %w", err)
		}

		n := g.Lookup(meshName)
		if n == nil {
			return zygo.SexpNull, fmt.Errorf("mesh: no mesh named %q", meshName)
		}

		return &sexpNodeRef{id: n.ID, name: meshName}, nil
	})

	// -----------------------------------------------------------------------
	// (place (mesh "gem") :scale 15 :rotate (vec3 0 45 0) :at (vec3 0 0 19))
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("place requires a mesh as first argument")
		}

		childID, err := meshNode(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: mesh: %w", err)
		}

		td := scenedef.TransformData{}
		if v, ok := pa.kw["scale"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: scale: %w", err)
			}
			td.Scale = &f
		}
		if v, ok := pa.kw["rotate"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: rotate: %w", err)
			}
			td.Rotation = &vec
		}
		if v, ok := pa.kw["at"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: at: %w", err)
			}
			td.Translation = &vec
		}

		// Every placement gets its own node, even when the same named
		// mesh is placed more than once. The child name is kept in the
		// path for readable IDs.
		idPath := "place/" + nextNodeSuffix()
		if childNode := g.Get(childID); childNode != nil && childNode.Name != "" {
			idPath = "place/" + childNode.Name + "/" + nextNodeSuffix()
		}
		id := scenedef.NewNodeID(idPath)

		g.AddNode(&scenedef.Node{
			ID:       id,
			Kind:     scenedef.NodeTransform,
			Children: []scenedef.NodeID{childID},
			Data:     td,
		})

		return &sexpNodeRef{id: id}, nil
	})

	// -----------------------------------------------------------------------
	// (scene "name" (place ...) (mesh "gem") (octahedron) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("scene", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("scene requires a name argument")
		}

		sceneName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scene: name: %w", err)
		}

		var children []scenedef.NodeID
		for i := 1; i < len(args); i++ {
			cid, err := meshNode(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("scene: child %d: %w", i, err)
			}
			children = append(children, cid)
		}

		id := scenedef.NewNodeID("scene/" + sceneName)
		g.AddNode(&scenedef.Node{
			ID:       id,
			Kind:     scenedef.NodeGroup,
			Name:     sceneName,
			Children: children,
			Data:     scenedef.GroupData{},
		})

		return &sexpNodeRef{id: id, name: sceneName}, nil
	})

	// -----------------------------------------------------------------------
	// (view :camera cam :scene s :viewport vp)
	// -----------------------------------------------------------------------
	env.AddFunction("view", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		vd := scenedef.ViewData{}

		ref := func(key string) (scenedef.NodeID, error) {
			v, ok := pa.kw[key]
			if !ok {
				return scenedef.ZeroID, nil
			}
			r, ok := v.(*sexpNodeRef)
			if !ok {
				return scenedef.ZeroID, fmt.Errorf("view: %s: expected node reference, got %T (%s)",
					key, v, v.SexpString(nil))
			}
			return r.id, nil
		}

		var err error
		if vd.Camera, err = ref("camera"); err != nil {
			return zygo.SexpNull, err
		}
		if vd.Scene, err = ref("scene"); err != nil {
			return zygo.SexpNull, err
		}
		if vd.Viewport, err = ref("viewport"); err != nil {
			return zygo.SexpNull, err
		}

		id := scenedef.NewNodeID("view/" + nextNodeSuffix())
		g.AddNode(&scenedef.Node{ID: id, Kind: scenedef.NodeView, Data: vd})
		g.AddRoot(id)

		return &sexpNodeRef{id: id}, nil
	})
}
