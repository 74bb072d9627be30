// Command hedron renders 3D triangle meshes to SVG documents using a
// pinhole camera, painter's algorithm depth ordering, and back-face
// culling. Scenes come from a Lisp scene script, an OFF mesh file, or
// one of the built-in polyhedra.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chazu/hedron/pkg/compose"
	"github.com/chazu/hedron/pkg/config"
	"github.com/chazu/hedron/pkg/engine"
	"github.com/chazu/hedron/pkg/geom"
	"github.com/chazu/hedron/pkg/kernel/sdfx"
	"github.com/chazu/hedron/pkg/render"
	"github.com/chazu/hedron/pkg/scenedef"
	"github.com/chazu/hedron/pkg/svgdoc"
)

func main() {
	var (
		scenePath  = flag.String("scene", "", "Lisp scene script to evaluate")
		shapeName  = flag.String("shape", "", "render a built-in shape: cube, octahedron, or icosahedron")
		meshPath   = flag.String("mesh", "", "render a triangular OFF mesh file")
		configPath = flag.String("config", "", "TOML settings file")
		outPath    = flag.String("out", "out.svg", "output SVG path")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	g, err := buildGraph(*scenePath, *shapeName, *meshPath)
	if err != nil {
		log.Fatal(err)
	}

	issues := scenedef.Validate(g)
	for _, issue := range issues {
		if issue.Severity == scenedef.SeverityWarning {
			log.Printf("warning: %s", issue.Error())
		}
	}
	if errs := scenedef.Errors(issues); len(errs) > 0 {
		for _, e := range errs {
			log.Printf("error: %s", e.Error())
		}
		log.Fatalf("scene has %d error(s)", len(errs))
	}

	k := sdfx.NewWithCells(cfg.Kernel.Cells)
	views, err := compose.Compose(g, k)
	if err != nil {
		log.Fatal(err)
	}

	eng := render.NewEngine(views...)
	eng.Width = cfg.Output.Width
	eng.Height = cfg.Output.Height
	eng.ViewBox = svgdoc.ViewBox{
		MinX:   cfg.Output.MinX,
		MinY:   cfg.Output.MinY,
		Width:  cfg.Output.ViewWidth,
		Height: cfg.Output.ViewHeight,
	}
	eng.Style = render.Style{
		Fill:           cfg.Style.Fill,
		FillOpacity:    cfg.Style.FillOpacity,
		Stroke:         cfg.Style.Stroke,
		StrokeLinejoin: cfg.Style.StrokeLinejoin,
		StrokeWidth:    cfg.Style.StrokeWidth,
	}

	doc := eng.Render()
	if err := doc.WriteFile(*outPath); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%d polygons)", *outPath, doc.PolygonCount())
}

// buildGraph produces a scene graph from whichever source flag was
// given. Exactly one of scene, shape, or mesh must be set.
func buildGraph(scenePath, shapeName, meshPath string) (*scenedef.Graph, error) {
	set := 0
	for _, s := range []string{scenePath, shapeName, meshPath} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of -scene, -shape, or -mesh is required")
	}

	if scenePath != "" {
		source, err := os.ReadFile(scenePath)
		if err != nil {
			return nil, fmt.Errorf("reading scene script: %w", err)
		}
		eng := engine.NewEngine()
		g, evalErrs, err := eng.Evaluate(string(source))
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", scenePath, err)
		}
		if len(evalErrs) > 0 {
			for _, e := range evalErrs {
				log.Printf("%s: %s", scenePath, e.Error())
			}
			return nil, fmt.Errorf("scene script has %d error(s)", len(evalErrs))
		}
		return g, nil
	}

	if shapeName != "" {
		var kind scenedef.ShapeKind
		switch shapeName {
		case "cube":
			kind = scenedef.ShapeCube
		case "octahedron":
			kind = scenedef.ShapeOctahedron
		case "icosahedron":
			kind = scenedef.ShapeIcosahedron
		default:
			return nil, fmt.Errorf("unknown shape %q, expected cube, octahedron, or icosahedron", shapeName)
		}
		md := scenedef.MeshData{Source: scenedef.SourceShape, Shape: kind}
		// The unit polyhedra are tiny relative to the demo camera
		// distance; scale them up the same way the scene DSL would.
		scale := 15.0
		return demoGraph(md, &scale), nil
	}

	md := scenedef.MeshData{Source: scenedef.SourceFile, Path: meshPath}
	return demoGraph(md, nil), nil
}

// demoGraph wraps a single mesh in the standard demo view: a narrow
// 15 degree lens looking at the origin from (13, 2, 20).
func demoGraph(md scenedef.MeshData, scale *float64) *scenedef.Graph {
	g := scenedef.New()

	camID := scenedef.NewNodeID("camera/demo")
	g.AddNode(&scenedef.Node{
		ID:   camID,
		Kind: scenedef.NodeCamera,
		Data: scenedef.CameraData{
			Fovy:   15,
			Aspect: 1,
			Near:   10,
			Far:    100,
			Eye:    geom.V3(13, 2, 20),
			Target: geom.V3(0, 0, 0),
			Up:     geom.V3(0, 1, 0),
		},
	})

	meshID := scenedef.NewNodeID("mesh/demo")
	g.AddNode(&scenedef.Node{ID: meshID, Kind: scenedef.NodeMesh, Data: md})

	sceneChild := meshID
	if scale != nil {
		placeID := scenedef.NewNodeID("place/demo")
		g.AddNode(&scenedef.Node{
			ID:       placeID,
			Kind:     scenedef.NodeTransform,
			Children: []scenedef.NodeID{meshID},
			Data:     scenedef.TransformData{Scale: scale},
		})
		sceneChild = placeID
	}

	sceneID := scenedef.NewNodeID("scene/demo")
	g.AddNode(&scenedef.Node{
		ID:       sceneID,
		Kind:     scenedef.NodeGroup,
		Children: []scenedef.NodeID{sceneChild},
		Data:     scenedef.GroupData{},
	})

	viewID := scenedef.NewNodeID("view/demo")
	g.AddNode(&scenedef.Node{
		ID:   viewID,
		Kind: scenedef.NodeView,
		Data: scenedef.ViewData{Camera: camID, Scene: sceneID},
	})
	g.AddRoot(viewID)

	return g
}
