package render

// Scene is an ordered collection of meshes sharing one coordinate
// space. Meshes may overlap; depth ordering is per mesh, so
// interpenetrating meshes are not guaranteed correct cross-mesh
// occlusion.
type Scene struct {
	Meshes []Mesh
}

// NewScene builds a scene from meshes in draw order.
func NewScene(meshes ...Mesh) Scene {
	return Scene{Meshes: meshes}
}

// View binds one camera, one scene, and one viewport: a single shot of
// the scene contributing one drawing group per mesh to the document.
type View struct {
	Camera   Camera
	Scene    Scene
	Viewport Viewport
}

// NewView pairs a camera and scene with the default viewport.
func NewView(camera Camera, scene Scene) View {
	return View{Camera: camera, Scene: scene, Viewport: DefaultViewport()}
}
