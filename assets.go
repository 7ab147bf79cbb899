package swirl

import (
	"github.com/google/uuid"
)

type AssetId string

// MeshAsset is a small piece of static geometry. Vertices holds a slice of
// the renderer's vertex struct; the two index sets cover filled (triangle
// list) and wireframe (line list) drawing of the same vertices.
type MeshAsset struct {
	Vertices        any
	TriangleIndices []uint16
	LineIndices     []uint16
}

// ShaderAsset is a WGSL listing registered under a stable id. Listings are
// compiled into pipelines by the renderer; the server never touches the GPU.
type ShaderAsset struct {
	Name    string
	Listing string
}

type AssetServer struct {
	meshes  map[AssetId]MeshAsset
	shaders map[AssetId]ShaderAsset
}

type AssetServerModule struct{}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&AssetServer{
		meshes:  make(map[AssetId]MeshAsset),
		shaders: make(map[AssetId]ShaderAsset),
	})
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

func (s *AssetServer) AddMesh(mesh MeshAsset) AssetId {
	id := makeAssetId()
	s.meshes[id] = mesh
	return id
}

func (s *AssetServer) AddShader(shader ShaderAsset) AssetId {
	id := makeAssetId()
	s.shaders[id] = shader
	return id
}

func (s *AssetServer) Mesh(id AssetId) (MeshAsset, bool) {
	mesh, ok := s.meshes[id]
	return mesh, ok
}

func (s *AssetServer) Shader(id AssetId) (ShaderAsset, bool) {
	shader, ok := s.shaders[id]
	return shader, ok
}
