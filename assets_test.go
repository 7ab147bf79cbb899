package swirl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssetServer() *AssetServer {
	app := NewApp()
	app.UseModules(AssetServerModule{})
	return resource[AssetServer](app)
}

func TestAssetServer_MeshRoundTrip(t *testing.T) {
	server := newTestAssetServer()
	require.NotNil(t, server)

	id := server.AddMesh(MeshAsset{
		Vertices:        []quadVertex{{pos: [2]float32{1, 1}}},
		TriangleIndices: []uint16{0, 1, 3, 1, 2, 3},
		LineIndices:     []uint16{0, 1, 1, 2, 2, 3, 3, 0},
	})
	require.NotEmpty(t, id)

	mesh, ok := server.Mesh(id)
	require.True(t, ok)
	assert.Len(t, mesh.TriangleIndices, 6)
	assert.Len(t, mesh.LineIndices, 8)
}

func TestAssetServer_ShaderRoundTrip(t *testing.T) {
	server := newTestAssetServer()

	id := server.AddShader(ShaderAsset{Name: "shape_rectangle", Listing: rectangleWGSL})

	shader, ok := server.Shader(id)
	require.True(t, ok)
	assert.Equal(t, "shape_rectangle", shader.Name)
	assert.Contains(t, shader.Listing, "vs_main")
	assert.Contains(t, shader.Listing, "fs_main")
}

func TestAssetServer_UnknownId(t *testing.T) {
	server := newTestAssetServer()

	_, ok := server.Mesh("missing")
	assert.False(t, ok)
	_, ok = server.Shader("missing")
	assert.False(t, ok)
}

func TestAssetServer_IdsAreUnique(t *testing.T) {
	server := newTestAssetServer()

	seen := make(map[AssetId]bool)
	for i := 0; i < 100; i++ {
		id := server.AddShader(ShaderAsset{Name: "s"})
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestEmbeddedShaders(t *testing.T) {
	for name, listing := range map[string]string{
		"rectangle": rectangleWGSL,
		"circle":    circleWGSL,
	} {
		assert.Contains(t, listing, "@vertex", name)
		assert.Contains(t, listing, "@fragment", name)
		assert.Contains(t, listing, "projection", name)
	}
	// Only the circle shader needs the resolution to reconstruct world
	// coordinates per fragment.
	assert.Contains(t, circleWGSL, "discard")
}
