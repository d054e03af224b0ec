package export

import (
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-spheres/engine/model"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, descriptors ...model.Descriptor) []model.Model {
	t.Helper()
	g := model.NewGenerator(model.WithBands(4, 6))
	models := make([]model.Model, 0, len(descriptors))
	for _, d := range descriptors {
		m, err := g.Generate(d)
		require.NoError(t, err)
		models = append(models, m)
	}
	return models
}

func TestDocumentNoModels(t *testing.T) {
	_, err := Document(nil)
	assert.ErrorIs(t, err, ErrNoModels)
	assert.ErrorIs(t, WriteGLB(filepath.Join(t.TempDir(), "none.glb"), nil), ErrNoModels)
}

func TestDocumentLayout(t *testing.T) {
	models := generate(t,
		model.Descriptor{Offset: [3]float32{-10, 0, 0}, Radius: 5, ID: 0},
		model.Descriptor{Offset: [3]float32{10, 0, 0}, Radius: 5, ID: 1},
	)

	doc, err := Document(models)
	require.NoError(t, err)

	assert.Equal(t, Generator, doc.Asset.Generator)
	require.Len(t, doc.Meshes, 2)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, []int{0, 1}, doc.Scenes[0].Nodes)

	for i, mesh := range doc.Meshes {
		assert.Equal(t, models[i].Name(), mesh.Name)
		require.Len(t, mesh.Primitives, 1)
		prim := mesh.Primitives[0]
		require.NotNil(t, prim.Indices)

		indices := doc.Accessors[*prim.Indices]
		assert.Equal(t, models[i].IndexCount(), indices.Count)

		positions := doc.Accessors[prim.Attributes[gltf.POSITION]]
		assert.Equal(t, models[i].VertexCount(), positions.Count)
		assert.Equal(t, gltf.AccessorVec3, positions.Type)

		colors := doc.Accessors[prim.Attributes[gltf.COLOR_0]]
		assert.Equal(t, models[i].VertexCount(), colors.Count)
	}
}

func TestWriteGLBRoundTrip(t *testing.T) {
	models := generate(t, model.Descriptor{Offset: [3]float32{1, 2, 3}, Radius: 2, ID: 4})
	path := filepath.Join(t.TempDir(), "spheres.glb")

	require.NoError(t, WriteGLB(path, models))

	doc, err := gltf.Open(path)
	require.NoError(t, err)
	require.Len(t, doc.Meshes, 1)
	prim := doc.Meshes[0].Primitives[0]

	positions, err := modeler.ReadPosition(doc, doc.Accessors[prim.Attributes[gltf.POSITION]], nil)
	require.NoError(t, err)
	assert.Equal(t, models[0].Positions(), positions)

	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	require.NoError(t, err)
	require.Len(t, indices, models[0].IndexCount())
	for i, idx := range models[0].Indices() {
		assert.Equal(t, uint32(idx), indices[i])
	}
}

func TestToRGBA8(t *testing.T) {
	got := toRGBA8([]model.Color{{1, 0, 0.5, 1}, {-1, 2, 0, 0}})
	assert.Equal(t, [][4]uint8{{255, 0, 128, 255}, {0, 255, 0, 0}}, got)
}
