package export

import (
	"errors"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-spheres/engine/model"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrNoModels is returned when there is nothing to export.
var ErrNoModels = errors.New("export: no models")

// Generator is written into the asset metadata of exported documents.
const Generator = "oxy-spheres"

// Document builds a glTF document with one mesh and one root node per model. Each mesh has a
// single indexed triangle primitive carrying POSITION, COLOR_0 and uint16 indices.
//
// Parameters:
//   - models: the generated sphere models
//
// Returns:
//   - *gltf.Document: the document, with all data in its single buffer
//   - error: ErrNoModels when models is empty
func Document(models []model.Model) (*gltf.Document, error) {
	if len(models) == 0 {
		return nil, ErrNoModels
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = Generator

	for _, m := range models {
		if m.VertexCount() == 0 || m.IndexCount() == 0 {
			return nil, fmt.Errorf("export %s: empty mesh", m.Name())
		}

		positions := modeler.WritePosition(doc, m.Positions())
		colors := modeler.WriteColor(doc, toRGBA8(m.Colors()))
		indices := modeler.WriteIndices(doc, m.Indices())

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: m.Name(),
			Primitives: []*gltf.Primitive{{
				Indices: gltf.Index(indices),
				Mode:    gltf.PrimitiveTriangles,
				Attributes: map[string]int{
					gltf.POSITION: positions,
					gltf.COLOR_0:  colors,
				},
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: m.Name(),
			Mesh: gltf.Index(len(doc.Meshes) - 1),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}
	return doc, nil
}

// WriteGLB exports the models to a binary glTF file.
//
// Parameters:
//   - path: the destination .glb path
//   - models: the generated sphere models
//
// Returns:
//   - error: ErrNoModels, or a wrapped write error
func WriteGLB(path string, models []model.Model) error {
	doc, err := Document(models)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	log.Printf("[Export] wrote %d meshes to %s", len(doc.Meshes), path)
	return nil
}

// toRGBA8 quantizes linear float colors to normalized bytes.
func toRGBA8(colors []model.Color) [][4]uint8 {
	out := make([][4]uint8, len(colors))
	for i, c := range colors {
		for j, v := range c {
			v = min(max(v, 0), 1)
			out[i][j] = uint8(v*255 + 0.5)
		}
	}
	return out
}
