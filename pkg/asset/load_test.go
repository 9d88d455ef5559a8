package asset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/neurosight/pkg/anatomy"
	"github.com/philipparndt/neurosight/pkg/geometry"
	"github.com/philipparndt/neurosight/pkg/isolate"
	"github.com/philipparndt/neurosight/pkg/scene"
	"github.com/philipparndt/neurosight/pkg/stl"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSTL(t *testing.T, dir string) string {
	t.Helper()
	model := stl.NewModel("cube corner")
	model.AddTriangle(geometry.NewTriangle(geometry.Vector3{},
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(10, 0, 0), geometry.NewVector3(0, 10, 0)))
	model.AddTriangle(geometry.NewTriangle(geometry.Vector3{},
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(0, 0, 10), geometry.NewVector3(10, 0, 0)))

	path := filepath.Join(dir, "corner.stl")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, stl.WriteBinary(f, model))
	return path
}

// writeGLB saves two hemispheres sharing one material plus an unstyled mesh
func writeGLB(t *testing.T, dir string) string {
	t.Helper()
	doc := gltf.NewDocument()

	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 1, 3, 2})

	doc.Materials = []*gltf.Material{{
		Name:        "cortex",
		DoubleSided: true,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{0.8, 0.6, 0.6, 1},
		},
	}}
	doc.Meshes = []*gltf.Mesh{
		{Name: "hemisphere", Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
			Material:   gltf.Index(0),
		}}},
		{Name: "vessels", Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
		}}},
	}
	doc.Nodes = []*gltf.Node{
		{Name: "brain", Children: []int{1, 2, 3}},
		{Name: "left", Mesh: gltf.Index(0), Translation: [3]float64{-1, 0, 0}},
		{Name: "right", Mesh: gltf.Index(0), Translation: [3]float64{1, 0, 0}},
		{Name: "vessels", Mesh: gltf.Index(1)},
	}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(dir, "brain.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestLoadSTLFitsUnitCube(t *testing.T) {
	root, err := Load(writeSTL(t, t.TempDir()))
	require.NoError(t, err)

	stats := root.Stats()
	assert.Equal(t, 1, stats.Meshes)
	assert.Equal(t, 2, stats.Triangles)
	assert.Zero(t, stats.Unstyled)

	bbox := root.Bounds()
	assert.True(t, bbox.Min.ApproxEqual(geometry.NewVector3(-1, -1, -1), 1e-6), "min %v", bbox.Min)
	assert.True(t, bbox.Max.ApproxEqual(geometry.NewVector3(1, 1, 1), 1e-6), "max %v", bbox.Max)
}

func TestLoadGLB(t *testing.T) {
	root, err := Load(writeGLB(t, t.TempDir()))
	require.NoError(t, err)

	require.Len(t, root.Children, 1)
	brain := root.Children[0]
	assert.Equal(t, "brain", brain.Name)
	require.Len(t, brain.Children, 3)

	stats := root.Stats()
	assert.Equal(t, 3, stats.Meshes)
	assert.Equal(t, 6, stats.Triangles)
	assert.Zero(t, stats.Unstyled)

	vessels := brain.Children[2].Mesh
	require.NotNil(t, vessels.Material)
	assert.Equal(t, DefaultMaterialName, vessels.Material.Name)

	left, right := brain.Children[0].Mesh, brain.Children[1].Mesh
	require.NotNil(t, left.Material)
	assert.Same(t, left.Material, right.Material, "glTF materials are shared between meshes")
	assert.Equal(t, "cortex", left.Material.Name)
	assert.Equal(t, scene.DoubleSide, left.Material.Side)
	assert.InDelta(t, 0.8, left.Material.Color.R, 1e-9)
	assert.InDelta(t, 1.0, left.Material.Roughness, 1e-9)

	bbox := root.Bounds()
	assert.True(t, bbox.Min.ApproxEqual(geometry.NewVector3(-1, 0, 0), 1e-6), "min %v", bbox.Min)
	assert.True(t, bbox.Max.ApproxEqual(geometry.NewVector3(2, 1, 0), 1e-6), "max %v", bbox.Max)
}

func saveGLB(t *testing.T, doc *gltf.Document) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestLoadGLBWithoutMaterialsIsClipped(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{-1, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	doc.Meshes = []*gltf.Mesh{
		{Name: "a", Primitives: []*gltf.Primitive{{Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos}}}},
		{Name: "b", Primitives: []*gltf.Primitive{{Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos}}}},
	}
	doc.Nodes = []*gltf.Node{{Name: "a", Mesh: gltf.Index(0)}, {Name: "b", Mesh: gltf.Index(1)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0, 1)

	root, err := Load(saveGLB(t, doc))
	require.NoError(t, err)

	a, b := root.Children[0].Mesh, root.Children[1].Mesh
	require.NotNil(t, a.Material)
	assert.Same(t, a.Material, b.Material, "one default material per document")

	r := isolate.Isolate(root, anatomy.Resolve(anatomy.Sagittal, 0.3))
	assert.Zero(t, r.Skipped)
	assert.Equal(t, 2, r.Isolated)
	for _, m := range r.Materials() {
		assert.Equal(t, anatomy.Resolve(anatomy.Sagittal, 0.3), m.ClipPlanes)
	}
}

func TestLoadGLBIgnoresChildCycles(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Nodes = []*gltf.Node{
		{Name: "a", Children: []int{1}},
		{Name: "b", Children: []int{0, 1, 7}},
	}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0, 0)

	root, err := Load(saveGLB(t, doc))
	require.NoError(t, err)

	require.Len(t, root.Children, 1)
	a := root.Children[0]
	require.Len(t, a.Children, 1)
	assert.Equal(t, "b", a.Children[0].Name)
	assert.Empty(t, a.Children[0].Children)
	assert.Equal(t, 3, root.Stats().Nodes)
}

func TestLoadGLBSkipsBrokenAccessors(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	doc.Meshes = []*gltf.Mesh{{Name: "brain", Primitives: []*gltf.Primitive{
		{Attributes: gltf.PrimitiveAttributes{gltf.POSITION: 42}},
		{Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos}, Indices: gltf.Index(42)},
		{Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos}},
	}}}
	doc.Nodes = []*gltf.Node{{Name: "brain", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	root, err := Load(saveGLB(t, doc))
	require.NoError(t, err)

	stats := root.Stats()
	assert.Equal(t, 1, stats.Meshes)
	assert.Equal(t, 1, stats.Triangles)
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load("brain.obj")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.glb"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}
