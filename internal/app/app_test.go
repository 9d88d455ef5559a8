package app

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/neurosight/pkg/anatomy"
	"github.com/philipparndt/neurosight/pkg/geometry"
	"github.com/philipparndt/neurosight/pkg/isolate"
	"github.com/philipparndt/neurosight/pkg/scene"
	"github.com/philipparndt/neurosight/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testModel is a styled triangle in the xy plane, a styled triangle fully
// above y = 0.5 and an unstyled one
func testModel() *scene.Node {
	cut := geometry.NewTriangle(geometry.Vector3{},
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0))
	high := geometry.NewTriangle(geometry.Vector3{},
		geometry.NewVector3(0, 2, 0), geometry.NewVector3(1, 2, 0), geometry.NewVector3(0, 3, 0))

	cortex := scene.NewMaterial("cortex")
	root := scene.NewNode("brain")

	styled := scene.NewNode("cortex")
	styled.Mesh = scene.NewMesh("cortex", scene.NewGeometry([]geometry.Triangle{cut, high}), cortex)
	root.AddChild(styled)

	bare := scene.NewNode("vessels")
	bare.Mesh = scene.NewMesh("vessels", scene.NewGeometry([]geometry.Triangle{high}), nil)
	root.AddChild(bare)
	return root
}

func area(v [3]rl.Vector3) float64 {
	a := geometry.NewVector3(float64(v[0].X), float64(v[0].Y), float64(v[0].Z))
	b := geometry.NewVector3(float64(v[1].X), float64(v[1].Y), float64(v[1].Z))
	c := geometry.NewVector3(float64(v[2].X), float64(v[2].Y), float64(v[2].Z))
	return b.Sub(a).Cross(c.Sub(a)).Length() / 2
}

func TestPrepareClipsHorizontalSlice(t *testing.T) {
	r := isolate.Isolate(testModel(), anatomy.Resolve(anatomy.Horizontal, -0.4))
	require.Equal(t, 1, r.Isolated)
	require.Equal(t, 1, r.Skipped)

	p := prepare(r, viewer.DefaultLighting())
	assert.Same(t, r, p.source)

	// The cut triangle loses its tip above y = 0.4, the high styled triangle
	// disappears and the unstyled one is drawn whole.
	require.Len(t, p.triangles, 3)
	var kept, unstyled float64
	for _, tri := range p.triangles {
		if tri.vertices[0].Y >= 2 {
			unstyled += area(tri.vertices)
			continue
		}
		kept += area(tri.vertices)
		for _, v := range tri.vertices {
			assert.LessOrEqual(t, v.Y, float32(0.4+1e-6))
		}
		assert.Greater(t, tri.front.R, tri.back.R, "the key light faces the front")
	}
	assert.InDelta(t, 0.5-0.18, kept, 1e-5)
	assert.InDelta(t, 0.5, unstyled, 1e-5)

	require.Len(t, p.contour, 1)
	e := p.contour[0]
	ends := []rl.Vector3{e.v1, e.v2}
	assert.ElementsMatch(t, []rl.Vector3{{X: 0, Y: 0.4, Z: 0}, {X: 0.6, Y: 0.4, Z: 0}}, ends)
}

func TestPrepareWithoutClip(t *testing.T) {
	p := prepare(isolate.Isolate(testModel(), anatomy.Resolve(anatomy.Unknown, 0)), viewer.DefaultLighting())
	assert.Len(t, p.triangles, 3)
	assert.Empty(t, p.contour)

	empty := prepare(nil, viewer.DefaultLighting())
	assert.Empty(t, empty.triangles)
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := newApp(Options{Path: "brain.glb", Config: viewer.DefaultConfig()})
	require.NoError(t, err)
	return app
}

func TestSliceControls(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, anatomy.Sagittal, app.Slice.plane)

	app.setOffset(0.123)
	assert.InDelta(t, 0.12, app.Slice.offset, 1e-9, "snapped to the slider step")

	app.setOffset(3)
	assert.Equal(t, anatomy.OffsetMax, app.Slice.offset)
	app.nudgeOffset(-2.5)
	assert.Equal(t, anatomy.OffsetMin, app.Slice.offset)

	app.setOffset(0.5)
	app.setPlane(anatomy.Sagittal)
	assert.InDelta(t, 0.5, app.Slice.offset, 1e-9, "reselecting the plane keeps the offset")

	app.setPlane(anatomy.Horizontal)
	assert.Equal(t, anatomy.Horizontal, app.Slice.plane)
	assert.Zero(t, app.Slice.offset, "switching planes starts from the center")
	assert.Equal(t, anatomy.Resolve(anatomy.Horizontal, 0), app.clipPlanes())

	app.setPlane(anatomy.Unknown)
	assert.Nil(t, app.clipPlanes())
}

func TestHeatmapControls(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, isolate.NoTint, app.tint())

	app.Slice.intensity = 0.95
	app.nudgeIntensity(0.1)
	assert.True(t, app.Slice.heatmap)
	assert.Equal(t, 1.0, app.Slice.intensity)
	assert.Equal(t, isolate.Heat(1), app.tint())
}

func TestCurrentMeshReusesPreparedMesh(t *testing.T) {
	app := newTestApp(t)
	assert.Nil(t, app.currentMesh(), "nothing staged yet")

	app.Model.staged = viewer.Stage(testModel())
	app.setPlane(anatomy.Horizontal)
	app.setOffset(-0.4)

	first := app.currentMesh()
	require.NotNil(t, first)
	assert.Same(t, first, app.currentMesh(), "an unchanged slice is not clipped again")

	app.setOffset(0.2)
	second := app.currentMesh()
	assert.NotSame(t, first, second)
	assert.Equal(t, isolate.CacheStats{Hits: 1, Misses: 2}, app.Model.cache.Stats())
}
