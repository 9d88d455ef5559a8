package viewer

import (
	"image"
	"image/color"
	"testing"

	"github.com/philipparndt/neurosight/pkg/anatomy"
	"github.com/philipparndt/neurosight/pkg/geometry"
	"github.com/philipparndt/neurosight/pkg/isolate"
	"github.com/philipparndt/neurosight/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wall is a square facing +Z spanning [-1, 1] in X and Y
func wall() *scene.Node {
	g := &scene.Geometry{
		Positions: []geometry.Vector3{
			geometry.NewVector3(-1, -1, 0),
			geometry.NewVector3(1, -1, 0),
			geometry.NewVector3(1, 1, 0),
			geometry.NewVector3(-1, 1, 0),
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	n := scene.NewNode("wall")
	n.Mesh = scene.NewMesh("wall", g, scene.NewMaterial("white"))
	return n
}

func frontCamera() *Camera {
	c := NewCamera(geometry.NewVector3(0, 0, 4), DefaultFOV)
	c.LookAt(geometry.Vector3{})
	return c
}

func covered(img *image.RGBA, bg color.RGBA, x0, x1 int) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := x0; x < x1; x++ {
			if img.RGBAAt(x, y) != bg {
				n++
			}
		}
	}
	return n
}

func TestRenderDrawsModel(t *testing.T) {
	r := NewRenderer()
	img := r.Render(wall(), frontCamera(), 64, 64)

	require.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())
	assert.NotEqual(t, r.Background, img.RGBAAt(32, 32))
	assert.Equal(t, r.Background, img.RGBAAt(0, 0))
}

func TestRenderHonoursClip(t *testing.T) {
	r := NewRenderer()
	clipped := isolate.Isolate(wall(), anatomy.Resolve(anatomy.Sagittal, 0))
	img := r.Render(clipped.Root, frontCamera(), 64, 64)

	assert.Zero(t, covered(img, r.Background, 0, 30), "left half is clipped away")
	assert.Positive(t, covered(img, r.Background, 34, 64))
}

func TestRenderCullsBackFaces(t *testing.T) {
	r := NewRenderer()
	camera := NewCamera(geometry.NewVector3(0, 0, -4), DefaultFOV)
	camera.LookAt(geometry.Vector3{})

	img := r.Render(wall(), camera, 32, 32)
	assert.Equal(t, r.Background, img.RGBAAt(16, 16), "front-sided material hides its back")

	isolated := isolate.Isolate(wall(), nil)
	img = r.Render(isolated.Root, camera, 32, 32)
	assert.NotEqual(t, r.Background, img.RGBAAt(16, 16), "isolated materials are double sided")
}

func TestRenderNilRoot(t *testing.T) {
	r := NewRenderer()
	img := r.Render(nil, frontCamera(), 16, 16)
	assert.Zero(t, covered(img, r.Background, 0, 16))
}

func TestRenderLabel(t *testing.T) {
	r := NewRenderer()
	r.Label = "sagittal +0.30"
	img := r.Render(nil, frontCamera(), 160, 40)
	assert.Positive(t, covered(img, r.Background, 0, 160))
}

func TestLightingIrradiance(t *testing.T) {
	l := DefaultLighting()
	assert.InDelta(t, 0.6, l.Irradiance(geometry.NewVector3(0, 0, 0)), 1e-12)

	towardKey := geometry.NewVector3(1, 1, 1).Normalize()
	assert.Greater(t, l.Irradiance(towardKey), 1.7)
}

func TestStage(t *testing.T) {
	assert.Nil(t, Stage(nil))

	staged := Stage(wall())
	bbox := staged.Bounds()
	assert.InDelta(t, ModelScale, bbox.Max.X, 1e-12)
}
