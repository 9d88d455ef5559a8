package viewer

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/neurosight/pkg/geometry"
	"github.com/philipparndt/neurosight/pkg/scene"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ModelScale is applied to the loaded model before it is drawn
const ModelScale = 1.2

// Stage wraps a loaded model in the scaled root every view draws
func Stage(model *scene.Node) *scene.Node {
	if model == nil {
		return nil
	}
	return scene.Wrap("stage", model, scene.UniformScale(ModelScale))
}

// DirectionalLight shines from Position towards the origin
type DirectionalLight struct {
	Position  geometry.Vector3
	Intensity float64
}

// Lighting is an ambient term plus directional lights
type Lighting struct {
	Ambient     float64
	Directional []DirectionalLight
}

// DefaultLighting is a bright key light with a dim fill from below
func DefaultLighting() Lighting {
	return Lighting{
		Ambient: 0.6,
		Directional: []DirectionalLight{
			{Position: geometry.NewVector3(5, 5, 5), Intensity: 1.2},
			{Position: geometry.NewVector3(-5, -5, -2), Intensity: 0.4},
		},
	}
}

// Irradiance returns the light arriving at a surface with the given normal
func (l Lighting) Irradiance(normal geometry.Vector3) float64 {
	total := l.Ambient
	for _, light := range l.Directional {
		total += light.Intensity * max(0, normal.Dot(light.Position.Normalize()))
	}
	return total
}

var unstyledColor = scene.Hex(0x9e9e9e)

// Renderer draws a scene into an image on the CPU. It honours each
// material's clip planes and side, so cut surfaces show their interior.
type Renderer struct {
	Background   color.RGBA
	SectionColor color.RGBA
	Lighting     Lighting

	// Label is stamped in the top-left corner when not empty.
	Label string
}

// NewRenderer returns a renderer with the default lights on a dark background
func NewRenderer() *Renderer {
	return &Renderer{
		Background:   color.RGBA{R: 20, G: 22, B: 28, A: 255},
		SectionColor: color.RGBA{R: 60, G: 60, B: 60, A: 255},
		Lighting:     DefaultLighting(),
	}
}

// Render draws root as seen by camera. A nil root yields an empty frame.
func (r *Renderer) Render(root *scene.Node, camera *Camera, width, height int) *image.RGBA {
	f := newFrame(width, height, r.Background)
	projector := camera.Projector(width, height)

	root.WalkMeshes(func(mesh *scene.Mesh, world mgl64.Mat4) {
		if mesh.Geometry == nil {
			return
		}
		for i := 0; i < mesh.Geometry.TriangleCount(); i++ {
			r.drawTriangle(f, projector, camera.Position, mesh.Geometry.Triangle(i), world, mesh.Material)
		}
	})

	if r.Label != "" {
		r.drawLabel(f.img)
	}
	return f.img
}

func (r *Renderer) drawTriangle(f *frame, p Projector, eye geometry.Vector3, local geometry.Triangle, world mgl64.Mat4, m *scene.Material) {
	tri := geometry.NewTriangle(geometry.Vector3{},
		scene.TransformPoint(world, local.V1),
		scene.TransformPoint(world, local.V2),
		scene.TransformPoint(world, local.V3),
	)
	normal := tri.CalculateNormal()
	if !normal.IsFinite() || normal == (geometry.Vector3{}) {
		return
	}

	base := unstyledColor
	side := scene.FrontSide
	metalness := 0.0
	var clip []geometry.Plane
	if m != nil {
		base = m.Color
		side = m.Side
		metalness = m.Metalness
		clip = m.ClipPlanes
	}

	facing := normal.Dot(eye.Sub(tri.Center())) >= 0
	switch {
	case !facing && side == scene.FrontSide:
		return
	case facing && side == scene.BackSide:
		return
	case !facing:
		normal = normal.Negate()
	}

	shade := base.Scale(r.Lighting.Irradiance(normal) * (1 - metalness))
	col := shade.RGBA(1)

	for _, piece := range geometry.ClipTriangle(tri, clip) {
		var sv [3]screenVertex
		visible := true
		for i, v := range piece.Vertices {
			x, y, z, ok := p.Project(v)
			if !ok {
				visible = false
				break
			}
			sv[i] = screenVertex{x: x, y: y, z: z}
		}
		if !visible {
			continue
		}

		f.fillTriangle(sv[0], sv[1], sv[2], col)
		for i, cut := range piece.CutEdges {
			if cut {
				f.drawLine(sv[i], sv[(i+1)%3], 1e-3, r.SectionColor)
			}
		}
	}
}

func (r *Renderer) drawLabel(img *image.RGBA) {
	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Ceil()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 230, G: 230, B: 230, A: 255}),
		Face: face,
		Dot:  fixed.P(8, 8+ascent),
	}
	d.DrawString(r.Label)
}
