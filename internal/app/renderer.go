package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/neurosight/pkg/geometry"
	"github.com/philipparndt/neurosight/pkg/isolate"
	"github.com/philipparndt/neurosight/pkg/scene"
	"github.com/philipparndt/neurosight/pkg/viewer"
)

var unstyledColor = scene.Hex(0x9e9e9e)

// shadedTriangle is one clipped piece in world space with baked lighting
// for both of its faces
type shadedTriangle struct {
	vertices [3]rl.Vector3
	front    rl.Color
	back     rl.Color
	cutEdges [3]bool
}

// cutEdge is a segment of the cross-section contour
type cutEdge struct {
	v1, v2 rl.Vector3
}

// preparedMesh is a renderable clipped on the CPU and ready to draw
type preparedMesh struct {
	source    *isolate.Renderable
	triangles []shadedTriangle
	contour   []cutEdge
}

// prepare clips every mesh of r against its material's planes and bakes
// lighting. Lights do not move with the camera so the result holds until the
// renderable changes.
func prepare(r *isolate.Renderable, lighting viewer.Lighting) *preparedMesh {
	p := &preparedMesh{source: r}
	if r == nil || r.Root == nil {
		return p
	}

	r.Root.WalkMeshes(func(mesh *scene.Mesh, world mgl64.Mat4) {
		if mesh.Geometry == nil {
			return
		}
		base := unstyledColor
		metalness := 0.0
		var clip []geometry.Plane
		if m := mesh.Material; m != nil {
			base = m.Color
			metalness = m.Metalness
			clip = m.ClipPlanes
		}

		for i := range mesh.Geometry.TriangleCount() {
			local := mesh.Geometry.Triangle(i)
			tri := geometry.NewTriangle(geometry.Vector3{},
				scene.TransformPoint(world, local.V1),
				scene.TransformPoint(world, local.V2),
				scene.TransformPoint(world, local.V3),
			)
			normal := tri.CalculateNormal()
			if !normal.IsFinite() || normal == (geometry.Vector3{}) {
				continue
			}

			front := shade(base, lighting.Irradiance(normal)*(1-metalness))
			back := shade(base, lighting.Irradiance(normal.Negate())*(1-metalness))

			for _, piece := range geometry.ClipTriangle(tri, clip) {
				st := shadedTriangle{front: front, back: back, cutEdges: piece.CutEdges}
				for k, v := range piece.Vertices {
					st.vertices[k] = toRaylib(v)
				}
				p.triangles = append(p.triangles, st)
				for k, cut := range piece.CutEdges {
					if cut {
						p.contour = append(p.contour, cutEdge{v1: st.vertices[k], v2: st.vertices[(k+1)%3]})
					}
				}
			}
		}
	})
	return p
}

func shade(c scene.Color, irradiance float64) rl.Color {
	rgba := c.Scale(irradiance).RGBA(1)
	return rl.NewColor(rgba.R, rgba.G, rgba.B, rgba.A)
}

// currentMesh returns the prepared mesh for the current slice, isolating and
// clipping again only when the cache hands out a new renderable
func (app *App) currentMesh() *preparedMesh {
	if app.Model.staged == nil {
		return nil
	}
	r := app.Model.cache.Get(app.Model.staged, app.clipPlanes(), app.tint())
	if app.Model.prepared == nil || app.Model.prepared.source != r {
		app.Model.prepared = prepare(r, viewer.DefaultLighting())
	}
	return app.Model.prepared
}

// drawModel draws both faces of every piece since isolated materials are double sided
func (app *App) drawModel(p *preparedMesh) {
	for _, t := range p.triangles {
		rl.DrawTriangle3D(t.vertices[0], t.vertices[1], t.vertices[2], t.front)
		rl.DrawTriangle3D(t.vertices[0], t.vertices[2], t.vertices[1], t.back)
	}
}

// drawContour outlines the cross-section in the color of the active plane
func (app *App) drawContour(p *preparedMesh) {
	color := planeColors[app.Slice.plane]
	for _, e := range p.contour {
		rl.DrawLine3D(e.v1, e.v2, color)
	}
}
