package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

var wireframeColor = rl.NewColor(100, 100, 100, 200)

// drawWireframe draws the edges of the clipped mesh. Cut edges are left to
// the contour.
func (app *App) drawWireframe(p *preparedMesh) {
	drawn := make(map[[2]rl.Vector3]bool, len(p.triangles)*3)

	for _, t := range p.triangles {
		for i, cut := range t.cutEdges {
			if cut {
				continue
			}
			a, b := t.vertices[i], t.vertices[(i+1)%3]
			if drawn[[2]rl.Vector3{a, b}] || drawn[[2]rl.Vector3{b, a}] {
				continue
			}
			drawn[[2]rl.Vector3{a, b}] = true
			rl.DrawLine3D(a, b, wireframeColor)
		}
	}
}
