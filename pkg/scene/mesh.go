package scene

import (
	"github.com/philipparndt/neurosight/pkg/geometry"
)

// Geometry is an indexed triangle list. It is treated as read-only once
// built and may be shared between many meshes.
type Geometry struct {
	Positions []geometry.Vector3
	Indices   []uint32
}

// NewGeometry builds an unindexed geometry from a triangle soup
func NewGeometry(triangles []geometry.Triangle) *Geometry {
	g := &Geometry{
		Positions: make([]geometry.Vector3, 0, len(triangles)*3),
		Indices:   make([]uint32, 0, len(triangles)*3),
	}
	for _, t := range triangles {
		for _, v := range t.Vertices() {
			g.Indices = append(g.Indices, uint32(len(g.Positions)))
			g.Positions = append(g.Positions, v)
		}
	}
	return g
}

// TriangleCount returns the number of triangles; indices that do not fill a
// whole triangle are ignored
func (g *Geometry) TriangleCount() int {
	if g == nil {
		return 0
	}
	if len(g.Indices) == 0 {
		return len(g.Positions) / 3
	}
	return len(g.Indices) / 3
}

// Triangle returns the i-th triangle with its face normal
func (g *Geometry) Triangle(i int) geometry.Triangle {
	var a, b, c geometry.Vector3
	if len(g.Indices) == 0 {
		a, b, c = g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]
	} else {
		a = g.Positions[g.Indices[i*3]]
		b = g.Positions[g.Indices[i*3+1]]
		c = g.Positions[g.Indices[i*3+2]]
	}
	t := geometry.NewTriangle(geometry.Vector3{}, a, b, c)
	t.Normal = t.CalculateNormal()
	return t
}

// Bounds returns the local-space bounding box
func (g *Geometry) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	if g == nil {
		return bbox
	}
	for _, p := range g.Positions {
		bbox.Extend(p)
	}
	return bbox
}

// Mesh pairs shared geometry with a material. A nil material means the mesh
// is drawn unstyled and cannot be clipped.
type Mesh struct {
	Name     string
	Geometry *Geometry
	Material *Material
}

// NewMesh creates a mesh
func NewMesh(name string, g *Geometry, m *Material) *Mesh {
	return &Mesh{Name: name, Geometry: g, Material: m}
}
