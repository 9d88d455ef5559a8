package stl

import (
	"github.com/philipparndt/neurosight/pkg/geometry"
)

// Model is a triangle soup read from an STL file
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates an empty model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle appends a facet, filling in the normal from the winding order when the file left it zero
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	if triangle.Normal == (geometry.Vector3{}) {
		triangle.Normal = triangle.CalculateNormal()
	}
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of facets
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// Bounds returns the axis-aligned box around every vertex
func (m *Model) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}
