package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaneKeeps(t *testing.T) {
	p := NewPlane(UnitX, 0.3)

	assert.True(t, p.Keeps(NewVector3(0.5, 0, 0)))
	assert.True(t, p.Keeps(NewVector3(0.3, 9, 9)), "points on the plane are kept")
	assert.False(t, p.Keeps(NewVector3(0.1, 0, 0)))
	assert.InDelta(t, 0.2, p.Margin(NewVector3(0.5, 0, 0)), 1e-12)
}

func TestPlaneInvertedNormal(t *testing.T) {
	p := NewPlane(UnitY.Negate(), -0.4)
	point := NewVector3(0, 0.5, 0)

	assert.InDelta(t, -0.5, p.SignedDistance(point), 1e-12)
	assert.False(t, p.Keeps(point))
	assert.True(t, p.Keeps(NewVector3(0, 0.2, 0)))
}

func TestKeepsAllEmpty(t *testing.T) {
	assert.True(t, KeepsAll(nil, NewVector3(-100, 100, 0)))
}

func TestClipTriangleNoPlanes(t *testing.T) {
	tri := NewTriangle(Vector3{}, NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(0, 1, 0))

	out := ClipTriangle(tri, nil)
	require.Len(t, out, 1)
	assert.Equal(t, tri.Vertices(), out[0].Vertices)
	assert.Equal(t, [3]bool{}, out[0].CutEdges)
	assert.Equal(t, UnitZ, out[0].Normal)
}

func TestClipTriangleFullyOutside(t *testing.T) {
	tri := NewTriangle(Vector3{}, NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(0, 1, 0))
	assert.Empty(t, ClipTriangle(tri, []Plane{NewPlane(UnitX, 2)}))
}

func TestClipTriangleOneInside(t *testing.T) {
	tri := NewTriangle(Vector3{}, NewVector3(0, 0, 0), NewVector3(2, 0, 0), NewVector3(0, 2, 0))

	out := ClipTriangle(tri, []Plane{NewPlane(UnitX, 1)})
	require.Len(t, out, 1)

	for _, v := range out[0].Vertices {
		assert.GreaterOrEqual(t, v.X, 1.0-1e-12)
	}
	// Only the edge between the two new vertices lies on the plane.
	assert.Equal(t, [3]bool{false, true, false}, out[0].CutEdges)
	assert.InDelta(t, 0.5, NewTriangle(Vector3{}, out[0].Vertices[0], out[0].Vertices[1], out[0].Vertices[2]).Area(), 1e-12)
}

func TestClipTriangleTwoInside(t *testing.T) {
	tri := NewTriangle(Vector3{}, NewVector3(0, 0, 0), NewVector3(2, 0, 0), NewVector3(0, 2, 0))

	out := ClipTriangle(tri, []Plane{NewPlane(UnitX.Negate(), -1)})
	require.Len(t, out, 2)

	area := 0.0
	cuts := 0
	for _, piece := range out {
		for _, v := range piece.Vertices {
			assert.LessOrEqual(t, v.X, 1.0+1e-12)
		}
		for _, cut := range piece.CutEdges {
			if cut {
				cuts++
			}
		}
		area += NewTriangle(Vector3{}, piece.Vertices[0], piece.Vertices[1], piece.Vertices[2]).Area()
	}
	assert.Equal(t, 1, cuts)
	assert.InDelta(t, 1.5, area, 1e-12)
}
