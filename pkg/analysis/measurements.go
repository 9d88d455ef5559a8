// Package analysis measures scene graphs in world space.
package analysis

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/neurosight/pkg/geometry"
	"github.com/philipparndt/neurosight/pkg/scene"
)

// EdgeInfo describes one triangle edge in world space
type EdgeInfo struct {
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	Mesh   string
}

// MeasurementResult holds the measurements of a whole scene
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	Volume        float64 // enclosed volume, meaningful for closed meshes only
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
}

// SectionResult measures what survives a set of clip planes
type SectionResult struct {
	Pieces        int     // clipped triangles kept
	KeptArea      float64 // surface area kept
	ContourLength float64 // total length of cut edges
}

// forEachTriangle visits every triangle of root transformed to world space
func forEachTriangle(root *scene.Node, fn func(mesh *scene.Mesh, tri geometry.Triangle)) {
	if root == nil {
		return
	}
	root.WalkMeshes(func(mesh *scene.Mesh, world mgl64.Mat4) {
		if mesh.Geometry == nil {
			return
		}
		for i := range mesh.Geometry.TriangleCount() {
			local := mesh.Geometry.Triangle(i)
			fn(mesh, geometry.NewTriangle(geometry.Vector3{},
				scene.TransformPoint(world, local.V1),
				scene.TransformPoint(world, local.V2),
				scene.TransformPoint(world, local.V3),
			))
		}
	})
}

// AnalyzeModel measures every mesh reachable from root
func AnalyzeModel(root *scene.Node) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox: geometry.NewBoundingBox(),
		AllEdges:    make([]EdgeInfo, 0),
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	signedVolume := 0.0

	forEachTriangle(root, func(mesh *scene.Mesh, t geometry.Triangle) {
		result.TriangleCount++
		result.SurfaceArea += t.Area()
		// Divergence theorem: sum of signed tetrahedra against the origin.
		signedVolume += t.V1.Dot(t.V2.Cross(t.V3)) / 6

		for _, v := range t.Vertices() {
			result.BoundingBox.Extend(v)
		}

		vertices := t.Vertices()
		for i := range vertices {
			start, end := vertices[i], vertices[(i+1)%3]
			length := start.Distance(end)
			result.AllEdges = append(result.AllEdges, EdgeInfo{Start: start, End: end, Length: length, Mesh: mesh.Name})

			totalLength += length
			minLength = min(minLength, length)
			maxLength = max(maxLength, length)
		}
	})

	if result.TriangleCount == 0 {
		return result
	}

	result.Dimensions = result.BoundingBox.Size()
	result.Volume = math.Abs(signedVolume)
	result.EdgeCount = len(result.AllEdges)
	result.MinEdgeLength = minLength
	result.MaxEdgeLength = maxLength
	result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	return result
}

// AnalyzeSection clips every triangle of root against planes and measures the result
func AnalyzeSection(root *scene.Node, planes []geometry.Plane) SectionResult {
	var section SectionResult
	forEachTriangle(root, func(_ *scene.Mesh, t geometry.Triangle) {
		for _, piece := range geometry.ClipTriangle(t, planes) {
			section.Pieces++
			section.KeptArea += geometry.NewTriangle(piece.Normal, piece.Vertices[0], piece.Vertices[1], piece.Vertices[2]).Area()
			for i, cut := range piece.CutEdges {
				if cut {
					section.ContourLength += piece.Vertices[i].Distance(piece.Vertices[(i+1)%3])
				}
			}
		}
	})
	return section
}

// FindLongestEdges returns the count longest edges
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the count shortest edges
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	return edges[:min(max(count, 0), len(edges))]
}
