package geometry

// ClippedTriangle is a triangle produced by clipping against planes.
// CutEdges[i] marks the edge from vertex i to vertex (i+1)%3 as lying on a
// clip plane, which is where the exposed cross-section contour runs.
type ClippedTriangle struct {
	Vertices [3]Vector3
	CutEdges [3]bool
	Normal   Vector3

	onPlane [3]int // clip plane index each vertex was created on, -1 for original vertices
}

// NewClippedTriangle wraps an unclipped triangle
func NewClippedTriangle(t Triangle) ClippedTriangle {
	normal := t.Normal
	if normal == (Vector3{}) {
		normal = t.CalculateNormal()
	}
	return ClippedTriangle{
		Vertices: t.Vertices(),
		Normal:   normal,
		onPlane:  [3]int{-1, -1, -1},
	}
}

// ClipTriangle clips t against every plane in order and returns the surviving pieces.
// With no planes the triangle is returned unchanged.
func ClipTriangle(t Triangle, planes []Plane) []ClippedTriangle {
	triangles := []ClippedTriangle{NewClippedTriangle(t)}
	for i, plane := range planes {
		next := make([]ClippedTriangle, 0, len(triangles))
		for _, tri := range triangles {
			next = append(next, clipAgainstPlane(tri, plane, i)...)
		}
		triangles = next
		if len(triangles) == 0 {
			break
		}
	}
	return triangles
}

func clipAgainstPlane(tri ClippedTriangle, plane Plane, planeIndex int) []ClippedTriangle {
	var margins [3]float64
	inside := [3]bool{}
	insideCount := 0
	for i, v := range tri.Vertices {
		margins[i] = plane.Margin(v)
		inside[i] = margins[i] >= 0
		if inside[i] {
			insideCount++
		}
	}

	switch insideCount {
	case 3:
		return []ClippedTriangle{tri}
	case 0:
		return nil
	}

	intersect := func(a, b int) Vector3 {
		t := margins[a] / (margins[a] - margins[b])
		return tri.Vertices[a].Lerp(tri.Vertices[b], t)
	}

	if insideCount == 1 {
		in := 0
		for i := range inside {
			if inside[i] {
				in = i
				break
			}
		}
		b, c := (in+1)%3, (in+2)%3

		out := ClippedTriangle{
			Vertices: [3]Vector3{tri.Vertices[in], intersect(in, b), intersect(in, c)},
			Normal:   tri.Normal,
			onPlane:  [3]int{tri.onPlane[in], planeIndex, planeIndex},
		}
		out.markCutEdges()
		return []ClippedTriangle{out}
	}

	// Two inside, one outside: the remaining quad becomes two triangles.
	out := 0
	for i := range inside {
		if !inside[i] {
			out = i
			break
		}
	}
	b, c := (out+1)%3, (out+2)%3
	nb := intersect(out, b)
	nc := intersect(out, c)

	first := ClippedTriangle{
		Vertices: [3]Vector3{tri.Vertices[b], tri.Vertices[c], nb},
		Normal:   tri.Normal,
		onPlane:  [3]int{tri.onPlane[b], tri.onPlane[c], planeIndex},
	}
	first.markCutEdges()

	second := ClippedTriangle{
		Vertices: [3]Vector3{tri.Vertices[c], nc, nb},
		Normal:   tri.Normal,
		onPlane:  [3]int{tri.onPlane[c], planeIndex, planeIndex},
	}
	second.markCutEdges()

	return []ClippedTriangle{first, second}
}

func (t *ClippedTriangle) markCutEdges() {
	for i := 0; i < 3; i++ {
		a, b := t.onPlane[i], t.onPlane[(i+1)%3]
		t.CutEdges[i] = a >= 0 && a == b
	}
}
