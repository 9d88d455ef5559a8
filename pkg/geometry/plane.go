package geometry

import "fmt"

// Plane is an oriented clip plane. Points whose projection onto Normal is at
// least Distance lie in the kept half-space.
type Plane struct {
	Normal   Vector3
	Distance float64
}

// NewPlane creates a clip plane from a normal and a signed distance
func NewPlane(normal Vector3, distance float64) Plane {
	return Plane{Normal: normal, Distance: distance}
}

// SignedDistance returns the projection of p onto the plane normal
func (p Plane) SignedDistance(point Vector3) float64 {
	return p.Normal.Dot(point)
}

// Margin returns how far point lies inside the kept half-space (negative when clipped)
func (p Plane) Margin(point Vector3) float64 {
	return p.SignedDistance(point) - p.Distance
}

// Keeps reports whether point survives the clip
func (p Plane) Keeps(point Vector3) bool {
	return p.SignedDistance(point) >= p.Distance
}

func (p Plane) String() string {
	return fmt.Sprintf("normal=%s distance=%.3f", p.Normal, p.Distance)
}

// KeepsAll reports whether point survives every plane. An empty list keeps everything.
func KeepsAll(planes []Plane, point Vector3) bool {
	for _, plane := range planes {
		if !plane.Keeps(point) {
			return false
		}
	}
	return true
}
