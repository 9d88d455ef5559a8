package anatomy

import "github.com/philipparndt/neurosight/pkg/geometry"

// Resolve returns the clip planes for cutting along plane at offset.
// An unknown plane yields an empty list, which leaves the model unclipped.
// Every call allocates a fresh slice that the caller may keep or modify.
func Resolve(plane Plane, offset float64) []geometry.Plane {
	normal, ok := plane.Normal()
	if !ok {
		return nil
	}
	return []geometry.Plane{geometry.NewPlane(normal, offset)}
}

// ResolveID resolves a textual plane identifier
func ResolveID(id string, offset float64) []geometry.Plane {
	return Resolve(ParsePlane(id), offset)
}

// ClampOffset limits offset to the advisory slider range
func ClampOffset(offset float64) float64 {
	return max(OffsetMin, min(OffsetMax, offset))
}
