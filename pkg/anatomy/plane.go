// Package anatomy maps anatomical cutting planes onto clip half-spaces.
package anatomy

import (
	"fmt"
	"strings"

	"github.com/philipparndt/neurosight/pkg/geometry"
)

// Plane identifies one of the three anatomical cutting planes
type Plane int

const (
	// Unknown is any identifier that is not a recognised plane; it resolves to no clip
	Unknown Plane = iota
	// Sagittal divides left from right
	Sagittal
	// Coronal divides front from back
	Coronal
	// Horizontal divides top from bottom
	Horizontal
)

// Advisory offset range used by sliders and key bindings
const (
	OffsetMin  = -1.0
	OffsetMax  = 1.0
	OffsetStep = 0.01
)

var planeNames = map[Plane]string{
	Sagittal:   "sagittal",
	Coronal:    "coronal",
	Horizontal: "horizontal",
}

// Planes lists the known planes in the order the toolbars present them
func Planes() []Plane {
	return []Plane{Sagittal, Horizontal, Coronal}
}

// ParsePlane maps an identifier to a plane, ignoring case and surrounding space.
// Unrecognised identifiers yield Unknown.
func ParsePlane(id string) Plane {
	id = strings.ToLower(strings.TrimSpace(id))
	for plane, name := range planeNames {
		if name == id {
			return plane
		}
	}
	return Unknown
}

func (p Plane) String() string {
	if name, ok := planeNames[p]; ok {
		return name
	}
	return "unknown"
}

// Label returns the capitalised name shown on buttons
func (p Plane) Label() string {
	name := p.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// Normal returns the clip normal of the plane. The horizontal normal points
// down so that increasing offsets reveal the model from the top.
func (p Plane) Normal() (geometry.Vector3, bool) {
	switch p {
	case Sagittal:
		return geometry.UnitX, true
	case Coronal:
		return geometry.UnitZ, true
	case Horizontal:
		return geometry.UnitY.Negate(), true
	default:
		return geometry.Vector3{}, false
	}
}

// MarshalText implements encoding.TextMarshaler
func (p Plane) MarshalText() ([]byte, error) {
	if p == Unknown {
		return nil, fmt.Errorf("cannot marshal unknown plane %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unlike ParsePlane it
// rejects unknown names so typos in config files surface.
func (p *Plane) UnmarshalText(text []byte) error {
	plane := ParsePlane(string(text))
	if plane == Unknown {
		return fmt.Errorf("unknown anatomical plane %q (want sagittal, coronal or horizontal)", string(text))
	}
	*p = plane
	return nil
}
