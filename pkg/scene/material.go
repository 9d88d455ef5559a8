package scene

import (
	"image"
	"log/slog"
	"slices"

	"github.com/jinzhu/copier"
	"github.com/philipparndt/neurosight/pkg/geometry"
)

// Side selects which faces of a mesh are drawn
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

func (s Side) String() string {
	switch s {
	case BackSide:
		return "back"
	case DoubleSide:
		return "double"
	default:
		return "front"
	}
}

// Texture is image data shared between materials; it is never copied
type Texture struct {
	Name  string
	Image image.Image
}

// Material describes surface appearance and the clip planes applied while drawing
type Material struct {
	Name        string
	Color       Color
	Roughness   float64
	Metalness   float64
	Opacity     float64
	Transparent bool
	Side        Side

	// ClipPlanes removes every fragment outside any plane's kept half-space.
	ClipPlanes  []geometry.Plane
	ClipShadows bool

	Texture *Texture `copier:"-"`
}

// NewMaterial returns an opaque white front-sided material
func NewMaterial(name string) *Material {
	return &Material{
		Name:      name,
		Color:     White,
		Roughness: 1,
		Opacity:   1,
		Side:      FrontSide,
	}
}

// Clone returns an independent copy. Only the texture is shared.
func (m *Material) Clone() *Material {
	if m == nil {
		return nil
	}
	clone := &Material{}
	if err := copier.CopyWithOption(clone, m, copier.Option{DeepCopy: true}); err != nil {
		slog.Error("scene.Material.Clone", "material", m.Name, "err", err)
		*clone = *m
	}
	clone.ClipPlanes = slices.Clone(m.ClipPlanes)
	clone.Texture = m.Texture
	return clone
}

// Keeps reports whether a world-space point survives the material's clip planes
func (m *Material) Keeps(point geometry.Vector3) bool {
	return geometry.KeepsAll(m.ClipPlanes, point)
}

// Clipped reports whether the material has any clip plane
func (m *Material) Clipped() bool {
	return len(m.ClipPlanes) > 0
}
