// Package isolate derives private, clipped copies of a shared scene so that
// per-render material changes never reach the loaded asset.
package isolate

import (
	"log/slog"
	"slices"

	"github.com/philipparndt/neurosight/pkg/geometry"
	"github.com/philipparndt/neurosight/pkg/scene"
)

// Shading holds the fixed surface parameters written onto every isolated material
type Shading struct {
	Roughness float64
	Metalness float64
}

// DefaultShading is applied unless WithShading overrides it
var DefaultShading = Shading{Roughness: 0.4, Metalness: 0.2}

// Decorator adjusts an isolated material after the clip has been applied.
// It only ever sees materials owned by the Renderable being built.
type Decorator func(*scene.Material)

// Option configures a single isolation pass
type Option func(*options)

type options struct {
	shading    Shading
	decorators []Decorator
}

// WithShading replaces the default roughness and metalness
func WithShading(s Shading) Option {
	return func(o *options) {
		o.shading = s
	}
}

// WithDecorator appends a decorator run on every isolated material
func WithDecorator(d Decorator) Option {
	return func(o *options) {
		if d != nil {
			o.decorators = append(o.decorators, d)
		}
	}
}

// Renderable is a clipped copy of a scene. Every material reachable from Root
// belongs to this Renderable alone.
type Renderable struct {
	Root *scene.Node
	Clip []geometry.Plane

	// Isolated counts meshes whose material was cloned and clipped.
	Isolated int
	// Skipped counts meshes without a material; they are drawn unclipped.
	Skipped int
}

// Isolate copies src and gives every mesh a cloned material carrying clip.
// src and its materials are only read. A nil src yields an empty Renderable.
func Isolate(src *scene.Node, clip []geometry.Plane, opts ...Option) *Renderable {
	o := options{shading: DefaultShading}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Renderable{Clip: slices.Clone(clip)}
	if src == nil {
		return r
	}

	r.Root = src.CloneStructure()
	r.Root.Traverse(func(node *scene.Node) {
		if node.Mesh == nil {
			return
		}
		if node.Mesh.Material == nil {
			r.Skipped++
			slog.Debug("mesh has no material, leaving it unclipped", "node", node.Name, "mesh", node.Mesh.Name)
			return
		}

		m := node.Mesh.Material.Clone()
		m.ClipPlanes = slices.Clone(clip)
		m.ClipShadows = true
		m.Side = scene.DoubleSide
		m.Transparent = false
		m.Opacity = 1
		m.Roughness = o.shading.Roughness
		m.Metalness = o.shading.Metalness
		for _, d := range o.decorators {
			d(m)
		}

		node.Mesh.Material = m
		r.Isolated++
	})

	return r
}

// Materials returns every material owned by the Renderable in traversal order
func (r *Renderable) Materials() []*scene.Material {
	var out []*scene.Material
	r.Root.Traverse(func(node *scene.Node) {
		if node.Mesh != nil && node.Mesh.Material != nil {
			out = append(out, node.Mesh.Material)
		}
	})
	return out
}
