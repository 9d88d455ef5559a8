// Package scene holds the scene graph shared by loaders, the isolation step and the renderers.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/neurosight/pkg/geometry"
)

// Transform is a translation, rotation and scale applied in TRS order
type Transform struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
	Scale       mgl64.Vec3
}

// IdentityTransform leaves points where they are
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// UniformScale returns a transform that only scales
func UniformScale(s float64) Transform {
	t := IdentityTransform()
	t.Scale = mgl64.Vec3{s, s, s}
	return t
}

// Matrix returns the local matrix T * R * S
func (t Transform) Matrix() mgl64.Mat4 {
	translate := mgl64.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	scale := mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(t.Rotation.Normalize().Mat4()).Mul4(scale)
}

// Node is an element of the scene graph
type Node struct {
	Name      string
	Transform Transform
	Visible   bool
	Mesh      *Mesh
	Children  []*Node
}

// NewNode creates a visible node with an identity transform
func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Transform: IdentityTransform(),
		Visible:   true,
		Children:  make([]*Node, 0),
	}
}

// AddChild appends child and returns n for chaining
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// Traverse visits n and all descendants depth first, including invisible ones
func (n *Node) Traverse(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		child.Traverse(fn)
	}
}

// WalkMeshes calls fn for every mesh under a visible path with its world matrix
func (n *Node) WalkMeshes(fn func(mesh *Mesh, world mgl64.Mat4)) {
	n.walk(mgl64.Ident4(), fn)
}

func (n *Node) walk(parent mgl64.Mat4, fn func(*Mesh, mgl64.Mat4)) {
	if n == nil || !n.Visible {
		return
	}
	world := parent.Mul4(n.Transform.Matrix())
	if n.Mesh != nil {
		fn(n.Mesh, world)
	}
	for _, child := range n.Children {
		child.walk(world, fn)
	}
}

// CloneStructure copies the node tree. Nodes and meshes are new objects;
// geometry and material pointers still point at the originals.
func (n *Node) CloneStructure() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{
		Name:      n.Name,
		Transform: n.Transform,
		Visible:   n.Visible,
		Children:  make([]*Node, 0, len(n.Children)),
	}
	if n.Mesh != nil {
		mesh := *n.Mesh
		clone.Mesh = &mesh
	}
	for _, child := range n.Children {
		clone.Children = append(clone.Children, child.CloneStructure())
	}
	return clone
}

// Stats counts nodes, meshes and triangles in the tree
type Stats struct {
	Nodes     int
	Meshes    int
	Triangles int
	Unstyled  int
}

// Stats walks the full tree, including invisible nodes
func (n *Node) Stats() Stats {
	var s Stats
	n.Traverse(func(node *Node) {
		s.Nodes++
		if node.Mesh == nil {
			return
		}
		s.Meshes++
		s.Triangles += node.Mesh.Geometry.TriangleCount()
		if node.Mesh.Material == nil {
			s.Unstyled++
		}
	})
	return s
}

// Bounds returns the world-space bounding box of every visible mesh
func (n *Node) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	n.WalkMeshes(func(mesh *Mesh, world mgl64.Mat4) {
		if mesh.Geometry == nil {
			return
		}
		for _, p := range mesh.Geometry.Positions {
			bbox.Extend(TransformPoint(world, p))
		}
	})
	return bbox
}

// Wrap places n under a new root with the given transform
func Wrap(name string, n *Node, t Transform) *Node {
	root := NewNode(name)
	root.Transform = t
	return root.AddChild(n)
}

// Fit wraps n so that its bounds are centred on the origin and the largest
// dimension spans 2*halfExtent. Empty trees are wrapped unchanged.
func Fit(n *Node, halfExtent float64) *Node {
	bbox := n.Bounds()
	t := IdentityTransform()
	if !bbox.IsEmpty() && bbox.MaxDimension() > 0 {
		s := 2 * halfExtent / bbox.MaxDimension()
		c := bbox.Center()
		t.Scale = mgl64.Vec3{s, s, s}
		t.Translation = mgl64.Vec3{-c.X * s, -c.Y * s, -c.Z * s}
	}
	return Wrap(n.Name+" (fitted)", n, t)
}

// TransformPoint applies m to a point
func TransformPoint(m mgl64.Mat4, p geometry.Vector3) geometry.Vector3 {
	v := mgl64.TransformCoordinate(mgl64.Vec3{p.X, p.Y, p.Z}, m)
	return geometry.NewVector3(v.X(), v.Y(), v.Z())
}
