package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/neurosight/pkg/geometry"
	"github.com/philipparndt/neurosight/pkg/scene"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// DefaultMaterialName names the material given to glTF primitives that have none
const DefaultMaterialName = "default"

func loadGLTF(path string) (*scene.Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}

	textures := loadTextures(doc, filepath.Dir(path))
	materials := make([]*scene.Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		materials[i] = convertMaterial(gm, i, textures)
	}

	// Primitives without a material share one default material per document.
	var fallback *scene.Material
	meshes := make([][]*scene.Mesh, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			mesh, err := convertPrimitive(doc, gm.Name, pi, prim)
			if err != nil {
				slog.Warn("skipping glTF primitive", "mesh", mi, "primitive", pi, "err", err)
				continue
			}
			if prim.Material != nil && inRange(*prim.Material, len(materials)) {
				mesh.Material = materials[*prim.Material]
			} else {
				if fallback == nil {
					fallback = scene.NewMaterial(DefaultMaterialName)
				}
				mesh.Material = fallback
			}
			meshes[mi] = append(meshes[mi], mesh)
		}
	}

	nodes := make([]*scene.Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		name := gn.Name
		if name == "" {
			name = fmt.Sprintf("node_%d", i)
		}
		n := scene.NewNode(name)
		n.Transform = nodeTransform(gn)

		if gn.Mesh != nil && inRange(*gn.Mesh, len(meshes)) {
			prims := meshes[*gn.Mesh]
			if len(prims) == 1 {
				n.Mesh = prims[0]
			} else {
				for _, p := range prims {
					child := scene.NewNode(p.Name)
					child.Mesh = p
					n.AddChild(child)
				}
			}
		}
		nodes[i] = n
	}

	hasParent := linkChildren(doc, nodes)

	root := scene.NewNode(filepath.Base(path))
	if doc.Scene != nil && inRange(*doc.Scene, len(doc.Scenes)) {
		added := make([]bool, len(nodes))
		for _, idx := range doc.Scenes[*doc.Scene].Nodes {
			if inRange(idx, len(nodes)) && !hasParent[idx] && !added[idx] {
				root.AddChild(nodes[idx])
				added[idx] = true
			}
		}
	} else {
		for i, n := range nodes {
			if !hasParent[i] {
				root.AddChild(n)
			}
		}
	}
	return root, nil
}

// linkChildren attaches every node to its first parent. Links that would
// give a node a second parent or close a cycle are dropped.
func linkChildren(doc *gltf.Document, nodes []*scene.Node) []bool {
	parent := make([]int, len(nodes))
	for i := range parent {
		parent[i] = -1
	}
	isAncestor := func(candidate, node int) bool {
		for n := node; n >= 0; n = parent[n] {
			if n == candidate {
				return true
			}
		}
		return false
	}

	hasParent := make([]bool, len(nodes))
	for i, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if !inRange(c, len(nodes)) || hasParent[c] || isAncestor(c, i) {
				slog.Warn("ignoring glTF child link", "parent", i, "child", c)
				continue
			}
			nodes[i].AddChild(nodes[c])
			parent[c] = i
			hasParent[c] = true
		}
	}
	return hasParent
}

func inRange(idx, n int) bool {
	return idx >= 0 && idx < n
}

func nodeTransform(gn *gltf.Node) scene.Transform {
	t := scene.IdentityTransform()
	tr := gn.TranslationOrDefault()
	r := gn.RotationOrDefault() // x, y, z, w
	s := gn.ScaleOrDefault()
	t.Translation = mgl64.Vec3{tr[0], tr[1], tr[2]}
	t.Rotation = mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}
	t.Scale = mgl64.Vec3{s[0], s[1], s[2]}
	return t
}

func convertMaterial(gm *gltf.Material, index int, textures []*scene.Texture) *scene.Material {
	name := gm.Name
	if name == "" {
		name = fmt.Sprintf("material_%d", index)
	}
	m := scene.NewMaterial(name)

	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		c := pbr.BaseColorFactorOrDefault()
		m.Color = scene.Color{R: c[0], G: c[1], B: c[2]}
		m.Opacity = c[3]
		m.Roughness = pbr.RoughnessFactorOrDefault()
		m.Metalness = pbr.MetallicFactorOrDefault()
		if tex := pbr.BaseColorTexture; tex != nil && inRange(tex.Index, len(textures)) {
			m.Texture = textures[tex.Index]
		}
	}
	if gm.DoubleSided {
		m.Side = scene.DoubleSide
	}
	m.Transparent = gm.AlphaMode == gltf.AlphaBlend
	return m
}

func convertPrimitive(doc *gltf.Document, meshName string, index int, prim *gltf.Primitive) (*scene.Mesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, index)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", index)
	}
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, fmt.Errorf("primitive mode %v is not triangles", prim.Mode)
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	if !inRange(posIdx, len(doc.Accessors)) {
		return nil, fmt.Errorf("POSITION accessor %d out of range", posIdx)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	g := &scene.Geometry{Positions: make([]geometry.Vector3, len(positions))}
	for i, p := range positions {
		g.Positions[i] = geometry.NewVector3(float64(p[0]), float64(p[1]), float64(p[2]))
	}

	if prim.Indices != nil {
		if !inRange(*prim.Indices, len(doc.Accessors)) {
			return nil, fmt.Errorf("index accessor %d out of range", *prim.Indices)
		}
		g.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		for _, idx := range g.Indices {
			if int(idx) >= len(g.Positions) {
				return nil, fmt.Errorf("index %d out of range for %d positions", idx, len(g.Positions))
			}
		}
	}

	return scene.NewMesh(name, g, nil), nil
}

// loadTextures decodes embedded and external images; failures only cost the texture
func loadTextures(doc *gltf.Document, dir string) []*scene.Texture {
	textures := make([]*scene.Texture, len(doc.Textures))
	for i, gt := range doc.Textures {
		if gt.Source == nil || !inRange(*gt.Source, len(doc.Images)) {
			continue
		}
		img := doc.Images[*gt.Source]
		name := img.Name
		if name == "" {
			name = fmt.Sprintf("image_%d", *gt.Source)
		}

		var raw []byte
		var err error
		switch {
		case img.BufferView != nil:
			if !inRange(*img.BufferView, len(doc.BufferViews)) {
				err = fmt.Errorf("buffer view %d out of range", *img.BufferView)
				break
			}
			raw, err = modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		case img.IsEmbeddedResource():
			raw, err = img.MarshalData()
		case img.URI != "":
			// External images are referenced but not decoded.
			textures[i] = &scene.Texture{Name: filepath.Join(dir, img.URI)}
			continue
		}
		if err != nil {
			slog.Warn("skipping glTF image", "image", name, "err", err)
			continue
		}

		decoded, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			slog.Warn("skipping glTF image", "image", name, "err", err)
			continue
		}
		textures[i] = &scene.Texture{Name: name, Image: decoded}
	}
	return textures
}
