// Package asset loads model files into scene graphs, either directly or in
// the background for views that must stay responsive while a model streams in.
package asset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/neurosight/pkg/scene"
	"github.com/philipparndt/neurosight/pkg/stl"
)

// ErrUnsupportedFormat is returned for file extensions no loader handles
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Formats lists the accepted file extensions
var Formats = []string{".glb", ".gltf", ".stl"}

// Load reads a model file. glTF scenes keep their authored units; STL
// triangle soups are centred and scaled into the [-1, 1] cube so that the
// advisory slice offsets cover them.
func Load(path string) (*scene.Node, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		root, err := loadGLTF(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load glTF %s: %w", path, err)
		}
		return root, nil

	case ".stl":
		model, err := stl.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL %s: %w", path, err)
		}
		return FromSTL(model), nil

	default:
		return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnsupportedFormat, ext, strings.Join(Formats, ", "))
	}
}

// FromSTL converts an STL model into a single-mesh scene fitted to the unit cube
func FromSTL(model *stl.Model) *scene.Node {
	name := model.Name
	if name == "" {
		name = "stl"
	}
	node := scene.NewNode(name)
	node.Mesh = scene.NewMesh(name, scene.NewGeometry(model.Triangles), scene.NewMaterial(name))
	return scene.Fit(node, 1)
}
