package cmd

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/philipparndt/neurosight/pkg/asset"
	"github.com/philipparndt/neurosight/pkg/geometry"
	"github.com/philipparndt/neurosight/pkg/stl"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCommand returns a command with captured output and no flags set
func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetContext(context.Background())
	return cmd, &buf
}

// writeTetrahedron saves a closed tetrahedron as binary STL
func writeTetrahedron(t *testing.T) string {
	t.Helper()
	o := geometry.NewVector3(0, 0, 0)
	a := geometry.NewVector3(1, 0, 0)
	b := geometry.NewVector3(0, 1, 0)
	c := geometry.NewVector3(0, 0, 1)

	model := stl.NewModel("tetra")
	for _, tri := range [][3]geometry.Vector3{{o, b, a}, {o, a, c}, {o, c, b}, {a, b, c}} {
		model.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, tri[0], tri[1], tri[2]))
	}

	path := filepath.Join(t.TempDir(), "tetra.stl")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, stl.WriteBinary(f, model))
	return path
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 1, -2.5 ,3")
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(1, -2.5, 3), p)

	_, err = parsePoint("1,2")
	assert.Error(t, err)
	_, err = parsePoint("1,x,3")
	assert.Error(t, err)
}

func TestResolveCommand(t *testing.T) {
	t.Cleanup(func() { resolvePoints = nil })

	t.Run("sagittal with points", func(t *testing.T) {
		resolvePoints = []string{"0.5,0,0", "0.1,0,0"}
		cmd, out := newTestCommand()

		require.NoError(t, runResolve(cmd, []string{"Sagittal", "0.3"}))

		text := out.String()
		assert.Contains(t, text, "Plane: Sagittal")
		assert.Contains(t, text, "Distance: 0.300000")
		assert.Contains(t, text, "visible (signed distance 0.500000)")
		assert.Contains(t, text, "clipped (signed distance 0.100000)")
	})

	t.Run("unknown plane keeps everything", func(t *testing.T) {
		resolvePoints = []string{"-100,-100,-100"}
		cmd, out := newTestCommand()

		require.NoError(t, runResolve(cmd, []string{"axial", "0.3"}))

		text := out.String()
		assert.Contains(t, text, "no clip")
		assert.Contains(t, text, ": visible")
		assert.NotContains(t, text, "clipped")
	})

	t.Run("invalid offset", func(t *testing.T) {
		resolvePoints = nil
		cmd, _ := newTestCommand()
		assert.Error(t, runResolve(cmd, []string{"coronal", "deep"}))
	})
}

func resetResolveFlags(t *testing.T) {
	t.Helper()
	resolvePoints = nil
	resolveOffset = 0
	for _, name := range []string{"point", "offset"} {
		resolveCmd.Flags().Lookup(name).Changed = false
	}
}

func TestResolveCommandNegativeOffset(t *testing.T) {
	tests := map[string][]string{
		"offset flag":        {"resolve", "horizontal", "--offset", "-0.4", "--point", "0,0.5,0"},
		"offset flag equals": {"resolve", "horizontal", "--offset=-0.4", "-p", "0,0.5,0"},
		"after end of flags": {"resolve", "horizontal", "--point", "0,0.5,0", "--", "-0.4"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			resetResolveFlags(t)
			t.Cleanup(func() { resetResolveFlags(t) })

			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(args)
			t.Cleanup(func() {
				rootCmd.SetOut(nil)
				rootCmd.SetArgs(nil)
			})

			require.NoError(t, rootCmd.Execute())

			text := out.String()
			assert.Contains(t, text, "Plane: Horizontal")
			assert.Contains(t, text, "Distance: -0.400000")
			assert.Contains(t, text, "clipped (signed distance -0.500000)")
		})
	}

	t.Run("offset given twice", func(t *testing.T) {
		resetResolveFlags(t)
		t.Cleanup(func() { resetResolveFlags(t) })

		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetArgs([]string{"resolve", "horizontal", "--offset", "-0.4", "--", "0.2"})
		t.Cleanup(func() {
			rootCmd.SetOut(nil)
			rootCmd.SetArgs(nil)
		})

		assert.ErrorContains(t, rootCmd.Execute(), "offset given both")
	})
}

func TestInfoCommand(t *testing.T) {
	t.Cleanup(func() { infoOpts.plane, infoOpts.offset = "", 0 })
	path := writeTetrahedron(t)

	infoOpts.plane = "sagittal"
	infoOpts.offset = 0
	cmd, out := newTestCommand()
	require.NoError(t, runInfo(cmd, []string{path}))

	text := out.String()
	assert.Contains(t, text, "Triangles: 4")
	assert.Contains(t, text, "Section (Sagittal, offset +0.00)")
	assert.Contains(t, text, "Bounding Box:")

	infoOpts.plane = "oblique"
	cmd, _ = newTestCommand()
	assert.Error(t, runInfo(cmd, []string{path}))

	infoOpts.plane = ""
	cmd, _ = newTestCommand()
	err := runInfo(cmd, []string{filepath.Join(t.TempDir(), "brain.obj")})
	assert.True(t, errors.Is(err, asset.ErrUnsupportedFormat), "got %v", err)
}

func resetRenderOpts() {
	renderOpts.plane = ""
	renderOpts.offset = 0
	renderOpts.heatmap = false
	renderOpts.intensity = 1
	renderOpts.width = 64
	renderOpts.height = 48
	renderOpts.allPlanes = false
	renderOpts.noLabel = true
	renderOpts.timeout = 10 * time.Second
	configPath = ""
}

func TestRenderCommand(t *testing.T) {
	t.Cleanup(resetRenderOpts)
	model := writeTetrahedron(t)

	t.Run("single plane", func(t *testing.T) {
		resetRenderOpts()
		renderOpts.plane = "coronal"
		renderOpts.heatmap = true
		renderOpts.out = filepath.Join(t.TempDir(), "slice.png")
		cmd, out := newTestCommand()

		require.NoError(t, runRender(cmd, []string{model}))
		assert.Contains(t, out.String(), "coronal")

		f, err := os.Open(renderOpts.out)
		require.NoError(t, err)
		defer f.Close()
		img, err := png.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, 64, img.Bounds().Dx())
		assert.Equal(t, 48, img.Bounds().Dy())
	})

	t.Run("all planes", func(t *testing.T) {
		resetRenderOpts()
		renderOpts.allPlanes = true
		renderOpts.out = filepath.Join(t.TempDir(), "slices")
		cmd, _ := newTestCommand()

		require.NoError(t, runRender(cmd, []string{model}))
		for _, name := range []string{"sagittal.png", "coronal.png", "horizontal.png"} {
			assert.FileExists(t, filepath.Join(renderOpts.out, name))
		}
	})

	t.Run("rejects empty image", func(t *testing.T) {
		resetRenderOpts()
		renderOpts.width = 0
		cmd, _ := newTestCommand()
		assert.Error(t, runRender(cmd, []string{model}))
	})

	t.Run("missing model", func(t *testing.T) {
		resetRenderOpts()
		renderOpts.out = filepath.Join(t.TempDir(), "slice.png")
		cmd, _ := newTestCommand()
		assert.Error(t, runRender(cmd, []string{filepath.Join(t.TempDir(), "missing.stl")}))
	})
}

func TestVersionCommand(t *testing.T) {
	cmd, out := newTestCommand()
	versionCmd.Run(cmd, nil)
	assert.Equal(t, "neurosight dev\n", out.String())
}
