package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/philipparndt/neurosight/pkg/analysis"
	"github.com/philipparndt/neurosight/pkg/anatomy"
	"github.com/philipparndt/neurosight/pkg/asset"
	"github.com/spf13/cobra"
)

var infoOpts struct {
	plane  string
	offset float64
}

var infoCmd = &cobra.Command{
	Use:   "info <model>",
	Short: "Display scene statistics of a model file",
	Long: `Show node, mesh and triangle counts, meshes without material, surface
measurements and the bounding box of a model. With --plane the section
left by that cut is measured as well.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringVar(&infoOpts.plane, "plane", "", "Also measure the section along this plane")
	infoCmd.Flags().Float64Var(&infoOpts.offset, "offset", 0, "Slice offset for --plane")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	root, err := asset.Load(filename)
	if err != nil {
		return err
	}

	var plane anatomy.Plane
	if infoOpts.plane != "" {
		if err := plane.UnmarshalText([]byte(infoOpts.plane)); err != nil {
			return err
		}
	}

	stats := root.Stats()
	bbox := root.Bounds()
	result := analysis.AnalyzeModel(root)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Model Information")
	fmt.Fprintln(out, "=================")
	fmt.Fprintf(out, "File: %s\n", filename)
	fmt.Fprintf(out, "Format: %s\n\n", filepath.Ext(filename))

	fmt.Fprintln(out, "Scene:")
	fmt.Fprintf(out, "  Nodes: %d\n", stats.Nodes)
	fmt.Fprintf(out, "  Meshes: %d\n", stats.Meshes)
	fmt.Fprintf(out, "  Triangles: %d\n", stats.Triangles)
	fmt.Fprintf(out, "  Meshes without material: %d\n\n", stats.Unstyled)

	fmt.Fprintln(out, "Surface:")
	fmt.Fprintf(out, "  Area: %.4f\n", result.SurfaceArea)
	fmt.Fprintf(out, "  Enclosed volume: %.4f\n", result.Volume)
	fmt.Fprintf(out, "  Edge length: min %.4f, max %.4f, avg %.4f\n\n",
		result.MinEdgeLength, result.MaxEdgeLength, result.AvgEdgeLength)

	if plane != anatomy.Unknown {
		section := analysis.AnalyzeSection(root, anatomy.Resolve(plane, infoOpts.offset))
		fmt.Fprintf(out, "Section (%s, offset %+.2f):\n", plane.Label(), infoOpts.offset)
		fmt.Fprintf(out, "  Triangles kept: %d\n", section.Pieces)
		fmt.Fprintf(out, "  Area kept: %.4f\n", section.KeptArea)
		fmt.Fprintf(out, "  Contour length: %.4f\n\n", section.ContourLength)
	}

	if bbox.IsEmpty() {
		fmt.Fprintln(out, "Bounding Box: empty")
		return nil
	}
	size := bbox.Size()
	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", bbox.Min)
	fmt.Fprintf(out, "  Max: %s\n", bbox.Max)
	fmt.Fprintf(out, "  Center: %s\n", bbox.Center())
	fmt.Fprintf(out, "  Size: %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Fprintf(out, "  Diagonal: %.3f\n", bbox.Diagonal())
	return nil
}
