package cmd

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/neurosight/pkg/anatomy"
	"github.com/philipparndt/neurosight/pkg/asset"
	"github.com/philipparndt/neurosight/pkg/isolate"
	"github.com/philipparndt/neurosight/pkg/scene"
	"github.com/philipparndt/neurosight/pkg/viewer"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var renderOpts struct {
	plane     string
	offset    float64
	heatmap   bool
	intensity float64
	out       string
	width     int
	height    int
	allPlanes bool
	noLabel   bool
	timeout   time.Duration
}

var renderCmd = &cobra.Command{
	Use:   "render <model>",
	Short: "Export a slice of a model to PNG",
	Long: `Render the model cut along an anatomical plane from the home camera
position and write the image as PNG. With --all-planes one image per plane
is written, named after the plane.`,
	Example: `  neurosight render brain.glb --plane coronal --offset 0.2 --out coronal.png
  neurosight render brain.glb --all-planes --offset 0 --out slices/`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	f := renderCmd.Flags()
	f.StringVar(&renderOpts.plane, "plane", "", "Cutting plane: sagittal, coronal or horizontal (default from config)")
	f.Float64Var(&renderOpts.offset, "offset", 0, "Slice offset, usually between -1 and 1")
	f.BoolVar(&renderOpts.heatmap, "heatmap", false, "Tint the model with the heatmap colors")
	f.Float64Var(&renderOpts.intensity, "intensity", isolate.DefaultHeatmapIntensity, "Heatmap intensity between 0 and 1 (implies --heatmap)")
	f.StringVarP(&renderOpts.out, "out", "o", "slice.png", "Output PNG file, or directory with --all-planes")
	f.IntVar(&renderOpts.width, "width", 800, "Image width in pixels")
	f.IntVar(&renderOpts.height, "height", 600, "Image height in pixels")
	f.BoolVar(&renderOpts.allPlanes, "all-planes", false, "Render every anatomical plane")
	f.BoolVar(&renderOpts.noLabel, "no-label", false, "Do not stamp plane and offset into the image")
	f.DurationVar(&renderOpts.timeout, "timeout", 2*time.Minute, "Give up when loading takes longer")
}

// sliceJob is one image to export
type sliceJob struct {
	plane anatomy.Plane
	path  string
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderOpts.width <= 0 || renderOpts.height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", renderOpts.width, renderOpts.height)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	slice := cfg.Slice
	if renderOpts.plane != "" {
		if err := slice.Plane.UnmarshalText([]byte(renderOpts.plane)); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("offset") {
		slice.Offset = renderOpts.offset
	}
	if renderOpts.heatmap || cmd.Flags().Changed("intensity") {
		slice.Heatmap = true
		slice.Intensity = renderOpts.intensity
	}

	jobs, err := renderJobs(slice.Plane)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), renderOpts.timeout)
	defer cancel()

	src := asset.NewSource(args[0])
	src.Start()
	defer src.Close()
	model, err := src.Wait(ctx)
	if err != nil {
		return err
	}
	staged := viewer.Stage(model)

	// Each job isolates through its own cache so no copy is shared between goroutines.
	g, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := renderSlice(cfg, staged, job.plane, slice)
			if err != nil {
				return err
			}
			if err := writePNG(job.path, img); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, offset %+.2f)\n", job.path, job.plane, slice.Offset)
			return nil
		})
	}
	return g.Wait()
}

func renderJobs(plane anatomy.Plane) ([]sliceJob, error) {
	if !renderOpts.allPlanes {
		return []sliceJob{{plane: plane, path: renderOpts.out}}, nil
	}

	dir := renderOpts.out
	if strings.EqualFold(filepath.Ext(dir), ".png") {
		dir = filepath.Dir(dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	jobs := make([]sliceJob, 0, len(anatomy.Planes()))
	for _, p := range anatomy.Planes() {
		jobs = append(jobs, sliceJob{plane: p, path: filepath.Join(dir, p.String()+".png")})
	}
	return jobs, nil
}

func renderSlice(cfg viewer.Config, model *scene.Node, plane anatomy.Plane, slice viewer.SliceConfig) (image.Image, error) {
	view, err := viewer.NewView(cfg)
	if err != nil {
		return nil, err
	}

	cache := isolate.NewCache()
	r := cache.Get(model, anatomy.Resolve(plane, slice.Offset), slice.Tint())

	renderer := viewer.NewRenderer()
	if !renderOpts.noLabel {
		renderer.Label = fmt.Sprintf("%s  offset %+.2f", plane.Label(), slice.Offset)
	}
	return renderer.Render(r.Root, view.Camera(), renderOpts.width, renderOpts.height), nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
