package cmd

import (
	"os"
	"os/signal"

	"github.com/philipparndt/neurosight/internal/app"
	"github.com/philipparndt/neurosight/pkg/anatomy"
	"github.com/spf13/cobra"
)

var viewOpts struct {
	plane   string
	offset  float64
	noWatch bool
}

var viewCmd = &cobra.Command{
	Use:   "view <model>",
	Short: "Open a model in the interactive slice viewer",
	Long: `Open the model in a window. Drag to orbit, scroll to zoom and use the
number keys to pick the cutting plane. The model reloads when its file
changes on disk.`,
	Example: `  neurosight view brain.glb
  neurosight view brain.stl --plane sagittal --offset -0.3`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	f := viewCmd.Flags()
	f.StringVar(&viewOpts.plane, "plane", "", "Initial cutting plane (default from config)")
	f.Float64Var(&viewOpts.offset, "offset", 0, "Initial slice offset")
	f.BoolVar(&viewOpts.noWatch, "no-watch", false, "Do not reload the model when the file changes")
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if viewOpts.plane != "" {
		var plane anatomy.Plane
		if err := plane.UnmarshalText([]byte(viewOpts.plane)); err != nil {
			return err
		}
		cfg.Slice.Plane = plane
	}
	if cmd.Flags().Changed("offset") {
		cfg.Slice.Offset = viewOpts.offset
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return app.Run(ctx, app.Options{
		Path:   args[0],
		Config: cfg,
		Watch:  !viewOpts.noWatch,
	})
}
