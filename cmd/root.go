// Package cmd implements the neurosight command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/neurosight/pkg/viewer"
	"github.com/philipparndt/neurosight/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "neurosight",
	Short: "Slice through 3D brain models along anatomical planes",
	Long: `neurosight renders a 3D anatomical model and cuts it along the sagittal,
coronal or horizontal plane at a chosen offset. It opens an interactive
viewer, exports slices to PNG and reports model statistics.

Supported formats: .glb, .gltf, .stl`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML file with camera, bounds, buttons and slice settings")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig returns the defaults unless --config names a file
func loadConfig() (viewer.Config, error) {
	if configPath == "" {
		return viewer.DefaultConfig(), nil
	}
	return viewer.LoadConfig(configPath)
}
