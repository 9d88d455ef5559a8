package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/neurosight/pkg/anatomy"
	"github.com/philipparndt/neurosight/pkg/geometry"
	"github.com/spf13/cobra"
)

var (
	resolvePoints []string
	resolveOffset float64
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <plane> [offset]",
	Short: "Show the clip plane for an anatomical plane and offset",
	Long: `Print the clip plane that a cut along <plane> at the offset produces.
Unknown plane names resolve to no clip. With --point, report whether each
point stays visible.

The offset is given with --offset or as the second argument. A negative
positional offset must follow "--" so it is not read as a flag.`,
	Example: `  neurosight resolve sagittal 0.3 --point 0.5,0,0 --point 0.1,0,0
  neurosight resolve horizontal --offset -0.4 --point 0,0.5,0
  neurosight resolve horizontal --point 0,0.5,0 -- -0.4`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringArrayVarP(&resolvePoints, "point", "p", nil, "Point x,y,z to test against the clip (repeatable)")
	resolveCmd.Flags().Float64Var(&resolveOffset, "offset", 0, "Slice offset, usually between -1 and 1")
}

func runResolve(cmd *cobra.Command, args []string) error {
	offset := resolveOffset
	switch {
	case len(args) > 1 && cmd.Flags().Changed("offset"):
		return fmt.Errorf("offset given both as argument %q and with --offset", args[1])
	case len(args) > 1:
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid offset %q: %w", args[1], err)
		}
		offset = v
	}

	points := make([]geometry.Vector3, 0, len(resolvePoints))
	for _, raw := range resolvePoints {
		p, err := parsePoint(raw)
		if err != nil {
			return err
		}
		points = append(points, p)
	}

	out := cmd.OutOrStdout()
	plane := anatomy.ParsePlane(args[0])
	clip := anatomy.Resolve(plane, offset)
	if len(clip) == 0 {
		fmt.Fprintf(out, "Plane %q is not an anatomical plane: no clip, the whole model is visible\n", args[0])
	}
	for _, c := range clip {
		fmt.Fprintf(out, "Plane: %s\n", plane.Label())
		fmt.Fprintf(out, "  Normal: %s\n", c.Normal)
		fmt.Fprintf(out, "  Distance: %.6f\n", c.Distance)
	}

	for _, p := range points {
		state := "visible"
		if !geometry.KeepsAll(clip, p) {
			state = "clipped"
		}
		if len(clip) == 0 {
			fmt.Fprintf(out, "Point %s: %s\n", p, state)
			continue
		}
		fmt.Fprintf(out, "Point %s: %s (signed distance %.6f)\n", p, state, clip[0].SignedDistance(p))
	}
	return nil
}

func parsePoint(raw string) (geometry.Vector3, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return geometry.Vector3{}, fmt.Errorf("invalid point %q: want x,y,z", raw)
	}
	var coords [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid point %q: %w", raw, err)
		}
		coords[i] = v
	}
	return geometry.NewVector3(coords[0], coords[1], coords[2]), nil
}
