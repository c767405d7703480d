package main

import (
	"fmt"

	"github.com/philipparndt/gomeasure/pkg/analysis"
	"github.com/philipparndt/gomeasure/pkg/measure"
	"github.com/spf13/cobra"
)

type projectOptions struct {
	point, from, to string
	tMin, tMax      float64
}

func newProjectCmd(a *app) *cobra.Command {
	opts := &projectOptions{}

	cmd := &cobra.Command{
		Use:   "project --point x,y,z --from x,y,z --to x,y,z",
		Short: "Project a point onto a segment",
		Long: `Project a point onto the line through --from and --to. The position along
the line is clamped to [tmin, tmax], where 0 is --from and 1 is --to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			point, err := parseVector3(opts.point)
			if err != nil {
				return fmt.Errorf("--point: %w", err)
			}
			from, err := parseVector3(opts.from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			to, err := parseVector3(opts.to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			if opts.tMin > opts.tMax {
				return fmt.Errorf("--tmin %v is greater than --tmax %v", opts.tMin, opts.tMax)
			}

			projected := measure.ClampedProjection(point, from, to, opts.tMin, opts.tMax)
			a.log.Debug().Float64("tmin", opts.tMin).Float64("tmax", opts.tMax).Msg("project")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Projection: %s\n", analysis.FormatVector(projected))
			fmt.Fprintf(out, "Distance: %.6f\n", point.Distance(projected))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.point, "point", "", "point to project")
	flags.StringVar(&opts.from, "from", "", "segment start")
	flags.StringVar(&opts.to, "to", "", "segment end")
	flags.Float64Var(&opts.tMin, "tmin", 0, "lower clamp of the line parameter")
	flags.Float64Var(&opts.tMax, "tmax", 1, "upper clamp of the line parameter")
	cmd.MarkFlagsRequiredTogether("point", "from", "to")
	_ = cmd.MarkFlagRequired("point")

	return cmd
}
