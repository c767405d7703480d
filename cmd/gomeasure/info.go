package main

import (
	"fmt"
	"math"

	"github.com/philipparndt/gomeasure/internal/loader"
	"github.com/philipparndt/gomeasure/pkg/analysis"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <model>",
		Short: "Display general information about a model",
		Long:  "Show triangle count, bounds, edge statistics and the camera used to frame screen picks.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			model, err := loader.New(a.log).Load(cmd.Context(), filename)
			if err != nil {
				return err
			}

			result := analysis.Summarize(model)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Model Information")
			fmt.Fprintln(out, "=================")
			if model.Name != "" {
				fmt.Fprintf(out, "Name: %s\n", model.Name)
			}
			fmt.Fprintf(out, "File: %s\n\n", filename)

			fmt.Fprintln(out, "Model Statistics:")
			fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
			fmt.Fprintf(out, "  Vertices: %d\n", result.VertexCount)
			fmt.Fprintf(out, "  Surface Area: %.6f square units\n\n", result.SurfaceArea)

			if result.TriangleCount == 0 {
				return nil
			}

			fmt.Fprintln(out, "Bounding Box:")
			fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
			fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
			fmt.Fprintf(out, "  Center: %s\n", analysis.FormatVector(result.BoundingBox.Center()))
			fmt.Fprintf(out, "  Diagonal: %.6f units\n\n", result.BoundingBox.Diagonal())

			fmt.Fprintln(out, "Edge Lengths:")
			fmt.Fprintf(out, "  Minimum: %.6f units\n", result.MinEdgeLength)
			fmt.Fprintf(out, "  Maximum: %.6f units\n", result.MaxEdgeLength)
			fmt.Fprintf(out, "  Average: %.6f units\n\n", result.AvgEdgeLength)

			cam := a.camera(model)
			fmt.Fprintln(out, "Camera:")
			fmt.Fprintf(out, "  Position: %s\n", analysis.FormatVector(cam.Position))
			fmt.Fprintf(out, "  Distance: %.6f units\n", cam.Distance)
			fmt.Fprintf(out, "  FOV: %.1f degrees\n", cam.FOV*180/math.Pi)
			fmt.Fprintf(out, "  Viewport: %.0fx%.0f\n", cam.Width, cam.Height)
			return nil
		},
	}
}
