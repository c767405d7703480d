package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/philipparndt/gomeasure/internal/loader"
	"github.com/philipparndt/gomeasure/internal/measurement"
	"github.com/philipparndt/gomeasure/pkg/analysis"
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/measure"
	"github.com/philipparndt/gomeasure/pkg/stl"
	"github.com/philipparndt/gomeasure/pkg/units"
	"github.com/philipparndt/gomeasure/pkg/viewer"
	"github.com/spf13/cobra"
)

// snapCandidates is the number of model vertices offered to the snapper for world picks
const snapCandidates = 8

type measureOptions struct {
	picks []string
	wkt   bool
	watch bool
}

func newMeasureCmd(a *app) *cobra.Command {
	opts := &measureOptions{}

	cmd := &cobra.Command{
		Use:   "measure <model> --pick x,y,z|sx,sy [--pick ...]",
		Short: "Measure a line picked on a model",
		Long: `Measure a line through picked points. A pick is either a world position
"x,y,z" or a screen position "sx,sy" in pixels of the auto-framed camera.
Picks snap to model vertices closer than the snap threshold.

Modes:
  two-point   every third pick starts a new line
  polyline    accumulates picks, restarting after --max-points (0 = unbounded)
  orthogonal  each pick is measured along its surface normal to the
              opposite surface of the model`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMeasure(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&opts.picks, "pick", nil, "pick position x,y,z (world) or sx,sy (screen), repeatable")
	flags.String("mode", "two-point", "measure mode (two-point, polyline, orthogonal)")
	flags.Int("max-points", 0, "anchors per polyline before it restarts (0 = unbounded)")
	flags.String("unit", "m", "label unit (m, cm, mm, ft, in, ft-in)")
	flags.Float64("min-label-px", 40, "minimum on-screen extent in pixels for the label to show")
	flags.Float64("snap", measure.DefaultSnapThreshold, "snap distance to model vertices")
	flags.BoolVar(&opts.wkt, "wkt", false, "print the measured line as WKT")
	flags.BoolVar(&opts.watch, "watch", false, "re-measure whenever the model changes")
	_ = cmd.MarkFlagRequired("pick")

	_ = a.v.BindPFlag("measure.mode", flags.Lookup("mode"))
	_ = a.v.BindPFlag("measure.maxPoints", flags.Lookup("max-points"))
	_ = a.v.BindPFlag("measure.unit", flags.Lookup("unit"))
	_ = a.v.BindPFlag("label.minPixels", flags.Lookup("min-label-px"))
	_ = a.v.BindPFlag("snap.threshold", flags.Lookup("snap"))

	return cmd
}

func (a *app) runMeasure(cmd *cobra.Command, path string, opts *measureOptions) error {
	unit, err := units.Parse(a.cfg.Measure.Unit)
	if err != nil {
		return err
	}
	mode, err := measure.ParseMode(a.cfg.Measure.Mode)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := loader.New(a.log)
	model, err := l.Load(ctx, path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := a.measureModel(out, model, mode, unit, opts); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	frames := viewer.NewFrameStats(0)
	return l.Watch(ctx, path, a.cfg.Watch.Debounce, func(model *stl.Model, err error) {
		if err != nil {
			a.log.Error().Err(err).Msg("reload failed")
			return
		}
		start := time.Now()
		fmt.Fprintln(out)
		if err := a.measureModel(out, model, mode, unit, opts); err != nil {
			a.log.Error().Err(err).Msg("measure failed")
			return
		}
		frames.Add(time.Since(start))
		a.log.Debug().Dur("avg", frames.Average()).Float64("perSecond", frames.FPS()).Msg("re-measured")
	})
}

func (a *app) camera(model *stl.Model) *viewer.Camera {
	cam := viewer.NewCameraWithFOV(model.BoundingBox(), a.cfg.Camera.FOVRadians())
	cam.SetViewport(a.cfg.Camera.Width, a.cfg.Camera.Height)
	return cam
}

func (a *app) measureModel(out io.Writer, model *stl.Model, mode measure.Mode, unit units.Unit, opts *measureOptions) error {
	if model.TriangleCount() == 0 {
		return errors.New("model has no triangles")
	}

	cam := a.camera(model)
	session := measurement.NewSession(measurement.Options{
		Mode:           mode,
		MaxPoints:      a.cfg.Measure.MaxPoints,
		Snapper:        &measure.Snapper{Threshold: a.cfg.Snap.Threshold},
		Surface:        model,
		Unit:           unit,
		MinLabelPixels: a.cfg.Label.MinPixels,
	}, a.log)

	for _, p := range opts.picks {
		ev, err := pickEvent(model, cam, p)
		if err != nil {
			return err
		}
		if _, err := session.Pick(ev); err != nil {
			if !errors.Is(err, measurement.ErrNoOrthogonalHit) {
				return err
			}
			fmt.Fprintf(out, "Warning: pick %s: %v\n", p, err)
		}
	}

	line := session.Current()
	d, err := session.Display(line, cam)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Measurement")
	fmt.Fprintln(out, "===========")
	if line.Mode == measure.ModePolyline && session.MaxPoints() > 0 {
		fmt.Fprintf(out, "Mode: %s, max %d (%s)\n", line.Mode, session.MaxPoints(), session.State())
	} else {
		fmt.Fprintf(out, "Mode: %s (%s)\n", line.Mode, session.State())
	}
	for i, anchor := range d.Anchors {
		fmt.Fprintf(out, "  %d: %s\n", i+1, analysis.FormatVector(anchor.Position()))
	}
	fmt.Fprintf(out, "Length: %s\n", d.Label.Text)
	fmt.Fprintf(out, "Centroid: %s\n", analysis.FormatVector(d.Centroid))
	if d.ShowLabel {
		fmt.Fprintf(out, "Label: shown at (%.1f, %.1f)\n", d.Label.ScreenPos.X, d.Label.ScreenPos.Y)
	} else {
		fmt.Fprintln(out, "Label: hidden (too small on screen)")
	}

	if opts.wkt {
		ls := measure.LineString(d.Anchors)
		if ls.IsEmpty() {
			return fmt.Errorf("wkt needs two anchors: %w", measure.ErrInsufficientPoints)
		}
		fmt.Fprintf(out, "WKT: %s\n", ls.AsText())
	}
	return nil
}

// pickEvent turns a --pick value into a pick event on the model
func pickEvent(model *stl.Model, cam *viewer.Camera, pick string) (measure.PickEvent, error) {
	values, err := parseFloats(pick)
	if err != nil {
		return measure.PickEvent{}, err
	}

	switch len(values) {
	case 2:
		if !geometry.NewVector3(values[0], values[1], 0).IsFinite() {
			return measure.PickEvent{}, fmt.Errorf("screen pick %q is not finite", pick)
		}
		origin, dir := cam.ScreenRay(values[0], values[1])
		hit, ok := model.Raycast(origin, dir)
		if !ok {
			return measure.PickEvent{}, fmt.Errorf("screen pick %q does not hit the model", pick)
		}
		return measure.PickEvent{
			WorldPosition:  hit.Position,
			SurfaceNormal:  hit.Normal,
			NearbyVertices: hit.Corners,
		}, nil

	case 3:
		p := geometry.NewVector3(values[0], values[1], values[2])
		if !p.IsFinite() {
			return measure.PickEvent{}, fmt.Errorf("pick %q is not a finite position", pick)
		}
		return measure.PickEvent{
			WorldPosition:  p,
			SurfaceNormal:  cam.Position.Sub(p).Normalize(),
			NearbyVertices: model.NearestVertices(p, snapCandidates),
		}, nil

	default:
		return measure.PickEvent{}, fmt.Errorf("pick %q must be x,y,z or sx,sy", pick)
	}
}
