package measurement

import (
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/measure"
	"github.com/philipparndt/gomeasure/pkg/units"
)

// Label is the length label of a measurement, placed at its centroid
type Label struct {
	Text      string
	ScreenPos geometry.Vector2
}

// Display holds everything needed to draw one measurement line
type Display struct {
	Length    float64
	Centroid  geometry.Vector3
	ShowLabel bool
	Label     Label
	Anchors   []measure.Anchor
}

// Display computes the derived quantities of line as seen through camera
func (s *Session) Display(line *measure.Line, camera measure.Projector) (Display, error) {
	anchors := line.Anchors()

	centroid, err := measure.CentroidBounds(anchors)
	if err != nil {
		return Display{}, err
	}
	show, err := measure.IsScreenExtentAtLeast(anchors, camera, s.opts.MinLabelPixels)
	if err != nil {
		return Display{}, err
	}

	length := line.Length()
	return Display{
		Length:    length,
		Centroid:  centroid,
		ShowLabel: show,
		Label: Label{
			Text:      units.Format(length, s.opts.Unit),
			ScreenPos: camera.WorldToScreen(centroid),
		},
		Anchors: anchors,
	}, nil
}
