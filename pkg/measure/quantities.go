package measure

import (
	"math"
	"reflect"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// degenerateSegment is the squared direction length below which a segment has no direction
const degenerateSegment = 1e-12

// Projector maps world positions to screen pixels
type Projector interface {
	WorldToScreen(point geometry.Vector3) geometry.Vector2
}

// TotalLength returns the sum of distances between consecutive anchors.
// A single anchor measures 0.
func TotalLength(anchors []Anchor) (float64, error) {
	if len(anchors) == 0 {
		return 0, ErrInsufficientPoints
	}

	total := 0.0
	for i := 0; i < len(anchors)-1; i++ {
		total += anchors[i].position.Distance(anchors[i+1].position)
	}
	return total, nil
}

// CentroidBounds returns the center of the axis-aligned box around all anchors.
// This is not the mean of the points.
func CentroidBounds(anchors []Anchor) (geometry.Vector3, error) {
	if len(anchors) == 0 {
		return geometry.Vector3{}, ErrInsufficientPoints
	}

	box, _ := geometry.BoundsOf(anchors[0].position)
	for _, a := range anchors[1:] {
		box.Extend(a.position)
	}
	return box.Center(), nil
}

// ClampedProjection projects point onto the line through start and end, with
// the interpolation parameter clamped to [tMin, tMax]. A zero-length segment
// returns point unchanged.
func ClampedProjection(point, start, end geometry.Vector3, tMin, tMax float64) geometry.Vector3 {
	dir := end.Sub(start)
	dd := dir.Dot(dir)
	if dd <= degenerateSegment {
		return point
	}

	t := point.Sub(start).Dot(dir) / dd
	t = math.Max(tMin, math.Min(tMax, t))
	return start.Lerp(end, t)
}

// IsScreenExtentAtLeast reports whether the screen-space bounding box of the
// anchors has a diagonal of at least minPixels. Labels of measurements that
// are far away or edge-on stay hidden.
func IsScreenExtentAtLeast(anchors []Anchor, camera Projector, minPixels float64) (bool, error) {
	if len(anchors) == 0 {
		return false, ErrInsufficientPoints
	}
	if isNil(camera) {
		return false, ErrMissingCamera
	}

	var env geom.Envelope
	for _, a := range anchors {
		p := camera.WorldToScreen(a.position)
		env = env.ExpandToIncludeXY(geom.XY{X: p.X, Y: p.Y})
	}

	w, h := env.Width(), env.Height()
	return w*w+h*h >= minPixels*minPixels, nil
}

// isNil also catches typed nil pointers stored in the interface
func isNil(p Projector) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Positions returns the anchor positions in order
func Positions(anchors []Anchor) []geometry.Vector3 {
	out := make([]geometry.Vector3, len(anchors))
	for i, a := range anchors {
		out[i] = a.position
	}
	return out
}

// LineString converts the anchors into a 3D line string, e.g. for WKT export.
// Lines with fewer than two anchors produce an empty line string.
func LineString(anchors []Anchor) geom.LineString {
	if len(anchors) < 2 {
		return geom.LineString{}
	}
	flat := make([]float64, 0, len(anchors)*3)
	for _, a := range anchors {
		flat = append(flat, a.position.X, a.position.Y, a.position.Z)
	}
	return geom.NewLineString(geom.NewSequence(flat, geom.DimXYZ))
}
