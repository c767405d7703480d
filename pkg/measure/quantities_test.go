package measure

import (
	"testing"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orthoProjector drops Z and scales X/Y to pixels
type orthoProjector struct {
	scale float64
}

func (p *orthoProjector) WorldToScreen(point geometry.Vector3) geometry.Vector2 {
	return geometry.NewVector2(point.X*p.scale, point.Y*p.scale)
}

// flatProjector maps every point to the same pixel
type flatProjector struct{}

func (flatProjector) WorldToScreen(geometry.Vector3) geometry.Vector2 {
	return geometry.NewVector2(320, 240)
}

func TestTotalLength(t *testing.T) {
	anchors := []Anchor{anchorAt(0, 0, 0), anchorAt(3, 4, 0), anchorAt(3, 4, 12)}

	length, err := TotalLength(anchors)
	require.NoError(t, err)
	assert.InDelta(t, 17.0, length, 1e-10)

	reversed := []Anchor{anchors[2], anchors[1], anchors[0]}
	back, err := TotalLength(reversed)
	require.NoError(t, err)
	assert.InDelta(t, length, back, 1e-10)
}

func TestTotalLengthIsSumOfSegments(t *testing.T) {
	// a closed square measures its perimeter, not the start-to-end distance
	anchors := []Anchor{
		anchorAt(0, 0, 0), anchorAt(1, 0, 0), anchorAt(1, 1, 0), anchorAt(0, 1, 0), anchorAt(0, 0, 0),
	}

	length, err := TotalLength(anchors)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, length, 1e-10)
}

func TestTotalLengthEdgeCases(t *testing.T) {
	length, err := TotalLength([]Anchor{anchorAt(5, 5, 5)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, length)

	_, err = TotalLength(nil)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestCentroidBounds(t *testing.T) {
	center, err := CentroidBounds([]Anchor{anchorAt(0, 0, 0), anchorAt(10, 0, 0), anchorAt(0, 10, 0)})
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(5, 5, 0), center)

	single, err := CentroidBounds([]Anchor{anchorAt(-1, 2, -3)})
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(-1, 2, -3), single)

	_, err = CentroidBounds(nil)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestClampedProjection(t *testing.T) {
	start := geometry.NewVector3(0, 0, 0)
	end := geometry.NewVector3(10, 0, 0)

	tests := []struct {
		name  string
		point geometry.Vector3
		tMin  float64
		tMax  float64
		want  geometry.Vector3
	}{
		{"inside segment", geometry.NewVector3(5, 3, 0), 0, 1, geometry.NewVector3(5, 0, 0)},
		{"before start", geometry.NewVector3(-4, 2, 1), 0, 1, geometry.NewVector3(0, 0, 0)},
		{"after end", geometry.NewVector3(14, -2, 0), 0, 1, geometry.NewVector3(10, 0, 0)},
		{"extended range", geometry.NewVector3(14, -2, 0), 0, 2, geometry.NewVector3(14, 0, 0)},
		{"narrow range", geometry.NewVector3(9, 1, 1), 0.2, 0.5, geometry.NewVector3(5, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampedProjection(tt.point, start, end, tt.tMin, tt.tMax)
			assert.InDelta(t, tt.want.X, got.X, 1e-10)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-10)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-10)
		})
	}
}

func TestClampedProjectionDegenerateSegment(t *testing.T) {
	p := geometry.NewVector3(1, 2, 3)
	s := geometry.NewVector3(4, 4, 4)

	assert.Equal(t, p, ClampedProjection(p, s, s, 0, 1))
}

func TestIsScreenExtentAtLeast(t *testing.T) {
	anchors := []Anchor{anchorAt(0, 0, 0), anchorAt(3, 4, 0)}

	ok, err := IsScreenExtentAtLeast(anchors, &orthoProjector{scale: 10}, 50)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsScreenExtentAtLeast(anchors, &orthoProjector{scale: 10}, 50.01)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsScreenExtentAtLeastCoincidentProjections(t *testing.T) {
	anchors := []Anchor{anchorAt(0, 0, 0), anchorAt(100, 0, 0)}

	ok, err := IsScreenExtentAtLeast(anchors, flatProjector{}, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsScreenExtentAtLeast(anchors, flatProjector{}, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsScreenExtentAtLeastErrors(t *testing.T) {
	anchors := []Anchor{anchorAt(0, 0, 0)}

	_, err := IsScreenExtentAtLeast(anchors, nil, 10)
	assert.ErrorIs(t, err, ErrMissingCamera)

	var typedNil *orthoProjector
	_, err = IsScreenExtentAtLeast(anchors, typedNil, 10)
	assert.ErrorIs(t, err, ErrMissingCamera)

	_, err = IsScreenExtentAtLeast(nil, &orthoProjector{scale: 1}, 10)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestPositions(t *testing.T) {
	anchors := []Anchor{anchorAt(1, 0, 0), anchorAt(2, 0, 0)}

	assert.Equal(t, []geometry.Vector3{{X: 1}, {X: 2}}, Positions(anchors))
	assert.Empty(t, Positions(nil))
}

func TestLineString(t *testing.T) {
	ls := LineString([]Anchor{anchorAt(0, 0, 0), anchorAt(3, 4, 0), anchorAt(3, 4, 5)})

	assert.False(t, ls.IsEmpty())
	assert.Equal(t, geom.DimXYZ, ls.CoordinatesType())
	assert.Equal(t, 3, ls.Coordinates().Length())
	assert.Contains(t, ls.AsText(), "LINESTRING Z")

	assert.True(t, LineString([]Anchor{anchorAt(1, 1, 1)}).IsEmpty())
	assert.True(t, LineString(nil).IsEmpty())
}
