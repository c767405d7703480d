package measure

import (
	"testing"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pickAt(x, y, z float64) PickEvent {
	return PickEvent{
		WorldPosition: geometry.NewVector3(x, y, z),
		SurfaceNormal: up,
	}
}

func TestTwoPointPolicy(t *testing.T) {
	line := NewLine(ModeTwoPoint)
	c := NewCreator(line, 2, DefaultSnapper())
	assert.Equal(t, Building, c.State())

	_, restarted := c.Pick(pickAt(0, 0, 0))
	assert.False(t, restarted)
	assert.Equal(t, Building, c.State())

	_, restarted = c.Pick(pickAt(1, 0, 0))
	assert.False(t, restarted)
	assert.Equal(t, Full, c.State())
	assert.InDelta(t, 1.0, line.Length(), 1e-10)

	third, restarted := c.Pick(pickAt(7, 7, 7))
	assert.True(t, restarted)
	assert.Equal(t, Building, c.State())
	require.Equal(t, 1, line.Len())

	last, err := line.Last()
	require.NoError(t, err)
	assert.Equal(t, third.ID(), last.ID())
	assert.Equal(t, geometry.NewVector3(7, 7, 7), last.Position())
}

func TestPolicyNeverExceedsMaxPoints(t *testing.T) {
	for _, max := range []int{1, 2, 3, 5} {
		line := NewLine(ModePolyline)
		c := NewCreator(line, max, DefaultSnapper())

		for i := 0; i < 4*max+1; i++ {
			c.Pick(pickAt(float64(i), 0, 0))
			assert.LessOrEqual(t, line.Len(), max)
			assert.GreaterOrEqual(t, line.Len(), 1)
		}
	}
}

func TestSinglePointPolicyRestartsEveryPick(t *testing.T) {
	line := NewLine(ModePolyline)
	c := NewCreator(line, 1, DefaultSnapper())

	c.Pick(pickAt(0, 0, 0))
	assert.Equal(t, Full, c.State())

	_, restarted := c.Pick(pickAt(1, 0, 0))
	assert.True(t, restarted)
	assert.Equal(t, 1, line.Len())
}

func TestUnboundedPolicy(t *testing.T) {
	line := NewLine(ModePolyline)
	c := NewCreator(line, 0, DefaultSnapper())

	for i := 0; i < 50; i++ {
		_, restarted := c.Pick(pickAt(float64(i), 0, 0))
		assert.False(t, restarted)
	}
	assert.Equal(t, 50, line.Len())
	assert.Equal(t, Building, c.State())
	assert.InDelta(t, 49.0, line.Length(), 1e-10)

	assert.Equal(t, 0, NewCreator(line, -3, DefaultSnapper()).MaxPoints())
}

func TestPolicySnapsPicks(t *testing.T) {
	line := NewLine(ModeTwoPoint)
	c := NewCreator(line, 2, Snapper{Threshold: 0.5})

	a, _ := c.Pick(PickEvent{
		WorldPosition:  geometry.NewVector3(0.1, 0, 0),
		SurfaceNormal:  up,
		NearbyVertices: []geometry.Vector3{geometry.NewVector3(0, 0, 0)},
	})
	assert.Equal(t, geometry.NewVector3(0, 0, 0), a.Position())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "building", Building.String())
	assert.Equal(t, "full", Full.String())
}
