package viewer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameStatsEmpty(t *testing.T) {
	f := NewFrameStats(4)

	assert.Equal(t, time.Duration(0), f.Average())
	assert.Equal(t, 0.0, f.FPS())
	assert.Equal(t, 0, f.Count())
}

func TestFrameStatsAverage(t *testing.T) {
	f := NewFrameStats(4)
	f.Add(10 * time.Millisecond)
	f.Add(30 * time.Millisecond)

	assert.Equal(t, 20*time.Millisecond, f.Average())
	assert.InDelta(t, 50.0, f.FPS(), 1e-9)
}

func TestFrameStatsEvictsOldest(t *testing.T) {
	f := NewFrameStats(3)
	f.Add(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		f.Add(10 * time.Millisecond)
	}

	assert.Equal(t, 3, f.Count())
	assert.Equal(t, 10*time.Millisecond, f.Average())
	assert.InDelta(t, 100.0, f.FPS(), 1e-9)
}

func TestFrameStatsDefaultWindow(t *testing.T) {
	f := NewFrameStats(0)
	for i := 0; i < DefaultFrameWindow+5; i++ {
		f.Add(time.Millisecond)
	}
	assert.Equal(t, DefaultFrameWindow, f.Count())
}
