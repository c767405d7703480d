package viewer

import "time"

// DefaultFrameWindow is the number of frames averaged by FrameStats
const DefaultFrameWindow = 60

// FrameStats keeps the durations of the most recent frames
type FrameStats struct {
	samples []time.Duration
	next    int
	count   int
	total   time.Duration
}

// NewFrameStats creates stats over a window of n frames
func NewFrameStats(n int) *FrameStats {
	if n <= 0 {
		n = DefaultFrameWindow
	}
	return &FrameStats{samples: make([]time.Duration, n)}
}

// Add records a frame duration, evicting the oldest once the window is full
func (f *FrameStats) Add(d time.Duration) {
	if f.count == len(f.samples) {
		f.total -= f.samples[f.next]
	} else {
		f.count++
	}
	f.samples[f.next] = d
	f.total += d
	f.next = (f.next + 1) % len(f.samples)
}

// Count returns the number of frames in the window
func (f *FrameStats) Count() int {
	return f.count
}

// Average returns the mean frame duration, 0 without samples
func (f *FrameStats) Average() time.Duration {
	if f.count == 0 {
		return 0
	}
	return f.total / time.Duration(f.count)
}

// FPS returns frames per second derived from the average duration
func (f *FrameStats) FPS() float64 {
	avg := f.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
