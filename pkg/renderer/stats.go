package renderer

import "time"

// FrameStats describes a single rendered frame
type FrameStats struct {
	Frame       int           // 1-based sample number of this frame
	Time        float64       // scene time the frame was traced at
	Pixels      int           // pixels traced
	PrimaryRays int           // camera rays traced, 4 per pixel with anti-aliasing
	Duration    time.Duration // wall time of the parallel trace
	Luminance   float64       // mean luminance of the accumulated image
}

// RenderStats aggregates statistics over several frames
type RenderStats struct {
	Frames      int
	PrimaryRays int
	Duration    time.Duration
}

// Add folds a frame into the totals
func (rs *RenderStats) Add(fs FrameStats) {
	rs.Frames++
	rs.PrimaryRays += fs.PrimaryRays
	rs.Duration += fs.Duration
}

// RaysPerSecond returns the primary ray throughput, or 0 before any
// measurable work
func (rs RenderStats) RaysPerSecond() float64 {
	if rs.Duration <= 0 {
		return 0
	}
	return float64(rs.PrimaryRays) / rs.Duration.Seconds()
}

// AverageFrameTime returns the mean wall time per frame
func (rs RenderStats) AverageFrameTime() time.Duration {
	if rs.Frames == 0 {
		return 0
	}
	return rs.Duration / time.Duration(rs.Frames)
}
