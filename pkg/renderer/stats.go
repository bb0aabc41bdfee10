package renderer

import (
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width, Height   int           // Image dimensions
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera samples taken
	SamplesPerPixel int           // Samples taken for every pixel
	RaysTraced      int64         // Scene intersection queries, camera and bounce rays
	Tiles           int           // Number of tiles rendered
	Duration        time.Duration // Wall clock time of the render
	Workers         []WorkerStats // Per-worker breakdown, indexed by worker ID
}

// WorkerStats tracks the work done by a single worker
type WorkerStats struct {
	ID         int
	Tiles      int
	Pixels     int
	Samples    int
	RaysTraced int64
	Busy       time.Duration // Time spent rendering tiles
}

// TileStats is what a worker reports after rendering one tile
type TileStats struct {
	Pixels     int
	Samples    int
	RaysTraced int64
	Duration   time.Duration
}

// RaysPerSecond returns the average ray throughput of the render
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.RaysTraced) / s.Duration.Seconds()
}

// addTile folds one tile result into the totals and its worker's breakdown
func (s *RenderStats) addTile(workerID int, tile TileStats) {
	s.Tiles++
	s.TotalPixels += tile.Pixels
	s.TotalSamples += tile.Samples
	s.RaysTraced += tile.RaysTraced

	if workerID < 0 || workerID >= len(s.Workers) {
		return
	}
	w := &s.Workers[workerID]
	w.Tiles++
	w.Pixels += tile.Pixels
	w.Samples += tile.Samples
	w.RaysTraced += tile.RaysTraced
	w.Busy += tile.Duration
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Color // RGB accumulator for final result
	SampleCount int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the average color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Black
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
