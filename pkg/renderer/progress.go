package renderer

import (
	"image"
	"time"
)

// TileProgress describes a completed tile
type TileProgress struct {
	TileID    int             // Completed tile
	Bounds    image.Rectangle // Pixel bounds of the tile
	WorkerID  int             // Worker that rendered it
	Completed int             // Tiles completed so far, including this one (1-based)
	Total     int             // Total number of tiles in the image
	Elapsed   time.Duration   // Time since the render started

	// Image is the frame being rendered. Only pixels inside the bounds of
	// completed tiles are final; it must not be modified.
	Image *image.RGBA
}

// Fraction returns the completed share of the image in [0, 1]
func (p TileProgress) Fraction() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Completed) / float64(p.Total)
}

// ProgressReporter receives tile completion events. TileDone is always
// called from the goroutine that called Render, never from a worker.
type ProgressReporter interface {
	TileDone(progress TileProgress)
}

// ProgressFunc adapts a plain function to ProgressReporter
type ProgressFunc func(progress TileProgress)

// TileDone calls f(progress)
func (f ProgressFunc) TileDone(progress TileProgress) {
	f(progress)
}

type nopReporter struct{}

func (nopReporter) TileDone(TileProgress) {}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}
