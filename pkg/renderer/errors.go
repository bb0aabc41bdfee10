package renderer

import "errors"

var (
	// ErrInvalidConfig is wrapped by every camera configuration validation error.
	ErrInvalidConfig = errors.New("renderer: invalid camera configuration")

	// ErrInvalidRenderConfig is returned when the tiling or worker settings are unusable.
	ErrInvalidRenderConfig = errors.New("renderer: invalid render configuration")

	// ErrTileOutOfBounds is returned by a worker handed a tile outside the image.
	ErrTileOutOfBounds = errors.New("renderer: tile lies outside the image")

	// ErrWorkerPoolClosed is returned if the worker pool stops before all tiles report back.
	ErrWorkerPoolClosed = errors.New("renderer: worker pool closed unexpectedly")
)
