package geometry

import (
	"errors"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// ErrInvalidRadius is returned when a sphere is built with a non-positive radius
var ErrInvalidRadius = errors.New("geometry: sphere radius must be positive")

// Hittable interface for objects that can be hit by rays.
// Hit must be free of side effects so it can be called from many goroutines.
type Hittable interface {
	// Hit returns the nearest intersection whose t lies strictly inside rayT
	Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)
}
