package integrator

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe for concurrent use with distinct samplers.
type Integrator interface {
	// RayColor computes the color carried back along a camera ray
	RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Color
}

// searchInterval excludes hits closer than 0.001 to avoid shadow acne
var searchInterval = core.NewInterval(0.001, core.UniverseInterval.Max)

var skyTop = core.NewColor(0.5, 0.7, 1.0)

// Sky returns the background gradient for a ray that escaped the scene.
// It depends only on the normalized direction: white at the horizon
// blending to light blue overhead.
func Sky(ray core.Ray) core.Color {
	unitDirection := ray.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return core.Lerp(core.White, skyTop, a)
}

// ErrUnknownIntegrator is returned by New for a name with no implementation
var ErrUnknownIntegrator = errors.New("unknown integrator")

// Names lists the integrators New accepts
var Names = []string{"path", "normals"}

// New returns the integrator registered under name. maxDepth only applies
// to the path tracer.
func New(name string, maxDepth int) (Integrator, error) {
	switch name {
	case "path":
		return NewPathTracingIntegrator(maxDepth), nil
	case "normals":
		return NewNormalIntegrator(), nil
	default:
		return nil, fmt.Errorf("%w %q (expected path or normals)", ErrUnknownIntegrator, name)
	}
}
