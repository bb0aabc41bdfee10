package integrator

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// NormalIntegrator shades each hit by its surface normal mapped into [0, 1].
// Useful for checking geometry and camera setup without noise.
type NormalIntegrator struct{}

// NewNormalIntegrator creates a normal visualization integrator
func NewNormalIntegrator() *NormalIntegrator {
	return &NormalIntegrator{}
}

// RayColor returns 0.5*(normal+1) for a hit and the sky gradient otherwise
func (ni *NormalIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Color {
	hit, isHit := world.Hit(ray, searchInterval)
	if !isHit {
		return Sky(ray)
	}
	return hit.Normal.Add(core.White).Multiply(0.5)
}
