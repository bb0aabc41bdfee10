package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// NewGlassScene creates a row of glass spheres: solid, hollow and one
// enclosing a diffuse core, in front of a polished mirror sphere.
func NewGlassScene() *Scene {
	s := NewScene("glass", renderer.CameraConfig{
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		VFov:            40,
		LookFrom:        core.NewPoint(0, 0.75, 2),
		LookAt:          core.NewPoint(0, 0.25, -1),
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDistance:   3,
		SamplesPerPixel: 200,
		MaxDepth:        50,
	})
	s.Description = "Solid, hollow and filled glass spheres before a mirror"

	glass := mustDielectric(1.5)
	air := mustDielectric(1.0 / 1.5)

	s.mustAddSpheres(
		sphereSpec{core.NewPoint(0, -100, -1), 100, material.NewLambertian(core.NewColor(0.48, 0.48, 0.0))},

		// Solid
		sphereSpec{core.NewPoint(-1.1, 0.35, -1), 0.35, glass},

		// Hollow: an air bubble inside the glass
		sphereSpec{core.NewPoint(0, 0.35, -1), 0.35, glass},
		sphereSpec{core.NewPoint(0, 0.35, -1), 0.31, air},

		// Filled with a blue diffuse core
		sphereSpec{core.NewPoint(1.1, 0.35, -1), 0.35, glass},
		sphereSpec{core.NewPoint(1.1, 0.35, -1), 0.2, material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))},

		// Mirror
		sphereSpec{core.NewPoint(0, 1.2, -3), 1.2, material.NewMetal(core.NewColor(0.8, 0.8, 0.8), 0.0)},
	)

	return s
}
