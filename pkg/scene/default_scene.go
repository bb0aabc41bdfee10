package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// frontCamera looks down -Z from the origin with a 90 degree field of view,
// which puts a viewport of height 2 at distance 1.
func frontCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		VFov:            90,
		LookFrom:        core.NewPoint(0, 0, 0),
		LookAt:          core.NewPoint(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDistance:   1,
		SamplesPerPixel: 500,
		MaxDepth:        50,
	}
}

// NewDefaultScene creates the three-material showcase: a diffuse sphere
// between a hollow glass sphere and a rough gold metal sphere.
func NewDefaultScene() *Scene {
	s := NewScene("default", frontCamera())
	s.Description = "Diffuse, hollow glass and fuzzy metal spheres on a yellow ground"

	materialGround := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	materialLeft := mustDielectric(1.50)
	materialBubble := mustDielectric(1.00 / 1.50)
	materialRight := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 1.0)

	s.mustAddSpheres(
		sphereSpec{core.NewPoint(0.0, -100.5, -1.0), 100.0, materialGround},
		sphereSpec{core.NewPoint(0.0, 0.0, -1.2), 0.5, materialCenter},
		sphereSpec{core.NewPoint(-1.0, 0.0, -1.0), 0.5, materialLeft},
		sphereSpec{core.NewPoint(-1.0, 0.0, -1.0), 0.4, materialBubble},
		sphereSpec{core.NewPoint(1.0, 0.0, -1.0), 0.5, materialRight},
	)

	return s
}

// NewTwoSpheresScene creates a single sphere resting on a ground sphere
func NewTwoSpheresScene() *Scene {
	config := frontCamera()
	config.SamplesPerPixel = 100
	s := NewScene("two-spheres", config)
	s.Description = "Grey diffuse sphere on a grey ground sphere"

	gray := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	s.mustAddSpheres(
		sphereSpec{core.NewPoint(0, 0, -1), 0.5, gray},
		sphereSpec{core.NewPoint(0, -100.5, -1), 100, gray},
	)

	return s
}
