package scene

import (
	"math/rand"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// bookCoverSeed fixes the sphere layout so every render of the scene matches
const bookCoverSeed = 1337

// NewBookCoverScene creates a jittered 22x22 grid of small random spheres
// around three large feature spheres, viewed with a shallow depth of field.
func NewBookCoverScene() *Scene {
	s := NewScene("book-cover", renderer.CameraConfig{
		Width:           600,
		AspectRatio:     16.0 / 9.0,
		VFov:            20,
		LookFrom:        core.NewPoint(13, 2, 3),
		LookAt:          core.NewPoint(0, 0, 0),
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    0.6,
		FocusDistance:   10,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})
	s.Description = "Field of random small spheres around three large ones, with depth of field"

	random := rand.New(rand.NewSource(bookCoverSeed))
	randomColor := func(lo, hi float64) core.Color {
		return core.NewColor(
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
		)
	}

	s.mustAddSpheres(sphereSpec{core.NewPoint(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))})

	clearing := core.NewPoint(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewPoint(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			// Keep the area around the metal feature sphere clear
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				mat = material.NewLambertian(randomColor(0, 1).MultiplyVec(randomColor(0, 1)))
			case chooseMat < 0.95:
				mat = material.NewMetal(randomColor(0.5, 1), 0.5*random.Float64())
			default:
				mat = mustDielectric(1.5)
			}
			s.mustAddSpheres(sphereSpec{center, 0.2, mat})
		}
	}

	s.mustAddSpheres(
		sphereSpec{core.NewPoint(0, 1, 0), 1.0, mustDielectric(1.5)},
		sphereSpec{core.NewPoint(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))},
		sphereSpec{core.NewPoint(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)},
	)

	return s
}
