package renderer

import (
	"image"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator.
// It holds no mutable state and is shared by all workers.
type TileRenderer struct {
	camera     *Camera
	world      geometry.Hittable
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer for the given camera, world and integrator
func NewTileRenderer(camera *Camera, world geometry.Hittable, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
	}
}

// RenderTileBounds renders every pixel within bounds into img. Pixels outside
// bounds are not touched, so concurrent calls with disjoint bounds are safe.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, img *image.RGBA, sampler core.Sampler) TileStats {
	start := time.Now()
	samplesPerPixel := tr.camera.Config().SamplesPerPixel
	world := &countingHittable{world: tr.world}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			var ps PixelStats
			for s := 0; s < samplesPerPixel; s++ {
				ray := tr.camera.GetRay(i, j, sampler)
				ps.AddSample(tr.integrator.RayColor(ray, world, sampler))
			}
			img.SetRGBA(i, j, core.ToRGBA(ps.GetColor()))
		}
	}

	pixels := bounds.Dx() * bounds.Dy()
	return TileStats{
		Pixels:     pixels,
		Samples:    pixels * samplesPerPixel,
		RaysTraced: world.queries,
		Duration:   time.Since(start),
	}
}

// countingHittable counts intersection queries against the wrapped world.
// One is created per tile, so the counter needs no synchronization.
type countingHittable struct {
	world   geometry.Hittable
	queries int64
}

func (c *countingHittable) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	c.queries++
	return c.world.Hit(ray, rayT)
}
