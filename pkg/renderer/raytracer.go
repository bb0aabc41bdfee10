package renderer

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// Config contains the parallelism settings of a render
type Config struct {
	TileSize   int   // Size of each square tile in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; tile n samples from Seed+n
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       42,
	}
}

// Validate checks the tiling and worker settings
func (c Config) Validate() error {
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidRenderConfig, c.TileSize)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidRenderConfig, c.NumWorkers)
	}
	return nil
}

// Workers returns the effective number of workers
func (c Config) Workers() int {
	if c.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}

// Raytracer renders a world through a camera by splitting the image into
// tiles and sampling them on a worker pool.
type Raytracer struct {
	camera     *Camera
	world      geometry.Hittable
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
	reporter   ProgressReporter
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(camera *Camera, world geometry.Hittable, integratorInst integrator.Integrator, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
		reporter:   nopReporter{},
	}
}

// SetProgressReporter installs a reporter for tile completion events
func (rt *Raytracer) SetProgressReporter(reporter ProgressReporter) {
	if reporter == nil {
		reporter = nopReporter{}
	}
	rt.reporter = reporter
}

// Render samples every pixel and returns the quantized image, row-major with
// the top row first. The result is fully determined by the camera, world,
// integrator and seed; the number of workers does not change it.
func (rt *Raytracer) Render() (*image.RGBA, RenderStats, error) {
	return rt.RenderContext(context.Background())
}

// RenderContext is Render with cancellation. Once ctx is done the remaining
// tiles are skipped and ctx.Err() is returned.
func (rt *Raytracer) RenderContext(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	start := time.Now()
	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)

	workerPool := NewWorkerPool(NewTileRenderer(rt.camera, rt.world, rt.integrator), rt.config.Workers(), len(tiles))
	workerPool.Start()
	defer workerPool.Stop()

	samplesPerPixel := rt.camera.Config().SamplesPerPixel
	rt.logger.Printf("Rendering %dx%d at %d samples per pixel, max depth %d (%d tiles, %d workers)\n",
		width, height, samplesPerPixel, rt.camera.Config().MaxDepth, len(tiles), workerPool.GetNumWorkers())

	for taskID, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: taskID, Image: img, Context: ctx})
	}

	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samplesPerPixel,
		Workers:         make([]WorkerStats, workerPool.GetNumWorkers()),
	}
	for i := range stats.Workers {
		stats.Workers[i].ID = i
	}

	// Collect results and dispatch progress on this goroutine only
	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, ErrWorkerPoolClosed
		}
		if result.Error != nil {
			return nil, RenderStats{}, result.Error
		}

		stats.addTile(result.WorkerID, result.Stats)
		tile := tiles[result.TaskID]
		rt.reporter.TileDone(TileProgress{
			TileID:    tile.ID,
			Bounds:    tile.Bounds,
			WorkerID:  result.WorkerID,
			Completed: i + 1,
			Total:     len(tiles),
			Elapsed:   time.Since(start),
			Image:     img,
		})
	}

	stats.Duration = time.Since(start)
	rt.logger.Printf("Render completed in %v (%d rays traced)\n", stats.Duration, stats.RaysTraced)

	return img, stats, nil
}
