package cmd

import (
	"os"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/imageio"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/log"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
	"github.com/urfave/cli"
)

// RenderFrame renders a single frame of the selected scene and writes it to --out.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	out := ctx.String("out")
	if out == "-" {
		// Keep stdout clean for the image
		log.SetSink(os.Stderr)
	}

	sc, err := scene.Load(ctx.String("scene"))
	if err != nil {
		logger.Error(err)
		return err
	}

	cameraConfig := applyCameraFlags(ctx, sc.CameraConfig)
	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		logger.Error(err)
		return err
	}

	integratorInst, err := integrator.New(ctx.String("integrator"), cameraConfig.MaxDepth)
	if err != nil {
		logger.Error(err)
		return err
	}

	config := renderer.Config{
		TileSize:   ctx.Int("tile-size"),
		NumWorkers: ctx.Int("workers"),
		Seed:       ctx.Int64("seed"),
	}

	logger.Noticef(`rendering scene "%s" (%d spheres) with the %s integrator`,
		sc.Name, sc.World.Len(), ctx.String("integrator"))

	tracer := renderer.NewRaytracer(camera, sc.World, integratorInst, config, log.Printer{Logger: logger, Level: log.Info})
	tracer.SetProgressReporter(&progressLogger{step: 0.1})

	img, stats, err := tracer.Render()
	if err != nil {
		logger.Error(err)
		return err
	}

	if err := imageio.Save(out, img); err != nil {
		logger.Error(err)
		return err
	}
	if out != "-" {
		logger.Noticef("wrote %s", out)
	}

	displayFrameStats(stats)
	return nil
}

// applyCameraFlags overrides the scene's camera with the flags set on the command line
func applyCameraFlags(ctx *cli.Context, config renderer.CameraConfig) renderer.CameraConfig {
	if ctx.IsSet("width") {
		config.Width = ctx.Int("width")
	}
	if ctx.IsSet("aspect") {
		config.AspectRatio = ctx.Float64("aspect")
	}
	if ctx.IsSet("spp") {
		config.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("max-depth") {
		config.MaxDepth = ctx.Int("max-depth")
	}
	if ctx.IsSet("vfov") {
		config.VFov = ctx.Float64("vfov")
	}
	if ctx.IsSet("defocus-angle") {
		config.DefocusAngle = ctx.Float64("defocus-angle")
	}
	if ctx.IsSet("focus-dist") {
		config.FocusDistance = ctx.Float64("focus-dist")
	}
	return config
}

// progressLogger logs render progress every time another step of the frame completes
type progressLogger struct {
	step float64
	next float64
}

func (p *progressLogger) TileDone(progress renderer.TileProgress) {
	fraction := progress.Fraction()
	if fraction < p.next {
		return
	}
	for p.next <= fraction {
		p.next += p.step
	}
	logger.Infof("%3.0f%% complete (%d/%d tiles, %v)", 100*fraction, progress.Completed, progress.Total, progress.Elapsed)
}

var _ core.Logger = log.Printer{}
