package main

import (
	"os"

	"github.com/df07/go-sphere-tracer/cmd"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	defaults := renderer.DefaultConfig()

	app := cli.NewApp()
	app.Name = "sphere-tracer"
	app.Usage = "render sphere scenes using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a built-in scene or a JSON scene file. Camera flags override the
scene's own camera settings only when given.

The output format is chosen by the file extension (.ppm, .png, .jpg, .bmp,
.tif); "-" writes a PPM image to stdout.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "built-in scene name or path to a .json scene file",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "image width in pixels",
				},
				cli.Float64Flag{
					Name:  "aspect",
					Usage: "image aspect ratio (width / height)",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Usage: "maximum number of ray bounces",
				},
				cli.Float64Flag{
					Name:  "vfov",
					Usage: "vertical field of view in degrees",
				},
				cli.Float64Flag{
					Name:  "defocus-angle",
					Usage: "aperture cone angle in degrees, 0 disables depth of field",
				},
				cli.Float64Flag{
					Name:  "focus-dist",
					Usage: "distance to the plane of perfect focus",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: defaults.NumWorkers,
					Usage: "number of render workers, 0 uses every CPU",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: defaults.TileSize,
					Usage: "edge length of the square tiles handed to workers",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: defaults.Seed,
					Usage: "base random seed",
				},
				cli.StringFlag{
					Name:  "integrator",
					Value: "path",
					Usage: "light transport: path or normals",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:  "scenes",
			Usage: "list available scenes",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Value: "scenes",
					Usage: "directory searched for .json scene files",
				},
			},
			Action: cmd.ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve renders over HTTP",
			Description: `
Start a web server that renders scenes on request. /api/render streams
finished tiles as Server-Sent Events, /api/image responds with the encoded
frame.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to listen on",
				},
				cli.StringFlag{
					Name:  "dir",
					Value: "scenes",
					Usage: "directory searched for .json scene files",
				},
			},
			Action: cmd.Serve,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		os.Exit(1)
	}
}
