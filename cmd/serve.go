package cmd

import (
	"github.com/df07/go-sphere-tracer/web/server"
	"github.com/urfave/cli"
)

// Serve starts the HTTP render service
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	webServer := server.NewServer(ctx.Int("port"), ctx.String("dir"))
	if err := webServer.Start(); err != nil {
		logger.Errorf("error starting server: %v", err)
		return err
	}
	return nil
}
