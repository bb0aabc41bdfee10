package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the built-in scenes and any JSON scenes in --dir.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	scenes, err := scene.ListScenes(ctx.String("dir"))
	if err != nil {
		logger.Error(err)
		return err
	}

	fmt.Fprint(ctx.App.Writer, formatSceneTable(scenes))
	return nil
}

func formatSceneTable(scenes []scene.SceneInfo) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Type", "Spheres", "Description"})
	for _, info := range scenes {
		name := info.Name
		if info.FilePath != "" {
			name = info.FilePath
		}
		table.Append([]string{
			name,
			info.Type,
			fmt.Sprintf("%d", info.Spheres),
			info.Description,
		})
	}

	table.Render()
	return buf.String()
}
