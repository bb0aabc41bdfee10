package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.English)

// formatFrameStats renders the per-worker breakdown of a render as a table
func formatFrameStats(stats renderer.RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Tiles", "Pixels", "Samples", "Rays", "% of frame", "Busy time"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", stat.ID),
			numbers.Sprintf("%d", stat.Tiles),
			numbers.Sprintf("%d", stat.Pixels),
			numbers.Sprintf("%d", stat.Samples),
			numbers.Sprintf("%d", stat.RaysTraced),
			fmt.Sprintf("%02.1f %%", percentOf(stat.Pixels, stats.TotalPixels)),
			stat.Busy.Round(time.Millisecond).String(),
		})
	}
	table.SetFooter([]string{
		"TOTAL",
		numbers.Sprintf("%d", stats.Tiles),
		numbers.Sprintf("%d", stats.TotalPixels),
		numbers.Sprintf("%d", stats.TotalSamples),
		numbers.Sprintf("%d", stats.RaysTraced),
		numbers.Sprintf("%.0f rays/s", stats.RaysPerSecond()),
		stats.Duration.Round(time.Millisecond).String(),
	})

	table.Render()
	return buf.String()
}

func displayFrameStats(stats renderer.RenderStats) {
	logger.Noticef("frame statistics (%dx%d, %d spp)\n%s",
		stats.Width, stats.Height, stats.SamplesPerPixel, formatFrameStats(stats))
}

func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}
