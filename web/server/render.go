package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/imageio"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileID     int    `json:"tileId"`
	X          int    `json:"x"` // Left edge of the tile in pixels
	Y          int    `json:"y"` // Top edge of the tile in pixels
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	WorkerID   int    `json:"workerId"`
	TileNumber int    `json:"tileNumber"` // Tiles completed so far (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
	ElapsedMs  int64  `json:"elapsedMs"`
}

// CompleteUpdate is the final SSE event of a successful render
type CompleteUpdate struct {
	Request   RenderRequest `json:"request"`
	ImageData string        `json:"imageData"` // Base64 encoded PNG of the whole frame
	Stats     Stats         `json:"stats"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a frame and streams each finished tile via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single SSE writer goroutine; the handler waits for it before returning
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	job, err := s.prepareRender(r.URL.Query())
	if err != nil {
		s.sendError(sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Setup console logging and streaming
	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(consoleChan, sseEventChan)
	}()

	img, stats, err := s.runRender(ctx, job, webLogger, func(progress renderer.TileProgress) {
		update, err := newTileUpdate(progress)
		if err != nil {
			logger.Errorf("error encoding tile %d: %v", progress.TileID, err)
			return
		}
		s.sendJSON(sseEventChan, "tile", update)
	})

	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.sendError(sseEventChan, fmt.Sprintf("Render error: %v", err))
		return
	}

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		s.sendError(sseEventChan, fmt.Sprintf("failed to encode image: %v", err))
		return
	}
	s.sendJSON(sseEventChan, "complete", CompleteUpdate{
		Request:   job.Request,
		ImageData: imageData,
		Stats:     newStats(stats),
	})
}

// handleImage renders a frame and responds with the encoded image. The
// format query parameter picks the encoding (png, jpg, bmp, tif or ppm).
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "png"
	}
	filename := "render." + format
	encode, err := imageio.EncoderFor(filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	job, err := s.prepareRender(r.URL.Query())
	if err != nil {
		writeError(w, sceneErrorStatus(err), err)
		return
	}

	renderID := fmt.Sprintf("image-%d", time.Now().UnixNano())
	img, stats, err := s.runRender(r.Context(), job, NewWebLogger(renderID, nil), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Rays-Traced", fmt.Sprintf("%d", stats.RaysTraced))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// runRender renders the job, reporting finished tiles to onTile when set
func (s *Server) runRender(ctx context.Context, job *renderJob, webLogger core.Logger, onTile func(renderer.TileProgress)) (*image.RGBA, renderer.RenderStats, error) {
	logger.Infof(`rendering scene "%s" at %dx%d, %d spp, max depth %d, %s integrator`,
		job.Scene.Name, job.Camera.ImageWidth(), job.Camera.ImageHeight(),
		job.Request.SamplesPerPixel, job.Request.MaxDepth, job.Request.Integrator)

	tracer := renderer.NewRaytracer(job.Camera, job.Scene.World, job.Integrator, job.Config, webLogger)
	if onTile != nil {
		tracer.SetProgressReporter(renderer.ProgressFunc(onTile))
	}
	return tracer.RenderContext(ctx)
}

// newTileUpdate encodes the pixels of a finished tile
func newTileUpdate(progress renderer.TileProgress) (TileUpdate, error) {
	imageData, err := imageToBase64PNG(progress.Image.SubImage(progress.Bounds))
	if err != nil {
		return TileUpdate{}, err
	}
	return TileUpdate{
		TileID:     progress.TileID,
		X:          progress.Bounds.Min.X,
		Y:          progress.Bounds.Min.Y,
		Width:      progress.Bounds.Dx(),
		Height:     progress.Bounds.Dy(),
		ImageData:  imageData,
		WorkerID:   progress.WorkerID,
		TileNumber: progress.Completed,
		TotalTiles: progress.Total,
		ElapsedMs:  progress.Elapsed.Milliseconds(),
	}, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents writes all SSE events from a single goroutine until the
// channel is closed. After the client goes away events are drained and
// dropped so senders never block.
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	disconnected := false

	for event := range sseEventChan {
		if disconnected || ctx.Err() != nil {
			continue
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			// Client disconnected during write
			disconnected = true
			continue
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages as SSE events until consoleChan is closed
func (s *Server) streamConsoleMessages(consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		s.sendJSON(sseEventChan, "console", consoleMsg)
	}
}

// sendJSON marshals data and queues it as an SSE event
func (s *Server) sendJSON(sseEventChan chan<- SSEEvent, eventType string, data interface{}) {
	encoded, err := json.Marshal(data)
	if err != nil {
		logger.Errorf("error marshaling %s event: %v", eventType, err)
		return
	}
	sseEventChan <- SSEEvent{Type: eventType, Data: string(encoded)}
}

// sendError logs the message and queues it as an SSE error event
func (s *Server) sendError(sseEventChan chan<- SSEEvent, message string) {
	logger.Warning(message)
	s.sendJSON(sseEventChan, "error", map[string]string{"error": message})
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, "tile.png", img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
