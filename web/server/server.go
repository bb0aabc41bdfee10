package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/log"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

var logger = log.New("web")

// Request limits shared by the render endpoints and reported by /api/scene-config
const (
	minWidth, maxWidth       = 16, 2000
	minSamples, maxSamples   = 1, 10000
	minDepth, maxDepth       = 0, 500
	minTileSize, maxTileSize = 4, 256
	maxWorkers               = 256
	defaultScene             = "default"
)

// Server handles web requests for the sphere tracer
type Server struct {
	port     int
	sceneDir string
}

// NewServer creates a new web server. JSON scenes are only read from sceneDir.
func NewServer(port int, sceneDir string) *Server {
	return &Server{port: port, sceneDir: sceneDir}
}

// RenderRequest holds the parsed parameters of a render request
type RenderRequest struct {
	Scene           string `json:"scene"`           // Built-in scene name or .json file in the scene directory
	Width           int    `json:"width"`           // Image width
	SamplesPerPixel int    `json:"samplesPerPixel"` // Samples per pixel
	MaxDepth        int    `json:"maxDepth"`        // Maximum bounce depth
	Integrator      string `json:"integrator"`      // "path" or "normals"
	TileSize        int    `json:"tileSize"`
	Workers         int    `json:"workers"` // 0 = use CPU count
	Seed            int64  `json:"seed"`
}

// renderJob is a validated request with everything the raytracer needs
type renderJob struct {
	Request    RenderRequest
	Scene      *scene.Scene
	Camera     *renderer.Camera
	Integrator integrator.Integrator
	Config     renderer.Config
}

// Stats represents render statistics
type Stats struct {
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	TotalPixels     int     `json:"totalPixels"`
	TotalSamples    int     `json:"totalSamples"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	RaysTraced      int64   `json:"raysTraced"`
	RaysPerSecond   float64 `json:"raysPerSecond"`
	Tiles           int     `json:"tiles"`
	Workers         int     `json:"workers"`
	ElapsedMs       int64   `json:"elapsedMs"`
}

func newStats(stats renderer.RenderStats) Stats {
	return Stats{
		Width:           stats.Width,
		Height:          stats.Height,
		TotalPixels:     stats.TotalPixels,
		TotalSamples:    stats.TotalSamples,
		SamplesPerPixel: stats.SamplesPerPixel,
		RaysTraced:      stats.RaysTraced,
		RaysPerSecond:   stats.RaysPerSecond(),
		Tiles:           stats.Tiles,
		Workers:         len(stats.Workers),
		ElapsedMs:       stats.Duration.Milliseconds(),
	}
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/image", s.handleImage)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the JSON scenes in the scene directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListScenes(s.sceneDir)
	if err != nil {
		logger.Error(err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	type sceneEntry struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Type        string `json:"type"`
		File        string `json:"file,omitempty"`
		Spheres     int    `json:"spheres"`
	}
	entries := make([]sceneEntry, 0, len(scenes))
	for _, info := range scenes {
		entry := sceneEntry{
			Name:        info.Name,
			Description: info.Description,
			Type:        info.Type,
			Spheres:     info.Spheres,
		}
		if info.FilePath != "" {
			entry.File = filepath.Base(info.FilePath)
		}
		entries = append(entries, entry)
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleSceneConfig returns the default camera settings of a scene along
// with the limits accepted by the render endpoints
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = defaultScene
	}

	sc, err := s.loadScene(sceneName)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err)
		return
	}

	config := sc.CameraConfig
	response := map[string]interface{}{
		"scene":       sceneName,
		"description": sc.Description,
		"spheres":     sc.World.Len(),
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.ImageHeight(),
			"aspectRatio":     config.AspectRatio,
			"vfov":            config.VFov,
			"defocusAngle":    config.DefocusAngle,
			"focusDistance":   config.FocusDistance,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"tileSize":        renderer.DefaultConfig().TileSize,
			"seed":            renderer.DefaultConfig().Seed,
		},
		"integrators": integrator.Names,
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": minWidth, "max": maxWidth},
			"samplesPerPixel": map[string]int{"min": minSamples, "max": maxSamples},
			"maxDepth":        map[string]int{"min": minDepth, "max": maxDepth},
			"tileSize":        map[string]int{"min": minTileSize, "max": maxTileSize},
			"workers":         map[string]int{"min": 0, "max": maxWorkers},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// loadScene resolves a built-in scene name or a JSON file inside the scene directory
func (s *Server) loadScene(name string) (*scene.Scene, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		// Only the file name is honored so requests cannot leave the scene directory
		return scene.LoadFile(filepath.Join(s.sceneDir, filepath.Base(name)))
	}
	return scene.Lookup(name)
}

// prepareRender parses the request parameters on top of the scene defaults
// and builds the camera and integrator
func (s *Server) prepareRender(values url.Values) (*renderJob, error) {
	req := RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	sc, err := s.loadScene(req.Scene)
	if err != nil {
		return nil, err
	}
	cameraConfig := sc.CameraConfig
	defaults := renderer.DefaultConfig()

	if req.Width, err = parseIntParam(values, "width", cameraConfig.Width, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "samplesPerPixel", cameraConfig.SamplesPerPixel, minSamples, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", cameraConfig.MaxDepth, minDepth, maxDepth); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(values, "tileSize", defaults.TileSize, minTileSize, maxTileSize); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(values, "workers", defaults.NumWorkers, 0, maxWorkers); err != nil {
		return nil, err
	}
	if req.Seed, err = parseSeedParam(values, "seed", defaults.Seed); err != nil {
		return nil, err
	}
	if req.Integrator = values.Get("integrator"); req.Integrator == "" {
		req.Integrator = "path"
	}

	cameraConfig.Width = req.Width
	cameraConfig.SamplesPerPixel = req.SamplesPerPixel
	cameraConfig.MaxDepth = req.MaxDepth

	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return nil, err
	}
	integratorInst, err := integrator.New(req.Integrator, req.MaxDepth)
	if err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*camera.ImageHeight() > 800*600 && req.SamplesPerPixel > 100 {
		logger.Warningf("large image with high samples may render slowly (%dx%d, %d spp)",
			req.Width, camera.ImageHeight(), req.SamplesPerPixel)
	}

	return &renderJob{
		Request:    req,
		Scene:      sc,
		Camera:     camera,
		Integrator: integratorInst,
		Config: renderer.Config{
			TileSize:   req.TileSize,
			NumWorkers: req.Workers,
			Seed:       req.Seed,
		},
	}, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseSeedParam parses a 64-bit seed from URL query
func parseSeedParam(values url.Values, key string, defaultValue int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// sceneErrorStatus maps scene loading errors to an HTTP status
func sceneErrorStatus(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) || errors.Is(err, fs.ErrNotExist) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
