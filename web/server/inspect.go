package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Sphere       map[string]interface{} `json:"sphere,omitempty"`
	Material     map[string]interface{} `json:"material,omitempty"`
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Sphere    *geometry.Sphere // The sphere that was hit, nil if not found
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// hexColor formats a color as #rrggbb, clamping each channel to [0, 1)
func hexColor(c core.Color) string {
	channel := core.NewInterval(0, 0.999)
	return fmt.Sprintf("#%02x%02x%02x",
		int(255.999*channel.Clamp(c.X)), int(255.999*channel.Clamp(c.Y)), int(255.999*channel.Clamp(c.Z)))
}

// extractMaterialInfo describes a material with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray from the camera center through the center of
// pixel (x, y) and reports the nearest sphere it hits
func inspectPixel(camera *renderer.Camera, world *geometry.HittableList, x, y int) InspectResult {
	origin := camera.Center()
	ray := core.NewRay(origin, camera.PixelCenter(x, y).Subtract(origin))

	rayT := core.NewInterval(0.001, core.UniverseInterval.Max)
	hit, isHit := world.Hit(ray, rayT)
	if !isHit {
		return InspectResult{Hit: false}
	}

	// The list does not say which object was hit, so find the sphere with the same t
	for _, object := range world.Objects() {
		sphere, ok := object.(*geometry.Sphere)
		if !ok {
			continue
		}
		if sphereHit, ok := sphere.Hit(ray, rayT); ok && sphereHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Sphere: sphere}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	job, err := s.prepareRender(r.URL.Query())
	if err != nil {
		writeError(w, sceneErrorStatus(err), fmt.Errorf("invalid scene parameters: %w", err))
		return
	}

	x, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid x coordinate"))
		return
	}
	y, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid y coordinate"))
		return
	}

	camera := job.Camera
	if x < 0 || x >= camera.ImageWidth() || y < 0 || y >= camera.ImageHeight() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("pixel (%d, %d) outside %dx%d image",
			x, y, camera.ImageWidth(), camera.ImageHeight()))
		return
	}

	result := inspectPixel(camera, job.Scene.World, x, y)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	hit := result.HitRecord
	materialType, materialProps := extractMaterialInfo(hit.Material)
	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Material:     materialProps,
	}
	if result.Sphere != nil {
		response.Sphere = map[string]interface{}{
			"center": vecArray(result.Sphere.Center),
			"radius": result.Sphere.Radius,
		}
	}
	writeJSON(w, http.StatusOK, response)
}
