package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

var (
	// ErrUnknownScene is returned when no built-in scene has the requested name
	ErrUnknownScene = errors.New("scene: unknown scene")

	// ErrInvalidScene is wrapped by scene file validation errors
	ErrInvalidScene = errors.New("scene: invalid scene description")
)

// Scene contains all the elements needed for rendering. The world is built
// before rendering starts and only read afterwards.
type Scene struct {
	Name         string
	Description  string
	CameraConfig renderer.CameraConfig
	World        *geometry.HittableList
}

// NewScene creates an empty scene with the given camera
func NewScene(name string, cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		CameraConfig: cameraConfig,
		World:        geometry.NewHittableList(),
	}
}

// AddSphere adds a sphere to the world
func (s *Scene) AddSphere(center core.Point, radius float64, mat material.Material) error {
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		return fmt.Errorf("scene %q: sphere %d: %w", s.Name, s.World.Len(), err)
	}
	s.World.Add(sphere)
	return nil
}

// mustAddSpheres is for built-in scenes whose radii are known to be valid
func (s *Scene) mustAddSpheres(spheres ...sphereSpec) {
	for _, sp := range spheres {
		if err := s.AddSphere(sp.center, sp.radius, sp.material); err != nil {
			panic(err)
		}
	}
}

// mustDielectric is for built-in scenes whose refractive indices are known to be valid
func mustDielectric(refractiveIndex float64) *material.Dielectric {
	mat, err := material.NewDielectric(refractiveIndex)
	if err != nil {
		panic(err)
	}
	return mat
}

type sphereSpec struct {
	center   core.Point
	radius   float64
	material material.Material
}
