package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

func (v Vec3Cfg) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type CameraCfg struct {
	Width           int     `json:"width"`
	AspectRatio     float64 `json:"aspectRatio"`
	VFov            float64 `json:"vfov"`
	LookFrom        Vec3Cfg `json:"lookFrom"`
	LookAt          Vec3Cfg `json:"lookAt"`
	Up              Vec3Cfg `json:"up"`
	DefocusAngle    float64 `json:"defocusAngle,omitempty"`
	FocusDistance   float64 `json:"focusDistance"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	MaxDepth        int     `json:"maxDepth"`
}

// MaterialCfg describes one named material. Type is lambertian, metal or dielectric.
type MaterialCfg struct {
	Type            string  `json:"type"`
	Albedo          Vec3Cfg `json:"albedo,omitempty"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractionIndex float64 `json:"refractionIndex,omitempty"`
}

type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// Config is the JSON form of a scene
type Config struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Camera      CameraCfg              `json:"camera"`
	Materials   map[string]MaterialCfg `json:"materials"`
	Spheres     []SphereCfg            `json:"spheres"`
}

// defaultCameraCfg fills camera fields a scene file leaves out
func defaultCameraCfg() CameraCfg {
	return CameraCfg{
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		VFov:            90,
		LookFrom:        Vec3Cfg{0, 0, 0},
		LookAt:          Vec3Cfg{0, 0, -1},
		Up:              Vec3Cfg{0, 1, 0},
		FocusDistance:   1,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

func (c CameraCfg) Build() renderer.CameraConfig {
	return renderer.CameraConfig{
		Width:           c.Width,
		AspectRatio:     c.AspectRatio,
		VFov:            c.VFov,
		LookFrom:        c.LookFrom.Vec3(),
		LookAt:          c.LookAt.Vec3(),
		Up:              c.Up.Vec3(),
		DefocusAngle:    c.DefocusAngle,
		FocusDistance:   c.FocusDistance,
		SamplesPerPixel: c.SamplesPerPixel,
		MaxDepth:        c.MaxDepth,
	}
}

func (m MaterialCfg) Build() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian":
		return material.NewLambertian(m.Albedo.Vec3()), nil
	case "metal":
		return material.NewMetal(m.Albedo.Vec3(), m.Fuzz), nil
	case "dielectric":
		dielectric, err := material.NewDielectric(m.RefractionIndex)
		if err != nil {
			return nil, err
		}
		return dielectric, nil
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}

// Build validates the configuration and constructs the scene
func (cfg *Config) Build() (*Scene, error) {
	cameraConfig := cfg.Camera.Build()
	if err := cameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("%w: camera: %w", ErrInvalidScene, err)
	}
	if len(cfg.Spheres) == 0 {
		return nil, fmt.Errorf("%w: scene has no spheres", ErrInvalidScene)
	}

	materials := make(map[string]material.Material, len(cfg.Materials))
	for name, mc := range cfg.Materials {
		mat, err := mc.Build()
		if err != nil {
			return nil, fmt.Errorf("%w: material %q: %w", ErrInvalidScene, name, err)
		}
		materials[name] = mat
	}

	s := NewScene(cfg.Name, cameraConfig)
	s.Description = cfg.Description
	for i, sc := range cfg.Spheres {
		mat, ok := materials[sc.Material]
		if !ok {
			return nil, fmt.Errorf("%w: sphere %d: unknown material %q", ErrInvalidScene, i, sc.Material)
		}
		if err := s.AddSphere(sc.Center.Vec3(), sc.Radius, mat); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
		}
	}

	return s, nil
}

// Parse decodes a JSON scene. Unknown fields are rejected and camera fields
// left out take their defaults.
func Parse(data []byte) (*Scene, error) {
	cfg := Config{Camera: defaultCameraCfg()}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return cfg.Build()
}

// LoadFile reads and parses a JSON scene file. A scene without a name is
// named after its file.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}
