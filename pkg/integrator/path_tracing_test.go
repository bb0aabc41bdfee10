package integrator

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

const tolerance = 1e-9

func colorNear(a, b core.Color) bool {
	return a.Subtract(b).Length() < tolerance
}

// mockMaterial scatters along a fixed direction with a fixed attenuation
type mockMaterial struct {
	attenuation core.Color
	direction   core.Vec3
	absorb      bool
	calls       int
}

func (m *mockMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	m.calls++
	if m.absorb {
		return material.ScatterResult{}, false
	}
	return material.ScatterResult{
		Scattered:   core.NewRay(hit.Point, m.direction),
		Attenuation: m.attenuation,
	}, true
}

// mockWorld reports a hit for the first maxHits queries, then misses
type mockWorld struct {
	material material.Material
	maxHits  int
	queries  []core.Interval
}

func (w *mockWorld) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	w.queries = append(w.queries, rayT)
	if len(w.queries) > w.maxHits {
		return nil, false
	}
	hit := &material.HitRecord{T: 1, Point: ray.At(1), Material: w.material}
	hit.SetFaceNormal(ray, core.NewVec3(0, 1, 0))
	return hit, true
}

var upRay = core.NewRay(core.NewPoint(0, 0, 0), core.NewVec3(0, 1, 0))

func TestSky_DependsOnlyOnDirection(t *testing.T) {
	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Color
	}{
		{"straight up", core.NewVec3(0, 1, 0), core.NewColor(0.5, 0.7, 1.0)},
		{"straight down", core.NewVec3(0, -1, 0), core.White},
		{"horizon", core.NewVec3(1, 0, 0), core.NewColor(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, origin := range []core.Point{core.NewPoint(0, 0, 0), core.NewPoint(5, -3, 12)} {
				for _, scale := range []float64{1, 0.01, 250} {
					got := Sky(core.NewRay(origin, tt.direction.Multiply(scale)))
					if !colorNear(got, tt.expected) {
						t.Errorf("Origin %v scale %g: expected %v, got %v", origin, scale, tt.expected, got)
					}
				}
			}
		})
	}
}

func TestPathTracing_DepthZeroIsBlack(t *testing.T) {
	world := &mockWorld{material: &mockMaterial{attenuation: core.White, direction: core.NewVec3(0, 1, 0)}, maxHits: 100}
	integrator := NewPathTracingIntegrator(0)

	color := integrator.RayColor(upRay, world, core.NewSeededSampler(42))
	if color != core.Black {
		t.Errorf("Expected black for depth 0, got %v", color)
	}
	if len(world.queries) != 0 {
		t.Errorf("Expected no intersection queries at depth 0, got %d", len(world.queries))
	}
}

func TestPathTracing_MissReturnsSky(t *testing.T) {
	world := geometry.NewHittableList()
	integrator := NewPathTracingIntegrator(5)

	ray := core.NewRay(core.NewPoint(0, 0, 0), core.NewVec3(1, 1, 0))
	color := integrator.RayColor(ray, world, core.NewSeededSampler(42))
	if !colorNear(color, Sky(ray)) {
		t.Errorf("Expected sky %v, got %v", Sky(ray), color)
	}
}

func TestPathTracing_AbsorbedIsBlack(t *testing.T) {
	world := &mockWorld{material: &mockMaterial{absorb: true}, maxHits: 1}
	integrator := NewPathTracingIntegrator(10)

	if color := integrator.RayColor(upRay, world, core.NewSeededSampler(42)); color != core.Black {
		t.Errorf("Expected black for absorbed ray, got %v", color)
	}
}

func TestPathTracing_AttenuationProduct(t *testing.T) {
	attenuation := core.NewColor(0.5, 0.25, 0.8)
	mat := &mockMaterial{attenuation: attenuation, direction: core.NewVec3(0, 1, 0)}

	tests := []struct {
		name     string
		maxDepth int
		maxHits  int
		expected core.Color
	}{
		// Two bounces then escape straight up into the sky top color
		{"escapes after two bounces", 10, 2, attenuation.MultiplyVec(attenuation).MultiplyVec(core.NewColor(0.5, 0.7, 1.0))},
		// Depth runs out while still bouncing
		{"depth exhausted", 3, 100, core.Black},
		{"single bounce escapes", 2, 1, attenuation.MultiplyVec(core.NewColor(0.5, 0.7, 1.0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mat.calls = 0
			world := &mockWorld{material: mat, maxHits: tt.maxHits}
			color := NewPathTracingIntegrator(tt.maxDepth).RayColor(upRay, world, core.NewSeededSampler(1))
			if !colorNear(color, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestPathTracing_SearchIntervalStartsAtEpsilon(t *testing.T) {
	world := &mockWorld{material: &mockMaterial{absorb: true}, maxHits: 0}
	NewPathTracingIntegrator(1).RayColor(upRay, world, core.NewSeededSampler(42))

	if len(world.queries) != 1 {
		t.Fatalf("Expected one query, got %d", len(world.queries))
	}
	q := world.queries[0]
	if q.Min != 0.001 || !math.IsInf(q.Max, 1) {
		t.Errorf("Expected interval [0.001, +Inf), got %+v", q)
	}
}

func TestPathTracing_LambertianSphereIsDeterministic(t *testing.T) {
	sphere, err := geometry.NewSphere(core.NewPoint(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.7, 0.3, 0.3)))
	if err != nil {
		t.Fatal(err)
	}
	world := geometry.NewHittableList(sphere)
	integrator := NewPathTracingIntegrator(10)
	ray := core.NewRay(core.NewPoint(0, 0, 0), core.NewVec3(0, 0, -1))

	first := integrator.RayColor(ray, world, core.NewSeededSampler(7))
	second := integrator.RayColor(ray, world, core.NewSeededSampler(7))
	if first != second {
		t.Errorf("Expected identical colors for identical seeds, got %v and %v", first, second)
	}
	if first == core.Black {
		t.Error("Expected light to reach the camera off a diffuse sphere")
	}
}

func TestNormalIntegrator(t *testing.T) {
	sphere, err := geometry.NewSphere(core.NewPoint(0, 0, -1), 0.5, material.NewLambertian(core.White))
	if err != nil {
		t.Fatal(err)
	}
	world := geometry.NewHittableList(sphere)
	integrator := NewNormalIntegrator()
	sampler := core.NewSeededSampler(42)

	hitColor := integrator.RayColor(core.NewRay(core.NewPoint(0, 0, 0), core.NewVec3(0, 0, -1)), world, sampler)
	if !colorNear(hitColor, core.NewColor(0.5, 0.5, 1.0)) {
		t.Errorf("Expected normal (0,0,1) shaded as (0.5,0.5,1), got %v", hitColor)
	}

	miss := core.NewRay(core.NewPoint(0, 0, 0), core.NewVec3(0, 1, 0))
	if missColor := integrator.RayColor(miss, world, sampler); !colorNear(missColor, Sky(miss)) {
		t.Errorf("Expected sky on miss, got %v", missColor)
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		if _, err := New(name, 5); err != nil {
			t.Errorf("New(%q): %v", name, err)
		}
	}

	pt, err := New("path", 7)
	if err != nil {
		t.Fatal(err)
	}
	if depth := pt.(*PathTracingIntegrator).MaxDepth; depth != 7 {
		t.Errorf("Expected max depth 7, got %d", depth)
	}

	if _, err := New("bdpt", 5); !errors.Is(err, ErrUnknownIntegrator) {
		t.Errorf("Expected ErrUnknownIntegrator, got %v", err)
	}
}
