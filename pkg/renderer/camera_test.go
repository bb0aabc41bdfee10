package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

const tolerance = 1e-9

func vecNear(a, b core.Vec3, tol float64) bool {
	return a.Subtract(b).Length() <= tol
}

// testCameraConfig looks down -Z from the origin with a 2x2 viewport at distance 1
func testCameraConfig() CameraConfig {
	return CameraConfig{
		Width:           101,
		AspectRatio:     1.0,
		VFov:            90,
		LookFrom:        core.NewPoint(0, 0, 0),
		LookAt:          core.NewPoint(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDistance:   1,
		SamplesPerPixel: 1,
		MaxDepth:        1,
	}
}

func mustCamera(t *testing.T, config CameraConfig) *Camera {
	t.Helper()
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	return camera
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CameraConfig)
	}{
		{"zero width", func(c *CameraConfig) { c.Width = 0 }},
		{"negative aspect", func(c *CameraConfig) { c.AspectRatio = -1 }},
		{"NaN aspect", func(c *CameraConfig) { c.AspectRatio = math.NaN() }},
		{"zero fov", func(c *CameraConfig) { c.VFov = 0 }},
		{"straight angle fov", func(c *CameraConfig) { c.VFov = 180 }},
		{"zero focus distance", func(c *CameraConfig) { c.FocusDistance = 0 }},
		{"zero samples", func(c *CameraConfig) { c.SamplesPerPixel = 0 }},
		{"negative depth", func(c *CameraConfig) { c.MaxDepth = -1 }},
		{"look-at equals look-from", func(c *CameraConfig) { c.LookAt = c.LookFrom }},
		{"up parallel to view", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testCameraConfig()
			tt.modify(&config)

			if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
			if camera, err := NewCamera(config); err == nil || camera != nil {
				t.Errorf("Expected NewCamera to fail, got %v, %v", camera, err)
			}
		})
	}

	if err := testCameraConfig().Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	zeroDepth := testCameraConfig()
	zeroDepth.MaxDepth = 0
	if err := zeroDepth.Validate(); err != nil {
		t.Errorf("Expected max depth 0 to be valid, got %v", err)
	}
}

func TestCameraConfig_ImageHeight(t *testing.T) {
	tests := []struct {
		width    int
		aspect   float64
		expected int
	}{
		{400, 16.0 / 9.0, 225},
		{400, 1.0, 400},
		{10, 3.0, 3},
		{1, 10.0, 1}, // never below one row
	}

	for _, tt := range tests {
		config := testCameraConfig()
		config.Width = tt.width
		config.AspectRatio = tt.aspect

		if got := config.ImageHeight(); got != tt.expected {
			t.Errorf("Width %d aspect %g: expected height %d, got %d", tt.width, tt.aspect, tt.expected, got)
		}
		if got := mustCamera(t, config).ImageHeight(); got != tt.expected {
			t.Errorf("Camera height for width %d aspect %g: expected %d, got %d", tt.width, tt.aspect, tt.expected, got)
		}
	}
}

func TestCamera_CenterPixelLooksAhead(t *testing.T) {
	camera := mustCamera(t, testCameraConfig())

	ray := camera.GetRayWithOffset(50, 50, 0, 0, core.NewSeededSampler(42))
	if !vecNear(ray.Origin, core.NewPoint(0, 0, 0), tolerance) {
		t.Errorf("Expected origin at camera center, got %v", ray.Origin)
	}
	if !vecNear(ray.Direction, core.NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("Expected direction (0,0,-1), got %v", ray.Direction)
	}
}

func TestCamera_ViewportCorners(t *testing.T) {
	camera := mustCamera(t, testCameraConfig())
	sampler := core.NewSeededSampler(42)

	tests := []struct {
		name       string
		i, j       int
		offsetX    float64
		offsetY    float64
		expectedAt core.Point
	}{
		{"upper left", 0, 0, -0.5, -0.5, core.NewPoint(-1, 1, -1)},
		{"upper right", 100, 0, 0.5, -0.5, core.NewPoint(1, 1, -1)},
		{"lower left", 0, 100, -0.5, 0.5, core.NewPoint(-1, -1, -1)},
		{"lower right", 100, 100, 0.5, 0.5, core.NewPoint(1, -1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRayWithOffset(tt.i, tt.j, tt.offsetX, tt.offsetY, sampler)
			if !vecNear(ray.At(1), tt.expectedAt, 1e-9) {
				t.Errorf("Expected viewport corner %v, got %v", tt.expectedAt, ray.At(1))
			}
		})
	}
}

func TestCamera_JitterStaysInsidePixel(t *testing.T) {
	camera := mustCamera(t, testCameraConfig())
	sampler := core.NewSeededSampler(7)
	pixelSize := 2.0 / 101.0

	for n := 0; n < 1000; n++ {
		i, j := n%101, (n*37)%101
		ray := camera.GetRay(i, j, sampler)
		center := camera.PixelCenter(i, j)

		// No defocus: the ray passes through the sample point on the focus plane
		sample := ray.At(1)
		if math.Abs(sample.X-center.X) > pixelSize/2+tolerance || math.Abs(sample.Y-center.Y) > pixelSize/2+tolerance {
			t.Fatalf("Pixel (%d,%d): sample %v outside pixel centered at %v", i, j, sample, center)
		}
		if ray.Origin != camera.Center() {
			t.Fatalf("Expected origin %v, got %v", camera.Center(), ray.Origin)
		}
	}
}

func TestCamera_FrameFollowsLookAt(t *testing.T) {
	config := testCameraConfig()
	config.LookFrom = core.NewPoint(2, 3, 4)
	config.LookAt = core.NewPoint(7, 3, 4)
	camera := mustCamera(t, config)

	ray := camera.GetRayWithOffset(50, 50, 0, 0, core.NewSeededSampler(42))
	if !vecNear(ray.Origin, config.LookFrom, tolerance) {
		t.Errorf("Expected origin %v, got %v", config.LookFrom, ray.Origin)
	}
	if !vecNear(ray.Direction.Normalize(), core.NewVec3(1, 0, 0), 1e-12) {
		t.Errorf("Expected direction along +X, got %v", ray.Direction)
	}

	// Image rows run top to bottom
	top := camera.GetRayWithOffset(50, 0, 0, 0, nil)
	if top.Direction.Y <= 0 {
		t.Errorf("Expected top row to point up, got %v", top.Direction)
	}
}

func TestCamera_Defocus(t *testing.T) {
	config := testCameraConfig()
	config.DefocusAngle = 10
	config.FocusDistance = 10
	camera := mustCamera(t, config)

	radius := 10 * math.Tan(5*math.Pi/180)
	sampler := core.NewSeededSampler(3)
	pixelSample := camera.PixelCenter(20, 70)

	distinct := false
	var first core.Vec3
	for n := 0; n < 200; n++ {
		ray := camera.GetRayWithOffset(20, 70, 0, 0, sampler)
		if ray.Origin != camera.Center() {
			t.Fatalf("Expected stored origin to stay at the camera center, got %v", ray.Origin)
		}

		// Direction is pixelSample minus a point on the lens disk
		lensOffset := pixelSample.Subtract(ray.Direction).Subtract(camera.Center())
		if lensOffset.Length() > radius+1e-9 {
			t.Fatalf("Lens offset %v exceeds defocus radius %f", lensOffset, radius)
		}
		if math.Abs(lensOffset.Z) > 1e-9 {
			t.Fatalf("Lens offset %v leaves the lens plane", lensOffset)
		}

		if n == 0 {
			first = ray.Direction
		} else if !vecNear(first, ray.Direction, 1e-12) {
			distinct = true
		}
	}
	if !distinct {
		t.Error("Expected defocus to vary ray directions")
	}

	// Without defocus, the sampler is not consulted for the origin
	config.DefocusAngle = 0
	sharp := mustCamera(t, config)
	a := sharp.GetRayWithOffset(20, 70, 0, 0, nil)
	b := sharp.GetRayWithOffset(20, 70, 0, 0, nil)
	if a != b {
		t.Errorf("Expected identical rays without defocus, got %v and %v", a, b)
	}
}
