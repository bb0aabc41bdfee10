package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// CameraConfig contains all the parameters needed to build a camera.
// Every field is required.
type CameraConfig struct {
	Width           int        // Image width in pixels
	AspectRatio     float64    // Width / height
	VFov            float64    // Vertical field of view in degrees
	LookFrom        core.Point // Camera position
	LookAt          core.Point // Point the camera looks at
	Up              core.Vec3  // World up direction
	DefocusAngle    float64    // Aperture cone angle in degrees (<= 0 disables depth of field)
	FocusDistance   float64    // Distance to the plane of perfect focus
	SamplesPerPixel int        // Number of rays per pixel
	MaxDepth        int        // Maximum ray bounce depth
}

// Validate checks the configuration for values that cannot be rendered
func (c CameraConfig) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	switch {
	case c.Width <= 0:
		return invalid("image width must be positive, got %d", c.Width)
	case !(c.AspectRatio > 0):
		return invalid("aspect ratio must be positive, got %g", c.AspectRatio)
	case !(c.VFov > 0 && c.VFov < 180):
		return invalid("vertical field of view must be in (0, 180) degrees, got %g", c.VFov)
	case !(c.FocusDistance > 0):
		return invalid("focus distance must be positive, got %g", c.FocusDistance)
	case c.SamplesPerPixel <= 0:
		return invalid("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return invalid("max depth must not be negative, got %d", c.MaxDepth)
	}

	viewDir := c.LookFrom.Subtract(c.LookAt)
	if viewDir.NearZero() {
		return invalid("look-from and look-at must differ")
	}
	if c.Up.Cross(viewDir).NearZero() {
		return invalid("up vector %v is parallel to the view direction", c.Up)
	}
	return nil
}

// ImageHeight returns width / aspect ratio, truncated and at least 1
func (c CameraConfig) ImageHeight() int {
	return max(1, int(float64(c.Width)/c.AspectRatio))
}

// Camera generates primary rays. It is immutable once built and may be shared
// between goroutines.
type Camera struct {
	config        CameraConfig
	imageHeight   int
	center        core.Point // Camera center
	pixel00Loc    core.Point // Location of pixel 0, 0
	pixelDeltaU   core.Vec3  // Offset to pixel to the right
	pixelDeltaV   core.Vec3  // Offset to pixel below
	u, v, w       core.Vec3  // Camera frame basis vectors
	defocusDiskU  core.Vec3  // Defocus disk horizontal radius
	defocusDiskV  core.Vec3  // Defocus disk vertical radius
	defocusRadius float64
}

// NewCamera validates the configuration and derives the viewport geometry
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	imageHeight := config.ImageHeight()
	center := config.LookFrom

	// Determine viewport dimensions
	theta := degreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * (float64(config.Width) / float64(imageHeight))

	// Calculate the u,v,w unit basis vectors for the camera coordinate frame
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	// Horizontal and vertical delta vectors from pixel to pixel
	pixelDeltaU := viewportU.Divide(float64(config.Width))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	// Location of the upper left pixel
	viewportUpperLeft := center.
		Subtract(w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	// Camera defocus disk basis vectors
	defocusRadius := config.FocusDistance * math.Tan(degreesToRadians(config.DefocusAngle/2))

	return &Camera{
		config:        config,
		imageHeight:   imageHeight,
		center:        center,
		pixel00Loc:    pixel00Loc,
		pixelDeltaU:   pixelDeltaU,
		pixelDeltaV:   pixelDeltaV,
		u:             u,
		v:             v,
		w:             w,
		defocusDiskU:  u.Multiply(defocusRadius),
		defocusDiskV:  v.Multiply(defocusRadius),
		defocusRadius: defocusRadius,
	}, nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// ImageWidth returns the image width in pixels
func (c *Camera) ImageWidth() int {
	return c.config.Width
}

// ImageHeight returns the derived image height in pixels
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// Center returns the camera center
func (c *Camera) Center() core.Point {
	return c.center
}

// PixelCenter returns the world-space center of pixel (i, j)
func (c *Camera) PixelCenter(i, j int) core.Point {
	return c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))
}

// GetRay returns a ray through a random point of the box around pixel (i, j)
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offsetX, offsetY := core.PixelJitter(sampler)
	return c.GetRayWithOffset(i, j, offsetX, offsetY, sampler)
}

// GetRayWithOffset returns the ray through pixel (i, j) displaced by
// (offsetX, offsetY) pixel units. The sampler is only used for the defocus
// disk. The returned ray is stored with the undisplaced camera center as its
// origin; the defocus offset only changes its direction.
func (c *Camera) GetRayWithOffset(i, j int, offsetX, offsetY float64, sampler core.Sampler) core.Ray {
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offsetX)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offsetY))

	rayOrigin := c.center
	if c.config.DefocusAngle > 0 {
		rayOrigin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(c.center, pixelSample.Subtract(rayOrigin))
}

// defocusDiskSample returns a random point on the camera defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Point {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
