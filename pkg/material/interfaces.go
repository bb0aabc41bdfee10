package material

import (
	"errors"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// ErrInvalidRefractiveIndex is returned by NewDielectric for an index <= 0
var ErrInvalidRefractiveIndex = errors.New("material: refractive index must be positive")

// Material interface for surfaces that can scatter rays.
// Implementations must be immutable: a single instance is shared by every
// render goroutine.
type Material interface {
	// Scatter returns the scattered ray and its attenuation, or false when
	// the ray is absorbed.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Point // Point of intersection
	Normal    core.Vec3  // Unit surface normal, always opposing the incoming ray
	T         float64    // Parameter t along the ray
	FrontFace bool       // Whether ray hit the front face
	Material  Material   // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
