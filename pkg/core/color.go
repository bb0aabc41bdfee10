package core

import (
	"image/color"
	"math"
)

// Color is an RGB triple in linear light. Components are nominally in [0, inf).
type Color = Vec3

var (
	// Black is the zero color
	Black = Color{0, 0, 0}
	// White is the unit color
	White = Color{1, 1, 1}
)

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{X: r, Y: g, Z: b}
}

// intensity is the output range of a gamma-corrected channel before quantization
var intensity = Interval{Min: 0.000, Max: 0.999}

// LinearToGamma applies gamma 2 correction. Negative and NaN inputs map to 0.
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ToBytes gamma-corrects, clamps to [0, 0.999] and truncates each channel to a byte.
// Truncation (not rounding) is part of the output contract.
func ToBytes(c Color) (r, g, b uint8) {
	quantize := func(linear float64) uint8 {
		return uint8(255.999 * intensity.Clamp(LinearToGamma(linear)))
	}
	return quantize(c.X), quantize(c.Y), quantize(c.Z)
}

// ToRGBA converts a linear color to an opaque 8-bit RGBA pixel
func ToRGBA(c Color) color.RGBA {
	r, g, b := ToBytes(c)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
