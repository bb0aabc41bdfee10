package core

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func vecNear(a, b Vec3) bool {
	return a.Subtract(b).Length() < tolerance
}

func TestVec3_Algebra(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"divide", a.Divide(2), NewVec3(0.5, 1, 1.5)},
		{"multiply vec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"cross", a.Cross(b), NewVec3(27, 6, -13)},
		{"x cross y is z", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecNear(tt.got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if d := a.Dot(b); d != 12 {
		t.Errorf("Expected dot 12, got %f", d)
	}
	if l := NewVec3(3, 4, 0).Length(); l != 5 {
		t.Errorf("Expected length 5, got %f", l)
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(0, 3, 4).Normalize()
	if math.Abs(n.Length()-1) > tolerance {
		t.Errorf("Expected unit length, got %f", n.Length())
	}
	if !vecNear(n, NewVec3(0, 0.6, 0.8)) {
		t.Errorf("Expected (0, 0.6, 0.8), got %v", n)
	}

	if zero := (Vec3{}).Normalize(); zero != (Vec3{}) {
		t.Errorf("Expected zero vector to normalize to itself, got %v", zero)
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"zero", NewVec3(0, 0, 0), true},
		{"tiny", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component large", NewVec3(1e-9, 1e-7, 0), false},
		{"at threshold", NewVec3(1e-8, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %t, expected %t", tt.v, got, tt.expected)
			}
		})
	}
}

func TestVec3_Reflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)

	if r := v.Reflect(n); !vecNear(r, NewVec3(1, 1, 0)) {
		t.Errorf("Expected (1, 1, 0), got %v", r)
	}
}

func TestVec3_Refract(t *testing.T) {
	n := NewVec3(0, 1, 0)

	t.Run("normal incidence passes straight through", func(t *testing.T) {
		r := NewVec3(0, -1, 0).Refract(n, 1/1.5)
		if !vecNear(r, NewVec3(0, -1, 0)) {
			t.Errorf("Expected (0, -1, 0), got %v", r)
		}
	})

	t.Run("snell's law holds", func(t *testing.T) {
		eta := 1 / 1.5
		in := NewVec3(1, -1, 0).Normalize()
		out := in.Refract(n, eta)

		sinIn := math.Sqrt(1 - math.Pow(in.Negate().Dot(n), 2))
		sinOut := math.Sqrt(1 - math.Pow(out.Negate().Dot(n), 2))
		if math.Abs(sinOut-eta*sinIn) > 1e-9 {
			t.Errorf("Expected sin(out) = %f, got %f", eta*sinIn, sinOut)
		}
		if math.Abs(out.Length()-1) > 1e-9 {
			t.Errorf("Expected unit refracted vector, got length %f", out.Length())
		}
	})

	t.Run("eta one is identity", func(t *testing.T) {
		in := NewVec3(0.3, -0.8, 0.2).Normalize()
		if out := in.Refract(n, 1.0); !vecNear(out, in) {
			t.Errorf("Expected %v, got %v", in, out)
		}
	})
}

func TestLerp(t *testing.T) {
	a := NewVec3(1, 1, 1)
	b := NewVec3(0.5, 0.7, 1.0)

	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Expected %v at t=0, got %v", a, got)
	}
	if got := Lerp(a, b, 1); !vecNear(got, b) {
		t.Errorf("Expected %v at t=1, got %v", b, got)
	}
	if got := Lerp(a, b, 0.5); !vecNear(got, NewVec3(0.75, 0.85, 1.0)) {
		t.Errorf("Expected midpoint, got %v", got)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewPoint(1, 2, 3), NewVec3(0, 0, -2))
	if p := ray.At(1.5); p != NewPoint(1, 2, 0) {
		t.Errorf("Expected (1, 2, 0), got %v", p)
	}
	if p := ray.At(0); p != ray.Origin {
		t.Errorf("Expected origin at t=0, got %v", p)
	}
}
