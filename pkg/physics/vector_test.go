// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func vecApproxEqual(a, b Vec2, tol float64) bool {
	return approxEqual(a.X, b.X, tol) && approxEqual(a.Y, b.Y, tol)
}

func TestVec2_Add(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vec2
		v2       Vec2
		expected Vec2
	}{
		{
			name:     "positive_vectors",
			v1:       Vec2{X: 3, Y: 4},
			v2:       Vec2{X: 1, Y: 2},
			expected: Vec2{X: 4, Y: 6},
		},
		{
			name:     "mixed_signs",
			v1:       Vec2{X: 5, Y: -3},
			v2:       Vec2{X: -2, Y: 7},
			expected: Vec2{X: 3, Y: 4},
		},
		{
			name:     "zero_vector",
			v1:       Vec2{},
			v2:       Vec2{X: 5, Y: -3},
			expected: Vec2{X: 5, Y: -3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v1.Add(tt.v2)
			if result != tt.expected {
				t.Errorf("Add() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVec2_SubScale(t *testing.T) {
	v := Vec2{X: 5, Y: 7}.Sub(Vec2{X: 2, Y: 3})
	if v != (Vec2{X: 3, Y: 4}) {
		t.Errorf("Sub() = %v, expected {3 4}", v)
	}
	if s := v.Scale(-2); s != (Vec2{X: -6, Y: -8}) {
		t.Errorf("Scale() = %v, expected {-6 -8}", s)
	}
}

func TestVec2_Lengths(t *testing.T) {
	tests := []struct {
		name      string
		vector    Vec2
		length    float64
		lengthSqr float64
	}{
		{"pythagorean_triple", Vec2{X: 3, Y: 4}, 5, 25},
		{"negative_components", Vec2{X: -6, Y: -8}, 10, 100},
		{"zero_vector", Vec2{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.Length(); !approxEqual(got, tt.length, epsilon) {
				t.Errorf("Length() = %f, expected %f", got, tt.length)
			}
			if got := tt.vector.LengthSquared(); !approxEqual(got, tt.lengthSqr, epsilon) {
				t.Errorf("LengthSquared() = %f, expected %f", got, tt.lengthSqr)
			}
		})
	}
}

func TestVec2_Distance(t *testing.T) {
	a := Vec2{X: 1, Y: 1}
	b := Vec2{X: 4, Y: 5}
	if d := a.Distance(b); !approxEqual(d, 5, epsilon) {
		t.Errorf("Distance() = %f, expected 5", d)
	}
	if d := a.DistanceSquared(b); !approxEqual(d, 25, epsilon) {
		t.Errorf("DistanceSquared() = %f, expected 25", d)
	}
}

func TestVec2_Dot(t *testing.T) {
	if d := (Vec2{X: 1, Y: 0}).Dot(Vec2{X: 0, Y: 1}); d != 0 {
		t.Errorf("perpendicular Dot() = %f, expected 0", d)
	}
	if d := (Vec2{X: 2, Y: 3}).Dot(Vec2{X: 4, Y: -1}); d != 5 {
		t.Errorf("Dot() = %f, expected 5", d)
	}
}

func TestVec2_Rotate(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec2
		angle    float64
		expected Vec2
	}{
		{"quarter_turn", Vec2{X: 1, Y: 0}, math.Pi / 2, Vec2{X: 0, Y: 1}},
		{"half_turn", Vec2{X: 1, Y: 0}, math.Pi, Vec2{X: -1, Y: 0}},
		{"up_to_right", Vec2{X: 0, Y: -1}, math.Pi / 2, Vec2{X: 1, Y: 0}},
		{"no_rotation", Vec2{X: 2, Y: 3}, 0, Vec2{X: 2, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Rotate(tt.angle)
			if !vecApproxEqual(result, tt.expected, epsilon) {
				t.Errorf("Rotate(%f) = %v, expected %v", tt.angle, result, tt.expected)
			}
		})
	}
}

func TestVec2_RotateIncreasesBearing(t *testing.T) {
	v := FromBearing(0.3, 7)
	rotated := v.Rotate(0.5)
	if b := rotated.Bearing(); !approxEqual(b, 0.8, epsilon) {
		t.Errorf("Bearing after Rotate(0.5) = %f, expected 0.8", b)
	}
}

func TestVec2_Bearing(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec2
		expected float64
	}{
		{"up", Vec2{X: 0, Y: -1}, 0},
		{"right", Vec2{X: 1, Y: 0}, math.Pi / 2},
		{"left", Vec2{X: -1, Y: 0}, -math.Pi / 2},
		{"down", Vec2{X: 0, Y: 1}, math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if b := tt.vector.Bearing(); !approxEqual(b, tt.expected, epsilon) {
				t.Errorf("Bearing() = %f, expected %f", b, tt.expected)
			}
		})
	}
}

func TestFromBearing_RoundTrip(t *testing.T) {
	for _, angle := range []float64{-3, -1.5, -0.2, 0, 0.7, 2, math.Pi} {
		v := FromBearing(angle, 12)
		if l := v.Length(); !approxEqual(l, 12, epsilon) {
			t.Errorf("FromBearing(%f, 12) length = %f", angle, l)
		}
		if b := v.Bearing(); !approxEqual(b, angle, epsilon) {
			t.Errorf("FromBearing(%f).Bearing() = %f", angle, b)
		}
	}
}

func TestTangent_PerpendicularToBearing(t *testing.T) {
	for _, angle := range []float64{-2.5, 0, 1, 3} {
		if d := Tangent(angle).Dot(FromBearing(angle, 1)); !approxEqual(d, 0, epsilon) {
			t.Errorf("Tangent(%f) not perpendicular: dot = %f", angle, d)
		}
		// Moving along the tangent increases the bearing.
		p := FromBearing(angle, 10).Add(Tangent(angle).Scale(0.01))
		if AngleBetween(angle, p.Bearing()) <= 0 {
			t.Errorf("Tangent(%f) does not increase bearing", angle)
		}
	}
}

func TestVec2_Radial(t *testing.T) {
	r := Vec2{X: 3, Y: -4}.Radial()
	if !vecApproxEqual(r, Vec2{X: 0.6, Y: -0.8}, epsilon) {
		t.Errorf("Radial() = %v, expected {0.6 -0.8}", r)
	}

	origin := Vec2{}.Radial()
	if math.IsNaN(origin.X) || math.IsNaN(origin.Y) {
		t.Fatalf("Radial() at origin produced NaN: %v", origin)
	}
	if origin != (Vec2{}) {
		t.Errorf("Radial() at origin = %v, expected zero vector", origin)
	}
}
