package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/go-orbital/pkg/config"
	"github.com/opd-ai/go-orbital/pkg/physics"
)

func TestNewPlanet(t *testing.T) {
	planet := NewPlanet(10, []float64{0, -5, 10, 5})

	expectedRadius := 4 * 10 / (2 * math.Pi)
	if !approxEqual(planet.Radius, expectedRadius, epsilon) {
		t.Errorf("Radius = %f, want %f", planet.Radius, expectedRadius)
	}
	if len(planet.Height) != 5 {
		t.Fatalf("expected 5 height entries (closed loop), got %d", len(planet.Height))
	}
	if planet.Height[4] != planet.Height[0] {
		t.Errorf("last sample %f should repeat first %f", planet.Height[4], planet.Height[0])
	}
	if planet.Samples() != 4 {
		t.Errorf("Samples() = %d, want 4", planet.Samples())
	}
}

func TestPlanet_HeightAtBearing(t *testing.T) {
	planet := NewPlanet(10, []float64{0, -5, 10, 5})
	r := planet.Radius

	tests := []struct {
		name    string
		bearing float64
		want    float64
	}{
		{"sample 0", 0, r},
		{"sample 1", math.Pi / 2, r - 5},
		{"sample 2", math.Pi, r + 10},
		{"sample 3", -math.Pi / 2, r + 5},
		{"midpoint 0-1", math.Pi / 4, r - 2.5},
		{"midpoint 1-2", 3 * math.Pi / 4, r + 2.5},
		{"midpoint 3-0", -math.Pi / 4, r + 2.5},
		{"just below seam", -1e-12, r},
		{"just above seam", 1e-12, r},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := planet.HeightAtBearing(tt.bearing)
			if !approxEqual(got, tt.want, 1e-6) {
				t.Errorf("HeightAtBearing(%f) = %f, want %f", tt.bearing, got, tt.want)
			}
		})
	}
}

func TestPlanet_HeightAtPosition(t *testing.T) {
	planet := NewPlanet(10, []float64{0, -5, 10, 5})

	// Distance from the centre does not matter, only bearing.
	for _, magnitude := range []float64{0.5, 10, 1000} {
		pos := physics.FromBearing(math.Pi/2, magnitude)
		if got := planet.HeightAt(pos); !approxEqual(got, planet.Radius-5, 1e-6) {
			t.Errorf("HeightAt(%v) = %f, want %f", pos, got, planet.Radius-5)
		}
	}

	// The exact origin has a finite height.
	if h := planet.HeightAt(physics.Vec2{}); math.IsNaN(h) || math.IsInf(h, 0) {
		t.Errorf("HeightAt(origin) = %f, want finite", h)
	}
}

func TestPlanet_SurfacePosition(t *testing.T) {
	planet := flatPlanet()

	pos, bearing := planet.SurfacePosition(config.SurfaceOffset{planet.Radius * 0.5, 3})
	if !approxEqual(bearing, 0.5, epsilon) {
		t.Errorf("bearing = %f, want 0.5", bearing)
	}
	if !approxEqual(pos.Length(), planet.Radius+3, 1e-9) {
		t.Errorf("radius = %f, want %f", pos.Length(), planet.Radius+3)
	}
	if !approxEqual(planet.Altitude(pos), 3, 1e-9) {
		t.Errorf("Altitude = %f, want 3", planet.Altitude(pos))
	}

	// Offsets past half the circumference wrap into (-π, π].
	_, bearing = planet.SurfacePosition(config.SurfaceOffset{planet.Radius * 4, 0})
	if !approxEqual(bearing, 4-2*math.Pi, epsilon) {
		t.Errorf("wrapped bearing = %f, want %f", bearing, 4-2*math.Pi)
	}
}

func TestPlanet_SamplePoint(t *testing.T) {
	planet := NewPlanet(10, []float64{0, -5, 10, 5})
	for i := 0; i < planet.Samples(); i++ {
		p := planet.SamplePoint(i)
		if !approxEqual(planet.HeightAt(p), planet.Height[i], 1e-6) {
			t.Errorf("sample %d: HeightAt = %f, want %f", i, planet.HeightAt(p), planet.Height[i])
		}
		if !approxEqual(p.Length(), planet.Height[i], 1e-9) {
			t.Errorf("sample %d: radius = %f, want %f", i, p.Length(), planet.Height[i])
		}
	}
}
