package entity

import (
	"math"

	"github.com/opd-ai/go-orbital/pkg/config"
)

const epsilon = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// flatPlanet returns a planet with 36 zero samples at spacing 10
func flatPlanet() *Planet {
	return NewPlanet(10, make([]float64, 36))
}

func testSettings() config.Settings {
	return config.DefaultSettings()
}
