// pkg/entity/planet.go
package entity

import (
	"math"

	"github.com/opd-ai/go-orbital/pkg/config"
	"github.com/opd-ai/go-orbital/pkg/physics"
)

// Planet is the static terrain: a closed polar curve sampled at equal
// bearing steps around the origin.
type Planet struct {
	Radius float64
	// Height holds the absolute terrain radius per sample. The first
	// sample is repeated at the end so that lookups never wrap.
	Height []float64
}

// NewPlanet builds the terrain from sample spacing (arc length between
// samples) and heights relative to the base radius.
func NewPlanet(spacing float64, samples []float64) *Planet {
	radius := float64(len(samples)) * spacing / (2 * math.Pi)
	height := make([]float64, len(samples)+1)
	for i, h := range samples {
		height[i] = radius + h
	}
	height[len(samples)] = height[0]
	return &Planet{Radius: radius, Height: height}
}

// HeightAt returns the terrain radius under position p
func (p *Planet) HeightAt(pos physics.Vec2) float64 {
	return p.HeightAtBearing(pos.Bearing())
}

// HeightAtBearing returns the terrain radius at the given bearing,
// linearly interpolated between the two bracketing samples.
func (p *Planet) HeightAtBearing(bearing float64) float64 {
	last := len(p.Height) - 1
	offset := bearing / (2 * math.Pi)
	if offset < 0 {
		offset++
	}
	offset *= float64(last)

	i0 := int(math.Floor(offset))
	if i0 > last {
		i0 = last
	}
	if i0 < 0 {
		i0 = 0
	}
	i1 := min(i0+1, last)
	frac := offset - float64(i0)
	return p.Height[i0] + frac*(p.Height[i1]-p.Height[i0])
}

// Samples returns the number of distinct terrain samples
func (p *Planet) Samples() int {
	return len(p.Height) - 1
}

// SamplePoint returns the Cartesian terrain point of sample i
func (p *Planet) SamplePoint(i int) physics.Vec2 {
	bearing := 2 * math.Pi * float64(i) / float64(p.Samples())
	return physics.FromBearing(bearing, p.Height[i])
}

// SurfacePosition converts a surface offset (arc distance, height above
// terrain) to a world position. It also returns the bearing of the point.
func (p *Planet) SurfacePosition(offset config.SurfaceOffset) (physics.Vec2, float64) {
	bearing := physics.WrapAngle(offset[0] / p.Radius)
	r := p.HeightAtBearing(bearing) + offset[1]
	return physics.FromBearing(bearing, r), bearing
}

// Altitude returns the height of pos above the terrain beneath it
func (p *Planet) Altitude(pos physics.Vec2) float64 {
	return pos.Length() - p.HeightAt(pos)
}
