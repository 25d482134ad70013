// pkg/physics/vector.go
package physics

import "math"

// MinRadius is the smallest radial distance used when normalizing a
// position against the world origin. A body sitting exactly on the origin
// gets a zero radial direction instead of NaN.
const MinRadius = 1e-9

// Vec2 represents a 2D vector with x and y components
type Vec2 struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Length returns the magnitude of the vector
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// DistanceSquared returns the squared distance between two points
func (v Vec2) DistanceSquared(other Vec2) float64 {
	return v.Sub(other).LengthSquared()
}

// Distance returns the distance between two points
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

// Dot returns the dot product of two vectors
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Rotate rotates the vector by angle (in radians). A positive angle
// increases the bearing of the vector.
func (v Vec2) Rotate(angle float64) Vec2 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Radial returns the unit vector pointing from the origin to v.
// The radius is clamped to MinRadius.
func (v Vec2) Radial() Vec2 {
	r := math.Max(v.Length(), MinRadius)
	return Vec2{X: v.X / r, Y: v.Y / r}
}

// Bearing returns the polar angle of v around the origin, measured from
// the "up" direction (negative Y) towards positive X, in (-π, π].
func (v Vec2) Bearing() float64 {
	return WrapAngle(math.Atan2(v.X, -v.Y))
}

// FromBearing creates a vector of the given magnitude pointing along
// bearing angle. It is the inverse of Bearing for non-zero magnitudes.
func FromBearing(angle float64, magnitude float64) Vec2 {
	return Vec2{
		X: magnitude * math.Sin(angle),
		Y: -magnitude * math.Cos(angle),
	}
}

// Tangent returns the unit vector perpendicular to FromBearing(angle, 1),
// pointing in the direction of increasing bearing.
func Tangent(angle float64) Vec2 {
	return Vec2{
		X: math.Cos(angle),
		Y: math.Sin(angle),
	}
}
