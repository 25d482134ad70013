// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape
type Circle struct {
	Center Vec2
	Radius float64
}

// Collides checks if two circles overlap. Touching circles do not collide.
func (c Circle) Collides(other Circle) bool {
	r := c.Radius + other.Radius
	return c.Center.DistanceSquared(other.Center) < r*r
}

// Contains reports whether point lies strictly inside the circle.
func (c Circle) Contains(point Vec2) bool {
	return c.Center.DistanceSquared(point) < c.Radius*c.Radius
}

// WithinRadius reports whether a and b are closer than radius, using a
// squared-distance comparison.
func WithinRadius(a, b Vec2, radius float64) bool {
	return a.DistanceSquared(b) < radius*radius
}
