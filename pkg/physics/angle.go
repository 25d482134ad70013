package physics

import "math"

// WrapAngle maps any angle into (-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleBetween returns the signed shortest rotation from a to b, in (-π, π].
func AngleBetween(a, b float64) float64 {
	return WrapAngle(b - a)
}

// RotateTowards moves current towards target along the shortest path by at
// most maxDelta. The result is wrapped into (-π, π] and equals target
// exactly once it is within reach.
func RotateTowards(current, target, maxDelta float64) float64 {
	d := AngleBetween(current, target)
	if math.Abs(d) <= maxDelta {
		return WrapAngle(target)
	}
	return WrapAngle(current + math.Copysign(maxDelta, d))
}
