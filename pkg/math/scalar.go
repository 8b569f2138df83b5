package math

import "math"

// Lerp linearly interpolates between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Map remaps x from [inMin, inMax] to [outMin, outMax].
func Map(x, inMin, inMax, outMin, outMax float64) float64 {
	return (x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(x, lo))
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// SphericalToCartesian converts a radius, polar angle theta (from +Y) and
// azimuth phi (from +X towards +Z) to a Y-up Cartesian point.
func SphericalToCartesian(radius, theta, phi float64) Vec3 {
	sinT := math.Sin(theta)
	return Vec3{
		X: radius * sinT * math.Cos(phi),
		Y: radius * math.Cos(theta),
		Z: radius * sinT * math.Sin(phi),
	}
}
