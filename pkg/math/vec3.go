// Package math provides vector, matrix and color types for the engine.
//
// All types are float64 value types. Methods with pointer receivers mutate
// in place; every one of them has a value-receiver twin that returns a new
// value instead.
package math

import (
	"fmt"
	"math"
)

// Vec3 is a 3D point or direction.
type Vec3 struct {
	X, Y, Z float64
}

// Common directions.
var (
	Zero    = Vec3{}
	Up      = Vec3{0, 1, 0}
	Right   = Vec3{1, 0, 0}
	Forward = Vec3{0, 0, -1}
)

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Splat returns a vector with all components set to a.
func Splat(a float64) Vec3 {
	return Vec3{a, a, a}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns the squared magnitude.
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalized returns a unit vector. The zero vector is returned unchanged.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Normalize scales v to unit length in place. No-op on the zero vector.
func (v *Vec3) Normalize() {
	*v = v.Normalized()
}

// Mul returns the component-wise product.
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Multiply multiplies v component-wise by other in place.
func (v *Vec3) Multiply(other Vec3) {
	*v = v.Mul(other)
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// ScaleBy multiplies v by s in place.
func (v *Vec3) ScaleBy(s float64) {
	*v = v.Scale(s)
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Translate adds other to v in place.
func (v *Vec3) Translate(other Vec3) {
	*v = v.Add(other)
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Negate returns -v.
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Invert negates v in place.
func (v *Vec3) Invert() {
	*v = v.Negate()
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// AngleTo returns the angle in radians between v and other.
// The result is NaN when either vector has zero length.
func (v Vec3) AngleTo(other Vec3) float64 {
	return math.Acos(v.Dot(other) / (v.Length() * other.Length()))
}

// Lerp returns v + (other-v)*t. t is not clamped.
func (v Vec3) Lerp(other Vec3, t float64) Vec3 {
	return Vec3{
		Lerp(v.X, other.X, t),
		Lerp(v.Y, other.Y, t),
		Lerp(v.Z, other.Z, t),
	}
}

// LerpTowards moves v towards other by t in place.
func (v *Vec3) LerpTowards(other Vec3, t float64) {
	*v = v.Lerp(other, t)
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Length()
}

// ApproxEqual reports whether all components differ by at most eps.
func (v Vec3) ApproxEqual(other Vec3, eps float64) bool {
	return math.Abs(v.X-other.X) <= eps &&
		math.Abs(v.Y-other.Y) <= eps &&
		math.Abs(v.Z-other.Z) <= eps
}

// Float32s returns the components as float32 for uniform upload.
func (v Vec3) Float32s() [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func (v Vec3) String() string {
	return fmt.Sprintf("Vec3(%g, %g, %g)", v.X, v.Y, v.Z)
}
