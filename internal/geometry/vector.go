// Package geometry provides the three-dimensional vector type used by the
// physics core.
package geometry

import (
	"fmt"
	"math"
)

// Vector3 is a double-precision Euclidean vector. It is a plain value: every
// operation returns a new vector and leaves its operands untouched.
type Vector3 struct {
	X, Y, Z float64
}

// Zero is the origin.
var Zero = Vector3{}

func New(x, y, z float64) Vector3 { return Vector3{X: x, Y: y, Z: z} }

func (v Vector3) Add(o Vector3) Vector3     { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) Sub(o Vector3) Vector3     { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector3) Scale(s float64) Vector3   { return Vector3{v.X * s, v.Y * s, v.Z * s} }
func (v Vector3) Neg() Vector3              { return Vector3{-v.X, -v.Y, -v.Z} }
func (v Vector3) Dot(o Vector3) float64     { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vector3) MagnitudeSquared() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vector3) Magnitude() float64        { return math.Sqrt(v.MagnitudeSquared()) }

// Cross returns the right-handed cross product v × o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns the unit vector v/|v|. The zero vector has no direction:
// normalizing it yields NaN components, and callers must not pass one.
func (v Vector3) Normalize() Vector3 {
	return v.Scale(1 / v.Magnitude())
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
