package physics

import (
	"fmt"
	"math"
)

// Vector2 is a 2D vector with value semantics.
//
// Mutating operations (Add, Subtract, Scale, Normalize, Rotate) work in place
// on the receiver and return it for chaining; they are meant for per-frame
// integration where no copy is wanted. The past-tense forms (Added,
// Subtracted, Scaled, Normalized, Rotated) return a new vector and leave the
// receiver untouched.
type Vector2 struct {
	X, Y float64
}

// Vec is shorthand for Vector2{X: x, Y: y}.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// FromAngle returns the unit vector pointing at angle radians.
func FromAngle(angle float64) Vector2 {
	return Vector2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Set overwrites both components.
func (v *Vector2) Set(x, y float64) *Vector2 {
	v.X = x
	v.Y = y
	return v
}

// Zero resets the vector to the origin.
func (v *Vector2) Zero() *Vector2 {
	v.X = 0
	v.Y = 0
	return v
}

// Add adds o to v in place.
func (v *Vector2) Add(o Vector2) *Vector2 {
	v.X += o.X
	v.Y += o.Y
	return v
}

// Subtract subtracts o from v in place.
func (v *Vector2) Subtract(o Vector2) *Vector2 {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

// Scale multiplies v by s in place.
func (v *Vector2) Scale(s float64) *Vector2 {
	v.X *= s
	v.Y *= s
	return v
}

// Normalize scales v to unit length in place. A zero vector is left unchanged.
func (v *Vector2) Normalize() *Vector2 {
	l := v.Length()
	if l > 0 {
		v.X /= l
		v.Y /= l
	}
	return v
}

// Rotate rotates v by angle radians in place.
func (v *Vector2) Rotate(angle float64) *Vector2 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	x := v.X*cos - v.Y*sin
	y := v.X*sin + v.Y*cos
	v.X = x
	v.Y = y
	return v
}

// Added returns v + o.
func (v Vector2) Added(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Subtracted returns v - o.
func (v Vector2) Subtracted(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scaled returns v * s.
func (v Vector2) Scaled(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Normalized returns a unit vector in the direction of v, or v itself if it is zero.
func (v Vector2) Normalized() Vector2 {
	v.Normalize()
	return v
}

// Rotated returns v rotated by angle radians.
func (v Vector2) Rotated(angle float64) Vector2 {
	v.Rotate(angle)
	return v
}

// Length returns the magnitude of v.
func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared magnitude of v.
func (v Vector2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dot returns the dot product of v and o.
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Angle returns the direction of v in radians.
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleTo returns the direction from v towards o in radians.
func (v Vector2) AngleTo(o Vector2) float64 {
	return math.Atan2(o.Y-v.Y, o.X-v.X)
}

// DistanceTo returns the distance between v and o.
func (v Vector2) DistanceTo(o Vector2) float64 {
	return Distance(v, o)
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// Lerp linearly interpolates between a and b. t is not clamped.
func Lerp(a, b Vector2, t float64) Vector2 {
	return Vector2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}
