// Package physics provides the vector type, collision tests and the broad-phase grid.
package physics

import "math"

// Body is anything with a circular collision footprint.
type Body interface {
	Bounds() (center Vector2, radius float64)
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vector2) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vector2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(p, center Vector2, radius float64) bool {
	return DistanceSquared(p, center) <= radius*radius
}

// CirclesOverlap checks if two circles overlap. Touching circles do not overlap.
func CirclesOverlap(a Vector2, ra float64, b Vector2, rb float64) bool {
	minDist := ra + rb
	return DistanceSquared(a, b) < minDist*minDist
}

// Collides reports whether two bodies overlap.
func Collides(a, b Body) bool {
	pa, ra := a.Bounds()
	pb, rb := b.Bounds()
	return CirclesOverlap(pa, ra, pb, rb)
}
