package object

import "github.com/tomz197/asteroidsx/internal/physics"

// TrailPoint is one sample of a motion trail.
type TrailPoint struct {
	Position physics.Vector2
	Life     float64
	Size     float64
}

// Trail is a bounded, fading sequence of points, oldest first.
type Trail struct {
	Points []TrailPoint
	Max    int
	Decay  float64 // life lost per second
}

// NewTrail creates an empty trail.
func NewTrail(max int, decay float64) Trail {
	return Trail{Points: make([]TrailPoint, 0, max+2), Max: max, Decay: decay}
}

// Push appends a fresh point.
func (t *Trail) Push(p physics.Vector2, size float64) {
	t.Points = append(t.Points, TrailPoint{Position: p, Life: 1, Size: size})
}

// Fade ages every point and drops the dead ones in place.
func (t *Trail) Fade(dt float64) {
	n := 0
	for _, p := range t.Points {
		p.Life -= dt * t.Decay
		if p.Life > 0 {
			t.Points[n] = p
			n++
		}
	}
	t.Points = t.Points[:n]
}

// Limit drops the oldest points until at most Max remain.
func (t *Trail) Limit() {
	if extra := len(t.Points) - t.Max; extra > 0 {
		n := copy(t.Points, t.Points[extra:])
		t.Points = t.Points[:n]
	}
}

// Len returns the number of live points.
func (t *Trail) Len() int { return len(t.Points) }

// Clear removes every point.
func (t *Trail) Clear() { t.Points = t.Points[:0] }
