package draw

import (
	"math"
	"sort"
)

// Paint supplies a color for every point of a filled or stroked shape.
// Coordinates are in the user space that was current when the shape was drawn.
type Paint interface {
	ColorAt(p Point) Color
}

// Solid paints a single color.
type Solid Color

// ColorAt implements Paint.
func (s Solid) ColorAt(Point) Color { return Color(s) }

// Stop is a gradient color stop. Offset is in [0, 1].
type Stop struct {
	Offset float64
	Color  Color
}

// LinearGradient interpolates its stops along the segment From→To.
type LinearGradient struct {
	From, To Point
	Stops    []Stop
}

// NewLinearGradient builds a linear gradient, sorting stops by offset.
func NewLinearGradient(from, to Point, stops ...Stop) *LinearGradient {
	sortStops(stops)
	return &LinearGradient{From: from, To: to, Stops: stops}
}

// ColorAt implements Paint.
func (g *LinearGradient) ColorAt(p Point) Color {
	dx := g.To.X - g.From.X
	dy := g.To.Y - g.From.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return sampleStops(g.Stops, 0)
	}
	t := ((p.X-g.From.X)*dx + (p.Y-g.From.Y)*dy) / l2
	return sampleStops(g.Stops, t)
}

// RadialGradient interpolates its stops between the start circle (C0, R0)
// and the end circle (C1, R1), following the two-circle model of HTML canvas.
type RadialGradient struct {
	C0 Point
	R0 float64
	C1 Point
	R1 float64

	Stops []Stop
}

// NewRadialGradient builds a concentric gradient from the center out to radius r.
func NewRadialGradient(cx, cy, r float64, stops ...Stop) *RadialGradient {
	sortStops(stops)
	c := Point{X: cx, Y: cy}
	return &RadialGradient{C0: c, C1: c, R1: r, Stops: stops}
}

// NewFocalGradient builds a two-circle gradient.
func NewFocalGradient(c0 Point, r0 float64, c1 Point, r1 float64, stops ...Stop) *RadialGradient {
	sortStops(stops)
	return &RadialGradient{C0: c0, R0: r0, C1: c1, R1: r1, Stops: stops}
}

// ColorAt implements Paint.
func (g *RadialGradient) ColorAt(p Point) Color {
	// Concentric fast path.
	if g.C0 == g.C1 && g.R0 == 0 {
		if g.R1 <= 0 {
			return Transparent
		}
		dx, dy := p.X-g.C0.X, p.Y-g.C0.Y
		return sampleStops(g.Stops, math.Sqrt(dx*dx+dy*dy)/g.R1)
	}

	// Find the largest t with r(t) >= 0 such that p lies on circle(t).
	qx, qy := p.X-g.C0.X, p.Y-g.C0.Y
	dx, dy := g.C1.X-g.C0.X, g.C1.Y-g.C0.Y
	dr := g.R1 - g.R0

	a := dx*dx + dy*dy - dr*dr
	b := qx*dx + qy*dy + g.R0*dr
	c := qx*qx + qy*qy - g.R0*g.R0

	var t float64
	if a == 0 {
		if b == 0 {
			return Transparent
		}
		t = c / (2 * b)
	} else {
		disc := b*b - a*c
		if disc < 0 {
			return Transparent
		}
		s := math.Sqrt(disc)
		t1 := (b + s) / a
		t2 := (b - s) / a
		if t2 > t1 {
			t1, t2 = t2, t1
		}
		t = t1
		if g.R0+t*dr < 0 {
			t = t2
		}
	}
	if g.R0+t*dr < 0 {
		return Transparent
	}
	return sampleStops(g.Stops, t)
}

func sortStops(stops []Stop) {
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset })
}

// sampleStops returns the color at t, padding with the first and last stop.
func sampleStops(stops []Stop, t float64) Color {
	switch {
	case len(stops) == 0:
		return Transparent
	case t <= stops[0].Offset:
		return stops[0].Color
	case t >= stops[len(stops)-1].Offset:
		return stops[len(stops)-1].Color
	}
	for i := 1; i < len(stops); i++ {
		hi := stops[i]
		if t > hi.Offset {
			continue
		}
		lo := stops[i-1]
		span := hi.Offset - lo.Offset
		if span <= 0 {
			return hi.Color
		}
		return lo.Color.Lerp(hi.Color, (t-lo.Offset)/span)
	}
	return stops[len(stops)-1].Color
}

// uniformColor reports whether p paints a single color.
func uniformColor(p Paint) (Color, bool) {
	switch v := p.(type) {
	case Solid:
		return Color(v), true
	case *Solid:
		return Color(*v), true
	case nil:
		return Transparent, true
	}
	return Color{}, false
}
