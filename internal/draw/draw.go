package draw

import "math"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Shader colors device pixels. A nil Func paints Color everywhere.
type Shader struct {
	Color Color
	Func  func(x, y float64) Color
}

// At returns the color at device coordinates (x, y).
func (s Shader) At(x, y float64) Color {
	if s.Func == nil {
		return s.Color
	}
	return s.Func(x, y)
}

// Target is a device that rasterizes shapes already transformed to device pixels.
// Both the terminal Canvas and the offscreen Image implement it.
type Target interface {
	// Size returns the device size in pixels.
	Size() (width, height int)
	// FillPolygons fills the union of the closed rings using the even-odd rule,
	// blending the shader color over existing pixels.
	FillPolygons(rings [][]Point, s Shader)
	// Line draws a one pixel wide line.
	Line(a, b Point, s Shader)
}

// clipLine clips the segment a→b to the rectangle [minX,maxX]x[minY,maxY]
// using Liang–Barsky. ok is false when nothing is left.
func clipLine(a, b Point, minX, minY, maxX, maxY float64) (Point, Point, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, a.X - minX},
		{dx, maxX - a.X},
		{-dy, a.Y - minY},
		{dy, maxY - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return Point{a.X + t0*dx, a.Y + t0*dy}, Point{a.X + t1*dx, a.Y + t1*dy}, true
}

// ringBounds returns the bounding box of all rings.
func ringBounds(rings [][]Point) (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, r := range rings {
		for _, p := range r {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
			ok = true
		}
	}
	return
}

// ringArea returns the absolute even-odd-agnostic area sum of rings (shoelace).
func ringArea(rings [][]Point) float64 {
	total := 0.0
	for _, r := range rings {
		a := 0.0
		for i := range r {
			j := (i + 1) % len(r)
			a += r[i].X*r[j].Y - r[j].X*r[i].Y
		}
		total += math.Abs(a) / 2
	}
	return total
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
