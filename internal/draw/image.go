package draw

import (
	"image"
	"image/color"
	stddraw "image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Image is an offscreen antialiased Target backed by an *image.RGBA.
// It serves the desktop window and PNG snapshots.
type Image struct {
	img  *image.RGBA
	rast *vector.Rasterizer
	clip []Point
}

// NewImage creates a black image target of the given pixel size.
func NewImage(width, height int) *Image {
	t := &Image{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		rast: vector.NewRasterizer(width, height),
	}
	t.Clear(Black)
	return t
}

// RGBA returns the backing image.
func (t *Image) RGBA() *image.RGBA {
	return t.img
}

// Size implements Target.
func (t *Image) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the whole image with c.
func (t *Image) Clear(c Color) {
	stddraw.Draw(t.img, t.img.Bounds(), image.NewUniform(c.NRGBA()), image.Point{}, stddraw.Src)
}

// FillPolygons implements Target.
func (t *Image) FillPolygons(rings [][]Point, s Shader) {
	w, h := t.Size()
	t.rast.Reset(w, h)
	drawn := false
	for _, ring := range rings {
		t.clip = clipRing(t.clip[:0], ring, float64(w), float64(h))
		if len(t.clip) < 3 {
			continue
		}
		t.rast.MoveTo(float32(t.clip[0].X), float32(t.clip[0].Y))
		for _, p := range t.clip[1:] {
			t.rast.LineTo(float32(p.X), float32(p.Y))
		}
		t.rast.ClosePath()
		drawn = true
	}
	if !drawn {
		return
	}

	var src image.Image
	if s.Func == nil {
		if s.Color.A <= 0 {
			return
		}
		src = image.NewUniform(s.Color.NRGBA())
	} else {
		src = shaderImage{shade: s, bounds: t.img.Bounds()}
	}
	t.rast.Draw(t.img, t.img.Bounds(), src, image.Point{})
}

// Line implements Target as a one pixel wide quad.
func (t *Image) Line(a, b Point, s Shader) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		t.FillPolygons([][]Point{{
			{a.X - 0.5, a.Y - 0.5}, {a.X + 0.5, a.Y - 0.5},
			{a.X + 0.5, a.Y + 0.5}, {a.X - 0.5, a.Y + 0.5},
		}}, s)
		return
	}
	nx, ny := -dy/l*0.5, dx/l*0.5
	t.FillPolygons([][]Point{{
		{a.X + nx, a.Y + ny}, {b.X + nx, b.Y + ny},
		{b.X - nx, b.Y - ny}, {a.X - nx, a.Y - ny},
	}}, s)
}

// shaderImage adapts a Shader to image.Image so the rasterizer can use it as
// a source.
type shaderImage struct {
	shade  Shader
	bounds image.Rectangle
}

func (s shaderImage) ColorModel() color.Model { return color.NRGBAModel }

func (s shaderImage) Bounds() image.Rectangle { return s.bounds }

func (s shaderImage) At(x, y int) color.Color {
	return s.shade.At(float64(x)+0.5, float64(y)+0.5).NRGBA()
}

// clipRing clips a polygon to [0,w]x[0,h] (Sutherland–Hodgman), appending the
// result to dst.
func clipRing(dst, ring []Point, w, h float64) []Point {
	type edge struct {
		inside func(Point) bool
		cross  func(a, b Point) Point
	}
	edges := [4]edge{
		{func(p Point) bool { return p.X >= 0 }, func(a, b Point) Point { return crossX(a, b, 0) }},
		{func(p Point) bool { return p.X <= w }, func(a, b Point) Point { return crossX(a, b, w) }},
		{func(p Point) bool { return p.Y >= 0 }, func(a, b Point) Point { return crossY(a, b, 0) }},
		{func(p Point) bool { return p.Y <= h }, func(a, b Point) Point { return crossY(a, b, h) }},
	}

	in := append([]Point(nil), ring...)
	for _, e := range edges {
		if len(in) == 0 {
			break
		}
		out := make([]Point, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur):
				if !e.inside(prev) {
					out = append(out, e.cross(prev, cur))
				}
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
		in = out
	}
	return append(dst, in...)
}

func crossX(a, b Point, x float64) Point {
	t := (x - a.X) / (b.X - a.X)
	return Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
}

func crossY(a, b Point, y float64) Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return Point{X: a.X + t*(b.X-a.X), Y: y}
}
