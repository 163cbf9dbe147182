package draw

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Surface is an immediate-mode 2D drawing API in logical coordinates,
// modeled after the HTML canvas: a transform and style stack, paths built
// from lines and arcs, and fill/stroke with solid or gradient paints.
type Surface interface {
	// Width and Height return the logical size of the drawing area.
	Width() float64
	Height() float64

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)
	Scale(sx, sy float64)

	// SetAlpha sets the global alpha applied to every fill and stroke.
	SetAlpha(a float64)
	Alpha() float64
	SetFill(p Paint)
	SetStroke(p Paint)
	SetLineWidth(w float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a clockwise arc around (cx, cy) from angle start to end.
	Arc(cx, cy, r, start, end float64)
	ClosePath()
	Fill()
	Stroke()

	// FillRect fills a rectangle without touching the current path.
	FillRect(x, y, w, h float64)
}

// Context implements Surface on top of a Target. Logical coordinates are
// scaled to the target's pixel size.
type Context struct {
	target   Target
	logicalW float64
	logicalH float64
	base     f64.Aff3

	st    ctxState
	stack []ctxState

	paths   []subpath
	ringBuf [][]Point
	quadBuf [1][]Point
}

type ctxState struct {
	m         f64.Aff3
	alpha     float64
	fill      Paint
	stroke    Paint
	lineWidth float64
}

// subpath is stored in device coordinates.
type subpath struct {
	pts    []Point
	closed bool
}

var _ Surface = (*Context)(nil)

// NewContext creates a Context drawing on t with the given logical size.
func NewContext(t Target, logicalWidth, logicalHeight float64) *Context {
	c := &Context{target: t, logicalW: logicalWidth, logicalH: logicalHeight}
	c.Resize()
	return c
}

// Resize recomputes the logical-to-device scale after the target changed
// size, and resets the drawing state.
func (c *Context) Resize() {
	w, h := c.target.Size()
	c.base = f64.Aff3{
		float64(w) / c.logicalW, 0, 0,
		0, float64(h) / c.logicalH, 0,
	}
	c.Reset()
}

// SetLogicalSize changes the logical coordinate space.
func (c *Context) SetLogicalSize(w, h float64) {
	c.logicalW, c.logicalH = w, h
	c.Resize()
}

// Reset clears the state stack and the current path.
func (c *Context) Reset() {
	c.st = ctxState{m: c.base, alpha: 1, fill: Solid(Black), stroke: Solid(Black), lineWidth: 1}
	c.stack = c.stack[:0]
	c.paths = c.paths[:0]
}

// Target returns the underlying device.
func (c *Context) Target() Target { return c.target }

func (c *Context) Width() float64  { return c.logicalW }
func (c *Context) Height() float64 { return c.logicalH }

func (c *Context) Save() {
	c.stack = append(c.stack, c.st)
}

// Restore pops the last saved state. Unbalanced calls are ignored.
func (c *Context) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.st = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Context) Translate(x, y float64) {
	c.st.m = mul(c.st.m, f64.Aff3{1, 0, x, 0, 1, y})
}

func (c *Context) Rotate(angle float64) {
	sin, cos := math.Sincos(angle)
	c.st.m = mul(c.st.m, f64.Aff3{cos, -sin, 0, sin, cos, 0})
}

func (c *Context) Scale(sx, sy float64) {
	c.st.m = mul(c.st.m, f64.Aff3{sx, 0, 0, 0, sy, 0})
}

func (c *Context) SetAlpha(a float64)     { c.st.alpha = clamp01(a) }
func (c *Context) Alpha() float64         { return c.st.alpha }
func (c *Context) SetFill(p Paint)        { c.st.fill = p }
func (c *Context) SetStroke(p Paint)      { c.st.stroke = p }
func (c *Context) SetLineWidth(w float64) { c.st.lineWidth = w }

func (c *Context) BeginPath() {
	c.paths = c.paths[:0]
}

func (c *Context) MoveTo(x, y float64) {
	c.startSubpath(apply(c.st.m, Point{x, y}))
}

func (c *Context) LineTo(x, y float64) {
	c.lineToDevice(apply(c.st.m, Point{x, y}))
}

func (c *Context) Arc(cx, cy, r, start, end float64) {
	if r < 0 {
		return
	}
	sweep := end - start
	for sweep < 0 {
		sweep += 2 * math.Pi
	}
	if sweep > 2*math.Pi {
		sweep = 2 * math.Pi
	}

	devR := r * scaleOf(c.st.m)
	n := int(math.Ceil(sweep / (2 * math.Pi) * math.Min(math.Max(devR*1.5, 8), 64)))
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		p := apply(c.st.m, Point{cx + r*math.Cos(a), cy + r*math.Sin(a)})
		if i == 0 && (len(c.paths) == 0 || c.paths[len(c.paths)-1].closed) {
			c.startSubpath(p)
			continue
		}
		c.lineToDevice(p)
	}
}

// ClosePath closes the current subpath and starts a new one at its first point.
func (c *Context) ClosePath() {
	if len(c.paths) == 0 {
		return
	}
	sp := &c.paths[len(c.paths)-1]
	if sp.closed {
		return
	}
	sp.closed = true
	c.startSubpath(sp.pts[0])
}

func (c *Context) Fill() {
	rings := c.ringBuf[:0]
	for _, sp := range c.paths {
		if len(sp.pts) >= 3 {
			rings = append(rings, sp.pts)
		}
	}
	c.ringBuf = rings
	if len(rings) == 0 {
		return
	}
	c.target.FillPolygons(rings, c.shader(c.st.fill))
}

func (c *Context) Stroke() {
	s := c.shader(c.st.stroke)
	devW := c.st.lineWidth * scaleOf(c.st.m)
	for _, sp := range c.paths {
		n := len(sp.pts)
		if n < 2 {
			continue
		}
		for i := 0; i+1 < n; i++ {
			c.segment(sp.pts[i], sp.pts[i+1], devW, s)
		}
		if sp.closed {
			c.segment(sp.pts[n-1], sp.pts[0], devW, s)
		}
	}
}

func (c *Context) FillRect(x, y, w, h float64) {
	m := c.st.m
	c.quadBuf[0] = append(c.quadBuf[0][:0],
		apply(m, Point{x, y}),
		apply(m, Point{x + w, y}),
		apply(m, Point{x + w, y + h}),
		apply(m, Point{x, y + h}),
	)
	c.target.FillPolygons(c.quadBuf[:], c.shader(c.st.fill))
}

// segment draws one stroked segment: a thin line, or a quad for wide strokes.
func (c *Context) segment(a, b Point, devW float64, s Shader) {
	if devW <= 1.5 {
		c.target.Line(a, b, s)
		return
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*devW/2, dx/l*devW/2
	c.quadBuf[0] = append(c.quadBuf[0][:0],
		Point{a.X + nx, a.Y + ny}, Point{b.X + nx, b.Y + ny},
		Point{b.X - nx, b.Y - ny}, Point{a.X - nx, a.Y - ny},
	)
	c.target.FillPolygons(c.quadBuf[:], s)
}

func (c *Context) startSubpath(p Point) {
	n := len(c.paths)
	if n < cap(c.paths) {
		c.paths = c.paths[:n+1]
		sp := &c.paths[n]
		sp.pts = append(sp.pts[:0], p)
		sp.closed = false
		return
	}
	c.paths = append(c.paths, subpath{pts: []Point{p}})
}

func (c *Context) lineToDevice(p Point) {
	if len(c.paths) == 0 {
		c.startSubpath(p)
		return
	}
	sp := &c.paths[len(c.paths)-1]
	sp.pts = append(sp.pts, p)
}

// shader binds a paint to the current transform and alpha.
func (c *Context) shader(p Paint) Shader {
	alpha := c.st.alpha
	if col, ok := uniformColor(p); ok {
		return Shader{Color: col.MulAlpha(alpha)}
	}
	inv := invert(c.st.m)
	return Shader{Func: func(x, y float64) Color {
		return p.ColorAt(apply(inv, Point{x, y})).MulAlpha(alpha)
	}}
}

// FillCircle fills a full circle with p.
func FillCircle(s Surface, x, y, r float64, p Paint) {
	s.SetFill(p)
	s.BeginPath()
	s.Arc(x, y, r, 0, 2*math.Pi)
	s.Fill()
}

// mul returns m·t, so t is applied first.
func mul(m, t f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		m[0]*t[0] + m[1]*t[3], m[0]*t[1] + m[1]*t[4], m[0]*t[2] + m[1]*t[5] + m[2],
		m[3]*t[0] + m[4]*t[3], m[3]*t[1] + m[4]*t[4], m[3]*t[2] + m[4]*t[5] + m[5],
	}
}

func apply(m f64.Aff3, p Point) Point {
	return Point{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

func invert(m f64.Aff3) f64.Aff3 {
	det := m[0]*m[4] - m[1]*m[3]
	if det == 0 {
		return f64.Aff3{}
	}
	a, b := m[4]/det, -m[1]/det
	d, e := -m[3]/det, m[0]/det
	return f64.Aff3{
		a, b, -(a*m[2] + b*m[5]),
		d, e, -(d*m[2] + e*m[5]),
	}
}

// scaleOf returns the mean linear scale factor of m.
func scaleOf(m f64.Aff3) float64 {
	return math.Sqrt(math.Abs(m[0]*m[4] - m[1]*m[3]))
}
