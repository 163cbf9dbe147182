package draw

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestHSLA(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float64
		want    Color
	}{
		{"red", 0, 1, 0.5, Color{1, 0, 0, 1}},
		{"wrapped hue", 480, 1, 0.5, Color{0, 1, 0, 1}},
		{"negative hue", -120, 1, 0.5, Color{0, 0, 1, 1}},
		{"white", 200, 0.3, 1, Color{1, 1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HSLA(tt.h, tt.s, tt.l, 1)
			if !near(got.R, tt.want.R) || !near(got.G, tt.want.G) || !near(got.B, tt.want.B) {
				t.Errorf("HSLA(%v, %v, %v) = %+v, want %+v", tt.h, tt.s, tt.l, got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	c, err := Hex("#00ff88")
	if err != nil {
		t.Fatal(err)
	}
	if c.Hex() != "#00ff88" {
		t.Fatalf("round trip = %s", c.Hex())
	}
	if _, err := Hex("nope"); err == nil {
		t.Fatal("expected error for malformed color")
	}
}

func TestLerpTowardsTransparentKeepsHue(t *testing.T) {
	red := Color{1, 0, 0, 1}
	mid := red.Lerp(Transparent, 0.5)
	if !near(mid.A, 0.5) || !near(mid.R, 1) {
		t.Fatalf("mid = %+v, want red at half alpha", mid)
	}
}

func TestRadialGradientStops(t *testing.T) {
	g := NewRadialGradient(0, 0, 10,
		Stop{1, Color{0, 0, 1, 0}},
		Stop{0, Color{1, 1, 1, 1}},
	)
	if c := g.ColorAt(Point{0, 0}); c != (Color{1, 1, 1, 1}) {
		t.Fatalf("center = %+v", c)
	}
	if c := g.ColorAt(Point{20, 0}); c.A != 0 {
		t.Fatalf("outside = %+v, want transparent", c)
	}
	if c := g.ColorAt(Point{5, 0}); !near(c.A, 0.5) {
		t.Fatalf("halfway alpha = %v", c.A)
	}
}

func TestFocalGradientMatchesConcentric(t *testing.T) {
	stops := []Stop{{0, White}, {1, Black}}
	a := NewRadialGradient(5, 5, 10, stops...)
	b := NewFocalGradient(Point{5, 5}, 0.0001, Point{5, 5}, 10, stops...)
	for _, p := range []Point{{5, 5}, {8, 5}, {5, 12}, {1, 1}} {
		ca, cb := a.ColorAt(p), b.ColorAt(p)
		if math.Abs(ca.R-cb.R) > 1e-3 {
			t.Errorf("at %v: concentric %+v, focal %+v", p, ca, cb)
		}
	}
}

func TestLinearGradient(t *testing.T) {
	g := NewLinearGradient(Point{0, 0}, Point{10, 0}, Stop{0, Black}, Stop{1, White})
	if c := g.ColorAt(Point{5, 99}); !near(c.R, 0.5) {
		t.Fatalf("mid = %+v", c)
	}
	if c := g.ColorAt(Point{-5, 0}); c != Black {
		t.Fatalf("before start = %+v, want padded black", c)
	}
}

type recorder struct {
	w, h  int
	fills [][][]Point
	lines [][2]Point
	last  Shader
}

func (r *recorder) Size() (int, int) { return r.w, r.h }

func (r *recorder) FillPolygons(rings [][]Point, s Shader) {
	cp := make([][]Point, len(rings))
	for i := range rings {
		cp[i] = append([]Point(nil), rings[i]...)
	}
	r.fills = append(r.fills, cp)
	r.last = s
}

func (r *recorder) Line(a, b Point, s Shader) {
	r.lines = append(r.lines, [2]Point{a, b})
	r.last = s
}

func TestContextScalesAndTransforms(t *testing.T) {
	rec := &recorder{w: 400, h: 300}
	c := NewContext(rec, 800, 600)

	c.Save()
	c.Translate(100, 100)
	c.Rotate(math.Pi / 2)
	c.SetFill(Solid(White))
	c.SetAlpha(0.5)
	c.FillRect(0, 0, 10, 20)
	c.Restore()

	if len(rec.fills) != 1 {
		t.Fatalf("fills = %d", len(rec.fills))
	}
	ring := rec.fills[0][0]
	// (10, 0) rotates to (0, 10), translates to (100, 110), scales by 0.5.
	if !near(ring[1].X, 50) || !near(ring[1].Y, 55) {
		t.Fatalf("corner = %+v, want (50, 55)", ring[1])
	}
	if !near(rec.last.Color.A, 0.5) {
		t.Fatalf("alpha = %v", rec.last.Color.A)
	}
	if c.Alpha() != 1 {
		t.Fatal("Restore should reset alpha")
	}
}

func TestContextPathsAndStroke(t *testing.T) {
	rec := &recorder{w: 100, h: 100}
	c := NewContext(rec, 100, 100)

	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(10, 0)
	c.LineTo(10, 10)
	c.ClosePath()
	c.Stroke()
	if len(rec.lines) != 3 {
		t.Fatalf("closed triangle stroke = %d lines, want 3", len(rec.lines))
	}

	rec.lines = nil
	c.SetLineWidth(4)
	c.Stroke()
	if len(rec.lines) != 0 || len(rec.fills) != 3 {
		t.Fatalf("wide stroke: lines %d fills %d", len(rec.lines), len(rec.fills))
	}

	rec.fills = nil
	c.BeginPath()
	c.Arc(50, 50, 20, 0, 2*math.Pi)
	c.Fill()
	if len(rec.fills) != 1 {
		t.Fatal("arc fill missing")
	}
	for _, p := range rec.fills[0][0] {
		if d := math.Hypot(p.X-50, p.Y-50); !near(d, 20) {
			t.Fatalf("arc point %v at distance %v", p, d)
		}
	}
}

func TestCanvasFillAndBlend(t *testing.T) {
	cv := NewCanvas(10, 5)
	w, h := cv.Size()
	if w != 10 || h != 10 {
		t.Fatalf("size = %dx%d", w, h)
	}
	cv.FillPolygons([][]Point{{{2, 2}, {6, 2}, {6, 6}, {2, 6}}}, Shader{Color: Color{1, 0, 0, 0.5}})

	if p := cv.Pixel(3, 3); !near(p.R, 0.5) {
		t.Fatalf("inside pixel = %+v", p)
	}
	if p := cv.Pixel(6, 3); p.R != 0 {
		t.Fatalf("pixel right of the edge was filled: %+v", p)
	}
	if p := cv.Pixel(1, 3); p.R != 0 {
		t.Fatalf("pixel left of the edge was filled: %+v", p)
	}
}

func TestCanvasTinyShapeStillVisible(t *testing.T) {
	cv := NewCanvas(10, 5)
	cv.FillPolygons([][]Point{{{4.1, 4.1}, {4.4, 4.1}, {4.4, 4.4}}}, Shader{Color: White})
	if p := cv.Pixel(4, 4); p.R <= 0 {
		t.Fatal("sub-pixel shape left no trace")
	}
}

func TestCanvasRenderSkipsUnchangedCells(t *testing.T) {
	cv := NewCanvas(4, 2)
	var first bytes.Buffer
	cv.Render(&first)
	if strings.Count(first.String(), string(BlockUpperHalf)) != 8 {
		t.Fatalf("first render should paint all 8 cells")
	}

	var second bytes.Buffer
	cv.Render(&second)
	if second.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", second.String())
	}

	cv.Line(Point{0.5, 0.5}, Point{0.5, 0.5}, Shader{Color: White})
	var third bytes.Buffer
	cv.Render(&third)
	if strings.Count(third.String(), string(BlockUpperHalf)) != 1 {
		t.Fatalf("expected one changed cell, got %q", third.String())
	}
	if !strings.Contains(third.String(), "\033[38;2;255;255;255m") {
		t.Fatalf("missing white foreground in %q", third.String())
	}

	cv.ForceRedraw()
	var fourth bytes.Buffer
	cv.Render(&fourth)
	if strings.Count(fourth.String(), string(BlockUpperHalf)) != 8 {
		t.Fatal("ForceRedraw should repaint every cell")
	}
}

func TestCanvasMarkTextDirty(t *testing.T) {
	cv := NewCanvas(6, 3)
	cv.Render(io.Discard)

	cv.MarkTextDirty(2, 2, 3)
	cv.MarkTextDirty(5, 9, 4) // off canvas
	var buf bytes.Buffer
	cv.Render(&buf)
	if got := strings.Count(buf.String(), string(BlockUpperHalf)); got != 3 {
		t.Fatalf("repainted %d cells, want 3", got)
	}

	buf.Reset()
	cv.Render(&buf)
	if buf.Len() != 0 {
		t.Fatal("dirty marks should clear after one render")
	}
}

func TestImageTarget(t *testing.T) {
	img := NewImage(20, 20)
	c := NewContext(img, 20, 20)
	FillCircle(c, 10, 10, 5, Solid(Color{0, 1, 0, 1}))

	if got := img.RGBA().RGBAAt(10, 10); got.G != 255 || got.R != 0 {
		t.Fatalf("center = %+v", got)
	}
	if got := img.RGBA().RGBAAt(1, 1); got.G != 0 {
		t.Fatalf("corner = %+v", got)
	}

	// Shapes far outside the image are clipped, not rasterized.
	c.FillRect(-1000, -1000, 5, 5)
	c.BeginPath()
	c.MoveTo(-50, 10)
	c.LineTo(70, 10)
	c.SetStroke(Solid(White))
	c.Stroke()
	if got := img.RGBA().RGBAAt(0, 10); got.R == 0 {
		t.Fatalf("clipped line missing at left edge: %+v", got)
	}
}

func TestChunkWriterOffsetsAndChunks(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 4, 2)
	cw.WriteAt(1, 1, "hi")
	if out.Len() != 0 {
		t.Fatal("output should wait for Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if want := "\033[3;5H" + seqReset + "hi"; out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}

	out.Reset()
	big := strings.Repeat("x", 3*maxChunkSize+7)
	cw.WriteString(big)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != big {
		t.Fatal("chunked flush changed the output")
	}
}

func TestTermSize(t *testing.T) {
	tests := []struct {
		name    string
		f       TermSizeFunc
		wantErr error
	}{
		{"ok", func() (int, int, error) { return 80, 24, nil }, nil},
		{"empty window", func() (int, int, error) { return 0, 0, nil }, ErrNoTerminalSize},
		{"not a terminal", func() (int, int, error) { return 0, 0, io.ErrClosedPipe }, io.ErrClosedPipe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := TermSize(tt.f)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && (w != 80 || h != 24) {
				t.Errorf("size = %dx%d", w, h)
			}
		})
	}
}
