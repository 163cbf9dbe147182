package draw

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a straight (non-premultiplied) RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{A: 1}
	White       = Color{R: 1, G: 1, B: 1, A: 1}
)

// RGBA builds a color from components in [0, 1].
func RGBA(r, g, b, a float64) Color {
	return Color{R: clamp01(r), G: clamp01(g), B: clamp01(b), A: clamp01(a)}
}

// HSLA builds a color from a hue in degrees (any range, wrapped to [0, 360))
// and saturation, lightness and alpha in [0, 1].
func HSLA(h, s, l, a float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsl(h, clamp01(s), clamp01(l)).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: clamp01(a)}
}

// Hex parses a "#rrggbb" color.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// MustHex is like Hex but panics on malformed input. Use it for literals only.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as "#rrggbb", dropping alpha.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// MulAlpha returns c with its alpha scaled by f.
func (c Color) MulAlpha(f float64) Color {
	c.A = clamp01(c.A * f)
	return c
}

// Lerp interpolates between c and o in premultiplied space, so fading
// towards Transparent does not darken the color.
func (c Color) Lerp(o Color, t float64) Color {
	a := c.A + (o.A-c.A)*t
	if a <= 0 {
		return Transparent
	}
	r := (c.R*c.A + (o.R*o.A-c.R*c.A)*t) / a
	g := (c.G*c.A + (o.G*o.A-c.G*c.A)*t) / a
	b := (c.B*c.A + (o.B*o.A-c.B*c.A)*t) / a
	return RGBA(r, g, b, a)
}

// NRGBA converts to the standard library color type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
