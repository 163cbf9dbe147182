package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/physics"
)

// SizeClass represents the size category of an asteroid.
type SizeClass int

const (
	Small  SizeClass = 1
	Medium SizeClass = 2
	Large  SizeClass = 3
)

// Radius returns the collision and draw radius.
func (s SizeClass) Radius() float64 {
	switch s {
	case Large:
		return 40
	case Medium:
		return 25
	default:
		return 15
	}
}

// Score is the points awarded for destroying an asteroid of this size.
func (s SizeClass) Score() int {
	switch s {
	case Large:
		return 20
	case Medium:
		return 50
	default:
		return 100
	}
}

// Fragment returns the size of the pieces this class breaks into.
// ok is false for the smallest class.
func (s SizeClass) Fragment() (SizeClass, bool) {
	switch s {
	case Large:
		return Medium, true
	case Medium:
		return Small, true
	}
	return 0, false
}

func (s SizeClass) String() string {
	switch s {
	case Large:
		return "large"
	case Medium:
		return "medium"
	case Small:
		return "small"
	}
	return "unknown"
}

// Crack is a decorative line from the inner ring outward.
type Crack struct {
	Start, End physics.Vector2
	Width      float64
}

// sparkle is a glint drawn on the surface. Positions are fixed at creation
// so drawing never consumes randomness.
type sparkle struct {
	distance float64 // fraction of the radius
	size     float64
}

// Asteroid is a destructible space rock with a procedural outline.
type Asteroid struct {
	Position        physics.Vector2
	Velocity        physics.Vector2
	Rotation        float64
	AngularVelocity float64
	Size            SizeClass
	Radius          float64

	Vertices []physics.Vector2 // local space, fixed at creation
	Cracks   []Crack

	Hue           float64
	PulsePhase    float64
	GlowIntensity float64
	DetailLevel   int

	sparkles []sparkle
}

// NewAsteroid creates an asteroid at pos with a random drift and outline.
func NewAsteroid(pos physics.Vector2, size SizeClass, rng *rand.Rand) *Asteroid {
	a := &Asteroid{
		Position: pos,
		Velocity: physics.Vec(
			(rng.Float64()-0.5)*100,
			(rng.Float64()-0.5)*100,
		),
		Rotation:        rng.Float64() * 2 * math.Pi,
		AngularVelocity: (rng.Float64() - 0.5) * 3,
		Size:            size,
		Radius:          size.Radius(),
		DetailLevel:     int(size),
	}

	// Generate irregular polygon vertices (8-11 vertices)
	n := 8 + rng.Intn(4)
	a.Vertices = make([]physics.Vector2, n)
	for i := range a.Vertices {
		angle := 2 * math.Pi / float64(n) * float64(i)
		r := a.Radius*0.7 + (rng.Float64()-0.5)*a.Radius*0.3
		a.Vertices[i] = physics.FromAngle(angle).Scaled(r)
	}

	cracks := 3 + rng.Intn(4)
	a.Cracks = make([]Crack, cracks)
	for i := range a.Cracks {
		dir := physics.FromAngle(rng.Float64() * 2 * math.Pi)
		a.Cracks[i] = Crack{
			Start: dir.Scaled(a.Radius * 0.3),
			End:   dir.Scaled(a.Radius * (0.7 + rng.Float64()*0.3)),
			Width: 0.5 + rng.Float64()*1.5,
		}
	}

	a.Hue = rng.Float64() * 360
	a.PulsePhase = rng.Float64() * 2 * math.Pi
	a.GlowIntensity = 0.3 + rng.Float64()*0.4

	a.sparkles = make([]sparkle, a.DetailLevel*2)
	for i := range a.sparkles {
		a.sparkles[i] = sparkle{distance: 0.4 + rng.Float64()*0.4, size: 1 + rng.Float64()*2}
	}
	return a
}

// Update advances position, spin and the color cycle.
func (a *Asteroid) Update(dt float64) {
	a.Position.Add(a.Velocity.Scaled(dt))
	a.Rotation += a.AngularVelocity * dt
	a.PulsePhase += dt * 2
	a.Hue += dt * 10
}

// ContainsPoint reports whether p lies within the asteroid's radius.
// The outline is approximated by its circle.
func (a *Asteroid) ContainsPoint(p physics.Vector2) bool {
	local := p.Subtracted(a.Position).Rotated(-a.Rotation)
	return local.Length() <= a.Radius
}

// Bounds implements physics.Body.
func (a *Asteroid) Bounds() (physics.Vector2, float64) {
	return a.Position, a.Radius
}

// Draw renders glow, body, highlights, cracks and sparkles.
func (a *Asteroid) Draw(ctx DrawContext) {
	s := ctx.Surface
	s.Save()
	defer s.Restore()

	s.Translate(a.Position.X, a.Position.Y)
	s.Rotate(a.Rotation)

	pl := pulse(a.PulsePhase, 0.3, 0.7)
	hue := math.Mod(a.Hue, 360)

	if ctx.Glow {
		glow(s, 0, 0, a.Radius*1.5*pl,
			draw.Stop{Offset: 0, Color: draw.HSLA(hue, 0.8, 0.4, a.GlowIntensity*pl)},
			draw.Stop{Offset: 0.7, Color: draw.HSLA(hue+60, 0.9, 0.5, a.GlowIntensity*0.3)},
			draw.Stop{Offset: 1, Color: draw.Transparent},
		)
	}

	a.drawBody(s, pl, hue)
	a.drawDetails(s, pl, hue)
}

func (a *Asteroid) drawBody(s draw.Surface, pl, hue float64) {
	r := a.Radius
	s.SetFill(draw.NewFocalGradient(
		draw.Point{X: -r * 0.3, Y: -r * 0.3}, 0, draw.Point{}, r,
		draw.Stop{Offset: 0, Color: draw.HSLA(hue+30, 0.6, 0.2, 0.8)},
		draw.Stop{Offset: 0.6, Color: draw.HSLA(hue, 0.7, 0.15, 0.6)},
		draw.Stop{Offset: 1, Color: draw.HSLA(hue-30, 0.8, 0.1, 0.4)},
	))
	s.SetStroke(draw.Solid(draw.HSLA(hue, 1, 0.5, pl)))
	s.SetLineWidth(2)

	s.BeginPath()
	s.MoveTo(a.Vertices[0].X, a.Vertices[0].Y)
	for _, v := range a.Vertices[1:] {
		s.LineTo(v.X, v.Y)
	}
	s.ClosePath()
	s.Fill()
	s.Stroke()

	// Inner highlight through every other vertex
	s.SetStroke(draw.Solid(draw.HSLA(hue+120, 1, 0.7, pl*0.6)))
	s.SetLineWidth(1)
	s.BeginPath()
	for i := 0; i < len(a.Vertices); i += 2 {
		v := a.Vertices[i].Scaled(0.7)
		if i == 0 {
			s.MoveTo(v.X, v.Y)
		} else {
			s.LineTo(v.X, v.Y)
		}
	}
	s.Stroke()
}

func (a *Asteroid) drawDetails(s draw.Surface, pl, hue float64) {
	s.SetStroke(draw.Solid(draw.HSLA(hue+180, 1, 0.6, pl*0.8)))
	for _, c := range a.Cracks {
		s.SetLineWidth(c.Width)
		segment(s, c.Start, c.End)
	}

	n := len(a.sparkles)
	fill := draw.Solid(draw.HSLA(hue+240, 1, 0.8, pl))
	for i, sp := range a.sparkles {
		angle := 2*math.Pi/float64(n)*float64(i) + a.Rotation*0.5
		p := physics.FromAngle(angle).Scaled(a.Radius * sp.distance)
		draw.FillCircle(s, p.X, p.Y, sp.size, fill)
	}

	if a.Size == Large {
		draw.FillCircle(s, 0, 0, a.Radius*0.4, draw.NewRadialGradient(0, 0, a.Radius*0.4,
			draw.Stop{Offset: 0, Color: draw.HSLA(hue+90, 1, 0.6, pl*0.4)},
			draw.Stop{Offset: 1, Color: draw.Transparent},
		))
	}
}
