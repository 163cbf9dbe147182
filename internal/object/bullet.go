package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/physics"
)

// Bullet tuning.
const (
	BulletSpeed    = 400.0
	BulletRadius   = 3.0
	BulletLifetime = 2.0 // seconds

	bulletTrailMax   = 8
	bulletTrailDecay = 3.0
	bulletPulseSpeed = 15.0
)

// Bullet is a short-lived laser bolt fired by the player.
type Bullet struct {
	Position physics.Vector2
	Velocity physics.Vector2
	Radius   float64
	Lifetime float64
	Age      float64
	Alive    bool

	Hue        float64
	Intensity  float64
	PulsePhase float64
	Trail      Trail

	// Hit is set once the bullet destroyed an asteroid.
	Hit bool
}

// NewBullet creates a bullet at pos moving with vel.
func NewBullet(pos, vel physics.Vector2, rng *rand.Rand) *Bullet {
	return &Bullet{
		Position:   pos,
		Velocity:   vel,
		Radius:     BulletRadius,
		Lifetime:   BulletLifetime,
		Alive:      true,
		Hue:        180 + rng.Float64()*60,
		Intensity:  1,
		PulsePhase: rng.Float64() * 2 * math.Pi,
		Trail:      NewTrail(bulletTrailMax, bulletTrailDecay),
	}
}

// Update ages and moves the bullet. A bullet past its lifetime dies.
func (b *Bullet) Update(dt float64) {
	if !b.Alive {
		return
	}
	b.Age += dt
	b.PulsePhase += dt * bulletPulseSpeed

	if b.Age >= b.Lifetime {
		b.Alive = false
		return
	}

	b.Intensity = math.Max(0, 1-(b.Age/b.Lifetime)*0.5)
	b.Position.Add(b.Velocity.Scaled(dt))

	b.Trail.Push(b.Position, 0)
	b.Trail.Fade(dt)
	b.Trail.Limit()
}

// Expired reports whether the bullet ran out of lifetime.
func (b *Bullet) Expired() bool {
	return b.Age >= b.Lifetime
}

// Destroy deactivates the bullet.
func (b *Bullet) Destroy() {
	b.Alive = false
}

// Bounds implements physics.Body.
func (b *Bullet) Bounds() (physics.Vector2, float64) {
	return b.Position, b.Radius
}

// Draw renders the trail, glow, core and orbiting sparks.
func (b *Bullet) Draw(ctx DrawContext) {
	if !b.Alive {
		return
	}
	s := ctx.Surface
	s.Save()
	defer s.Restore()

	if ctx.Trails {
		b.drawTrail(s)
	}

	pl := pulse(b.PulsePhase, 0.4, 0.6)
	hue := math.Mod(b.Hue+b.Age*60, 360)
	alpha := b.Intensity * pl
	x, y := b.Position.X, b.Position.Y

	if ctx.Glow {
		glow(s, x, y, 15*pl*b.Intensity,
			draw.Stop{Offset: 0, Color: draw.HSLA(hue, 1, 0.8, alpha)},
			draw.Stop{Offset: 0.4, Color: draw.HSLA(hue+30, 1, 0.6, alpha*0.6)},
			draw.Stop{Offset: 1, Color: draw.Transparent},
		)
	}

	draw.FillCircle(s, x, y, b.Radius*pl, draw.Solid(draw.HSLA(hue, 1, 0.9, alpha)))
	draw.FillCircle(s, x, y, b.Radius*0.5*pl, draw.Solid(draw.HSLA(hue+60, 1, 0.95, alpha)))

	const sparks, reach = 4, 8.0
	for i := 0; i < sparks; i++ {
		fi := float64(i)
		angle := 2*math.Pi/sparks*fi + b.PulsePhase
		d := reach * math.Sin(b.PulsePhase*2+fi)
		size := 1 + math.Sin(b.PulsePhase+fi)*0.5
		draw.FillCircle(s, x+math.Cos(angle)*d, y+math.Sin(angle)*d, size,
			draw.Solid(draw.HSLA(hue+fi*30, 1, 0.8, alpha*0.7)))
	}
}

func (b *Bullet) drawTrail(s draw.Surface) {
	pts := b.Trail.Points
	if len(pts) < 2 {
		return
	}
	last := float64(len(pts) - 1)
	for i := 0; i+1 < len(pts); i++ {
		pt := pts[i]
		progress := float64(i) / last
		alpha := pt.Life * b.Intensity * (1 - progress*0.5)
		hue := b.Hue + float64(i)*10
		width := b.Radius * 2 * pt.Life * (1 - progress*0.7)

		s.SetStroke(draw.Solid(draw.HSLA(hue, 1, 0.7, alpha)))
		s.SetLineWidth(width)
		segment(s, pt.Position, pts[i+1].Position)

		s.SetStroke(draw.Solid(draw.HSLA(hue+60, 1, 0.9, alpha*0.8)))
		s.SetLineWidth(width * 0.3)
		segment(s, pt.Position, pts[i+1].Position)
	}
}
