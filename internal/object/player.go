package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/physics"
)

// Player tuning.
const (
	PlayerRadius           = 12.0
	PlayerMaxThrust        = 300.0
	DefaultInvulnerability = 3.0 // seconds

	playerThrustRate     = 200.0 // thrust gained per second while held
	playerThrustDecay    = 0.98  // per frame when released
	playerRotationSpeed  = 4.0   // radians per second
	playerAngularDamping = 0.9   // per frame when no rotation key is held
	playerFriction       = 0.995 // per frame
	playerTrailMax       = 20
	playerTrailDecay     = 2.0
	playerTrailMinSpeed  = 10.0
	playerExhaustOffset  = 15.0
)

// Player is the ship controlled by the user (Asteroids-style).
type Player struct {
	Position        physics.Vector2
	Velocity        physics.Vector2
	Rotation        float64 // radians, 0 = pointing right
	AngularVelocity float64
	Radius          float64

	Alive            bool
	Invulnerable     bool
	InvulnerableTime float64 // seconds remaining

	Thrust float64 // 0..PlayerMaxThrust
	Trail  Trail

	Hue        float64
	PulsePhase float64
	Style      ShipStyle

	thrusting bool
	rng       *rand.Rand
}

// NewPlayer creates a live player at pos pointing up.
func NewPlayer(pos physics.Vector2, style ShipStyle, rng *rand.Rand) *Player {
	if len(style.Points) < 3 {
		style = DefaultShipStyle()
	}
	return &Player{
		Position: pos,
		Rotation: -math.Pi / 2,
		Radius:   PlayerRadius,
		Alive:    true,
		Trail:    NewTrail(playerTrailMax, playerTrailDecay),
		Style:    style,
		rng:      rng,
	}
}

// Update handles rotation, thrust, momentum and the trail.
func (p *Player) Update(dt float64, in Input) {
	if !p.Alive {
		return
	}

	p.PulsePhase += dt * 5
	p.Hue += dt * 60

	switch {
	case in.Left:
		p.AngularVelocity = -playerRotationSpeed
	case in.Right:
		p.AngularVelocity = playerRotationSpeed
	default:
		p.AngularVelocity *= playerAngularDamping
	}
	p.Rotation += p.AngularVelocity * dt

	p.thrusting = in.Thrust
	if in.Thrust {
		p.Thrust = math.Min(p.Thrust+playerThrustRate*dt, PlayerMaxThrust)
		p.Velocity.Add(physics.FromAngle(p.Rotation).Scaled(p.Thrust * dt))
		p.Trail.Push(p.Exhaust(), 3+p.rng.Float64()*2)
	} else {
		p.Thrust *= playerThrustDecay
	}

	p.Velocity.Scale(playerFriction)
	p.Position.Add(p.Velocity.Scaled(dt))

	p.Trail.Fade(dt)
	if p.Velocity.Length() > playerTrailMinSpeed {
		p.Trail.Push(p.Position, 2)
	}
	p.Trail.Limit()

	if p.Invulnerable {
		p.InvulnerableTime -= dt
		if p.InvulnerableTime <= 0 {
			p.Invulnerable = false
			p.InvulnerableTime = 0
		}
	}
}

// Thrusting reports whether thrust was held during the last Update.
func (p *Player) Thrusting() bool {
	return p.Alive && p.thrusting
}

// ThrustIntensity is the current thrust as a fraction of the maximum.
func (p *Player) ThrustIntensity() float64 {
	return p.Thrust / PlayerMaxThrust
}

// Exhaust is the world point behind the ship where thrust is emitted.
func (p *Player) Exhaust() physics.Vector2 {
	return p.Position.Added(physics.FromAngle(p.Rotation + math.Pi).Scaled(playerExhaustOffset))
}

// Muzzle is the world point in front of the nose where bullets spawn.
func (p *Player) Muzzle(offset float64) physics.Vector2 {
	return p.Position.Added(physics.FromAngle(p.Rotation).Scaled(offset))
}

// Destroy marks the player as dead.
func (p *Player) Destroy() {
	p.Alive = false
	p.thrusting = false
}

// MakeInvulnerable protects the player for d seconds.
func (p *Player) MakeInvulnerable(d float64) {
	p.Invulnerable = true
	p.InvulnerableTime = d
}

// Bounds implements physics.Body.
func (p *Player) Bounds() (physics.Vector2, float64) {
	return p.Position, p.Radius
}

// Draw renders the trail, glow, hull and thrust flames.
func (p *Player) Draw(ctx DrawContext) {
	if !p.Alive {
		return
	}
	s := ctx.Surface
	s.Save()
	defer s.Restore()

	if ctx.Trails {
		p.drawTrail(s)
	}

	if p.Invulnerable && !FlickerVisible(p.InvulnerableTime) {
		return
	}

	s.Translate(p.Position.X, p.Position.Y)
	s.Rotate(p.Rotation)

	pl := pulse(p.PulsePhase, 0.3, 0.7)
	hue := math.Mod(p.Hue, 360)

	if ctx.Glow {
		glow(s, 0, 0, 25*pl,
			draw.Stop{Offset: 0, Color: draw.HSLA(hue, 1, 0.5, 0.3)},
			draw.Stop{Offset: 1, Color: draw.Transparent},
		)
	}

	pts := p.Style.Points
	s.SetLineWidth(2)
	s.SetStroke(draw.Solid(draw.HSLA(hue, 1, 0.5, pl)))
	s.SetFill(draw.Solid(p.Style.Color.WithAlpha(0.25)))
	s.BeginPath()
	s.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		s.LineTo(pt.X, pt.Y)
	}
	s.ClosePath()
	s.Fill()
	s.Stroke()

	draw.FillCircle(s, 0, 0, 2*pl, draw.Solid(p.Style.GlowColor))

	if p.Thrust > 50 {
		p.drawFlames(s, pl, hue)
	}
}

func (p *Player) drawFlames(s draw.Surface, pl, hue float64) {
	intensity := p.ThrustIntensity()
	back := p.Style.Nose().Normalized().Scaled(-1)
	perp := physics.Vec(-back.Y, back.X)
	length := 8 + intensity*12
	width := 3 + intensity*2
	tip := back.Scaled(length)

	for _, t := range p.Style.Thrusters {
		s.Save()
		s.Translate(t.X, t.Y)
		s.SetFill(draw.NewLinearGradient(draw.Point{}, draw.Point{X: tip.X, Y: tip.Y},
			draw.Stop{Offset: 0, Color: draw.HSLA(hue+40, 1, 0.7, pl)},
			draw.Stop{Offset: 0.5, Color: draw.HSLA(hue+20, 1, 0.6, pl*0.8)},
			draw.Stop{Offset: 1, Color: draw.Transparent},
		))
		s.BeginPath()
		s.MoveTo(perp.X*width, perp.Y*width)
		s.LineTo(tip.X, tip.Y)
		s.LineTo(-perp.X*width, -perp.Y*width)
		s.ClosePath()
		s.Fill()
		s.Restore()
	}
}

func (p *Player) drawTrail(s draw.Surface) {
	pts := p.Trail.Points
	for i := 0; i+1 < len(pts); i++ {
		pt := pts[i]
		s.SetStroke(draw.Solid(draw.HSLA(p.Hue+float64(i)*10, 1, 0.5, pt.Life*0.6)))
		s.SetLineWidth(pt.Size * pt.Life)
		segment(s, pt.Position, pts[i+1].Position)
	}
}
