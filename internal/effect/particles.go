package effect

import (
	"math"
	"math/rand"

	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/physics"
)

// MaxParticles is the number of live particles a system holds at most.
const MaxParticles = 1000

const defaultDrag = 0.98

// Kind selects how a particle is drawn.
type Kind uint8

const (
	KindDefault Kind = iota
	KindSpark
	KindExplosion
	KindThrust
	KindDebris
	KindStar
)

func (k Kind) String() string {
	switch k {
	case KindSpark:
		return "spark"
	case KindExplosion:
		return "explosion"
	case KindThrust:
		return "thrust"
	case KindDebris:
		return "debris"
	case KindStar:
		return "star"
	}
	return "default"
}

// Particle is a short-lived visual point. The trailing fields are only used
// by some kinds: HueShift by thrust, Rotation by debris, SizeDecay by none
// of the built-in emitters.
type Particle struct {
	Kind      Kind
	Position  physics.Vector2
	Velocity  physics.Vector2
	Life      float64
	Decay     float64 // life lost per second
	Drag      float64 // velocity factor per update, 0 means the default
	Size      float64
	Hue       float64
	BaseAlpha float64

	HueShift  float64 // degrees per second
	SizeDecay float64 // size factor per update, 0 disables
	Rotation  float64
}

// ParticleSystem owns a bounded pool of particles.
type ParticleSystem struct {
	particles []Particle
	max       int
	dropped   int
	rng       *rand.Rand
}

// NewParticleSystem creates an empty system capped at MaxParticles.
func NewParticleSystem(rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		particles: make([]Particle, 0, MaxParticles),
		max:       MaxParticles,
		rng:       rng,
	}
}

// Add appends p unless the system is full. Dropped particles are counted.
func (ps *ParticleSystem) Add(p Particle) bool {
	if len(ps.particles) >= ps.max {
		ps.dropped++
		return false
	}
	ps.particles = append(ps.particles, p)
	return true
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int { return len(ps.particles) }

// Cap returns the particle limit.
func (ps *ParticleSystem) Cap() int { return ps.max }

// Dropped returns how many spawns were rejected because the system was full.
func (ps *ParticleSystem) Dropped() int { return ps.dropped }

// Particles returns the live particles. The slice is only valid until the next Update.
func (ps *ParticleSystem) Particles() []Particle { return ps.particles }

// Clear removes every particle.
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
}

func (ps *ParticleSystem) free() int {
	return ps.max - len(ps.particles)
}

// Update ages, moves and drags every particle, dropping the dead ones in place.
func (ps *ParticleSystem) Update(dt float64) {
	n := 0
	for _, p := range ps.particles {
		p.Life -= dt * p.Decay
		if p.Life <= 0 {
			continue
		}
		p.Position.Add(p.Velocity.Scaled(dt))
		drag := p.Drag
		if drag == 0 {
			drag = defaultDrag
		}
		p.Velocity.Scale(drag)
		if p.HueShift != 0 {
			p.Hue += p.HueShift * dt
		}
		if p.SizeDecay != 0 {
			p.Size *= p.SizeDecay
		}
		ps.particles[n] = p
		n++
	}
	ps.particles = ps.particles[:n]
}

// CreateExplosion emits up to intensity fragments in a ring plus up to 8
// debris pieces, limited by the free capacity.
func (ps *ParticleSystem) CreateExplosion(pos physics.Vector2, intensity int) {
	count := min(intensity, ps.free())
	for i := 0; i < count; i++ {
		angle := 2*math.Pi/float64(count)*float64(i) + ps.rng.Float64()*0.5
		speed := 50 + ps.rng.Float64()*150
		ps.Add(Particle{
			Kind:      KindExplosion,
			Position:  pos,
			Velocity:  physics.FromAngle(angle).Scaled(speed),
			Life:      0.8 + ps.rng.Float64()*0.4,
			Size:      2 + ps.rng.Float64()*4,
			Hue:       20 + ps.rng.Float64()*60,
			Decay:     1.5 + ps.rng.Float64()*0.5,
			Drag:      0.95,
			BaseAlpha: 0.8,
		})
	}

	debris := min(8, ps.free())
	for i := 0; i < debris; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := 30 + ps.rng.Float64()*80
		ps.Add(Particle{
			Kind:      KindDebris,
			Position:  pos,
			Velocity:  physics.FromAngle(angle).Scaled(speed),
			Life:      1.5 + ps.rng.Float64(),
			Size:      3 + ps.rng.Float64()*5,
			Hue:       30 + ps.rng.Float64()*40,
			Decay:     0.8 + ps.rng.Float64()*0.4,
			Drag:      0.98,
			Rotation:  ps.rng.Float64() * 2 * math.Pi,
			BaseAlpha: 0.9,
		})
	}
}

// CreateMuzzleFlash emits 8 fast cyan sparks along direction.
func (ps *ParticleSystem) CreateMuzzleFlash(pos physics.Vector2, direction float64) {
	for i := 0; i < 8; i++ {
		angle := direction + (ps.rng.Float64()-0.5)*0.3
		speed := 100 + ps.rng.Float64()*50
		ps.Add(Particle{
			Kind:      KindSpark,
			Position:  pos,
			Velocity:  physics.FromAngle(angle).Scaled(speed),
			Life:      0.1 + ps.rng.Float64()*0.1,
			Size:      1 + ps.rng.Float64()*2,
			Hue:       180 + ps.rng.Float64()*60,
			Decay:     8,
			Drag:      0.9,
			BaseAlpha: 0.9,
		})
	}
}

// CreateThrustParticles emits floor(5*intensity) flame particles opposite
// to direction.
func (ps *ParticleSystem) CreateThrustParticles(pos physics.Vector2, direction, intensity float64) {
	count := int(math.Floor(5 * intensity))
	for i := 0; i < count; i++ {
		angle := direction + math.Pi + (ps.rng.Float64()-0.5)*0.8
		speed := 80 + ps.rng.Float64()*40
		ps.Add(Particle{
			Kind:      KindThrust,
			Position:  pos,
			Velocity:  physics.FromAngle(angle).Scaled(speed),
			Life:      0.3 + ps.rng.Float64()*0.2,
			Size:      2 + ps.rng.Float64()*3,
			Hue:       60 + ps.rng.Float64()*30,
			HueShift:  60,
			Decay:     3,
			Drag:      0.95,
			BaseAlpha: 0.7,
		})
	}
}

// CreateImpact emits 8 sparks around pos tinted near hue.
func (ps *ParticleSystem) CreateImpact(pos physics.Vector2, hue float64) {
	const count = 8
	for i := 0; i < count; i++ {
		angle := 2*math.Pi/count*float64(i) + ps.rng.Float64()*0.5
		speed := 50 + ps.rng.Float64()*100
		ps.Add(Particle{
			Kind:      KindDefault,
			Position:  pos,
			Velocity:  physics.FromAngle(angle).Scaled(speed),
			Life:      0.5 + ps.rng.Float64()*0.3,
			Size:      2 + ps.rng.Float64()*3,
			Hue:       hue + ps.rng.Float64()*60 - 30,
			Decay:     2 + ps.rng.Float64(),
			BaseAlpha: 1,
		})
	}
}

// CreateStarField scatters count immortal stars over a width×height area.
func (ps *ParticleSystem) CreateStarField(count int, width, height float64) {
	for i := 0; i < count; i++ {
		ps.Add(Particle{
			Kind:      KindStar,
			Position:  physics.Vec(ps.rng.Float64()*width, ps.rng.Float64()*height),
			Life:      math.Inf(1),
			Size:      0.5 + ps.rng.Float64()*2,
			Hue:       200 + ps.rng.Float64()*160,
			BaseAlpha: 0.3 + ps.rng.Float64()*0.4,
			Drag:      1,
		})
	}
}

// Draw renders every particle by kind.
func (ps *ParticleSystem) Draw(s draw.Surface, glow bool) {
	for i := range ps.particles {
		p := &ps.particles[i]
		alpha := p.BaseAlpha
		if p.Kind != KindStar {
			alpha *= p.Life
		}
		if alpha <= 0 {
			continue
		}
		alpha = math.Min(alpha, 1)

		switch p.Kind {
		case KindSpark:
			drawSpark(s, p, alpha, glow)
		case KindExplosion:
			drawExplosion(s, p, alpha)
		case KindThrust:
			size := p.Size * (0.5 + math.Sin(p.Life*10)*0.5)
			draw.FillCircle(s, p.Position.X, p.Position.Y, size,
				draw.Solid(draw.HSLA(p.Hue+p.Life*120, 1, 0.7, alpha)))
		case KindDebris:
			drawDebris(s, p, alpha)
		case KindStar:
			draw.FillCircle(s, p.Position.X, p.Position.Y, p.Size,
				draw.Solid(draw.HSLA(p.Hue, 0.6, 0.85, alpha)))
		default:
			draw.FillCircle(s, p.Position.X, p.Position.Y, p.Size*p.Life,
				draw.Solid(draw.HSLA(p.Hue, 1, 0.7, alpha)))
		}
	}
}

func drawSpark(s draw.Surface, p *Particle, alpha float64, glow bool) {
	size := p.Size * p.Life
	x, y := p.Position.X, p.Position.Y
	if glow {
		r := size * 3
		s.SetFill(draw.NewRadialGradient(x, y, r,
			draw.Stop{Offset: 0, Color: draw.HSLA(p.Hue, 1, 0.8, alpha)},
			draw.Stop{Offset: 1, Color: draw.Transparent},
		))
		s.FillRect(x-r, y-r, r*2, r*2)
	}
	draw.FillCircle(s, x, y, size, draw.Solid(draw.HSLA(p.Hue, 1, 0.9, alpha)))
}

func drawExplosion(s draw.Surface, p *Particle, alpha float64) {
	x, y := p.Position.X, p.Position.Y
	s.SetFill(draw.Solid(draw.HSLA(p.Hue, 1, 0.6, alpha)))
	s.SetStroke(draw.Solid(draw.HSLA(p.Hue+60, 1, 0.8, alpha*0.8)))
	s.SetLineWidth(1)
	s.BeginPath()
	s.Arc(x, y, p.Size, 0, 2*math.Pi)
	s.Fill()
	s.Stroke()

	speed := p.Velocity.Length()
	if speed <= 10 {
		return
	}
	tail := p.Position.Subtracted(p.Velocity.Normalized().Scaled(math.Min(speed*0.5, 20)))
	s.SetStroke(draw.Solid(draw.HSLA(p.Hue, 1, 0.7, alpha*0.5)))
	s.SetLineWidth(p.Size * 0.5)
	s.BeginPath()
	s.MoveTo(x, y)
	s.LineTo(tail.X, tail.Y)
	s.Stroke()
}

func drawDebris(s draw.Surface, p *Particle, alpha float64) {
	size := p.Size
	s.Save()
	s.Translate(p.Position.X, p.Position.Y)
	s.Rotate(p.Rotation)
	s.SetFill(draw.Solid(draw.HSLA(p.Hue, 0.8, 0.4, alpha)))
	s.SetStroke(draw.Solid(draw.HSLA(p.Hue+60, 1, 0.6, alpha*0.8)))
	s.SetLineWidth(1)
	s.BeginPath()
	s.MoveTo(size, 0)
	s.LineTo(size*0.3, size*0.8)
	s.LineTo(-size*0.7, size*0.4)
	s.LineTo(-size, -size*0.2)
	s.LineTo(-size*0.2, -size)
	s.LineTo(size*0.6, -size*0.3)
	s.ClosePath()
	s.Fill()
	s.Stroke()
	s.Restore()
}
