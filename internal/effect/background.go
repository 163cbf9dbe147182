package effect

import (
	"math"
	"math/rand"

	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/physics"
)

// Background tuning.
const (
	starBuffer        = 200.0 // stars live this far past the screen edges
	nebulaBuffer      = 400.0
	nebulaParallax    = 0.05
	baseNebulae       = 12
	MaxNebulae        = 16
	MaxShootingStars  = 3
	shootingStarTrail = 20
	baseShootingStar  = 0.001 // chance per 60 Hz frame
)

// layerConfigs are the parallax star layers from far to near.
var layerConfigs = [...]struct {
	count       int
	speed, size float64
	alpha       float64
}{
	{80, 0.1, 0.5, 0.3},
	{60, 0.3, 1.0, 0.5},
	{40, 0.5, 1.5, 0.7},
	{20, 0.8, 2.0, 0.9},
}

var starColors = []draw.Color{
	draw.RGBA(1, 1, 1, 1),
	draw.RGBA(1, 200.0/255, 1, 1),
	draw.RGBA(200.0/255, 1, 1, 1),
	draw.RGBA(1, 1, 200.0/255, 1),
	draw.RGBA(200.0/255, 1, 200.0/255, 1),
	draw.RGBA(1, 200.0/255, 200.0/255, 1),
}

var nebulaColors = []draw.Color{
	draw.RGBA(1, 0, 1, 1),
	draw.RGBA(0, 1, 1, 1),
	draw.RGBA(1, 1, 0, 1),
	draw.RGBA(0, 1, 0, 1),
	draw.RGBA(1, 100.0/255, 0, 1),
	draw.RGBA(100.0/255, 0, 1, 1),
}

// Star is a twinkling point in a parallax layer.
type Star struct {
	Position     physics.Vector2
	Size         float64
	Color        draw.Color
	TwinklePhase float64
	TwinkleSpeed float64 // radians per second
}

// StarLayer moves its stars by Speed times the camera movement.
type StarLayer struct {
	Stars     []Star
	Speed     float64
	BaseAlpha float64
}

// Nebula is a large soft cloud behind the stars.
type Nebula struct {
	Position      physics.Vector2
	Size          float64
	Color         draw.Color
	Rotation      float64
	RotationSpeed float64 // radians per second
	Opacity       float64
	PulsePhase    float64
	PulseSpeed    float64 // radians per second
}

// ShootingStar streaks across the screen from Start to End.
type ShootingStar struct {
	Position physics.Vector2
	Start    physics.Vector2
	End      physics.Vector2
	Progress float64 // 0..1
	Speed    float64 // progress per 60 Hz frame
	Size     float64
	Color    draw.Color
	Trail    []physics.Vector2
}

// Background draws nebulae, parallax stars and shooting stars in screen space.
type Background struct {
	Layers        []StarLayer
	Nebulae       []Nebula
	ShootingStars []ShootingStar

	Intensity          float64
	ShootingStarChance float64

	width, height float64
	lastOffset    physics.Vector2
	rng           *rand.Rand
}

// NewBackground creates a background covering a width×height screen.
func NewBackground(width, height float64, rng *rand.Rand) *Background {
	b := &Background{
		Intensity:          1,
		ShootingStarChance: baseShootingStar,
		width:              width,
		height:             height,
		rng:                rng,
	}
	for _, cfg := range layerConfigs {
		layer := StarLayer{Stars: make([]Star, cfg.count), Speed: cfg.speed, BaseAlpha: cfg.alpha}
		for i := range layer.Stars {
			layer.Stars[i] = Star{
				Position:     b.scatter(starBuffer),
				Size:         cfg.size + rng.Float64()*cfg.size,
				Color:        starColors[rng.Intn(len(starColors))],
				TwinklePhase: rng.Float64() * 2 * math.Pi,
				TwinkleSpeed: 0.5 + rng.Float64()*2,
			}
		}
		b.Layers = append(b.Layers, layer)
	}
	for i := 0; i < baseNebulae; i++ {
		b.Nebulae = append(b.Nebulae, Nebula{
			Position:      b.scatter(nebulaBuffer),
			Size:          200 + rng.Float64()*400,
			Color:         nebulaColors[rng.Intn(len(nebulaColors))],
			Rotation:      rng.Float64() * 2 * math.Pi,
			RotationSpeed: (rng.Float64() - 0.5) * 0.06,
			Opacity:       0.08 + rng.Float64()*0.15,
			PulsePhase:    rng.Float64() * 2 * math.Pi,
			PulseSpeed:    0.06 + rng.Float64()*0.12,
		})
	}
	return b
}

// scatter returns a random point on the screen grown by buffer on every side.
func (b *Background) scatter(buffer float64) physics.Vector2 {
	return physics.Vec(
		(b.rng.Float64()-0.5)*(b.width+buffer*2)+b.width/2,
		(b.rng.Float64()-0.5)*(b.height+buffer*2)+b.height/2,
	)
}

// wrapInto moves p to the far side of the buffered screen when it leaves it.
func (b *Background) wrapInto(p *physics.Vector2, buffer float64) {
	switch {
	case p.X < -buffer:
		p.X = b.width + buffer
	case p.X > b.width+buffer:
		p.X = -buffer
	}
	switch {
	case p.Y < -buffer:
		p.Y = b.height + buffer
	case p.Y > b.height+buffer:
		p.Y = -buffer
	}
}

// Update scrolls the layers by the change in camera offset since the last
// call, advances twinkles and nebula motion, and spawns and moves shooting stars.
func (b *Background) Update(dt float64, cameraOffset physics.Vector2) {
	delta := cameraOffset.Subtracted(b.lastOffset)
	b.lastOffset = cameraOffset

	for li := range b.Layers {
		layer := &b.Layers[li]
		shift := delta.Scaled(layer.Speed)
		for i := range layer.Stars {
			star := &layer.Stars[i]
			star.Position.Add(shift)
			b.wrapInto(&star.Position, starBuffer)
			star.TwinklePhase += star.TwinkleSpeed * dt
		}
	}

	shift := delta.Scaled(nebulaParallax)
	for i := range b.Nebulae {
		n := &b.Nebulae[i]
		n.Position.Add(shift)
		b.wrapInto(&n.Position, nebulaBuffer)
		n.Rotation += n.RotationSpeed * dt
		n.PulsePhase += n.PulseSpeed * dt
	}

	b.maybeAddShootingStar(dt)

	live := b.ShootingStars[:0]
	for _, s := range b.ShootingStars {
		s.Progress += s.Speed * dt * 60
		s.Position = physics.Lerp(s.Start, s.End, s.Progress)
		s.Trail = append(s.Trail, s.Position)
		if extra := len(s.Trail) - shootingStarTrail; extra > 0 {
			s.Trail = append(s.Trail[:0], s.Trail[extra:]...)
		}
		if s.Progress < 1 {
			live = append(live, s)
		}
	}
	b.ShootingStars = live
}

func (b *Background) maybeAddShootingStar(dt float64) {
	if len(b.ShootingStars) >= MaxShootingStars || b.rng.Float64() >= b.ShootingStarChance*dt*60 {
		return
	}
	w, h := b.width, b.height
	var start, end physics.Vector2
	switch b.rng.Intn(4) {
	case 0: // top
		start = physics.Vec(b.rng.Float64()*w, -50)
		end = physics.Vec(start.X+(b.rng.Float64()-0.5)*400, h+50)
	case 1: // right
		start = physics.Vec(w+50, b.rng.Float64()*h)
		end = physics.Vec(-50, start.Y+(b.rng.Float64()-0.5)*400)
	case 2: // bottom
		start = physics.Vec(b.rng.Float64()*w, h+50)
		end = physics.Vec(start.X+(b.rng.Float64()-0.5)*400, -50)
	default: // left
		start = physics.Vec(-50, b.rng.Float64()*h)
		end = physics.Vec(w+50, start.Y+(b.rng.Float64()-0.5)*400)
	}
	b.ShootingStars = append(b.ShootingStars, ShootingStar{
		Position: start,
		Start:    start,
		End:      end,
		Speed:    0.02 + b.rng.Float64()*0.03,
		Size:     2 + b.rng.Float64()*3,
		Color:    starColors[b.rng.Intn(len(starColors))],
		Trail:    make([]physics.Vector2, 0, shootingStarTrail+1),
	})
}

// Resize adapts to a new screen size, re-scattering anything now out of range.
func (b *Background) Resize(width, height float64) {
	b.width, b.height = width, height
	out := func(p physics.Vector2, buffer float64) bool {
		return p.X > width+buffer || p.Y > height+buffer || p.X < -buffer || p.Y < -buffer
	}
	for li := range b.Layers {
		for i := range b.Layers[li].Stars {
			star := &b.Layers[li].Stars[i]
			if out(star.Position, starBuffer) {
				star.Position = b.scatter(starBuffer)
			}
		}
	}
	for i := range b.Nebulae {
		if out(b.Nebulae[i].Position, nebulaBuffer) {
			b.Nebulae[i].Position = b.scatter(nebulaBuffer)
		}
	}
}

// Reset prepares the background for a new session whose camera starts at
// offset. Nebulae added by later levels are dropped.
func (b *Background) Reset(offset physics.Vector2) {
	b.lastOffset = offset
	b.Nebulae = b.Nebulae[:min(len(b.Nebulae), baseNebulae)]
	b.ShootingStars = b.ShootingStars[:0]
	b.Intensity = 1
	b.ShootingStarChance = baseShootingStar
}

// SetupLevel raises intensity, adds nebulae up to MaxNebulae and makes
// shooting stars more frequent on later levels.
func (b *Background) SetupLevel(level int) {
	b.Intensity = math.Min(1+float64(level-1)*0.1, 2)
	if level > 1 {
		add := min(level-1, 4, MaxNebulae-len(b.Nebulae))
		for i := 0; i < add; i++ {
			b.Nebulae = append(b.Nebulae, Nebula{
				Position:      b.scatter(nebulaBuffer),
				Size:          150 + b.rng.Float64()*300,
				Color:         nebulaColors[b.rng.Intn(len(nebulaColors))],
				Rotation:      b.rng.Float64() * 2 * math.Pi,
				RotationSpeed: (b.rng.Float64() - 0.5) * 0.12,
				Opacity:       0.08 + b.rng.Float64()*0.12,
				PulsePhase:    b.rng.Float64() * 2 * math.Pi,
				PulseSpeed:    0.12 + b.rng.Float64()*0.18,
			})
		}
	}
	b.ShootingStarChance = baseShootingStar + float64(level-1)*0.0005
}

// Draw renders nebulae (when glow is on), stars and shooting stars.
func (b *Background) Draw(s draw.Surface, glow bool) {
	if glow {
		b.drawNebulae(s)
	}
	for _, layer := range b.Layers {
		for _, star := range layer.Stars {
			draw.FillCircle(s, star.Position.X, star.Position.Y, star.Size,
				draw.Solid(star.Color.MulAlpha(b.starAlpha(layer, star))))
		}
	}
	for _, st := range b.ShootingStars {
		s.SetLineWidth(st.Size)
		n := len(st.Trail)
		for i := 1; i < n; i++ {
			s.SetStroke(draw.Solid(st.Color.MulAlpha(float64(i) / float64(n) * 0.8)))
			s.BeginPath()
			s.MoveTo(st.Trail[i-1].X, st.Trail[i-1].Y)
			s.LineTo(st.Trail[i].X, st.Trail[i].Y)
			s.Stroke()
		}
		draw.FillCircle(s, st.Position.X, st.Position.Y, st.Size, draw.Solid(st.Color))
	}
}

// starAlpha is the twinkling layer alpha brightened by the level intensity.
func (b *Background) starAlpha(layer StarLayer, star Star) float64 {
	twinkle := math.Sin(star.TwinklePhase)*0.3 + 0.7
	return math.Min(layer.BaseAlpha*twinkle*b.Intensity, 1)
}

func (b *Background) drawNebulae(s draw.Surface) {
	for _, n := range b.Nebulae {
		scale := 1 + math.Sin(n.PulsePhase)*0.1
		alpha := n.Opacity * (0.8 + math.Sin(n.PulsePhase*2)*0.2)
		s.Save()
		s.Translate(n.Position.X, n.Position.Y)
		s.Rotate(n.Rotation)
		s.Scale(scale, scale)
		s.SetFill(draw.NewRadialGradient(0, 0, n.Size,
			draw.Stop{Offset: 0, Color: n.Color.WithAlpha(alpha)},
			draw.Stop{Offset: 0.5, Color: n.Color.WithAlpha(alpha * 0.5)},
			draw.Stop{Offset: 1, Color: draw.Transparent},
		))
		s.FillRect(-n.Size, -n.Size, n.Size*2, n.Size*2)
		s.Restore()
	}
}
