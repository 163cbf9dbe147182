package effect

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/physics"
)

func newRand() *rand.Rand { return rand.New(rand.NewSource(3)) }

func TestExplosionRespectsCap(t *testing.T) {
	tests := []struct {
		name      string
		existing  int
		intensity int
	}{
		{"empty", 0, 50},
		{"nearly full", MaxParticles - 20, 50},
		{"full", MaxParticles, 80},
		{"room for fragments only", MaxParticles - 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := NewParticleSystem(newRand())
			for i := 0; i < tt.existing; i++ {
				ps.Add(Particle{Life: 1, Decay: 1})
			}
			ps.CreateExplosion(physics.Vec(0, 0), tt.intensity)

			want := min(MaxParticles, tt.existing+tt.intensity+8)
			if ps.Len() != want {
				t.Fatalf("Len() = %d, want min(cap, M+N) = %d", ps.Len(), want)
			}
		})
	}
}

func TestAddDropsOverCap(t *testing.T) {
	ps := NewParticleSystem(newRand())
	for i := 0; i < MaxParticles+5; i++ {
		ps.Add(Particle{Life: 1})
	}
	ps.CreateMuzzleFlash(physics.Vec(0, 0), 0)
	if ps.Len() != MaxParticles {
		t.Fatalf("Len() = %d", ps.Len())
	}
	if ps.Dropped() != 13 {
		t.Fatalf("Dropped() = %d, want 13", ps.Dropped())
	}
}

func TestParticleUpdate(t *testing.T) {
	ps := NewParticleSystem(newRand())
	ps.Add(Particle{Velocity: physics.Vec(100, 0), Life: 1, Decay: 1})
	ps.Add(Particle{Velocity: physics.Vec(100, 0), Life: 1, Decay: 1, Drag: 0.5})
	ps.Add(Particle{Life: 0.01, Decay: 1})
	ps.Add(Particle{Life: 1, Decay: 1, HueShift: 60, SizeDecay: 0.5, Size: 4, Hue: 10})

	ps.Update(0.1)
	if ps.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ps.Len())
	}
	got := ps.Particles()
	if math.Abs(got[0].Position.X-10) > 1e-9 || math.Abs(got[0].Velocity.X-98) > 1e-9 {
		t.Fatalf("default drag particle = %+v", got[0])
	}
	if math.Abs(got[1].Velocity.X-50) > 1e-9 {
		t.Fatalf("custom drag velocity = %v", got[1].Velocity.X)
	}
	if math.Abs(got[2].Hue-16) > 1e-9 || got[2].Size != 2 {
		t.Fatalf("payload particle = %+v", got[2])
	}
	if math.Abs(got[0].Life-0.9) > 1e-9 {
		t.Fatalf("life = %v", got[0].Life)
	}
}

func TestThrustParticleCount(t *testing.T) {
	tests := []struct {
		intensity float64
		want      int
	}{
		{1, 5},
		{0.5, 2},
		{0.1, 0},
	}
	for _, tt := range tests {
		ps := NewParticleSystem(newRand())
		ps.CreateThrustParticles(physics.Vec(0, 0), 0, tt.intensity)
		if ps.Len() != tt.want {
			t.Errorf("intensity %v: %d particles, want %d", tt.intensity, ps.Len(), tt.want)
		}
		for _, p := range ps.Particles() {
			if p.Velocity.X >= 0 {
				t.Errorf("thrust particle moving forward: %v", p.Velocity)
			}
		}
	}
}

func TestStarsNeverDie(t *testing.T) {
	ps := NewParticleSystem(newRand())
	ps.CreateStarField(10, 100, 100)
	for i := 0; i < 100; i++ {
		ps.Update(1)
	}
	if ps.Len() != 10 {
		t.Fatalf("stars died: %d left", ps.Len())
	}
	// Drawing immortal particles must not blow up their size or alpha.
	ps.Draw(draw.NewContext(draw.NewImage(50, 50), 100, 100), true)
}

func TestCameraFollowClosesFivePercent(t *testing.T) {
	var c Camera
	center := physics.Vec(400, 300)
	player := physics.Vec(500, 250)

	for i := 0; i < 10; i++ {
		before := c.Target.Subtracted(c.Offset)
		c.Follow(center, player)
		after := c.Target.Subtracted(c.Offset)
		if i == 0 {
			before = center.Subtracted(player)
		}
		if math.Abs(after.Length()-before.Length()*0.95) > 1e-9 {
			t.Fatalf("step %d: error %v, want 95%% of %v", i, after.Length(), before.Length())
		}
	}
}

func TestEffectsDecay(t *testing.T) {
	e := NewEffects()
	e.SetShake(10)
	e.SetFlash(1)
	e.Warp = 1
	e.Decay()
	if math.Abs(e.Shake-9) > 1e-9 || math.Abs(e.Flash-0.95) > 1e-9 || math.Abs(e.Warp-0.98) > 1e-9 {
		t.Fatalf("after one step: %+v", e)
	}

	e.Shake, e.Flash, e.Warp = 0.105, 0.0101, 0.0101
	e.Decay()
	if e.Shake != 0 || e.Flash != 0 || e.Warp != 0 {
		t.Fatalf("tiny values should snap to zero: %+v", e)
	}

	e.ShakeEnabled, e.FlashEnabled = false, false
	e.SetShake(20)
	e.SetFlash(1)
	if e.Shake != 0 || e.Flash != 0 {
		t.Fatalf("disabled effects were set: %+v", e)
	}
}

func TestBackgroundLayers(t *testing.T) {
	b := NewBackground(800, 600, newRand())
	if len(b.Layers) != 4 || len(b.Nebulae) != baseNebulae {
		t.Fatalf("layers %d nebulae %d", len(b.Layers), len(b.Nebulae))
	}
	wantCounts := []int{80, 60, 40, 20}
	for i, l := range b.Layers {
		if len(l.Stars) != wantCounts[i] {
			t.Fatalf("layer %d has %d stars", i, len(l.Stars))
		}
	}
}

func TestBackgroundParallax(t *testing.T) {
	b := NewBackground(800, 600, newRand())
	// Park every star in the middle so nothing wraps.
	for li := range b.Layers {
		for i := range b.Layers[li].Stars {
			b.Layers[li].Stars[i].Position = physics.Vec(400, 300)
		}
	}
	b.Update(0, physics.Vec(-10, 0))

	far := b.Layers[0].Stars[0].Position.X - 400
	near := b.Layers[3].Stars[0].Position.X - 400
	if math.Abs(far-(-1)) > 1e-9 || math.Abs(near-(-8)) > 1e-9 {
		t.Fatalf("far moved %v, near moved %v; want -1 and -8", far, near)
	}

	// Same offset again: no movement.
	b.Update(0, physics.Vec(-10, 0))
	if got := b.Layers[3].Stars[0].Position.X; math.Abs(got-392) > 1e-9 {
		t.Fatalf("star moved without camera movement: %v", got)
	}
}

func TestBackgroundSetupLevelCapsNebulae(t *testing.T) {
	b := NewBackground(800, 600, newRand())
	for level := 2; level <= 10; level++ {
		b.SetupLevel(level)
		if len(b.Nebulae) > MaxNebulae {
			t.Fatalf("level %d: %d nebulae", level, len(b.Nebulae))
		}
	}
	if len(b.Nebulae) != MaxNebulae {
		t.Fatalf("nebulae = %d, want %d", len(b.Nebulae), MaxNebulae)
	}
	if math.Abs(b.ShootingStarChance-(0.001+9*0.0005)) > 1e-12 {
		t.Fatalf("chance = %v", b.ShootingStarChance)
	}
	if math.Abs(b.Intensity-1.9) > 1e-9 {
		t.Fatalf("intensity = %v", b.Intensity)
	}
}

func TestShootingStarsBounded(t *testing.T) {
	b := NewBackground(800, 600, newRand())
	b.ShootingStarChance = 1
	for i := 0; i < 600; i++ {
		b.Update(1.0/60, physics.Vector2{})
		if len(b.ShootingStars) > MaxShootingStars {
			t.Fatalf("%d shooting stars", len(b.ShootingStars))
		}
		for _, s := range b.ShootingStars {
			if len(s.Trail) > shootingStarTrail {
				t.Fatalf("trail of %d points", len(s.Trail))
			}
			if s.Progress >= 1 {
				t.Fatal("finished shooting star kept")
			}
		}
	}
}

func TestBackgroundReset(t *testing.T) {
	b := NewBackground(800, 600, newRand())
	for li := range b.Layers {
		for i := range b.Layers[li].Stars {
			b.Layers[li].Stars[i].Position = physics.Vec(400, 300)
		}
	}
	b.Update(0, physics.Vec(-50, 20))
	b.SetupLevel(5)

	b.Reset(physics.Vector2{})
	if len(b.Nebulae) != baseNebulae || b.Intensity != 1 || b.ShootingStarChance != baseShootingStar {
		t.Fatalf("reset left nebulae=%d intensity=%v chance=%v", len(b.Nebulae), b.Intensity, b.ShootingStarChance)
	}

	before := b.Layers[3].Stars[0].Position
	b.Update(0, physics.Vector2{})
	if got := b.Layers[3].Stars[0].Position; got != before {
		t.Fatalf("stars jumped from %v to %v after reset", before, got)
	}
}

func TestStarAlphaFollowsIntensity(t *testing.T) {
	b := NewBackground(800, 600, newRand())
	layer := b.Layers[0]
	star := Star{TwinklePhase: math.Pi / 2}

	if got := b.starAlpha(layer, star); math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("alpha at intensity 1 = %v, want 0.3", got)
	}
	b.SetupLevel(6)
	if got := b.starAlpha(layer, star); math.Abs(got-0.45) > 1e-9 {
		t.Fatalf("alpha at intensity 1.5 = %v, want 0.45", got)
	}
	b.Intensity = 10
	if got := b.starAlpha(layer, star); got != 1 {
		t.Fatalf("alpha = %v, want capped at 1", got)
	}
}
