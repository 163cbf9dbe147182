package game

import (
	"math"
	"slices"

	"github.com/tomz197/asteroidsx/internal/audio"
	"github.com/tomz197/asteroidsx/internal/object"
	"github.com/tomz197/asteroidsx/internal/physics"
)

// explosionSize returns the particle count of an asteroid explosion.
func explosionSize(size object.SizeClass) int {
	switch size {
	case object.Large:
		return 50
	case object.Medium:
		return 30
	default:
		return 20
	}
}

// checkCollisions resolves the player against asteroids, then every bullet
// against asteroids. Asteroids destroyed this frame are removed and their
// fragments added once all bullets were checked.
func (g *Game) checkCollisions() {
	if len(g.asteroids) == 0 {
		return
	}
	g.grid.Clear()
	for i, a := range g.asteroids {
		g.grid.Insert(a.Position, i)
	}

	g.checkPlayerAsteroidCollisions()
	if g.state == StateGameOver {
		return
	}
	g.checkBulletAsteroidCollisions()
}

// firstHit returns the lowest index of a live asteroid overlapping body, or -1.
func (g *Game) firstHit(body physics.Body, destroyed []bool) int {
	pos, _ := body.Bounds()
	hit := -1
	g.grid.QueryAround(pos, func(i int) bool {
		if (destroyed == nil || !destroyed[i]) && (hit < 0 || i < hit) && physics.Collides(body, g.asteroids[i]) {
			hit = i
		}
		return false
	})
	return hit
}

func (g *Game) checkPlayerAsteroidCollisions() {
	p := g.player
	if p == nil || !p.Alive || p.Invulnerable {
		return
	}
	if g.firstHit(p, nil) >= 0 {
		g.playerHit()
	}
}

func (g *Game) checkBulletAsteroidCollisions() {
	if len(g.bullets) == 0 {
		return
	}
	destroyed := make([]bool, len(g.asteroids))
	var fragments []*object.Asteroid
	killed := false

	for _, b := range g.bullets {
		if !b.Alive {
			continue
		}
		i := g.firstHit(b, destroyed)
		if i < 0 {
			continue
		}
		destroyed[i] = true
		killed = true
		b.Hit = true
		b.Destroy()
		g.particles.CreateImpact(b.Position, b.Hue)
		fragments = append(fragments, g.destroyAsteroid(g.asteroids[i])...)
	}
	if !killed {
		return
	}

	n := 0
	for i, a := range g.asteroids {
		if !destroyed[i] {
			g.asteroids[n] = a
			n++
		}
	}
	clear(g.asteroids[n:])
	g.asteroids = append(g.asteroids[:n], fragments...)
	g.bullets = slices.DeleteFunc(g.bullets, func(b *object.Bullet) bool { return !b.Alive })
}

// destroyAsteroid applies the score, particles, shake and sound of a kill
// and returns the fragments it breaks into.
func (g *Game) destroyAsteroid(a *object.Asteroid) []*object.Asteroid {
	points := a.Size.Score()
	g.score += points

	count := int(math.Round(float64(explosionSize(a.Size)) * g.settings.ParticleCountMultiplier()))
	g.particles.CreateExplosion(a.Position, count)

	opts := audio.PlayOptions{Volume: explosionVolumeSmall, Pitch: explosionPitchSmall}
	if a.Size == object.Large {
		g.effects.SetShake(ShakeLarge)
		opts = audio.PlayOptions{Volume: explosionVolumeLarge, Pitch: explosionPitchLarge}
	} else {
		g.effects.SetShake(ShakeSmall)
	}
	g.sound.Play(audio.CueExplosion, opts)

	g.stats.AsteroidDestroyed()
	g.stats.ScoreAdded(points)

	next, ok := a.Size.Fragment()
	if !ok {
		return nil
	}
	out := make([]*object.Asteroid, FragmentCount)
	for i := range out {
		angle := 2*math.Pi/FragmentCount*float64(i) + g.rng.Float64()*0.5
		dir := physics.FromAngle(angle)
		child := object.NewAsteroid(a.Position.Added(dir.Scaled(FragmentDistance)), next, g.rng)
		child.Velocity = dir.Scaled(FragmentSpeed)
		out[i] = child
	}
	return out
}

// playerHit destroys the player, costs a life and either schedules a
// respawn or ends the game.
func (g *Game) playerHit() {
	p := g.player
	if !p.Alive {
		return
	}
	p.Destroy()
	g.lives--
	g.stats.LivesChanged(g.lives)

	g.particles.CreateExplosion(p.Position, PlayerExplosion)
	g.effects.SetShake(ShakePlayerHit)
	g.effects.SetFlash(FlashPlayerHit)
	g.sound.Play(audio.CueExplosion, audio.PlayOptions{Volume: playerExplosionVolume})

	if g.lives <= 0 {
		g.gameOver()
		return
	}
	g.state = StatePlayerHit
	g.sched.schedule(g.clock+RespawnDelay, g.generation, eventRespawn)
	g.logger.Debug("player hit", "lives", g.lives)
}
