package game

import (
	"fmt"
	"math"

	"github.com/tomz197/asteroidsx/internal/object"
	"github.com/tomz197/asteroidsx/internal/physics"
)

// AsteroidCount is the number of large asteroids a level starts with,
// scaled by the difficulty multiplier and kept within 1..MaxAsteroids.
func AsteroidCount(level int, difficulty float64) int {
	base := 2 + level/2
	n := int(math.Round(float64(base) * difficulty))
	return max(1, min(n, MaxAsteroids))
}

// setupLevel clears the field and places a fresh player and asteroid wave.
func (g *Game) setupLevel() {
	g.state = StateSetup
	g.levelPending = false

	clear(g.bullets)
	g.bullets = g.bullets[:0]
	g.particles.Clear()
	g.player = g.newPlayer()

	clear(g.asteroids)
	g.asteroids = g.asteroids[:0]
	n := AsteroidCount(g.level, g.settings.DifficultyMultiplier())
	for i := 0; i < n; i++ {
		g.asteroids = append(g.asteroids, object.NewAsteroid(g.asteroidSpawnPoint(), object.Large, g.rng))
	}
	g.bg.SetupLevel(g.level)

	g.state = StatePlaying
	g.logger.Info("level setup", "level", g.level, "asteroids", n)
}

func (g *Game) newPlayer() *object.Player {
	return object.NewPlayer(g.screen.Center(), g.styles.CustomizedStyle(), g.rng)
}

// asteroidSpawnPoint picks a random point outside the player's safe zone.
// After placementAttempts misses the farthest candidate is used.
func (g *Game) asteroidSpawnPoint() physics.Vector2 {
	center := g.screen.Center()
	if g.player != nil {
		center = g.player.Position
	}
	var best physics.Vector2
	bestDist := -1.0
	for i := 0; i < placementAttempts; i++ {
		p := physics.Vec(g.rng.Float64()*g.screen.Width, g.rng.Float64()*g.screen.Height)
		d := physics.Distance(p, center)
		if d >= SafeZoneRadius {
			return p
		}
		if d > bestDist {
			best, bestDist = p, d
		}
	}
	g.logger.Debug("asteroid placement fell back to farthest candidate", "distance", bestDist)
	return best
}

// spawnAreaClear reports whether no asteroid is within the safe zone of p.
func (g *Game) spawnAreaClear(p physics.Vector2) bool {
	for _, a := range g.asteroids {
		if physics.Distance(p, a.Position) < SafeZoneRadius {
			return false
		}
	}
	return true
}

// respawn replaces a dead player at the screen center once the area is
// clear, retrying every RespawnRetry seconds otherwise.
func (g *Game) respawn() {
	if g.player != nil && g.player.Alive {
		return
	}
	if !g.spawnAreaClear(g.screen.Center()) {
		g.sched.schedule(g.clock+RespawnRetry, g.generation, eventRespawn)
		g.logger.Debug("respawn blocked", "retry", RespawnRetry)
		return
	}
	g.player = g.newPlayer()
	g.player.MakeInvulnerable(object.DefaultInvulnerability)
	g.effects.SetFlash(FlashRespawn)
	if g.state == StatePlayerHit {
		g.state = StatePlaying
	}
	g.logger.Debug("player respawned", "lives", g.lives)
}

// checkLevelComplete advances the level the first time the field is empty.
func (g *Game) checkLevelComplete() {
	if g.levelPending || len(g.asteroids) > 0 {
		return
	}
	g.levelPending = true
	g.level++
	g.stats.LevelUp()
	g.effects.Warp = WarpLevelComplete
	g.state = StateLevelComplete
	g.logger.Info("level complete", "next", g.level, "score", g.score)

	g.evaluateUnlocks()
	if ac, ok := g.stats.(AchievementChecker); ok {
		for _, a := range ac.CheckAchievements() {
			g.notify(fmt.Sprintf("Achievement: %s", a.Name))
		}
	}
	g.sched.schedule(g.clock+NextLevelDelay, g.generation, eventNextLevel)
}

func (g *Game) gameOver() {
	g.state = StateGameOver
	g.generation++
	g.sched.clear()
	g.stopAmbient()

	g.stats.GameEnded()
	g.summary = g.stats.Summary()
	g.evaluateUnlocks()
	g.logger.Info("game over", "score", g.score, "level", g.level,
		"particles_dropped", g.particles.Dropped())
}

func (g *Game) evaluateUnlocks() {
	for _, key := range g.unlocks.CheckUnlocks(g.stats.Snapshot()) {
		g.notify(fmt.Sprintf("Unlocked ship: %s", key))
		g.logger.Info("ship unlocked", "style", key)
	}
}
