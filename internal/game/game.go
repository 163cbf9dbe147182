// Package game runs one Asteroids session: it advances the entities,
// resolves collisions, drives the level and respawn state machine and
// composites each frame onto a draw.Surface.
package game

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroidsx/internal/audio"
	"github.com/tomz197/asteroidsx/internal/effect"
	"github.com/tomz197/asteroidsx/internal/object"
	"github.com/tomz197/asteroidsx/internal/physics"
	"github.com/tomz197/asteroidsx/internal/settings"
	"github.com/tomz197/asteroidsx/internal/stats"
)

// Options wires a Game to its collaborators. Nil fields get defaults.
type Options struct {
	Sound    SoundPlayer
	Settings SettingsProvider
	Stats    StatsRecorder
	Unlocks  UnlockEvaluator
	Styles   StyleProvider
	Logger   *log.Logger
	Rand     *rand.Rand

	// Width and Height are the logical screen size in pixels.
	Width  float64
	Height float64
}

// Game is a single-player session. It is not safe for concurrent use:
// Update and Render must be called from the same goroutine.
type Game struct {
	state  State
	paused bool
	screen object.Screen

	player    *object.Player
	asteroids []*object.Asteroid
	bullets   []*object.Bullet
	particles *effect.ParticleSystem
	bg        *effect.Background
	camera    effect.Camera
	effects   effect.Effects
	grid      *physics.SpatialGrid

	score int
	lives int
	level int

	clock        float64
	fireTimer    float64
	generation   int
	sched        scheduler
	levelPending bool
	summary      stats.Summary
	ambient      audio.Handle
	notices      []Notice

	sound    SoundPlayer
	settings SettingsProvider
	stats    StatsRecorder
	unlocks  UnlockEvaluator
	styles   StyleProvider
	logger   *log.Logger

	rng *rand.Rand // simulation
	fx  *rand.Rand // render-only jitter
}

// New creates an idle game. Call Start to begin a session.
func New(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Sound == nil {
		opts.Sound = audio.Nop{}
	}
	if opts.Settings == nil {
		opts.Settings = settings.New(settings.Defaults())
	}
	if opts.Stats == nil {
		opts.Stats = stats.NewRecorder(stats.Lifetime{}, nil, opts.Logger)
	}
	if opts.Unlocks == nil {
		opts.Unlocks = nopUnlocks{}
	}
	if opts.Styles == nil {
		opts.Styles = defaultStyle{}
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultWidth, DefaultHeight
	}

	rng := opts.Rand
	g := &Game{
		state:     StateIdle,
		screen:    object.Screen{Width: opts.Width, Height: opts.Height},
		particles: effect.NewParticleSystem(rng),
		bg:        effect.NewBackground(opts.Width, opts.Height, rng),
		effects:   effect.NewEffects(),
		grid:      physics.NewSpatialGrid(opts.Width, opts.Height, gridCellSize),
		lives:     InitialLives,
		level:     1,
		sound:     opts.Sound,
		settings:  opts.Settings,
		stats:     opts.Stats,
		unlocks:   opts.Unlocks,
		styles:    opts.Styles,
		logger:    opts.Logger,
		rng:       rng,
		fx:        rand.New(rand.NewSource(rng.Int63())),
	}
	return g
}

// Start begins a new session at level 1. It does nothing while a session
// is already running.
func (g *Game) Start() {
	if g.Running() {
		return
	}
	g.generation++
	g.sched.clear()
	g.paused = false
	g.clock = 0
	g.fireTimer = 0
	g.score, g.lives, g.level = 0, InitialLives, 1
	g.summary = stats.Summary{}
	g.notices = g.notices[:0]
	g.effects.Reset()
	g.camera.Reset()
	g.bg.Reset(g.camera.Offset)

	g.stats.GameStarted()
	g.stats.LivesChanged(g.lives)
	g.setupLevel()

	g.stopAmbient()
	g.ambient = g.sound.Play(audio.CueAmbient, audio.PlayOptions{Volume: ambientVolume, Loop: true})
	g.logger.Info("game started", "generation", g.generation)
}

// Stop halts the session and cancels pending transitions. A finished game
// keeps its GameOver state so the summary stays available.
func (g *Game) Stop() {
	if g.state == StateIdle {
		return
	}
	g.generation++
	g.sched.clear()
	g.stopAmbient()
	if g.paused {
		g.paused = false
		if s, ok := g.sound.(Suspender); ok {
			s.Resume()
		}
	}
	if g.state != StateGameOver {
		g.state = StateIdle
	}
	g.logger.Info("game stopped", "score", g.score, "level", g.level)
}

// Restart stops the current session and starts a new one.
func (g *Game) Restart() {
	g.Stop()
	g.state = StateIdle
	g.Start()
}

// Pause freezes the simulation and suspends audio. Render keeps drawing
// the frozen frame.
func (g *Game) Pause() {
	if !g.Running() || g.paused {
		return
	}
	g.paused = true
	if s, ok := g.sound.(Suspender); ok {
		s.Suspend()
	}
}

// Resume continues a paused session.
func (g *Game) Resume() {
	if !g.Running() || !g.paused {
		return
	}
	g.paused = false
	if s, ok := g.sound.(Suspender); ok {
		s.Resume()
	}
}

// TogglePause pauses a running game or resumes a paused one.
func (g *Game) TogglePause() {
	if g.paused {
		g.Resume()
	} else {
		g.Pause()
	}
}

// Resize changes the logical screen size.
func (g *Game) Resize(width, height float64) {
	if width <= 0 || height <= 0 || (width == g.screen.Width && height == g.screen.Height) {
		return
	}
	g.screen = object.Screen{Width: width, Height: height}
	g.bg.Resize(width, height)
	g.grid.Resize(width, height)
}

func (g *Game) stopAmbient() {
	if g.ambient != nil {
		g.ambient.Stop()
		g.ambient = nil
	}
}

// Update advances the session by dt seconds. It does nothing while idle,
// paused or after the game is over. Long frames are integrated as one
// explicit Euler step, so a stall can let fast objects skip past each other.
func (g *Game) Update(dt float64, in object.Input) {
	if !g.Running() || g.paused || dt <= 0 {
		return
	}
	g.clock += dt
	g.effects.ShakeEnabled = g.settings.ScreenShake()
	g.effects.FlashEnabled = g.settings.FlashEffects()

	g.runScheduled()
	if g.fireTimer > 0 {
		g.fireTimer -= dt
	}

	g.updatePlayer(dt, in)
	g.updateAsteroids(dt)
	g.updateBullets(dt)
	g.particles.Update(dt)
	g.bg.Update(dt, g.camera.Offset)

	g.checkCollisions()
	if g.state == StateGameOver {
		return
	}
	g.handleShooting(in)
	g.checkLevelComplete()

	g.effects.Decay()
	g.stats.AddTime(dt)
	g.pruneNotices()
}

func (g *Game) runScheduled() {
	for _, ev := range g.sched.pop(g.clock, g.generation) {
		switch ev.kind {
		case eventRespawn:
			g.respawn()
		case eventNextLevel:
			g.setupLevel()
		}
	}
}

func (g *Game) updatePlayer(dt float64, in object.Input) {
	p := g.player
	if p == nil || !p.Alive {
		return
	}
	p.Update(dt, in)
	if p.Thrusting() {
		g.particles.CreateThrustParticles(p.Exhaust(), p.Rotation,
			p.ThrustIntensity()*g.settings.ParticleCountMultiplier())
	}
	g.camera.Follow(g.screen.Center(), p.Position)
}

func (g *Game) updateAsteroids(dt float64) {
	for _, a := range g.asteroids {
		a.Update(dt)
		g.screen.Wrap(&a.Position, a.Radius)
	}
}

// updateBullets moves bullets and drops the ones that expired or left the
// camera view. A bullet that never hit anything counts as a miss.
func (g *Game) updateBullets(dt float64) {
	n := 0
	for _, b := range g.bullets {
		b.Update(dt)
		if b.Alive && g.screen.Contains(b.Position.Added(g.camera.Offset), BulletMargin) {
			g.bullets[n] = b
			n++
			continue
		}
		if !b.Hit {
			g.stats.ShotMissed()
		}
	}
	clear(g.bullets[n:])
	g.bullets = g.bullets[:n]
}

func (g *Game) handleShooting(in object.Input) {
	p := g.player
	if !in.Fire || g.fireTimer > 0 || p == nil || !p.Alive {
		return
	}
	pos := p.Muzzle(MuzzleOffset)
	vel := physics.FromAngle(p.Rotation).Scaled(object.BulletSpeed)
	g.bullets = append(g.bullets, object.NewBullet(pos, vel, g.rng))

	g.sound.Play(audio.CueLaser, audio.PlayOptions{
		Volume: laserVolume,
		Pitch:  0.8 + g.rng.Float64()*0.4,
	})
	g.particles.CreateMuzzleFlash(pos, p.Rotation)
	g.fireTimer = FireCooldown
	g.stats.ShotFired()
}

func (g *Game) notify(text string) {
	g.notices = append(g.notices, Notice{Text: text, Expires: g.clock + NoticeDuration})
}

func (g *Game) pruneNotices() {
	n := 0
	for _, nt := range g.notices {
		if nt.Expires > g.clock {
			g.notices[n] = nt
			n++
		}
	}
	g.notices = g.notices[:n]
}

// Running reports whether a session is in progress, paused or not.
func (g *Game) Running() bool {
	return g.state != StateIdle && g.state != StateGameOver
}

// State returns the session phase.
func (g *Game) State() State { return g.state }

// Paused reports whether the game is paused.
func (g *Game) Paused() bool { return g.paused }

// Score returns the session score.
func (g *Game) Score() int { return g.score }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// Level returns the current level, starting at 1.
func (g *Game) Level() int { return g.level }

// Clock returns the seconds of game time since Start.
func (g *Game) Clock() float64 { return g.clock }

// Summary returns the report captured at game over.
func (g *Game) Summary() stats.Summary { return g.summary }

// Player returns the current ship, which may be dead.
func (g *Game) Player() *object.Player { return g.player }

// Asteroids returns the live asteroids.
func (g *Game) Asteroids() []*object.Asteroid { return g.asteroids }

// Bullets returns the live bullets.
func (g *Game) Bullets() []*object.Bullet { return g.bullets }

// Particles returns the particle system.
func (g *Game) Particles() *effect.ParticleSystem { return g.particles }

// Camera returns the camera state.
func (g *Game) Camera() effect.Camera { return g.camera }

// Effects returns the screen effects.
func (g *Game) Effects() effect.Effects { return g.effects }

// Screen returns the logical screen.
func (g *Game) Screen() object.Screen { return g.screen }

// Notices returns the HUD messages that have not expired.
func (g *Game) Notices() []Notice { return g.notices }
