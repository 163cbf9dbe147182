package game

// Logical screen size used when Options leaves it unset.
const (
	DefaultWidth  = 960.0
	DefaultHeight = 640.0
)

// Session rules.
const (
	InitialLives   = 3
	MaxAsteroids   = 8
	SafeZoneRadius = 100.0 // asteroid-free radius around the spawn point
)

// Delays in seconds of game time.
const (
	FireCooldown   = 0.15
	RespawnDelay   = 2.0
	RespawnRetry   = 0.5
	NextLevelDelay = 1.0
	NoticeDuration = 3.0
)

// Shooting.
const (
	MuzzleOffset = 15.0
	BulletMargin = 200.0 // bullets this far outside the camera view are dropped
)

// Asteroid breakup.
const (
	FragmentCount    = 2
	FragmentDistance = 30.0
	FragmentSpeed    = 50.0
)

// Screen effects.
const (
	ShakeLarge        = 10.0
	ShakeSmall        = 5.0
	ShakePlayerHit    = 20.0
	FlashPlayerHit    = 1.0
	FlashRespawn      = 0.5
	FlashOverlay      = 0.3 // overlay alpha at full flash
	PlayerExplosion   = 80
	FadeAlpha         = 0.1 // clear alpha without warp
	WarpLevelComplete = 1.0
)

// Sound levels.
const (
	laserVolume           = 0.3
	explosionVolumeLarge  = 0.4
	explosionVolumeSmall  = 0.3
	explosionPitchLarge   = 0.8
	explosionPitchSmall   = 1.2
	playerExplosionVolume = 0.6
	ambientVolume         = 0.1
)

const (
	gridCellSize      = 64.0
	placementAttempts = 32
)
