package game

import (
	"github.com/tomz197/asteroidsx/internal/audio"
	"github.com/tomz197/asteroidsx/internal/object"
	"github.com/tomz197/asteroidsx/internal/settings"
	"github.com/tomz197/asteroidsx/internal/stats"
)

// SoundPlayer plays named cues. It must do nothing until its device is
// ready. Play may return nil when there is nothing to control.
type SoundPlayer interface {
	Play(cue audio.Cue, opts audio.PlayOptions) audio.Handle
}

// Suspender is implemented by sound players that can pause output.
type Suspender interface {
	Suspend()
	Resume()
}

// SettingsProvider exposes the user settings the simulation reads.
type SettingsProvider interface {
	DifficultyMultiplier() float64
	ParticleCountMultiplier() float64
	Theme() settings.Theme
	ScreenShake() bool
	FlashEffects() bool
	GlowEffects() bool
	TrailEffects() bool
}

// StatsRecorder receives gameplay events.
type StatsRecorder interface {
	GameStarted()
	GameEnded()
	ShotFired()
	ShotMissed()
	AsteroidDestroyed()
	ScoreAdded(points int)
	LivesChanged(lives int)
	LevelUp()
	AddTime(dt float64)
	Snapshot() stats.Snapshot
	Summary() stats.Summary
}

// AchievementChecker is implemented by recorders that can evaluate
// achievements mid-game.
type AchievementChecker interface {
	CheckAchievements() []stats.Achievement
}

// UnlockEvaluator unlocks content based on statistics and returns the keys
// unlocked by this call.
type UnlockEvaluator interface {
	CheckUnlocks(snap stats.Snapshot) []string
}

// StyleProvider supplies the ship outline for new players.
type StyleProvider interface {
	CustomizedStyle() object.ShipStyle
}

type nopUnlocks struct{}

func (nopUnlocks) CheckUnlocks(stats.Snapshot) []string { return nil }

type defaultStyle struct{}

func (defaultStyle) CustomizedStyle() object.ShipStyle { return object.DefaultShipStyle() }

var (
	_ SoundPlayer      = audio.Nop{}
	_ SoundPlayer      = (*audio.Manager)(nil)
	_ Suspender        = (*audio.Manager)(nil)
	_ SettingsProvider = (*settings.Settings)(nil)
	_ StatsRecorder    = (*stats.Recorder)(nil)
)
