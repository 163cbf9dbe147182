// Package audio plays the game's procedurally generated sound cues.
package audio

// Cue names a sound.
type Cue string

// Known cues.
const (
	CueLaser         Cue = "laser"
	CueExplosion     Cue = "explosion"
	CueThrust        Cue = "thrust"
	CueAsteroidBreak Cue = "asteroidBreak"
	CuePowerUp       Cue = "powerUp"
	CueAmbient       Cue = "ambient"
)

// Cues lists every cue the synthesizer knows.
var Cues = []Cue{CueLaser, CueExplosion, CueThrust, CueAsteroidBreak, CuePowerUp, CueAmbient}

// PlayOptions tunes a single playback.
type PlayOptions struct {
	Volume float64 // gain before channel and master volume, 0..1
	Pitch  float64 // playback rate, 0 means 1
	Loop   bool
}

// Handle controls a playing sound.
type Handle interface {
	Stop()
}

// Nop discards every cue. It is used when no audio device is available.
type Nop struct{}

// Play implements the sound player contract and returns nil.
func (Nop) Play(Cue, PlayOptions) Handle { return nil }

// Suspend does nothing.
func (Nop) Suspend() {}

// Resume does nothing.
func (Nop) Resume() {}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
