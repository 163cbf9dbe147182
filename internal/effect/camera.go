package effect

import (
	"math/rand"

	"github.com/tomz197/asteroidsx/internal/physics"
)

// CameraSmoothing is the fraction of the remaining error the camera closes per update.
const CameraSmoothing = 0.05

// Camera keeps the player near the middle of the screen. Offset is added to
// world coordinates to get screen coordinates.
type Camera struct {
	Offset physics.Vector2
	Target physics.Vector2
}

// Follow moves the camera a step towards centering player on screenCenter.
func (c *Camera) Follow(screenCenter, player physics.Vector2) {
	c.Target = screenCenter.Subtracted(player)
	c.Offset.Add(c.Target.Subtracted(c.Offset).Scaled(CameraSmoothing))
}

// Reset snaps the camera back to the origin.
func (c *Camera) Reset() {
	c.Offset.Zero()
	c.Target.Zero()
}

// Effects holds the decaying full-screen effects.
type Effects struct {
	Shake float64 // jitter amplitude in pixels
	Flash float64 // white overlay strength, 0..1
	Warp  float64 // trail persistence boost, 0..1

	ShakeEnabled bool
	FlashEnabled bool
}

// NewEffects returns effects with shake and flash enabled.
func NewEffects() Effects {
	return Effects{ShakeEnabled: true, FlashEnabled: true}
}

// SetShake starts a shake of amplitude v unless shaking is disabled.
func (e *Effects) SetShake(v float64) {
	if e.ShakeEnabled {
		e.Shake = v
	}
}

// SetFlash starts a flash of strength v unless flashes are disabled.
func (e *Effects) SetFlash(v float64) {
	if e.FlashEnabled {
		e.Flash = v
	}
}

// Decay fades every effect one step, snapping tiny values to zero.
func (e *Effects) Decay() {
	e.Shake = decay(e.Shake, 0.9, 0.1)
	e.Flash = decay(e.Flash, 0.95, 0.01)
	e.Warp = decay(e.Warp, 0.98, 0.01)
}

// ShakeOffset returns a random jitter within ±Shake/2 on each axis.
func (e *Effects) ShakeOffset(rng *rand.Rand) physics.Vector2 {
	if e.Shake <= 0 {
		return physics.Vector2{}
	}
	return physics.Vec((rng.Float64()-0.5)*e.Shake, (rng.Float64()-0.5)*e.Shake)
}

// Reset clears every effect.
func (e *Effects) Reset() {
	e.Shake, e.Flash, e.Warp = 0, 0, 0
}

func decay(v, factor, floor float64) float64 {
	v *= factor
	if v < floor {
		return 0
	}
	return v
}
