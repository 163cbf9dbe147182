package game

import (
	"math"

	"github.com/tomz197/asteroidsx/internal/object"
)

const (
	autopilotAim      = 0.05 // radians of slack before turning
	autopilotFireCone = 0.15 // radians
	autopilotApproach = 250  // px; closer targets are shot from standstill
)

// Autopilot returns the input of a simple pilot that turns toward the
// nearest asteroid, fires once lined up and closes in on distant targets.
// Attract mode and headless renders play with it.
func (g *Game) Autopilot() object.Input {
	p := g.player
	if p == nil || !p.Alive || len(g.asteroids) == 0 {
		return object.Input{}
	}
	target := g.asteroids[0]
	best := math.Inf(1)
	for _, a := range g.asteroids {
		if d := a.Position.Subtracted(p.Position).LengthSquared(); d < best {
			target, best = a, d
		}
	}

	aim := target.Position.Subtracted(p.Position)
	diff := math.Remainder(aim.Angle()-p.Rotation, 2*math.Pi)
	var in object.Input
	switch {
	case diff < -autopilotAim:
		in.Left = true
	case diff > autopilotAim:
		in.Right = true
	}
	lined := math.Abs(diff) < autopilotFireCone
	in.Fire = lined
	in.Thrust = lined && aim.Length() > autopilotApproach
	return in
}
