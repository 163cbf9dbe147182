// Package ship defines the selectable ship styles, their unlock rules and
// the player's cosmetic customization.
package ship

import (
	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/object"
	"github.com/tomz197/asteroidsx/internal/physics"
)

// noseUp converts outlines drawn with the nose towards -Y into the
// nose-right orientation the game uses.
func noseUp(points ...[2]float64) []physics.Vector2 {
	out := make([]physics.Vector2, len(points))
	for i, p := range points {
		out[i] = physics.Vec(-p[1], p[0])
	}
	return out
}

func style(key, name, desc string, color, glow string, points, thrusters []physics.Vector2) object.ShipStyle {
	return object.ShipStyle{
		Key:         key,
		Name:        name,
		Description: desc,
		Points:      points,
		Thrusters:   thrusters,
		Color:       draw.MustHex(color),
		GlowColor:   draw.MustHex(glow),
	}
}

// builtinStyles returns the stock styles in gallery order.
func builtinStyles() []object.ShipStyle {
	return []object.ShipStyle{
		object.DefaultShipStyle(),
		style("arrow", "Arrow", "Sleek arrow-shaped interceptor", "#ff00ff", "#ff44ff",
			noseUp([2]float64{0, -18}, [2]float64{-4, -8}, [2]float64{-8, 0}, [2]float64{-6, 12},
				[2]float64{0, 8}, [2]float64{6, 12}, [2]float64{8, 0}, [2]float64{4, -8}),
			noseUp([2]float64{0, 10})),
		style("diamond", "Diamond", "Balanced diamond configuration", "#ffff00", "#ffff44",
			noseUp([2]float64{0, -12}, [2]float64{10, 0}, [2]float64{0, 12}, [2]float64{-10, 0}),
			noseUp([2]float64{0, 12})),
		style("triangle", "Triangle", "Wide-wing heavy fighter", "#00ff00", "#44ff44",
			noseUp([2]float64{0, -12}, [2]float64{-12, 8}, [2]float64{-4, 12}, [2]float64{4, 12}, [2]float64{12, 8}),
			noseUp([2]float64{0, 12})),
		style("stealth", "Stealth", "Angular stealth fighter", "#ff4400", "#ff6644",
			noseUp([2]float64{0, -15}, [2]float64{6, -6}, [2]float64{12, 0}, [2]float64{8, 8}, [2]float64{3, 10},
				[2]float64{0, 12}, [2]float64{-3, 10}, [2]float64{-8, 8}, [2]float64{-12, 0}, [2]float64{-6, -6}),
			noseUp([2]float64{0, 12})),
		style("viper", "Viper", "Dual-engine racing ship", "#8800ff", "#aa44ff",
			noseUp([2]float64{0, -16}, [2]float64{4, -8}, [2]float64{8, -4}, [2]float64{10, 8}, [2]float64{6, 12},
				[2]float64{2, 10}, [2]float64{0, 8}, [2]float64{-2, 10}, [2]float64{-6, 12}, [2]float64{-10, 8},
				[2]float64{-8, -4}, [2]float64{-4, -8}),
			noseUp([2]float64{-6, 12}, [2]float64{6, 12})),
	}
}

// RequirementKind is the statistic an unlock is measured against.
type RequirementKind string

// Requirement kinds.
const (
	RequireScore     RequirementKind = "score"
	RequireLevel     RequirementKind = "level"
	RequireAsteroids RequirementKind = "asteroids"
)

// Requirement is the condition that unlocks a style.
type Requirement struct {
	Kind        RequirementKind
	Value       int
	Description string
}

var requirements = map[string]Requirement{
	"arrow":    {RequireScore, 1000, "Reach 1,000 points"},
	"diamond":  {RequireLevel, 3, "Reach level 3"},
	"triangle": {RequireAsteroids, 50, "Destroy 50 asteroids"},
	"stealth":  {RequireScore, 5000, "Reach 5,000 points"},
	"viper":    {RequireLevel, 5, "Reach level 5"},
}

// Requirements returns the unlock condition of every lockable style.
func Requirements() map[string]Requirement {
	out := make(map[string]Requirement, len(requirements))
	for k, v := range requirements {
		out[k] = v
	}
	return out
}
