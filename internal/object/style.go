package object

import (
	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/physics"
)

// ShipStyle is the outline and colors of a player ship. Points are offsets
// from the ship center with the nose pointing along +X.
type ShipStyle struct {
	Key         string
	Name        string
	Description string
	Points      []physics.Vector2
	Thrusters   []physics.Vector2
	Color       draw.Color
	GlowColor   draw.Color
}

// DefaultShipStyle is the classic triangular fighter.
func DefaultShipStyle() ShipStyle {
	cyan := draw.RGBA(0, 1, 1, 1)
	return ShipStyle{
		Key:         "classic",
		Name:        "Classic",
		Description: "The original triangular fighter",
		Points: []physics.Vector2{
			{X: 15, Y: 0},
			{X: -10, Y: -8},
			{X: -5, Y: 0},
			{X: -10, Y: 8},
		},
		Thrusters: []physics.Vector2{{X: -8, Y: 0}},
		Color:     cyan,
		GlowColor: cyan,
	}
}

// Nose returns the outline point farthest from the center.
func (s ShipStyle) Nose() physics.Vector2 {
	var nose physics.Vector2
	best := -1.0
	for _, p := range s.Points {
		if d := p.LengthSquared(); d > best {
			best = d
			nose = p
		}
	}
	return nose
}

// Clone returns a deep copy of s.
func (s ShipStyle) Clone() ShipStyle {
	s.Points = append([]physics.Vector2(nil), s.Points...)
	s.Thrusters = append([]physics.Vector2(nil), s.Thrusters...)
	return s
}
