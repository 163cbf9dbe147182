package object

import (
	"math"

	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/input"
	"github.com/tomz197/asteroidsx/internal/physics"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// Screen is the logical play area in pixels.
type Screen struct {
	Width  float64
	Height float64
}

// Center returns the middle of the screen.
func (s Screen) Center() physics.Vector2 {
	return physics.Vec(s.Width/2, s.Height/2)
}

// Wrap moves p to the opposite edge once it is more than margin past a border.
func (s Screen) Wrap(p *physics.Vector2, margin float64) {
	switch {
	case p.X < -margin:
		p.X = s.Width + margin
	case p.X > s.Width+margin:
		p.X = -margin
	}
	switch {
	case p.Y < -margin:
		p.Y = s.Height + margin
	case p.Y > s.Height+margin:
		p.Y = -margin
	}
}

// Contains reports whether p lies within the screen grown by margin on every side.
func (s Screen) Contains(p physics.Vector2, margin float64) bool {
	return p.X >= -margin && p.X <= s.Width+margin && p.Y >= -margin && p.Y <= s.Height+margin
}

// DrawContext provides drawing resources for entities.
type DrawContext struct {
	Surface draw.Surface
	// Glow enables the soft radial glows, which are the most expensive part of a frame.
	Glow bool
	// Trails draws the fading motion trails behind ships and bullets.
	Trails bool
}

// Entity is anything with a collision circle that can draw itself.
type Entity interface {
	physics.Body
	Draw(ctx DrawContext)
}

// FlickerVisible reports whether an invulnerable entity with the given
// remaining time is drawn this frame.
func FlickerVisible(remaining float64) bool {
	if remaining <= 0 {
		return true
	}
	return math.Sin(remaining*20) >= 0
}

// pulse maps a phase to amplitude*sin(phase)+base.
func pulse(phase, amplitude, base float64) float64 {
	return math.Sin(phase)*amplitude + base
}

// glow fills a square with a radial gradient fading out from the origin.
func glow(s draw.Surface, x, y, r float64, stops ...draw.Stop) {
	if r <= 0 {
		return
	}
	s.SetFill(draw.NewRadialGradient(x, y, r, stops...))
	s.FillRect(x-r, y-r, r*2, r*2)
}

// segment strokes a single line.
func segment(s draw.Surface, a, b physics.Vector2) {
	s.BeginPath()
	s.MoveTo(a.X, a.Y)
	s.LineTo(b.X, b.Y)
	s.Stroke()
}
