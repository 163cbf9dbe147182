package loop

import (
	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/game"
)

// Attract plays g headless under its autopilot at dt seconds per step,
// rendering every step onto s so trails build up as they do on screen.
// After every `every` steps it calls frame with the frame index; it stops
// after `frames` frames or at the first error. A finished game restarts.
func Attract(g *game.Game, s draw.Surface, dt float64, frames, every int, frame func(i int) error) error {
	if !g.Running() {
		g.Restart()
	}
	for i := 0; i < frames; i++ {
		for step := 0; step < every; step++ {
			if !g.Running() {
				g.Restart()
			}
			g.Update(dt, g.Autopilot())
			g.Render(s)
		}
		if err := frame(i); err != nil {
			return err
		}
	}
	return nil
}
