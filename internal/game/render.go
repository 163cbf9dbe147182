package game

import (
	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/object"
)

// Render composites the current frame: a translucent clear that leaves
// trails (more opaque while warping), the screen-space background, the
// camera-relative world and the flash overlay, all under the shake jitter.
func (g *Game) Render(s draw.Surface) {
	w, h := g.screen.Width, g.screen.Height
	glow := g.settings.GlowEffects()
	theme := g.settings.Theme()

	s.Save()
	defer s.Restore()

	if g.effects.Shake > 0 {
		off := g.effects.ShakeOffset(g.fx)
		s.Translate(off.X, off.Y)
	}

	s.SetAlpha(1)
	s.SetFill(draw.Solid(theme.Background.WithAlpha(FadeAlpha + g.effects.Warp*(1-FadeAlpha))))
	s.FillRect(0, 0, w, h)

	g.bg.Draw(s, glow)

	s.Save()
	s.Translate(g.camera.Offset.X, g.camera.Offset.Y)
	g.particles.Draw(s, glow)
	ctx := object.DrawContext{Surface: s, Glow: glow, Trails: g.settings.TrailEffects()}
	drawAll(ctx, g.asteroids)
	drawAll(ctx, g.bullets)
	if g.player != nil && g.player.Alive {
		g.player.Draw(ctx)
	}
	s.Restore()

	if g.effects.Flash > 0 {
		s.SetFill(draw.Solid(draw.White.WithAlpha(g.effects.Flash * FlashOverlay)))
		s.FillRect(0, 0, w, h)
	}
}

func drawAll[E object.Entity](ctx object.DrawContext, entities []E) {
	for _, e := range entities {
		e.Draw(ctx)
	}
}
