// Command desktop plays the game in a window.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/asteroidsx/internal/app"
	"github.com/tomz197/asteroidsx/internal/config"
	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/game"
	"github.com/tomz197/asteroidsx/internal/input"
	"github.com/tomz197/asteroidsx/internal/loop"
	"github.com/tomz197/asteroidsx/internal/object"
)

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// desktop adapts a game to ebiten. The game draws on a CPU image that is
// uploaded every frame; the image is never cleared so trails persist.
type desktop struct {
	app     *app.App
	frame   *draw.Image
	surface *draw.Context
	texture *ebiten.Image
	width   int
	height  int
}

func newDesktop(a *app.App) *desktop {
	scr := a.Game.Screen()
	w, h := int(scr.Width), int(scr.Height)
	frame := draw.NewImage(w, h)
	return &desktop{
		app:     a,
		frame:   frame,
		surface: draw.NewContext(frame, scr.Width, scr.Height),
		texture: ebiten.NewImage(w, h),
		width:   w,
		height:  h,
	}
}

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// readInput maps the keyboard to the terminal key layout.
func readInput() object.Input {
	in := input.Input{
		Left:    anyPressed(ebiten.KeyArrowLeft, ebiten.KeyA, ebiten.KeyJ),
		Right:   anyPressed(ebiten.KeyArrowRight, ebiten.KeyD, ebiten.KeyL),
		Thrust:  anyPressed(ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyI),
		Fire:    anyPressed(ebiten.KeySpace, ebiten.KeyX),
		Quit:    inpututil.IsKeyJustPressed(ebiten.KeyQ),
		Pause:   anyJustPressed(ebiten.KeyP, ebiten.KeyEscape),
		Restart: inpututil.IsKeyJustPressed(ebiten.KeyR),
		Enter:   inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		Number:  -1,
	}
	for i, k := range digitKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.Number = i + 1
		}
	}
	return in
}

func (d *desktop) Update() error {
	g := d.app.Game
	in := readInput()
	if in.Quit {
		return ebiten.Termination
	}

	switch g.State() {
	case game.StateIdle:
		if in.Number > 0 {
			_ = loop.SelectShip(d.app.Ships, in.Number)
		}
		if in.Enter || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.Start()
			return nil
		}
	case game.StateGameOver:
		if in.Enter || in.Restart {
			g.Restart()
			return nil
		}
	default:
		if in.Restart {
			g.Restart()
			return nil
		}
		if in.Pause {
			g.TogglePause()
		}
	}

	g.Update(1/float64(ebiten.TPS()), in)
	return nil
}

func (d *desktop) Draw(screen *ebiten.Image) {
	d.app.Game.Render(d.surface)
	d.texture.WritePixels(d.frame.RGBA().Pix)
	screen.DrawImage(d.texture, nil)

	for i, line := range hudLines(d.app.Game) {
		ebitenutil.DebugPrintAt(screen, line, 12, 10+16*i)
	}
}

func (d *desktop) Layout(_, _ int) (int, int) {
	return d.width, d.height
}

// hudLines is the text overlay for the current phase.
func hudLines(g *game.Game) []string {
	switch g.State() {
	case game.StateIdle:
		return []string{
			"A S T E R O I D S   X",
			"Arrows or WASD to fly, SPACE to shoot, P to pause, 1-9 to pick a ship",
			"Press SPACE to start",
		}
	case game.StateGameOver:
		sum := g.Summary()
		lines := []string{
			"GAME OVER",
			fmt.Sprintf("Score %d  Level %d  Asteroids %d", sum.Score, sum.Level, sum.Asteroids),
			fmt.Sprintf("Accuracy %d%%  Time alive %s", sum.Accuracy, sum.TimeAlive),
		}
		if sum.NewHighScore {
			lines = append(lines, "NEW HIGH SCORE!")
		}
		return append(lines, "Press ENTER to play again")
	}

	lines := []string{fmt.Sprintf("Score %d   Level %d   Lives %d", g.Score(), g.Level(), g.Lives())}
	if g.Paused() {
		lines = append(lines, "PAUSED")
	}
	for _, n := range g.Notices() {
		lines = append(lines, n.Text)
	}
	return lines
}

func main() {
	configPath := flag.String("config", "", "YAML config file (default $ASTEROIDSX_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, logCloser, err := cfg.NewLogger(os.Stderr, "desktop")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	a, err := app.New(cfg, logger, app.Options{Audio: true, PersistProgress: true})
	if err != nil {
		logger.Fatal("setup", "err", err)
	}

	d := newDesktop(a)
	ebiten.SetWindowSize(d.width, d.height)
	ebiten.SetWindowTitle("Asteroids X")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Screen.TargetFPS)

	runErr := ebiten.RunGame(d)
	if err := a.Close(); err != nil {
		logger.Error("shutdown", "err", err)
	}
	if runErr != nil {
		logger.Fatal("game error", "err", runErr)
	}
}
