// Package loop runs a game session on a terminal: it reads keys, steps the
// simulation every frame and renders it as half-block pixels with a text
// HUD on top.
package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/game"
	"github.com/tomz197/asteroidsx/internal/input"
	"github.com/tomz197/asteroidsx/internal/ship"
	"github.com/tomz197/asteroidsx/internal/stats"
)

// ErrInactive is returned by Run when no key arrived for Options.IdleTimeout.
var ErrInactive = errors.New("loop: session inactive")

// ShipPicker lets the title screen switch ships with the number keys.
type ShipPicker interface {
	All() []ship.Entry
	SetStyle(key string) error
}

// Options configures a Session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	FPS          int // defaults to TargetFPS

	// IdleWarn pauses the game behind a warning; IdleTimeout ends the
	// session. Zero disables them.
	IdleWarn    time.Duration
	IdleTimeout time.Duration

	Ships   ShipPicker    // optional
	History HistoryLoader // optional, feeds the game-over leaderboard
	Logger  *log.Logger
}

// HistoryLoader reads the finished games shown on the game-over screen.
type HistoryLoader interface {
	Load() ([]stats.Entry, error)
}

// Session drives one game on one terminal.
type Session struct {
	game    *game.Game
	opts    Options
	canvas  *draw.Canvas
	surface *draw.Context
	out     *draw.ChunkWriter
	stream  *input.Stream
	frame   time.Duration

	termW, termH int

	lastInput  time.Time
	inactive   bool
	idlePaused bool

	board       []stats.Entry
	boardStats  stats.Aggregate
	boardLoaded bool
}

// NewSession prepares a session reading keys from r and drawing to w.
func NewSession(g *game.Game, r *bufio.Reader, w io.Writer, opts Options) *Session {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.FPS <= 0 {
		opts.FPS = TargetFPS
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	scr := g.Screen()
	canvas := draw.NewCanvas(1, 1)
	return &Session{
		game:      g,
		opts:      opts,
		canvas:    canvas,
		surface:   draw.NewContext(canvas, scr.Width, scr.Height),
		out:       draw.NewChunkWriter(w, 0, 0),
		stream:    input.StartStream(r),
		frame:     time.Second / time.Duration(opts.FPS),
		lastInput: time.Now(),
	}
}

// Run plays g until the player quits, r closes or ctx is done.
func Run(ctx context.Context, g *game.Game, r *bufio.Reader, w io.Writer, opts Options) error {
	return NewSession(g, r, w, opts).Run(ctx)
}

// Run starts the Input → Update → Draw loop. It blocks until the player
// quits, the input closes, ctx is done or the session idles out.
func (s *Session) Run(ctx context.Context) error {
	draw.HideCursor(s.out)
	draw.ClearScreen(s.out)
	if err := s.out.Flush(); err != nil {
		return err
	}
	defer func() {
		draw.ClearScreen(s.out)
		draw.ShowCursor(s.out)
		_ = s.out.Flush()
	}()

	last := time.Now()
	for {
		if ctx.Err() != nil {
			return nil
		}
		frameStart := time.Now()
		dt := frameStart.Sub(last).Seconds()
		last = frameStart

		in := input.ReadInput(s.stream)
		if in.Quit {
			return nil
		}
		if err := s.trackActivity(in, frameStart); err != nil {
			s.opts.Logger.Info("disconnecting inactive session")
			return err
		}
		in = s.handleControls(in)
		s.game.Update(dt, in)
		s.refreshBoard()

		if err := s.updateScreen(); err != nil {
			return err
		}
		if err := s.drawFrame(frameStart); err != nil {
			return err
		}

		if elapsed := time.Since(frameStart); elapsed < s.frame {
			time.Sleep(s.frame - elapsed)
		}
	}
}

// trackActivity pauses the game behind a warning when the player went
// quiet and ends the session after IdleTimeout. Any key clears the warning.
func (s *Session) trackActivity(in input.Input, now time.Time) error {
	if len(in.Pressed) > 0 {
		s.lastInput = now
		if s.inactive {
			s.inactive = false
			if s.idlePaused {
				s.game.Resume()
				s.idlePaused = false
			}
		}
		return nil
	}
	idle := now.Sub(s.lastInput)
	if s.opts.IdleTimeout > 0 && idle > s.opts.IdleTimeout {
		return ErrInactive
	}
	if s.opts.IdleWarn > 0 && idle > s.opts.IdleWarn && !s.inactive {
		s.inactive = true
		if s.game.Running() && !s.game.Paused() {
			s.game.Pause()
			s.idlePaused = true
		}
	}
	return nil
}

// handleControls applies the edge-triggered keys and returns the input the
// simulation should see this frame.
func (s *Session) handleControls(in input.Input) input.Input {
	g := s.game
	switch g.State() {
	case game.StateIdle:
		if in.Number > 0 {
			s.pickShip(in.Number)
		}
		if in.Enter || in.Fire || in.Restart {
			s.startFresh(g.Start)
			return input.Input{Number: -1}
		}
	case game.StateGameOver:
		if in.Enter || in.Restart {
			s.startFresh(g.Restart)
			return input.Input{Number: -1}
		}
	default:
		if in.Restart {
			s.startFresh(g.Restart)
			return input.Input{Number: -1}
		}
		if in.Pause {
			g.TogglePause()
			s.stream.Reset()
		}
	}
	return in
}

func (s *Session) startFresh(start func()) {
	s.stream.Reset()
	start()
}

// pickShip selects the n-th gallery ship if it is unlocked.
func (s *Session) pickShip(n int) {
	if s.opts.Ships == nil {
		return
	}
	if err := SelectShip(s.opts.Ships, n); err != nil {
		s.opts.Logger.Debug("ship not selected", "slot", n, "err", err)
	}
}

// SelectShip selects the ship in 1-based gallery slot n.
func SelectShip(p ShipPicker, n int) error {
	all := p.All()
	if n < 1 || n > len(all) {
		return fmt.Errorf("%w: slot %d", ship.ErrUnknownStyle, n)
	}
	e := all[n-1]
	if !e.Unlocked {
		return fmt.Errorf("%w: %s", ship.ErrStyleLocked, e.Style.Key)
	}
	return p.SetStyle(e.Style.Key)
}

// refreshBoard loads the leaderboard once each time a game ends.
func (s *Session) refreshBoard() {
	if s.game.State() != game.StateGameOver {
		s.boardLoaded = false
		return
	}
	if !s.boardLoaded {
		s.loadBoard()
		s.boardLoaded = true
	}
}

func (s *Session) loadBoard() {
	s.board, s.boardStats = nil, stats.Aggregate{}
	if s.opts.History == nil {
		return
	}
	entries, err := s.opts.History.Load()
	if err != nil {
		s.opts.Logger.Warn("loading leaderboard", "err", err)
		return
	}
	s.board = stats.Top(entries, leaderboardSize)
	s.boardStats = stats.Aggregates(entries)
}

// updateScreen refits the canvas after a terminal resize.
func (s *Session) updateScreen() error {
	w, h, err := draw.TermSize(s.opts.TermSizeFunc)
	if errors.Is(err, draw.ErrNoTerminalSize) {
		return nil
	}
	if err != nil {
		return err
	}
	if w == s.termW && h == s.termH {
		return nil
	}
	s.termW, s.termH = w, h

	scr := s.game.Screen()
	cols, rows, offCol, offRow := fitCanvas(w, h, scr.Width/scr.Height)
	s.canvas.Resize(cols, rows)
	s.canvas.SetOffset(offCol, offRow)
	s.canvas.ForceRedraw()
	s.surface.Resize()
	s.out.SetOffset(offCol, offRow)
	draw.ClearScreen(s.out)
	return nil
}

// fitCanvas picks the largest canvas with the given width/height aspect
// that fits the terminal and the render limits, centered. A cell holds two
// pixels vertically.
func fitCanvas(termW, termH int, aspect float64) (cols, rows, offCol, offRow int) {
	availW := min(termW, MaxRenderCols)
	availH := min(termH, MaxRenderRows)
	cols = availW
	rows = int(math.Round(float64(cols) / aspect / 2))
	if rows > availH {
		rows = availH
		cols = int(math.Round(float64(rows) * 2 * aspect))
	}
	cols, rows = max(cols, 1), max(rows, 1)
	return cols, rows, max((termW-cols)/2, 0), max((termH-rows)/2, 0)
}

// drawFrame composites the game onto the canvas, sends the changed cells
// and draws the HUD on top.
func (s *Session) drawFrame(now time.Time) error {
	s.game.Render(s.surface)
	s.canvas.Render(s.out)
	s.canvas.RenderBorder(s.out)
	s.drawUI(now)
	return s.out.Flush()
}
