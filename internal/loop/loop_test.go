package loop

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/game"
	"github.com/tomz197/asteroidsx/internal/input"
	"github.com/tomz197/asteroidsx/internal/object"
	"github.com/tomz197/asteroidsx/internal/ship"
	"github.com/tomz197/asteroidsx/internal/stats"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func newTestGame() *game.Game {
	return game.New(game.Options{
		Logger: log.New(io.Discard),
		Rand:   rand.New(rand.NewSource(1)),
	})
}

func newTestSession(opts Options) (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = fixedSize(80, 24)
	}
	opts.Logger = log.New(io.Discard)
	s := NewSession(newTestGame(), bufio.NewReader(strings.NewReader("")), &out, opts)
	return s, &out
}

func TestFitCanvas(t *testing.T) {
	tests := []struct {
		name                       string
		termW, termH               int
		cols, rows, offCol, offRow int
	}{
		{"height bound", 80, 24, 72, 24, 4, 0},
		{"wide terminal", 200, 30, 90, 30, 55, 0},
		{"tall terminal", 60, 100, 60, 20, 0, 40},
		{"render limit", 400, 200, 240, 80, 80, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows, offCol, offRow := fitCanvas(tt.termW, tt.termH, 1.5)
			if cols != tt.cols || rows != tt.rows || offCol != tt.offCol || offRow != tt.offRow {
				t.Errorf("fitCanvas(%d, %d) = %d, %d, %d, %d; want %d, %d, %d, %d",
					tt.termW, tt.termH, cols, rows, offCol, offRow, tt.cols, tt.rows, tt.offCol, tt.offRow)
			}
		})
	}
}

func TestHandleControls(t *testing.T) {
	s, _ := newTestSession(Options{})
	g := s.game

	in := s.handleControls(input.Input{Fire: true, Number: -1})
	if g.State() != game.StatePlaying {
		t.Fatalf("state = %v after start, want playing", g.State())
	}
	if in.Fire {
		t.Error("the key that started the game should not also fire")
	}

	s.handleControls(input.Input{Pause: true, Number: -1})
	if !g.Paused() {
		t.Fatal("P should pause")
	}
	s.handleControls(input.Input{Pause: true, Number: -1})
	if g.Paused() {
		t.Fatal("P should resume")
	}

	s.handleControls(input.Input{Pause: true, Number: -1})
	s.handleControls(input.Input{Restart: true, Number: -1})
	if g.State() != game.StatePlaying || g.Paused() {
		t.Fatalf("restart left state %v paused=%v", g.State(), g.Paused())
	}
}

type fakePicker struct {
	entries []ship.Entry
	set     []string
}

func (f *fakePicker) All() []ship.Entry { return f.entries }

func (f *fakePicker) SetStyle(key string) error {
	f.set = append(f.set, key)
	return nil
}

func TestPickShip(t *testing.T) {
	picker := &fakePicker{entries: []ship.Entry{
		{Style: object.ShipStyle{Key: "classic", Name: "Classic"}, Unlocked: true, Selected: true},
		{Style: object.ShipStyle{Key: "arrow", Name: "Arrow"}},
		{Style: object.ShipStyle{Key: "diamond", Name: "Diamond"}, Unlocked: true},
	}}
	s, _ := newTestSession(Options{Ships: picker})

	for _, n := range []int{2, 3, 9} {
		s.handleControls(input.Input{Number: n})
	}
	if len(picker.set) != 1 || picker.set[0] != "diamond" {
		t.Fatalf("selected %v, want [diamond]", picker.set)
	}
	if got, want := s.shipLine(), "1:Classic* 2:[locked] 3:Diamond"; got != want {
		t.Errorf("shipLine() = %q, want %q", got, want)
	}
}

func TestTrackActivity(t *testing.T) {
	s, _ := newTestSession(Options{IdleWarn: time.Second, IdleTimeout: 2 * time.Second})
	s.game.Start()
	t0 := time.Now()
	s.lastInput = t0

	if err := s.trackActivity(input.Input{}, t0.Add(1500*time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	if !s.inactive || !s.game.Paused() {
		t.Fatal("idle session should be warned and paused")
	}

	keyAt := t0.Add(1600 * time.Millisecond)
	if err := s.trackActivity(input.Input{Pressed: []byte("x")}, keyAt); err != nil {
		t.Fatal(err)
	}
	if s.inactive || s.game.Paused() {
		t.Fatal("a key should clear the warning and resume")
	}

	err := s.trackActivity(input.Input{}, keyAt.Add(2500*time.Millisecond))
	if !errors.Is(err, ErrInactive) {
		t.Fatalf("err = %v, want ErrInactive", err)
	}
}

func TestDrawFrameScreens(t *testing.T) {
	s, out := newTestSession(Options{})
	if err := s.updateScreen(); err != nil {
		t.Fatal(err)
	}
	if err := s.drawFrame(time.UnixMilli(0)); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"A S T E R O I D S", "Press SPACE to Start", "▀"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("title frame is missing %q", want)
		}
	}

	out.Reset()
	s.game.Start()
	if err := s.drawFrame(time.UnixMilli(0)); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Score: 0", "Level: 1", "Lives: 3"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("HUD is missing %q", want)
		}
	}
}

func TestTextClipsToCanvas(t *testing.T) {
	s, out := newTestSession(Options{TermSizeFunc: fixedSize(12, 4)})
	if err := s.updateScreen(); err != nil {
		t.Fatal(err)
	}
	s.text(s.canvas.TerminalWidth()-2, 1, "overflow")
	s.text(1, 99, "hidden")
	if err := s.out.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "ove") || strings.Contains(out.String(), "over") {
		t.Errorf("text was not clipped: %q", out.String())
	}
	if strings.Contains(out.String(), "hidden") {
		t.Error("text below the canvas should be dropped")
	}
}

func TestRunQuitsWhenInputEnds(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	err := Run(ctx, newTestGame(), bufio.NewReader(strings.NewReader("q")), &out, Options{
		TermSizeFunc: fixedSize(80, 24),
		Logger:       log.New(io.Discard),
	})
	if err != nil {
		t.Fatal(err)
	}
	if ctx.Err() != nil {
		t.Fatal("Run did not return on quit")
	}
	if !strings.HasPrefix(out.String(), "\033[?25l") || !strings.HasSuffix(out.String(), "\033[?25h") {
		t.Error("cursor should be hidden while running and restored on exit")
	}
}

func TestRunDisconnectsIdleSession(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	err := Run(context.Background(), newTestGame(), bufio.NewReader(pr), io.Discard, Options{
		TermSizeFunc: fixedSize(40, 12),
		IdleTimeout:  50 * time.Millisecond,
		Logger:       log.New(io.Discard),
	})
	if !errors.Is(err, ErrInactive) {
		t.Fatalf("err = %v, want ErrInactive", err)
	}
}

func TestAttract(t *testing.T) {
	g := newTestGame()
	img := draw.NewImage(96, 64)
	surface := draw.NewContext(img, g.Screen().Width, g.Screen().Height)

	var frames []int
	var clocks []float64
	err := Attract(g, surface, 1.0/60, 3, 20, func(i int) error {
		frames = append(frames, i)
		clocks = append(clocks, g.Clock())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 3 || frames[2] != 2 {
		t.Fatalf("frames = %v, want [0 1 2]", frames)
	}
	if !g.Running() {
		t.Fatal("attract mode should keep a game running")
	}
	for i := 1; i < len(clocks); i++ {
		if clocks[i] <= clocks[i-1] {
			t.Errorf("clock did not advance between frames: %v", clocks)
		}
	}

	stop := errors.New("stop")
	calls := 0
	err = Attract(g, surface, 1.0/60, 5, 1, func(int) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("err = %v after %d calls, want stop after 1", err, calls)
	}
}

func TestSelectShipErrors(t *testing.T) {
	picker := &fakePicker{entries: []ship.Entry{
		{Style: object.ShipStyle{Key: "classic"}, Unlocked: true},
		{Style: object.ShipStyle{Key: "arrow"}},
	}}
	tests := []struct {
		slot int
		want error
	}{
		{0, ship.ErrUnknownStyle},
		{3, ship.ErrUnknownStyle},
		{2, ship.ErrStyleLocked},
		{1, nil},
	}
	for _, tt := range tests {
		if err := SelectShip(picker, tt.slot); !errors.Is(err, tt.want) {
			t.Errorf("SelectShip(%d) = %v, want %v", tt.slot, err, tt.want)
		}
	}
}

type fakeHistory struct {
	entries []stats.Entry
	err     error
	loads   int
}

func (f *fakeHistory) Load() ([]stats.Entry, error) {
	f.loads++
	return f.entries, f.err
}

func TestLeaderboard(t *testing.T) {
	hist := &fakeHistory{}
	for i, score := range []int{300, 1200, 50, 900, 1200, 10, 700} {
		hist.entries = append(hist.entries, stats.Entry{Timestamp: int64(i), Score: score, Level: i + 1})
	}
	s, _ := newTestSession(Options{History: hist})

	s.refreshBoard()
	if hist.loads != 0 {
		t.Fatal("leaderboard loaded before the game ended")
	}

	s.loadBoard()
	if len(s.board) != leaderboardSize {
		t.Fatalf("board has %d entries, want %d", len(s.board), leaderboardSize)
	}
	if s.board[0].Score != 1200 || s.board[0].Timestamp != 4 || s.board[4].Score != 300 {
		t.Errorf("board order = %+v", s.board)
	}
	lines := s.boardLines()
	if want := "Best games (average 623 over 7)"; lines[0] != want {
		t.Errorf("header = %q, want %q", lines[0], want)
	}
	if want := "1.    1200  level 5 "; lines[1] != want {
		t.Errorf("first row = %q, want %q", lines[1], want)
	}

	hist.err = errors.New("disk gone")
	s.loadBoard()
	if len(s.board) != 0 {
		t.Error("a failed load should clear the board")
	}
}
