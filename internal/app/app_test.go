package app

import (
	"io"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroidsx/internal/config"
	"github.com/tomz197/asteroidsx/internal/stats"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	cfg.Stats.HistoryFile = filepath.Join(dir, "history.csv")
	cfg.Stats.ShipFile = filepath.Join(dir, "ships.yaml")
	return cfg
}

func newApp(t *testing.T, cfg *config.Config, persist bool) *App {
	t.Helper()
	a, err := New(cfg, log.New(io.Discard), Options{
		PersistProgress: persist,
		Rand:            rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestNewWiresConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Screen.Width, cfg.Screen.Height = 800, 600
	a := newApp(t, cfg, false)

	if scr := a.Game.Screen(); scr.Width != 800 || scr.Height != 600 {
		t.Errorf("screen = %vx%v, want 800x600", scr.Width, scr.Height)
	}
	if got := a.Settings.Values().ColorTheme; got != cfg.Settings.ColorTheme {
		t.Errorf("theme = %q, want %q", got, cfg.Settings.ColorTheme)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProgressPersists(t *testing.T) {
	cfg := testConfig(t)
	h := stats.NewHistory(cfg.Stats.HistoryFile)
	if err := h.Append(stats.Entry{Score: 1500, Level: 4, Asteroids: 60}); err != nil {
		t.Fatal(err)
	}

	a := newApp(t, cfg, true)
	snap := a.Stats.Snapshot()
	if snap.HighScore() != 1500 || snap.MaxLevel() != 4 {
		t.Fatalf("lifetime not seeded from history: high %d level %d", snap.HighScore(), snap.MaxLevel())
	}
	unlocked := a.Ships.CheckUnlocks(snap)
	if len(unlocked) == 0 {
		t.Fatal("history should unlock ships")
	}
	if err := a.Ships.SetStyle(unlocked[0]); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	b := newApp(t, cfg, true)
	if got := b.Ships.CurrentKey(); got != unlocked[0] {
		t.Errorf("current ship = %q after reload, want %q", got, unlocked[0])
	}
}

func TestSharedSessionsSkipProgress(t *testing.T) {
	cfg := testConfig(t)
	h := stats.NewHistory(cfg.Stats.HistoryFile)
	if err := h.Append(stats.Entry{Score: 9000, Level: 9}); err != nil {
		t.Fatal(err)
	}

	a := newApp(t, cfg, false)
	if got := a.Stats.Snapshot().HighScore(); got != 0 {
		t.Errorf("shared session started with high score %d", got)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
}
