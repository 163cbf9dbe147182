package ship

import (
	"errors"
	"io"
	"path/filepath"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroidsx/internal/physics"
	"github.com/tomz197/asteroidsx/internal/stats"
)

func newCustomizer() *Customizer {
	return NewCustomizer(log.New(io.Discard))
}

func TestBuiltinStylesPointRight(t *testing.T) {
	c := newCustomizer()
	all := c.All()
	if len(all) != 6 {
		t.Fatalf("got %d styles, want 6", len(all))
	}
	for _, e := range all {
		if lead := e.Style.Points[0]; lead.X <= 0 || lead.Y != 0 {
			t.Errorf("%s: leading point %v is not on +X", e.Style.Key, lead)
		}
		if len(e.Style.Points) < 3 || len(e.Style.Thrusters) == 0 {
			t.Errorf("%s: incomplete outline", e.Style.Key)
		}
	}
	viper, err := c.Style("viper")
	if err != nil {
		t.Fatal(err)
	}
	want := []physics.Vector2{physics.Vec(-12, -6), physics.Vec(-12, 6)}
	if !slices.Equal(viper.Thrusters, want) {
		t.Fatalf("viper thrusters = %v, want %v", viper.Thrusters, want)
	}
}

func TestSetStyleErrors(t *testing.T) {
	c := newCustomizer()
	tests := []struct {
		key  string
		want error
	}{
		{"classic", nil},
		{"arrow", ErrStyleLocked},
		{"nope", ErrUnknownStyle},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := c.SetStyle(tt.key)
			if !errors.Is(err, tt.want) {
				t.Fatalf("SetStyle(%q) = %v, want %v", tt.key, err, tt.want)
			}
		})
	}
	if c.CurrentKey() != "classic" {
		t.Fatalf("failed selection changed style to %q", c.CurrentKey())
	}
}

func TestCheckUnlocks(t *testing.T) {
	c := newCustomizer()

	snap := stats.Snapshot{
		Session:  stats.Session{Score: 1200, Level: 3},
		Lifetime: stats.Lifetime{TotalAsteroids: 10},
		Active:   true,
	}
	got := c.CheckUnlocks(snap)
	if !slices.Equal(got, []string{"arrow", "diamond"}) {
		t.Fatalf("first unlocks = %v", got)
	}
	if again := c.CheckUnlocks(snap); len(again) != 0 {
		t.Fatalf("unlocks repeated: %v", again)
	}

	snap.Lifetime = stats.Lifetime{HighScore: 6000, MaxLevel: 5, TotalAsteroids: 45}
	snap.Session.AsteroidsDestroyed = 5
	got = c.CheckUnlocks(snap)
	if !slices.Equal(got, []string{"triangle", "stealth", "viper"}) {
		t.Fatalf("second unlocks = %v", got)
	}
	if err := c.SetStyle("viper"); err != nil {
		t.Fatal(err)
	}
}

func TestCustomization(t *testing.T) {
	c := newCustomizer()

	if err := c.SetStat("speed", 5); err != nil {
		t.Fatal(err)
	}
	if err := c.SetStat("shield", 0.1); err != nil {
		t.Fatal(err)
	}
	if err := c.SetTrail("length", 10); err != nil {
		t.Fatal(err)
	}
	if err := c.SetTrail("intensity", 0); err != nil {
		t.Fatal(err)
	}
	opts := c.Customization()
	if opts.Stats.Speed != 1.2 || opts.Stats.Shield != 0.8 {
		t.Fatalf("stats not clamped: %+v", opts.Stats)
	}
	if opts.Trail.Length != 2 || opts.Trail.Intensity != 0.5 {
		t.Fatalf("trail not clamped: %+v", opts.Trail)
	}

	if err := c.SetStat("luck", 1); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("unknown stat err = %v", err)
	}
	if err := c.SetColor("primary", "pink"); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("bad color err = %v", err)
	}
	if err := c.SetColor("primary", "#ff0000"); err != nil {
		t.Fatal(err)
	}
	if got := c.CustomizedStyle().Color.Hex(); got != "#ff0000" {
		t.Fatalf("customized color = %s", got)
	}
	if got := c.CurrentStyle().Color.Hex(); got != "#00ffff" {
		t.Fatalf("base style recolored: %s", got)
	}

	c.ResetCustomization()
	if c.Customization() != DefaultCustomization() {
		t.Fatal("reset did not restore defaults")
	}
}

func TestCustomStyleAndPersistence(t *testing.T) {
	c := newCustomizer()
	if _, err := c.CreateCustomStyle("Bad", []physics.Vector2{{X: 1}}, nil, "", ""); err == nil {
		t.Fatal("two-point outline accepted")
	}
	pts := []physics.Vector2{{X: 14}, {X: -8, Y: -8}, {X: -8, Y: 8}}
	key, err := c.CreateCustomStyle("Wedge", pts, []physics.Vector2{{X: -8}}, "#123456", "")
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsUnlocked(key) {
		t.Fatal("custom style should be unlocked")
	}
	exp, err := c.ExportStyle(key)
	if err != nil {
		t.Fatal(err)
	}
	if exp.Name != "Wedge" || exp.Color != "#123456" || len(exp.Points) != 3 {
		t.Fatalf("export = %+v", exp)
	}

	_ = c.Unlock("diamond")
	if err := c.SetStyle(key); err != nil {
		t.Fatal(err)
	}
	_ = c.SetStat("agility", 1.1)

	path := filepath.Join(t.TempDir(), "ship.yaml")
	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded := newCustomizer()
	if err := loaded.Load(path); err != nil {
		t.Fatal(err)
	}
	if loaded.CurrentKey() != key {
		t.Fatalf("current = %q, want %q", loaded.CurrentKey(), key)
	}
	if !loaded.IsUnlocked("diamond") || loaded.IsUnlocked("arrow") {
		t.Fatal("unlocks not restored")
	}
	if loaded.Customization().Stats.Agility != 1.1 {
		t.Fatalf("customization = %+v", loaded.Customization())
	}
	if got := loaded.CurrentStyle().Points; !slices.Equal(got, pts) {
		t.Fatalf("custom points = %v", got)
	}

	if err := newCustomizer().Load(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Fatalf("missing file: %v", err)
	}
}

func TestCheckUnlocksSkipsMissingStyles(t *testing.T) {
	c := newCustomizer()
	delete(c.styles, "arrow")

	got := c.CheckUnlocks(stats.Snapshot{Session: stats.Session{Score: 1200}, Active: true})
	if len(got) != 0 {
		t.Fatalf("unlocked %v for a style that does not exist", got)
	}
	if c.IsUnlocked("arrow") {
		t.Fatal("missing style marked unlocked")
	}
}
