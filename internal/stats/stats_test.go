package stats

import (
	"math"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func newTestRecorder(h *History) *Recorder {
	r := NewRecorder(Lifetime{}, h, nil)
	clock := time.Unix(1700000000, 0)
	r.now = func() time.Time { return clock }
	return r
}

func TestSessionCounters(t *testing.T) {
	r := newTestRecorder(nil)
	r.GameStarted()
	for i := 0; i < 4; i++ {
		r.ShotFired()
	}
	r.AsteroidDestroyed()
	r.AsteroidDestroyed()
	r.ScoreAdded(20)
	r.ScoreAdded(50)
	r.AddTime(61.5)

	s := r.Snapshot()
	if s.Session.Score != 70 || s.Session.AsteroidsDestroyed != 2 || s.Session.ShotsHit != 2 {
		t.Fatalf("session = %+v", s.Session)
	}
	if s.Session.Accuracy != 0.5 {
		t.Fatalf("accuracy = %v", s.Session.Accuracy)
	}
	if !s.Active || s.TotalAsteroids() != 2 || s.HighScore() != 70 {
		t.Fatalf("snapshot helpers: active=%v total=%d high=%d", s.Active, s.TotalAsteroids(), s.HighScore())
	}

	sum := r.Summary()
	if sum.Accuracy != 50 || sum.TimeAlive != "1:01" {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestGameEndedFoldsIntoLifetimeOnce(t *testing.T) {
	r := newTestRecorder(nil)
	r.GameStarted()
	r.ScoreAdded(300)
	r.AsteroidDestroyed()
	r.LevelUp()
	r.GameEnded()
	r.GameEnded()

	l := r.Lifetime()
	if l.GamesPlayed != 1 || l.TotalScore != 300 || l.HighScore != 300 || l.MaxLevel != 2 || l.TotalAsteroids != 1 {
		t.Fatalf("lifetime = %+v", l)
	}
	s := r.Snapshot()
	if s.Active || s.TotalAsteroids() != 1 {
		t.Fatalf("ended snapshot counted the session twice: %+v", s)
	}
	sum := r.Summary()
	if !sum.NewHighScore || !sum.NewMaxLevel {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestPerfectLevel(t *testing.T) {
	tests := []struct {
		name   string
		hits   int
		missed bool
		want   int
	}{
		{"clean level", 3, false, 1},
		{"missed a shot", 3, true, 0},
		{"no shots", 0, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRecorder(nil)
			r.GameStarted()
			for i := 0; i < tt.hits; i++ {
				r.ShotFired()
				r.AsteroidDestroyed()
			}
			if tt.missed {
				r.ShotFired()
				r.ShotMissed()
			}
			r.LevelUp()
			if got := r.Snapshot().Session.PerfectLevels; got != tt.want {
				t.Fatalf("PerfectLevels = %d, want %d", got, tt.want)
			}
			if !r.Snapshot().Session.PerfectLevel {
				t.Fatal("LevelUp should reset the perfect tracker")
			}
		})
	}
}

func TestAchievements(t *testing.T) {
	r := newTestRecorder(nil)
	r.GameStarted()
	for i := 0; i < 10; i++ {
		r.ShotFired()
		r.AsteroidDestroyed()
	}
	r.LevelUp()
	r.GameEnded()

	got := r.Summary().Achievements
	for _, want := range []string{"first_blood", "sharpshooter", "perfectionist"} {
		if !slices.Contains(got, want) {
			t.Errorf("missing achievement %s in %v", want, got)
		}
	}
	if slices.Contains(got, "pacifist") {
		t.Error("pacifist unlocked after shooting")
	}

	// Already unlocked achievements are not reported again.
	r.GameStarted()
	r.AsteroidDestroyed()
	r.GameEnded()
	if len(r.Summary().Achievements) != 0 {
		t.Fatalf("re-unlocked: %v", r.Summary().Achievements)
	}

	unlocked, total, pct := r.AchievementProgress()
	if unlocked != 3 || total != 10 || math.Abs(pct-30) > 1e-9 {
		t.Fatalf("progress = %d/%d %v", unlocked, total, pct)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[float64]string{0: "0:00", 9.9: "0:09", 60: "1:00", 754: "12:34", -3: "0:00"}
	for in, want := range tests {
		if got := FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "nested", "history.csv"))

	entries, err := h.Load()
	if err != nil || len(entries) != 0 {
		t.Fatalf("missing file: %v, %v", entries, err)
	}

	r := newTestRecorder(h)
	for _, score := range []int{100, 400, 250} {
		r.GameStarted()
		r.ShotFired()
		r.AsteroidDestroyed()
		r.ScoreAdded(score)
		r.GameEnded()
	}

	entries, err = h.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("loaded %d entries", len(entries))
	}
	if !slices.Contains(entries[0].Achievements, "first_blood") {
		t.Fatalf("achievements column = %v", entries[0].Achievements)
	}

	l := LifetimeFrom(entries)
	if l.GamesPlayed != 3 || l.HighScore != 400 || l.TotalScore != 750 || l.TotalAsteroids != 3 {
		t.Fatalf("lifetime = %+v", l)
	}

	top := Top(entries, 2)
	if len(top) != 2 || top[0].Score != 400 || top[1].Score != 250 {
		t.Fatalf("top = %+v", top)
	}
}

func TestReadEntriesEmpty(t *testing.T) {
	entries, err := ReadEntries(strings.NewReader(""))
	if err != nil || len(entries) != 0 {
		t.Fatalf("ReadEntries(empty) = %v, %v", entries, err)
	}
}

func TestAggregates(t *testing.T) {
	entries := []Entry{
		{Score: 100, Accuracy: 0.5, Level: 1},
		{Score: 300, Accuracy: 1, Level: 3},
		{Score: 200, Accuracy: 0, Level: 2},
	}
	a := Aggregates(entries)
	if a.Games != 3 || a.MeanScore != 200 || a.MedianScore != 200 || a.BestScore != 300 {
		t.Fatalf("aggregate = %+v", a)
	}
	if math.Abs(a.StdDevScore-100) > 1e-9 || math.Abs(a.MeanAccuracy-0.5) > 1e-9 || a.MeanLevel != 2 {
		t.Fatalf("aggregate = %+v", a)
	}
	if (Aggregates(nil) != Aggregate{}) {
		t.Fatal("empty aggregate should be zero")
	}
}

func TestNilHistoryLoadsEmpty(t *testing.T) {
	var h *History
	entries, err := h.Load()
	if err != nil || len(entries) != 0 {
		t.Fatalf("Load() = %v, %v; want empty", entries, err)
	}
}
