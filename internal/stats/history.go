package stats

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
)

// Keys is a list of achievement keys stored in one CSV column.
type Keys []string

// MarshalCSV joins the keys with semicolons.
func (k Keys) MarshalCSV() (string, error) {
	return strings.Join(k, ";"), nil
}

// UnmarshalCSV splits a semicolon-separated column.
func (k *Keys) UnmarshalCSV(s string) error {
	*k = nil
	for _, key := range strings.Split(s, ";") {
		if key = strings.TrimSpace(key); key != "" {
			*k = append(*k, key)
		}
	}
	return nil
}

// Entry is one finished game in the history file.
type Entry struct {
	Timestamp    int64   `csv:"timestamp"`
	Score        int     `csv:"score"`
	Level        int     `csv:"level"`
	Asteroids    int     `csv:"asteroids"`
	ShotsFired   int     `csv:"shots_fired"`
	ShotsHit     int     `csv:"shots_hit"`
	Accuracy     float64 `csv:"accuracy"`
	TimeAlive    float64 `csv:"time_alive"`
	Achievements Keys    `csv:"achievements"`
}

// History appends finished games to a CSV file. It is safe for concurrent
// use, so every SSH session can share one.
type History struct {
	mu   sync.Mutex
	path string
}

// NewHistory returns a history stored at path. The file is created on the first Append.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Path returns the file location.
func (h *History) Path() string { return h.path }

// Append writes e, adding the header row when the file is new or empty.
func (h *History) Append(e Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if dir := filepath.Dir(h.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating history directory: %w", err)
		}
	}
	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}

	records := []Entry{e}
	if info.Size() == 0 {
		err = gocsv.Marshal(records, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(records, f)
	}
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Load reads every entry. A missing file or a nil History is an empty history.
func (h *History) Load() ([]Entry, error) {
	if h == nil {
		return nil, nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := os.Open(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()
	return ReadEntries(f)
}

// ReadEntries decodes a history CSV.
func ReadEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := gocsv.Unmarshal(r, &entries); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return entries, nil
}

// LifetimeFrom rebuilds lifetime totals from a history.
func LifetimeFrom(entries []Entry) Lifetime {
	l := Lifetime{MaxLevel: 1}
	for _, e := range entries {
		l.GamesPlayed++
		l.TotalScore += e.Score
		l.HighScore = max(l.HighScore, e.Score)
		l.MaxLevel = max(l.MaxLevel, e.Level)
		l.TotalAsteroids += e.Asteroids
		l.TotalTimeAlive += e.TimeAlive
		for _, k := range e.Achievements {
			if !slices.Contains(l.Achievements, k) {
				l.Achievements = append(l.Achievements, k)
			}
		}
	}
	l.PlayTime = l.TotalTimeAlive
	return l
}

// Aggregate summarizes a history.
type Aggregate struct {
	Games        int
	MeanScore    float64
	StdDevScore  float64
	MedianScore  float64
	BestScore    float64
	MeanAccuracy float64
	MeanLevel    float64
}

// Aggregates computes score, accuracy and level statistics over entries.
func Aggregates(entries []Entry) Aggregate {
	n := len(entries)
	if n == 0 {
		return Aggregate{}
	}
	scores := make([]float64, n)
	accuracy := make([]float64, n)
	levels := make([]float64, n)
	for i, e := range entries {
		scores[i] = float64(e.Score)
		accuracy[i] = e.Accuracy
		levels[i] = float64(e.Level)
	}

	a := Aggregate{
		Games:        n,
		MeanScore:    stat.Mean(scores, nil),
		MeanAccuracy: stat.Mean(accuracy, nil),
		MeanLevel:    stat.Mean(levels, nil),
	}
	if n > 1 {
		a.StdDevScore = stat.StdDev(scores, nil)
	}
	sort.Float64s(scores)
	a.MedianScore = stat.Quantile(0.5, stat.Empirical, scores, nil)
	a.BestScore = scores[n-1]
	return a
}

// Top returns up to n entries ordered by descending score, newest first on ties.
func Top(entries []Entry, n int) []Entry {
	sorted := slices.Clone(entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Timestamp > sorted[j].Timestamp
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
