// Package stats records per-game and lifetime statistics and achievements.
package stats

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// Session holds the statistics of the game in progress.
type Session struct {
	Score              int
	Level              int
	Lives              int
	AsteroidsDestroyed int
	ShotsFired         int
	ShotsHit           int
	Accuracy           float64 // hits / shots, 0..1
	TimeAlive          float64 // seconds of game time
	StartedAt          time.Time
	PerfectLevel       bool // no shot missed since the last level up
	PerfectLevels      int  // levels cleared without a miss and with at least one hit
}

// Lifetime accumulates over every finished game.
type Lifetime struct {
	GamesPlayed    int
	TotalScore     int
	HighScore      int
	MaxLevel       int
	TotalAsteroids int
	TotalTimeAlive float64
	PlayTime       float64 // wall-clock seconds
	Achievements   []string
}

// Snapshot is a copy of the recorder's state.
type Snapshot struct {
	Session  Session
	Lifetime Lifetime
	Active   bool // a game is in progress and not yet folded into Lifetime
}

// HighScore is the best score including the game in progress.
func (s Snapshot) HighScore() int {
	return max(s.Lifetime.HighScore, s.Session.Score)
}

// MaxLevel is the highest level reached including the game in progress.
func (s Snapshot) MaxLevel() int {
	return max(s.Lifetime.MaxLevel, s.Session.Level)
}

// TotalAsteroids counts every asteroid destroyed including the game in progress.
func (s Snapshot) TotalAsteroids() int {
	if s.Active {
		return s.Lifetime.TotalAsteroids + s.Session.AsteroidsDestroyed
	}
	return s.Lifetime.TotalAsteroids
}

// Summary is the game-over report.
type Summary struct {
	Score        int
	Level        int
	Asteroids    int
	Accuracy     int    // percent
	TimeAlive    string // m:ss
	NewHighScore bool
	NewMaxLevel  bool
	Achievements []string // unlocked by this game
}

// Recorder receives game events. It is not safe for concurrent use; each
// game session owns one.
type Recorder struct {
	session  Session
	lifetime Lifetime
	active   bool
	unlocked []string // achievements unlocked by the current game
	history  *History
	now      func() time.Time
	logger   *log.Logger
}

// NewRecorder creates a recorder starting from lifetime. history may be nil.
func NewRecorder(lifetime Lifetime, history *History, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	if lifetime.MaxLevel < 1 {
		lifetime.MaxLevel = 1
	}
	return &Recorder{
		session:  newSession(time.Now()),
		lifetime: lifetime,
		history:  history,
		now:      time.Now,
		logger:   logger,
	}
}

func newSession(now time.Time) Session {
	return Session{Level: 1, Lives: 3, StartedAt: now, PerfectLevel: true}
}

// GameStarted resets the session and counts a new game.
func (r *Recorder) GameStarted() {
	r.session = newSession(r.now())
	r.unlocked = nil
	r.active = true
	r.lifetime.GamesPlayed++
	r.logger.Debug("game started", "game", r.lifetime.GamesPlayed)
}

// GameEnded folds the session into the lifetime totals, evaluates
// achievements and appends the game to the history. Calling it twice for
// the same game is a no-op.
func (r *Recorder) GameEnded() {
	if !r.active {
		return
	}
	r.active = false

	l := &r.lifetime
	l.TotalScore += r.session.Score
	l.TotalAsteroids += r.session.AsteroidsDestroyed
	l.TotalTimeAlive += r.session.TimeAlive
	l.PlayTime += r.now().Sub(r.session.StartedAt).Seconds()
	if r.session.Score > l.HighScore {
		l.HighScore = r.session.Score
		r.logger.Info("new high score", "score", l.HighScore)
	}
	if r.session.Level > l.MaxLevel {
		l.MaxLevel = r.session.Level
		r.logger.Info("new max level", "level", l.MaxLevel)
	}

	r.CheckAchievements()

	if r.history != nil {
		if err := r.history.Append(r.Entry()); err != nil {
			r.logger.Warn("record game history", "err", err)
		}
	}
}

// ShotFired counts a bullet.
func (r *Recorder) ShotFired() {
	r.session.ShotsFired++
	r.updateAccuracy()
}

// ShotMissed marks that a bullet expired without hitting anything.
func (r *Recorder) ShotMissed() {
	r.session.PerfectLevel = false
}

// AsteroidDestroyed counts a destroyed asteroid and a hit.
func (r *Recorder) AsteroidDestroyed() {
	r.session.AsteroidsDestroyed++
	r.session.ShotsHit++
	r.updateAccuracy()
}

// ScoreAdded adds points to the session score.
func (r *Recorder) ScoreAdded(points int) {
	r.session.Score += points
}

// LivesChanged records the remaining lives.
func (r *Recorder) LivesChanged(lives int) {
	r.session.Lives = lives
}

// LevelUp advances the session level and scores a perfect level when no
// shot was missed since the previous one.
func (r *Recorder) LevelUp() {
	if r.session.PerfectLevel && r.session.ShotsHit > 0 {
		r.session.PerfectLevels++
	}
	r.session.Level++
	r.session.PerfectLevel = true
}

// AddTime accumulates game time.
func (r *Recorder) AddTime(dt float64) {
	if r.active && dt > 0 {
		r.session.TimeAlive += dt
	}
}

func (r *Recorder) updateAccuracy() {
	if r.session.ShotsFired > 0 {
		r.session.Accuracy = math.Min(1, float64(r.session.ShotsHit)/float64(r.session.ShotsFired))
	}
}

// Snapshot returns a copy of the current statistics.
func (r *Recorder) Snapshot() Snapshot {
	l := r.lifetime
	l.Achievements = slices.Clone(l.Achievements)
	return Snapshot{Session: r.session, Lifetime: l, Active: r.active}
}

// Lifetime returns a copy of the lifetime totals.
func (r *Recorder) Lifetime() Lifetime { return r.Snapshot().Lifetime }

// Summary reports the current or last game.
func (r *Recorder) Summary() Summary {
	s := r.session
	return Summary{
		Score:        s.Score,
		Level:        s.Level,
		Asteroids:    s.AsteroidsDestroyed,
		Accuracy:     int(math.Round(s.Accuracy * 100)),
		TimeAlive:    FormatDuration(s.TimeAlive),
		NewHighScore: s.Score > 0 && s.Score == r.lifetime.HighScore,
		NewMaxLevel:  s.Level > 1 && s.Level == r.lifetime.MaxLevel,
		Achievements: slices.Clone(r.unlocked),
	}
}

// Entry returns the leaderboard row for the current or last game.
func (r *Recorder) Entry() Entry {
	return Entry{
		Timestamp:    r.now().Unix(),
		Score:        r.session.Score,
		Level:        r.session.Level,
		Asteroids:    r.session.AsteroidsDestroyed,
		ShotsFired:   r.session.ShotsFired,
		ShotsHit:     r.session.ShotsHit,
		Accuracy:     r.session.Accuracy,
		TimeAlive:    r.session.TimeAlive,
		Achievements: Keys(slices.Clone(r.unlocked)),
	}
}

// Reset clears the lifetime totals and achievements.
func (r *Recorder) Reset() {
	r.lifetime = Lifetime{MaxLevel: 1}
	r.logger.Info("stats reset")
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
