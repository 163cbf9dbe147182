package stats

import "slices"

// Achievement is a one-time award.
type Achievement struct {
	Key         string
	Name        string
	Description string
	Unlocked    bool
}

type achievementRule struct {
	Achievement
	met func(Snapshot) bool
}

var achievementRules = []achievementRule{
	{Achievement{Key: "first_blood", Name: "First Blood", Description: "Destroy your first asteroid"},
		func(s Snapshot) bool { return s.TotalAsteroids() >= 1 }},
	{Achievement{Key: "sharpshooter", Name: "Sharpshooter", Description: "Achieve 80% accuracy in a game"},
		func(s Snapshot) bool { return s.Session.Accuracy >= 0.8 && s.Session.ShotsFired >= 10 }},
	{Achievement{Key: "survivor", Name: "Survivor", Description: "Survive for 5 minutes in one game"},
		func(s Snapshot) bool { return s.Session.TimeAlive >= 300 }},
	{Achievement{Key: "centurion", Name: "Centurion", Description: "Destroy 100 asteroids in one game"},
		func(s Snapshot) bool { return s.Session.AsteroidsDestroyed >= 100 }},
	{Achievement{Key: "speed_demon", Name: "Speed Demon", Description: "Reach level 10"},
		func(s Snapshot) bool { return s.Session.Level >= 10 }},
	{Achievement{Key: "pacifist", Name: "Pacifist", Description: "Survive for 1 minute without shooting"},
		func(s Snapshot) bool { return s.Session.TimeAlive >= 60 && s.Session.ShotsFired == 0 }},
	{Achievement{Key: "veteran", Name: "Veteran", Description: "Play 50 games"},
		func(s Snapshot) bool { return s.Lifetime.GamesPlayed >= 50 }},
	{Achievement{Key: "legend", Name: "Legend", Description: "Score 50,000 points"},
		func(s Snapshot) bool { return s.HighScore() >= 50000 }},
	{Achievement{Key: "asteroid_hunter", Name: "Asteroid Hunter", Description: "Destroy 1,000 asteroids total"},
		func(s Snapshot) bool { return s.TotalAsteroids() >= 1000 }},
	{Achievement{Key: "perfectionist", Name: "Perfectionist", Description: "Complete a level without missing a shot"},
		func(s Snapshot) bool { return s.Session.PerfectLevels > 0 }},
}

// CheckAchievements unlocks every achievement whose condition now holds and
// returns the newly unlocked ones.
func (r *Recorder) CheckAchievements() []Achievement {
	snap := r.Snapshot()
	var fresh []Achievement
	for _, rule := range achievementRules {
		if slices.Contains(r.lifetime.Achievements, rule.Key) || !rule.met(snap) {
			continue
		}
		r.lifetime.Achievements = append(r.lifetime.Achievements, rule.Key)
		r.unlocked = append(r.unlocked, rule.Key)
		a := rule.Achievement
		a.Unlocked = true
		fresh = append(fresh, a)
		r.logger.Info("achievement unlocked", "achievement", a.Name)
	}
	return fresh
}

// Achievements lists every achievement with its unlock state.
func (r *Recorder) Achievements() []Achievement {
	out := make([]Achievement, len(achievementRules))
	for i, rule := range achievementRules {
		out[i] = rule.Achievement
		out[i].Unlocked = slices.Contains(r.lifetime.Achievements, rule.Key)
	}
	return out
}

// AchievementProgress returns how many achievements are unlocked.
func (r *Recorder) AchievementProgress() (unlocked, total int, percent float64) {
	total = len(achievementRules)
	for _, a := range r.Achievements() {
		if a.Unlocked {
			unlocked++
		}
	}
	return unlocked, total, float64(unlocked) / float64(total) * 100
}
