package domain

import "time"

// DateLayout is the ISO calendar date format used for session and target dates.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date. The result is midnight UTC so that
// day arithmetic is unaffected by daylight saving transitions.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// IsDate reports whether s is a valid ISO calendar date.
func IsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// ProgressStats is a snapshot derived from an identity's goals and sessions.
// It is recomputed on every request and never stored.
type ProgressStats struct {
	TotalStudyMinutes int    `json:"total_study_minutes"`
	TotalGoals        int    `json:"total_goals"`
	CompletedGoals    int    `json:"completed_goals"`
	CurrentStreak     int    `json:"current_streak"`
	LongestStreak     int    `json:"longest_streak"`
	DistinctStudyDays int    `json:"distinct_study_days"`
	AsOf              string `json:"as_of"`
}
