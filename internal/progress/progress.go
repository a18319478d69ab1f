// Package progress derives ProgressStats from an identity's goals and study
// sessions. Everything here is pure: the same input always yields the same
// snapshot, and nothing is cached.
package progress

import (
	"slices"
	"time"

	"github.com/studytrack/studytrack-server/internal/domain"
)

// Compute builds the stats snapshot as of the calendar day of today, taken
// in today's own location.
// The current streak counts back from the most recent study day, so a
// session dated after today ends it.
func Compute(goals []*domain.Goal, sessions []*domain.StudySession, today time.Time) domain.ProgressStats {
	day := calendarDay(today)

	stats := domain.ProgressStats{
		TotalGoals: len(goals),
		AsOf:       day.Format(domain.DateLayout),
	}
	for _, g := range goals {
		if g.Completed {
			stats.CompletedGoals++
		}
	}

	seen := make(map[string]struct{}, len(sessions))
	for _, s := range sessions {
		stats.TotalStudyMinutes += s.DurationMinutes
		seen[s.Date] = struct{}{}
	}
	stats.DistinctStudyDays = len(seen)

	days := studyDays(seen)
	stats.CurrentStreak = CurrentStreak(days, day)
	stats.LongestStreak = LongestStreak(days)

	return stats
}

// CurrentStreak walks days (distinct, sorted descending)
// from the most recent one and counts consecutive calendar days. The streak
// is 0 unless the most recent day is today or yesterday.
func CurrentStreak(days []time.Time, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today = calendarDay(today)
	if !days[0].Equal(today) && !days[0].Equal(today.AddDate(0, 0, -1)) {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if !days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive calendar days in days
// (distinct, sorted descending).
func LongestStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
			run++
			longest = max(longest, run)
		} else {
			run = 1
		}
	}
	return longest
}

// studyDays parses the distinct dates, drops malformed ones, and sorts the
// rest newest first.
func studyDays(dates map[string]struct{}) []time.Time {
	days := make([]time.Time, 0, len(dates))
	for d := range dates {
		t, err := domain.ParseDate(d)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return b.Compare(a) })
	return days
}

// calendarDay maps t to midnight UTC of its local calendar date, so that day
// arithmetic with AddDate never crosses a DST transition.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
