package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studytrack/studytrack-server/internal/domain"
)

var queryDay = time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

func sessionsOn(dates ...string) []*domain.StudySession {
	out := make([]*domain.StudySession, len(dates))
	for i, d := range dates {
		out[i] = &domain.StudySession{Subject: "Go", Date: d, DurationMinutes: 30}
	}
	return out
}

func TestCompute_CurrentStreakScenarios(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"three consecutive ending today", []string{"2024-06-10", "2024-06-09", "2024-06-08"}, 3},
		{"active through yesterday", []string{"2024-06-09", "2024-06-08"}, 2},
		{"gap yesterday", []string{"2024-06-10", "2024-06-08"}, 1},
		{"stale", []string{"2024-06-01"}, 0},
		{"no sessions", nil, 0},
		{"single session today", []string{"2024-06-10"}, 1},
		{"unsorted input", []string{"2024-06-08", "2024-06-10", "2024-06-09"}, 3},
		{"duplicate dates collapse", []string{"2024-06-10", "2024-06-10", "2024-06-09"}, 2},
		{"tomorrow is most recent", []string{"2024-06-11", "2024-06-10"}, 0},
		{"only future", []string{"2024-06-12"}, 0},
		{"future day ahead of a run", []string{"2024-06-12", "2024-06-10", "2024-06-09"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Compute(nil, sessionsOn(tt.dates...), queryDay)
			assert.Equal(t, tt.want, stats.CurrentStreak)
		})
	}
}

func TestCompute_EmptyInput(t *testing.T) {
	stats := Compute(nil, nil, queryDay)

	assert.Equal(t, domain.ProgressStats{AsOf: "2024-06-10"}, stats)
}

func TestCompute_Totals(t *testing.T) {
	goals := []*domain.Goal{
		{Title: "a", Completed: true},
		{Title: "b"},
		{Title: "c", Completed: true},
	}
	sessions := []*domain.StudySession{
		{Date: "2024-06-10", DurationMinutes: 25},
		{Date: "2024-06-10", DurationMinutes: 35},
		{Date: "2024-05-01", DurationMinutes: 40},
		{Date: "2024-06-20", DurationMinutes: 5},
	}

	stats := Compute(goals, sessions, queryDay)

	assert.Equal(t, 3, stats.TotalGoals)
	assert.Equal(t, 2, stats.CompletedGoals)
	assert.Equal(t, 105, stats.TotalStudyMinutes)
	assert.Equal(t, 3, stats.DistinctStudyDays, "future dates still count as distinct days")
	assert.Equal(t, 0, stats.CurrentStreak, "most recent study day is 2024-06-20")
}

func TestCompute_MinutesInvariantUnderOrder(t *testing.T) {
	a := sessionsOn("2024-06-01", "2024-06-05", "2024-06-10")
	a[0].DurationMinutes, a[1].DurationMinutes, a[2].DurationMinutes = 10, 20, 30
	b := []*domain.StudySession{a[2], a[0], a[1]}

	assert.Equal(t, Compute(nil, a, queryDay), Compute(nil, b, queryDay))
}

func TestCompute_LongestStreak(t *testing.T) {
	stats := Compute(nil, sessionsOn("2024-06-01", "2024-06-02", "2024-06-03", "2024-06-07", "2024-06-08"), queryDay)

	assert.Equal(t, 3, stats.LongestStreak)
	assert.Equal(t, 0, stats.CurrentStreak)
}

func TestCompute_LongestStreakIncludesFutureDays(t *testing.T) {
	stats := Compute(nil, sessionsOn("2024-06-10", "2024-06-11", "2024-06-12"), queryDay)

	assert.Equal(t, 3, stats.LongestStreak)
	assert.Equal(t, 0, stats.CurrentStreak)
}

func TestCompute_AcrossMonthAndDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// US DST began 2024-03-10.
	today := time.Date(2024, 3, 11, 0, 30, 0, 0, ny)
	stats := Compute(nil, sessionsOn("2024-03-11", "2024-03-10", "2024-03-09", "2024-03-08"), today)
	assert.Equal(t, 4, stats.CurrentStreak)

	today = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	stats = Compute(nil, sessionsOn("2024-03-01", "2024-02-29", "2024-02-28"), today)
	assert.Equal(t, 3, stats.CurrentStreak, "leap day")
}

func TestCompute_UsesLocalCalendarDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2024-06-09T20:00Z is already 2024-06-10 in Tokyo.
	today := time.Date(2024, 6, 9, 20, 0, 0, 0, time.UTC).In(tokyo)

	stats := Compute(nil, sessionsOn("2024-06-10"), today)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, "2024-06-10", stats.AsOf)
}

func TestCompute_SkipsMalformedDates(t *testing.T) {
	stats := Compute(nil, sessionsOn("2024-06-10", "not-a-date"), queryDay)

	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 2, stats.DistinctStudyDays)
}

func TestCompute_Deterministic(t *testing.T) {
	sessions := sessionsOn("2024-06-10", "2024-06-09", "2024-06-01")
	first := Compute(nil, sessions, queryDay)
	for range 5 {
		assert.Equal(t, first, Compute(nil, sessions, queryDay))
	}
}
