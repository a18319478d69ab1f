package domain

import "time"

// MaxSessionMinutes caps a single session at one day.
const MaxSessionMinutes = 24 * 60

// StudySession records time spent on a subject on a calendar day.
//
// Sessions are stored under a generated ID. Subject is not unique: logging the
// same subject on several days produces several sessions.
type StudySession struct {
	ID              string    `json:"id"`
	Subject         string    `json:"subject"`
	Date            string    `json:"date"` // YYYY-MM-DD
	DurationMinutes int       `json:"duration_minutes"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
