package domain

import (
	"time"

	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
)

// Priority ranks how urgent a goal is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is applied when a goal is created without one.
const DefaultPriority = PriorityMedium

// ParsePriority converts a string into a Priority, rejecting anything outside the enum.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", domainerrors.Validationf("invalid priority %q (must be low, medium, or high)", s)
	}
	return p, nil
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Goal is a learning objective, keyed by Title within its owner's partition.
type Goal struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Priority    Priority  `json:"priority"`
	TargetDate  string    `json:"target_date,omitempty"` // YYYY-MM-DD
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MarkComplete sets the goal completed. Calling it on a completed goal changes nothing.
func (g *Goal) MarkComplete(now time.Time) bool {
	if g.Completed {
		return false
	}
	g.Completed = true
	g.UpdatedAt = now
	return true
}
