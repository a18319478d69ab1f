// Package search provides full-text search over an identity's goals and
// resources using Bleve. Every document carries its owner, and every query is
// constrained to the caller's own partition.
package search

import (
	"github.com/studytrack/studytrack-server/internal/domain"
)

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeGoal     DocType = "goal"
	DocTypeResource DocType = "resource"
)

// ParseDocType reports whether s names a known document type.
func ParseDocType(s string) (DocType, bool) {
	switch t := DocType(s); t {
	case DocTypeGoal, DocTypeResource:
		return t, true
	default:
		return "", false
	}
}

// SearchDocument is the unified document structure for the Bleve index.
type SearchDocument struct {
	ID    string  `json:"id"`
	Type  DocType `json:"type"`
	Owner string  `json:"owner"`

	// Name is the goal or resource title.
	Name string `json:"name"`
	// Description is the goal description or the resource notes.
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`

	// Goal-only fields.
	Priority  string `json:"priority,omitempty"`
	Completed bool   `json:"completed,omitempty"`

	// Resource-only fields.
	URL string `json:"url,omitempty"`

	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// DocumentID builds the index ID of an entity. Titles are only unique within
// an owner's partition, so the owner is part of the ID.
func DocumentID(owner string, t DocType, title string) string {
	return owner + "\x1f" + string(t) + "\x1f" + title
}

// ToMap converts the document to a map with lowercase field names.
// This ensures field names match the Bleve index mapping.
func (d *SearchDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"type":       string(d.Type),
		"owner":      d.Owner,
		"name":       d.Name,
		"category":   d.Category,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Priority != "" {
		m["priority"] = d.Priority
		m["completed"] = d.Completed
	}
	if d.URL != "" {
		m["url"] = d.URL
	}

	return m
}

// GoalToSearchDocument converts a goal owned by owner to a SearchDocument.
func GoalToSearchDocument(owner string, g *domain.Goal) *SearchDocument {
	return &SearchDocument{
		ID:          DocumentID(owner, DocTypeGoal, g.Title),
		Type:        DocTypeGoal,
		Owner:       owner,
		Name:        g.Title,
		Description: g.Description,
		Category:    g.Category,
		Priority:    string(g.Priority),
		Completed:   g.Completed,
		CreatedAt:   g.CreatedAt.UnixMilli(),
		UpdatedAt:   g.UpdatedAt.UnixMilli(),
	}
}

// ResourceToSearchDocument converts a resource owned by owner to a SearchDocument.
func ResourceToSearchDocument(owner string, r *domain.Resource) *SearchDocument {
	doc := &SearchDocument{
		ID:        DocumentID(owner, DocTypeResource, r.Title),
		Type:      DocTypeResource,
		Owner:     owner,
		Name:      r.Title,
		Category:  r.Category,
		URL:       r.URL,
		CreatedAt: r.CreatedAt.UnixMilli(),
		UpdatedAt: r.UpdatedAt.UnixMilli(),
	}
	if r.Notes != nil {
		doc.Description = *r.Notes
	}
	return doc
}
