// Package normalize canonicalises caller-supplied strings before they are used as keys.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultCategory is used when a goal or resource is saved without a category.
const DefaultCategory = "Other"

// knownCategories maps lowercase spellings to the canonical category names
// offered by the client's category picker.
//
//nolint:gochecknoglobals // Static lookup table for category normalization
var knownCategories = map[string]string{
	"math":        "Math",
	"maths":       "Math",
	"mathematics": "Math",
	"science":     "Science",
	"language":    "Language",
	"languages":   "Language",
	"life skills": "Life Skills",
	"lifeskills":  "Life Skills",
	"career":      "Career",
	"other":       "Other",
}

// Key normalizes a natural key (goal or resource title, session subject).
// Composed and decomposed forms of the same text map to the same key, and
// surrounding whitespace is dropped. Interior whitespace runs collapse to one space.
func Key(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// Category returns the canonical spelling of a known category, the trimmed
// input for a custom one, and DefaultCategory for an empty one.
func Category(s string) string {
	s = Key(s)
	if s == "" {
		return DefaultCategory
	}
	if canonical, ok := knownCategories[strings.ToLower(s)]; ok {
		return canonical
	}
	return s
}

// Text trims free text and normalizes it to NFC without collapsing whitespace.
func Text(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// OptionalText normalizes an optional note. A nil pointer stays nil so that
// "no notes" remains distinct from "empty notes".
func OptionalText(s *string) *string {
	if s == nil {
		return nil
	}
	t := Text(*s)
	return &t
}
