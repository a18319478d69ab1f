package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Learn Go", "Learn Go"},
		{"  Learn Go  ", "Learn Go"},
		{"Learn \t  Go", "Learn Go"},
		{"Café", "Café"}, // decomposed e + acute
		{"Café", "Café"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Key(tt.input))
		})
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "Other"},
		{"  ", "Other"},
		{"math", "Math"},
		{"MATHS", "Math"},
		{"life skills", "Life Skills"},
		{"Career", "Career"},
		{"Woodworking", "Woodworking"},
		{"  Woodworking ", "Woodworking"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Category(tt.input))
		})
	}
}

func TestOptionalText(t *testing.T) {
	assert.Nil(t, OptionalText(nil))

	empty := "   "
	got := OptionalText(&empty)
	if assert.NotNil(t, got) {
		assert.Equal(t, "", *got)
	}

	notes := " chapter 3 "
	got = OptionalText(&notes)
	if assert.NotNil(t, got) {
		assert.Equal(t, "chapter 3", *got)
	}
}
