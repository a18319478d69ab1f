package domain

import (
	"time"

	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
)

// FontSize is the text scale chosen in the accessibility menu.
type FontSize string

const (
	FontSizeNormal FontSize = "normal"
	FontSizeLarge  FontSize = "large"
	FontSizeXL     FontSize = "xl"
)

// ParseFontSize converts a string into a FontSize, rejecting unknown values.
func ParseFontSize(s string) (FontSize, error) {
	switch f := FontSize(s); f {
	case FontSizeNormal, FontSizeLarge, FontSizeXL:
		return f, nil
	default:
		return "", domainerrors.Validationf("invalid font size %q (must be normal, large, or xl)", s)
	}
}

// UserSettings contains per-identity accessibility preferences.
type UserSettings struct {
	Identity      string    `json:"identity"`
	FontSize      FontSize  `json:"font_size"`
	HighContrast  bool      `json:"high_contrast"`
	ReducedMotion bool      `json:"reduced_motion"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewUserSettings creates settings with defaults.
func NewUserSettings(identity string) *UserSettings {
	return &UserSettings{
		Identity: identity,
		FontSize: FontSizeNormal,
	}
}
