package domain

import "time"

// MaxProfileNameLength is the maximum number of characters in a display name.
const MaxProfileNameLength = 100

// Profile holds the display name an identity chose for itself.
// At most one exists per identity; a missing profile means setup never happened.
type Profile struct {
	Identity  string    `json:"identity"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}
