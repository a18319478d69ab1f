package auth

import "time"

// AccessClaims are the claims carried by a StudyTrack v4.local access token.
// The subject is the caller identity that owns a data partition.
type AccessClaims struct {
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`

	// Name is an optional display hint set by the issuing collaborator.
	Name string `json:"name,omitempty"`
}

// Identity returns the caller identity the token was issued to.
func (c *AccessClaims) Identity() string {
	return c.Subject
}
