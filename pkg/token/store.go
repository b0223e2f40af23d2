package token

import (
	"errors"
	"time"
)

// Credential is a stored Graph API access token
type Credential struct {
	Profile     string    `json:"profile"`
	AccessToken string    `json:"access_token"`
	UserID      string    `json:"user_id,omitempty"`
	SavedAt     time.Time `json:"saved_at"`
}

// Store persists access tokens by profile name
type Store interface {
	// Get returns the credential for profile
	Get(profile string) (*Credential, error)
	// Set saves cred under cred.Profile
	Set(cred *Credential) error
	// Delete removes the credential for profile
	Delete(profile string) error
}

var (
	ErrNotFound         = errors.New("token not found")
	ErrInvalidToken     = errors.New("invalid token")
	ErrStoreUnavailable = errors.New("token store unavailable")
)

// Validate checks that a credential can be stored
func (c *Credential) Validate() error {
	if c == nil || c.Profile == "" || c.AccessToken == "" {
		return ErrInvalidToken
	}
	return nil
}

// Masked returns a copy with the token masked for display
func (c *Credential) Masked() *Credential {
	if c == nil {
		return nil
	}
	out := *c
	out.AccessToken = Mask(c.AccessToken)
	return &out
}

// Mask hides all but the first and last four characters of a token
func Mask(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
