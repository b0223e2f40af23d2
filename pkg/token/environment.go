package token

import (
	"os"
	"time"
)

// EnvVar holds an access token for any profile
const EnvVar = "IGGRAPH_ACCESS_TOKEN"

// EnvironmentStore reads a token from the environment. It is read-only.
type EnvironmentStore struct{}

// NewEnvironmentStore creates an environment-backed store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Get returns the environment token under the requested profile name
func (e *EnvironmentStore) Get(profile string) (*Credential, error) {
	accessToken := os.Getenv(EnvVar)
	if accessToken == "" {
		return nil, ErrNotFound
	}
	if profile == "" {
		profile = "default"
	}

	return &Credential{
		Profile:     profile,
		AccessToken: accessToken,
		SavedAt:     time.Now(),
	}, nil
}

// Set is not supported for environment variables
func (e *EnvironmentStore) Set(*Credential) error {
	return ErrStoreUnavailable
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(string) error {
	return ErrStoreUnavailable
}
