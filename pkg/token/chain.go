package token

import (
	"errors"
	"fmt"
	"time"
)

// Chain tries several stores in order
type Chain struct {
	stores []Store
}

// NewChain creates a chain over stores
func NewChain(stores ...Store) *Chain {
	return &Chain{stores: stores}
}

// DefaultChain uses the system keychain when available, then the environment
func DefaultChain() *Chain {
	var stores []Store
	if ks, err := NewKeyringStore(); err == nil {
		stores = append(stores, ks)
	}
	stores = append(stores, NewEnvironmentStore())
	return NewChain(stores...)
}

// Get returns the credential from the first store that has it
func (c *Chain) Get(profile string) (*Credential, error) {
	for _, store := range c.stores {
		if cred, err := store.Get(profile); err == nil && cred != nil {
			return cred, nil
		}
	}
	return nil, fmt.Errorf("%w for profile %q", ErrNotFound, profile)
}

// Set saves the credential in the first store that accepts it
func (c *Chain) Set(cred *Credential) error {
	if err := cred.Validate(); err != nil {
		return err
	}
	if cred.SavedAt.IsZero() {
		cred.SavedAt = time.Now()
	}

	var lastErr error
	for _, store := range c.stores {
		err := store.Set(cred)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store token: %w", lastErr)
	}
	return ErrStoreUnavailable
}

// Delete removes the credential from every writable store
func (c *Chain) Delete(profile string) error {
	deleted := false
	for _, store := range c.stores {
		err := store.Delete(profile)
		switch {
		case err == nil:
			deleted = true
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrStoreUnavailable):
		default:
			return fmt.Errorf("failed to delete token: %w", err)
		}
	}

	if !deleted {
		return fmt.Errorf("%w for profile %q", ErrNotFound, profile)
	}
	return nil
}
