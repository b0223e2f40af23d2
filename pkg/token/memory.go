package token

import "sync"

// MemoryStore keeps tokens in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	creds map[string]Credential

	// Error injection for testing
	GetError error
	SetError error
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{creds: make(map[string]Credential)}
}

func (m *MemoryStore) Get(profile string) (*Credential, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	cred, ok := m.creds[profile]
	if !ok {
		return nil, ErrNotFound
	}
	return &cred, nil
}

func (m *MemoryStore) Set(cred *Credential) error {
	if m.SetError != nil {
		return m.SetError
	}
	if err := cred.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.creds[cred.Profile] = *cred
	return nil
}

func (m *MemoryStore) Delete(profile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.creds[profile]; !ok {
		return ErrNotFound
	}
	delete(m.creds, profile)
	return nil
}

// Len returns the number of stored credentials
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.creds)
}
