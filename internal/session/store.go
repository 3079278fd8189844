// Package session owns credential state: a durable key-value record that
// survives restarts, and the guard that derives "is a usable credential
// present" from it. Validity of the token itself is discovered lazily, the
// first time the gateway sees a 401.
package session

import (
	"context"
	"sync"
)

// Credentials is the persisted session record. An empty Token means
// anonymous; the identity fields are only meaningful alongside a token.
type Credentials struct {
	Token          string `json:"token"`
	UserIdentifier string `json:"userIdentifier"`
	Name           string `json:"userName"`
	Role           string `json:"userRole"`
	Email          string `json:"userEmail"`
}

// Store is the durable key-value home of the credential record. At most one
// record exists per store; Clear on an empty store is a no-op.
type Store interface {
	Load(ctx context.Context) (Credentials, error)
	Save(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the record in memory; it backs tests and throwaway
// sessions.
type MemoryStore struct {
	mu    sync.RWMutex
	creds Credentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds, nil
}

func (s *MemoryStore) Save(_ context.Context, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	return nil
}
