package memory

import (
	"context"
	"sync"
)

// Store keeps session data in process memory. Useful for local development
// and tests.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

// NewStore constructs an empty in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]map[string]string)}
}

// Get returns the value for a key within a session if present.
func (s *Store) Get(_ context.Context, sessionID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values, ok := s.sessions[sessionID]
	if !ok {
		return "", false, nil
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set stores or overwrites a key within a session.
func (s *Store) Set(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, ok := s.sessions[sessionID]
	if !ok {
		values = make(map[string]string)
		s.sessions[sessionID] = values
	}
	values[key] = value
	return nil
}

// Delete removes a single key from a session.
func (s *Store) Delete(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if values, ok := s.sessions[sessionID]; ok {
		delete(values, key)
	}
	return nil
}

// Clear drops the whole session.
func (s *Store) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
