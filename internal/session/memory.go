package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Create implements Store.
func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	if err := prepare(s); err != nil {
		return err
	}

	stored := *s
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[s.ID]; exists {
		return fmt.Errorf("%w: duplicate id %s", ErrInvalidSession, s.ID)
	}
	m.sessions[s.ID] = &stored
	return nil
}

// Get implements Store. The returned session is a copy; its Document is
// shared and must not be modified.
func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.Expired(time.Now()) {
		return nil, ErrSessionExpired
	}
	out := *s
	return &out, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Expire implements Store.
func (m *MemoryStore) Expire(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
