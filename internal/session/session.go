package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is one uploaded document.
type Session struct {
	ID        string
	Filename  string
	Document  []byte
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store persists sessions. Implementations are safe for concurrent use.
type Store interface {
	// Create stores s, assigning an ID and CreatedAt when empty.
	Create(ctx context.Context, s *Session) error

	// Get returns the session, or ErrSessionNotFound / ErrSessionExpired.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes the session. Deleting a missing session returns ErrSessionNotFound.
	Delete(ctx context.Context, id string) error

	// Expire removes every session whose expiry is not after now and
	// reports how many were removed.
	Expire(ctx context.Context, now time.Time) (int, error)
}

// New returns a session for doc that expires ttl from now.
// A non-positive ttl leaves ExpiresAt zero, meaning the session never expires.
func New(filename string, doc []byte, ttl time.Duration) *Session {
	now := time.Now().UTC()
	s := &Session{
		Filename:  filename,
		Document:  doc,
		CreatedAt: now,
	}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	return s
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// prepare validates s and fills the generated fields.
func prepare(s *Session) error {
	if s == nil || len(s.Document) == 0 {
		return fmt.Errorf("%w: document is empty", ErrInvalidSession)
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return nil
}
