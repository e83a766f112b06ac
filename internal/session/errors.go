package session

import "errors"

// Domain errors for session lookups.
var (
	// ErrSessionNotFound is returned when no session has the requested ID.
	ErrSessionNotFound = errors.New("session: not found")

	// ErrSessionExpired is returned for a session past its expiry that the
	// janitor has not removed yet.
	ErrSessionExpired = errors.New("session: expired")

	// ErrInvalidSession is returned when creating a session without a document.
	ErrInvalidSession = errors.New("session: invalid session")
)
