package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLiteStore keeps sessions in the sessions table.
// Timestamps are stored as Unix milliseconds; 0 means no expiry.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed store. The sessions table must
// already exist (see the migrations package).
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create implements Store.
func (r *SQLiteStore) Create(ctx context.Context, s *Session) error {
	if err := prepare(s); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, filename, document, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.Filename, s.Document, toMillis(s.CreatedAt), toMillis(s.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	return nil
}

// Get implements Store.
func (r *SQLiteStore) Get(ctx context.Context, id string) (*Session, error) {
	var (
		s                    Session
		createdAt, expiresAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, filename, document, created_at, expires_at
		 FROM sessions WHERE id = ?`, id,
	).Scan(&s.ID, &s.Filename, &s.Document, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}

	s.CreatedAt = fromMillis(createdAt)
	s.ExpiresAt = fromMillis(expiresAt)
	if s.Expired(time.Now()) {
		return nil, ErrSessionExpired
	}
	return &s, nil
}

// Delete implements Store.
func (r *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Expire implements Store.
func (r *SQLiteStore) Expire(ctx context.Context, now time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE expires_at > 0 AND expires_at <= ?", toMillis(now))
	if err != nil {
		return 0, fmt.Errorf("expiring sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("expiring sessions: %w", err)
	}
	return int(n), nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
