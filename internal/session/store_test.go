package session

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/database"
	_ "github.com/nerrad567/knx-ga-studio/migrations" // registers the sessions schema
)

// stores returns every backend, each freshly created for the test.
func stores(t *testing.T) map[string]Store {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{
		Path:        filepath.Join(t.TempDir(), "sessions.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": NewSQLiteStore(db.DB),
	}
}

func TestStoreCreateGet(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			doc := []byte(`<GroupAddress Address="1/1/1" Name="x"/>`)

			s := New("export.xml", doc, time.Hour)
			if err := store.Create(ctx, s); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if s.ID == "" {
				t.Fatal("Create() did not assign an ID")
			}

			got, err := store.Get(ctx, s.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Filename != "export.xml" || string(got.Document) != string(doc) {
				t.Errorf("Get() = %+v", got)
			}
			if got.ExpiresAt.Sub(s.ExpiresAt).Abs() > time.Millisecond {
				t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, s.ExpiresAt)
			}
		})
	}
}

func TestStoreErrors(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("Get(missing) error = %v, want ErrSessionNotFound", err)
			}
			if err := store.Delete(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("Delete(missing) error = %v, want ErrSessionNotFound", err)
			}
			if err := store.Create(ctx, New("empty.xml", nil, time.Hour)); !errors.Is(err, ErrInvalidSession) {
				t.Errorf("Create(empty) error = %v, want ErrInvalidSession", err)
			}

			expired := &Session{
				Filename:  "old.xml",
				Document:  []byte("<x/>"),
				CreatedAt: time.Now().Add(-2 * time.Hour),
				ExpiresAt: time.Now().Add(-time.Hour),
			}
			if err := store.Create(ctx, expired); err != nil {
				t.Fatalf("Create(expired) error = %v", err)
			}
			if _, err := store.Get(ctx, expired.ID); !errors.Is(err, ErrSessionExpired) {
				t.Errorf("Get(expired) error = %v, want ErrSessionExpired", err)
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			s := New("a.xml", []byte("<a/>"), 0)
			if err := store.Create(ctx, s); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if err := store.Delete(ctx, s.ID); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("Get() after Delete error = %v, want ErrSessionNotFound", err)
			}
		})
	}
}

func TestStoreExpire(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now()

			keep := New("keep.xml", []byte("<k/>"), time.Hour)
			forever := New("forever.xml", []byte("<f/>"), 0)
			stale := &Session{Filename: "stale.xml", Document: []byte("<s/>"), ExpiresAt: now.Add(-time.Minute)}
			for _, s := range []*Session{keep, forever, stale} {
				if err := store.Create(ctx, s); err != nil {
					t.Fatalf("Create(%s) error = %v", s.Filename, err)
				}
			}

			n, err := store.Expire(ctx, now)
			if err != nil {
				t.Fatalf("Expire() error = %v", err)
			}
			if n != 1 {
				t.Errorf("Expire() removed %d, want 1", n)
			}
			if _, err := store.Get(ctx, stale.ID); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("stale session still present: %v", err)
			}
			for _, s := range []*Session{keep, forever} {
				if _, err := store.Get(ctx, s.ID); err != nil {
					t.Errorf("Get(%s) error = %v", s.Filename, err)
				}
			}
		})
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expires time.Time
		want    bool
	}{
		{"no expiry", time.Time{}, false},
		{"future", now.Add(time.Second), false},
		{"exactly now", now, true},
		{"past", now.Add(-time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{ExpiresAt: tt.expires}
			if got := s.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMemoryStoreDuplicateID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	a := &Session{ID: "fixed", Document: []byte("<a/>")}
	if err := store.Create(ctx, a); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	b := &Session{ID: "fixed", Document: []byte("<b/>")}
	if err := store.Create(ctx, b); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Create(duplicate) error = %v, want ErrInvalidSession", err)
	}
}

// recordingLogger counts janitor log calls.
type recordingLogger struct {
	mu    sync.Mutex
	debug int
	warn  int
}

func (l *recordingLogger) Debug(string, ...any) { l.mu.Lock(); l.debug++; l.mu.Unlock() }
func (l *recordingLogger) Warn(string, ...any)  { l.mu.Lock(); l.warn++; l.mu.Unlock() }

func TestRunJanitor(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())

	stale := &Session{Document: []byte("<s/>"), ExpiresAt: time.Now().Add(-time.Minute)}
	if err := store.Create(ctx, stale); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	logger := &recordingLogger{}
	done := make(chan struct{})
	go func() {
		RunJanitor(ctx, store, 10*time.Millisecond, logger)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for store.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if store.Len() != 0 {
		t.Errorf("janitor left %d sessions", store.Len())
	}
	logger.mu.Lock()
	defer logger.mu.Unlock()
	if logger.debug == 0 {
		t.Error("janitor did not log the expiry")
	}
}
