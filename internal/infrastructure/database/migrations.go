package database

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// Migration filename layout: YYYYMMDD_HHMMSS_description.(up|down).sql
const (
	// filenameFields is the number of "_" separated fields in a migration filename.
	filenameFields = 3

	// versionFields is the number of leading fields forming the version.
	versionFields = 2
)

// MigrationsFS holds the migration files compiled into the binary.
// The migrations package assigns it from an embed.FS in its init function.
// A nil filesystem means there is nothing to migrate.
var MigrationsFS fs.FS

// MigrationsDir is the directory within MigrationsFS holding the .sql files.
var MigrationsDir = "."

// Migration is one versioned schema change with its rollback.
type Migration struct {
	// Version is the YYYYMMDD_HHMMSS prefix of the filename.
	Version string

	// Name is the description part of the filename.
	Name string

	UpSQL   string
	DownSQL string
}

// MigrationRecord is a row of the schema_migrations table.
type MigrationRecord struct {
	Version   string
	AppliedAt time.Time
}

// Migrate applies every pending migration in version order.
//
// Each migration runs in its own transaction, so a failure leaves earlier
// migrations committed and the failing one rolled back. Running Migrate
// again after a fix resumes from the failed version.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: If any migration fails
func (db *DB) Migrate(ctx context.Context) error {
	_, pending, err := db.GetMigrationStatus(ctx)
	if err != nil {
		return err
	}

	for _, m := range pending {
		if err := db.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("applying migration %s (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// MigrateDown rolls back the most recently applied migration.
// It is a no-op when nothing has been applied.
func (db *DB) MigrateDown(ctx context.Context) error {
	if err := db.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	applied, err := db.getAppliedMigrations(ctx)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		return nil
	}
	latest := applied[len(applied)-1]

	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	idx := sort.Search(len(migrations), func(i int) bool {
		return migrations[i].Version >= latest.Version
	})
	if idx == len(migrations) || migrations[idx].Version != latest.Version {
		return fmt.Errorf("migration %s not found in filesystem", latest.Version)
	}
	m := migrations[idx]
	if strings.TrimSpace(m.DownSQL) == "" {
		return fmt.Errorf("migration %s has no down SQL", m.Version)
	}

	return db.inTx(ctx, func(exec execer) error {
		if _, err := exec.ExecContext(ctx, m.DownSQL); err != nil {
			return fmt.Errorf("executing down SQL: %w", err)
		}
		if _, err := exec.ExecContext(ctx,
			"DELETE FROM schema_migrations WHERE version = ?", m.Version,
		); err != nil {
			return fmt.Errorf("removing migration record: %w", err)
		}
		return nil
	})
}

// GetMigrationStatus reports which migrations are applied and which are
// still pending. It creates the schema_migrations table when missing.
//
// Returns:
//   - applied: Applied migrations, oldest first
//   - pending: Migrations present in MigrationsFS but not yet applied
//   - err: If the status query fails
func (db *DB) GetMigrationStatus(ctx context.Context) (applied []MigrationRecord, pending []Migration, err error) {
	if err = db.createMigrationsTable(ctx); err != nil {
		return nil, nil, fmt.Errorf("creating migrations table: %w", err)
	}

	applied, err = db.getAppliedMigrations(ctx)
	if err != nil {
		return nil, nil, err
	}

	migrations, err := loadMigrations()
	if err != nil {
		return nil, nil, fmt.Errorf("loading migrations: %w", err)
	}

	done := make(map[string]struct{}, len(applied))
	for _, r := range applied {
		done[r.Version] = struct{}{}
	}
	for _, m := range migrations {
		if _, ok := done[m.Version]; !ok {
			pending = append(pending, m)
		}
	}
	return applied, pending, nil
}

func (db *DB) createMigrationsTable(ctx context.Context) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL
		)
	`)
	return err
}

func (db *DB) getAppliedMigrations(ctx context.Context) ([]MigrationRecord, error) {
	rows, err := db.DB.QueryContext(ctx,
		"SELECT version, applied_at FROM schema_migrations ORDER BY version",
	)
	if err != nil {
		return nil, fmt.Errorf("querying migrations: %w", err)
	}
	defer rows.Close()

	var records []MigrationRecord
	for rows.Next() {
		var (
			r         MigrationRecord
			appliedAt string
		)
		if err := rows.Scan(&r.Version, &appliedAt); err != nil {
			return nil, fmt.Errorf("scanning migration row: %w", err)
		}
		r.AppliedAt, _ = time.Parse(time.RFC3339, appliedAt) //nolint:errcheck // Written by applyMigration
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating migrations: %w", err)
	}
	return records, nil
}

func (db *DB) applyMigration(ctx context.Context, m Migration) error {
	return db.inTx(ctx, func(exec execer) error {
		if _, err := exec.ExecContext(ctx, m.UpSQL); err != nil {
			return fmt.Errorf("executing SQL: %w", err)
		}
		if _, err := exec.ExecContext(ctx,
			"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
			m.Version,
			time.Now().UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("recording migration: %w", err)
		}
		return nil
	})
}

// loadMigrations reads and pairs the migration files, oldest first.
func loadMigrations() ([]Migration, error) {
	if MigrationsFS == nil {
		return nil, nil
	}

	entries, err := fs.ReadDir(MigrationsFS, MigrationsDir)
	if err != nil {
		// A missing directory means no migrations have been written yet.
		return nil, nil //nolint:nilerr // Empty set
	}

	byVersion := make(map[string]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		version, isUp, ok := parseMigrationFilename(name)
		if !ok {
			continue
		}

		body, err := fs.ReadFile(MigrationsFS, path.Join(MigrationsDir, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version}
			byVersion[version] = m
		}
		if isUp {
			m.Name = extractMigrationName(name)
			m.UpSQL = string(body)
		} else {
			m.DownSQL = string(body)
		}
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.UpSQL == "" {
			// A lone .down.sql has nothing to apply.
			continue
		}
		migrations = append(migrations, *m)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// parseMigrationFilename extracts the version and direction from a
// migration filename. ok is false for anything that is not a migration.
func parseMigrationFilename(name string) (version string, isUp bool, ok bool) {
	base, found := strings.CutSuffix(name, ".sql")
	if !found {
		return "", false, false
	}

	if b, up := strings.CutSuffix(base, ".up"); up {
		base, isUp = b, true
	} else if b, down := strings.CutSuffix(base, ".down"); down {
		base = b
	} else {
		return "", false, false
	}

	parts := strings.SplitN(base, "_", filenameFields)
	if len(parts) < versionFields {
		return "", false, false
	}
	return parts[0] + "_" + parts[1], isUp, true
}

// extractMigrationName returns the description part of a filename.
// Example: "20261017_120000_create_sessions.up.sql" -> "create_sessions"
func extractMigrationName(filename string) string {
	base := strings.TrimSuffix(filename, ".sql")
	base = strings.TrimSuffix(base, ".up")
	base = strings.TrimSuffix(base, ".down")

	parts := strings.SplitN(base, "_", filenameFields)
	if len(parts) == filenameFields {
		return parts[versionFields]
	}
	return base
}
