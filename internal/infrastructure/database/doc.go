// Package database provides SQLite connectivity for the studio.
//
// The only persistent state is the optional session store: uploaded
// documents kept between a parse request and the exports that follow it.
// Everything else the studio computes is derived from those documents.
//
// This package manages:
//   - Database connection with WAL mode for concurrent access
//   - Versioned schema migrations embedded in the binary
//   - Connection lifecycle and health checks
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{
//	    Path:        cfg.Database.Path,
//	    WALMode:     cfg.Database.WALMode,
//	    BusyTimeout: cfg.Database.BusyTimeout,
//	})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migration files are named YYYYMMDD_HHMMSS_description.up.sql with a
// matching .down.sql, and are registered by the migrations package.
package database
