// Package migrations embeds the SQLite schema for the session store.
//
// Importing the package for its side effect registers the files with the
// database package, so the binary needs no SQL on disk.
package migrations

import (
	"embed"

	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
