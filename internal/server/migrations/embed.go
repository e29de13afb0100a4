// Package migrations embeds the goose migration scripts for both supported
// storage dialects. The storage manager picks the directory matching the
// driver it opened.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

const (
	// SQLiteDir is the embedded directory with SQLite migrations.
	SQLiteDir = "sqlite"
	// PostgresDir is the embedded directory with PostgreSQL migrations.
	PostgresDir = "postgres"
)
