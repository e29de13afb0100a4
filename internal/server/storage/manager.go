// Package storage selects and wires the SQL backend. A DSN starting with
// postgres:// opens PostgreSQL through pgx; anything else is treated as a
// SQLite file path.
package storage

import (
	"context"
	"database/sql"
	"strings"

	"github.com/microstory/server/internal/server/comments"
	"github.com/microstory/server/internal/server/posts"
	"github.com/microstory/server/internal/server/reactions"
	"github.com/microstory/server/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Close() error
	Users() users.Repository
	Posts() posts.Repository
	Comments() comments.Repository
	Reactions() reactions.Repository
}

// Open builds the manager matching the DSN and applies pending migrations.
func Open(ctx context.Context, dsn string) (RepositoryManager, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return NewPostgresRepositoryManager(ctx, dsn)
	}
	return NewSQLiteRepositoryManager(ctx, dsn)
}
