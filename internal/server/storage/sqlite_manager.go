package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/microstory/server/internal/server/comments"
	"github.com/microstory/server/internal/server/migrations"
	"github.com/microstory/server/internal/server/posts"
	"github.com/microstory/server/internal/server/reactions"
	"github.com/microstory/server/internal/server/users"
)

type SQLiteRepositoryManager struct {
	db        *sql.DB
	users     users.Repository
	posts     posts.Repository
	comments  comments.Repository
	reactions reactions.Repository
}

func (m *SQLiteRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *SQLiteRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *SQLiteRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *SQLiteRepositoryManager) Posts() posts.Repository {
	return m.posts
}

func (m *SQLiteRepositoryManager) Comments() comments.Repository {
	return m.comments
}

func (m *SQLiteRepositoryManager) Reactions() reactions.Repository {
	return m.reactions
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, migrations.SQLiteDir); err != nil {
		return err
	}

	return nil
}

func NewSQLiteRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {

	// ON DELETE CASCADE needs foreign key enforcement switched on.
	if !strings.Contains(dsn, "_foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn = dsn + sep + "_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &SQLiteRepositoryManager{
		db:        db,
		users:     users.NewSQLiteRepository(db),
		posts:     posts.NewSQLiteRepository(db),
		comments:  comments.NewSQLiteRepository(db),
		reactions: reactions.NewSQLiteRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
