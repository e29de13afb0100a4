package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/microstory/server/internal/server/comments"
	"github.com/microstory/server/internal/server/migrations"
	"github.com/microstory/server/internal/server/posts"
	"github.com/microstory/server/internal/server/reactions"
	"github.com/microstory/server/internal/server/users"
)

type PostgresRepositoryManager struct {
	db        *sql.DB
	users     users.Repository
	posts     posts.Repository
	comments  comments.Repository
	reactions reactions.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Posts() posts.Repository {
	return m.posts
}

func (m *PostgresRepositoryManager) Comments() comments.Repository {
	return m.comments
}

func (m *PostgresRepositoryManager) Reactions() reactions.Repository {
	return m.reactions
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, migrations.PostgresDir); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:        db,
		users:     users.NewPostgresRepository(db),
		posts:     posts.NewPostgresRepository(db),
		comments:  comments.NewPostgresRepository(db),
		reactions: reactions.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
