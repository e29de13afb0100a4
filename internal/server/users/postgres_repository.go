package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/microstory/server/internal/dbx"
	"github.com/microstory/server/internal/shared"
)

const pgUniqueViolation = "23505"

// PostgresRepository implements Repository on PostgreSQL via the pgx stdlib
// driver.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (pseudo, email, password, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	createdAt := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, user.Pseudo, user.Email, user.Password, createdAt).Scan(&user.ID)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, shared.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	user.CreatedAt = createdAt
	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT id, pseudo, email, password, created_at, updated_at FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, pseudo, email, password, created_at, updated_at FROM users WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*User, error) {
	user := &User{}
	var updatedAt sql.NullTime

	err := row.Scan(&user.ID, &user.Pseudo, &user.Email, &user.Password, &user.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	if updatedAt.Valid {
		t := updatedAt.Time
		user.UpdatedAt = &t
	}
	return user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, fields UpdateFields) (bool, error) {
	if fields.IsEmpty() {
		return false, nil
	}

	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if fields.Pseudo != nil {
		addSet("pseudo", *fields.Pseudo)
	}
	if fields.Email != nil {
		addSet("email", *fields.Email)
	}
	if fields.Password != nil {
		addSet("password", *fields.Password)
	}
	addSet("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isPgUniqueViolation(err) {
			return false, shared.ErrDuplicateEmail
		}
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	if ra == 0 {
		return false, shared.ErrNotFound
	}
	return true, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	return ra > 0, nil
}
