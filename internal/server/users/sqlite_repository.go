package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/microstory/server/internal/dbx"
	"github.com/microstory/server/internal/shared"
)

// SQLiteRepository implements Repository on the single-file SQLite store.
// Write serialization and the email uniqueness constraint are enforced by
// SQLite itself, so no additional locking lives here.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

func (r *SQLiteRepository) Create(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (pseudo, email, password, created_at) VALUES (?, ?, ?, ?)`

	createdAt := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, user.Pseudo, user.Email, user.Password, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, shared.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("error reading inserted id: %w", err)
	}

	user.ID = id
	user.CreatedAt = createdAt
	return user, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT id, pseudo, email, password, created_at, updated_at FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, pseudo, email, password, created_at, updated_at FROM users WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLiteRepository) scanOne(row *sql.Row) (*User, error) {
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

func (r *SQLiteRepository) Update(ctx context.Context, id int64, fields UpdateFields) (bool, error) {
	if fields.IsEmpty() {
		return false, nil
	}

	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if fields.Pseudo != nil {
		sets = append(sets, "pseudo = ?")
		args = append(args, *fields.Pseudo)
	}
	if fields.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *fields.Email)
	}
	if fields.Password != nil {
		sets = append(sets, "password = ?")
		args = append(args, *fields.Password)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC())
	args = append(args, id)

	query := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
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

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	return ra > 0, nil
}
