package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"

	"github.com/microstory/server/internal/shared"
)

func newRepoWithMock(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLiteRepository(db), mock, db
}

func userColumns() []string {
	return []string{"id", "pseudo", "email", "password", "created_at", "updated_at"}
}

func TestSQLiteCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(pseudo,\s*email,\s*password,\s*created_at\)\s*VALUES\s*\(\?,\s*\?,\s*\?,\s*\?\)$`

	mock.ExpectExec(q).
		WithArgs("alice", "alice@example.com", "$2a$10$hash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))

	got, err := repo.Create(context.Background(), &User{Pseudo: "alice", Email: "alice@example.com", Password: "$2a$10$hash"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 || got.CreatedAt.IsZero() {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestSQLiteCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+users`).
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})

	_, err := repo.Create(context.Background(), &User{Pseudo: "alice", Email: "alice@example.com", Password: "h"})
	if !errors.Is(err, shared.ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}
}

func TestSQLiteGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows(userColumns()).
		AddRow(int64(7), "alice", "alice@example.com", "$2a$10$hash", created, nil)

	mock.ExpectQuery(`SELECT\s+id,\s*pseudo,\s*email,\s*password,\s*created_at,\s*updated_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\?`).
		WithArgs("alice@example.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != 7 || got.Pseudo != "alice" || !got.CreatedAt.Equal(created) || got.UpdatedAt != nil {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestSQLiteGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+.*\s+FROM\s+users\s+WHERE\s+id\s*=\s*\?`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSQLiteUpdate_AllowListedFieldsOnly(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+pseudo\s*=\s*\?,\s*updated_at\s*=\s*\?\s+WHERE\s+id\s*=\s*\?`).
		WithArgs("bob", sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	pseudo := "bob"
	changed, err := repo.Update(context.Background(), 7, UpdateFields{Pseudo: &pseudo})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if !changed {
		t.Fatalf("expected a changed row")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestSQLiteUpdate_NoRowsIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users\s+SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	pseudo := "bob"
	_, err := repo.Update(context.Background(), 99, UpdateFields{Pseudo: &pseudo})
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSQLiteUpdate_EmptyFieldsNoop(t *testing.T) {
	repo, _, db := newRepoWithMock(t)
	defer db.Close()

	changed, err := repo.Update(context.Background(), 7, UpdateFields{})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if changed {
		t.Fatalf("empty update must not report a change")
	}
}

func TestSQLiteDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\?`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\?`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.Delete(context.Background(), 7)
	if err != nil || !removed {
		t.Fatalf("first delete: removed=%v err=%v", removed, err)
	}
	removed, err = repo.Delete(context.Background(), 7)
	if err != nil || removed {
		t.Fatalf("second delete: removed=%v err=%v", removed, err)
	}
}
