package comments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/microstory/server/internal/dbx"
	"github.com/microstory/server/internal/shared"
)

const selectComment = `
SELECT c.id, c.post_id, c.user_id, u.pseudo, c.body, c.created_at
FROM comments c
JOIN users u ON u.id = c.user_id`

// SQLiteRepository implements Repository on the single-file SQLite store.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, comment *Comment) (*Comment, error) {
	query := `INSERT INTO comments (post_id, user_id, body, created_at) VALUES (?, ?, ?, ?)`

	createdAt := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, comment.PostID, comment.UserID, comment.Body, createdAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("error reading inserted id: %w", err)
	}

	comment.ID = id
	comment.CreatedAt = createdAt
	return comment, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Comment, error) {
	row := r.db.QueryRowContext(ctx, selectComment+` WHERE c.id = ?`, id)

	comment := &Comment{}
	err := row.Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.AuthorPseudo, &comment.Body, &comment.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return comment, nil
}

func (r *SQLiteRepository) ListByPost(ctx context.Context, postID int64) ([]*Comment, error) {
	query := selectComment + ` WHERE c.post_id = ? ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var result []*Comment
	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.AuthorPseudo, &comment.Body, &comment.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	return ra > 0, nil
}
