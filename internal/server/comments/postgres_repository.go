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

// PostgresRepository implements Repository on PostgreSQL via the pgx stdlib
// driver.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, comment *Comment) (*Comment, error) {
	query := `INSERT INTO comments (post_id, user_id, body, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	createdAt := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, comment.PostID, comment.UserID, comment.Body, createdAt).Scan(&comment.ID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	comment.CreatedAt = createdAt
	return comment, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Comment, error) {
	row := r.db.QueryRowContext(ctx, selectComment+` WHERE c.id = $1`, id)

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

func (r *PostgresRepository) ListByPost(ctx context.Context, postID int64) ([]*Comment, error) {
	query := selectComment + ` WHERE c.post_id = $1 ORDER BY c.created_at ASC, c.id ASC`

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

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	return ra > 0, nil
}
