package posts

import (
	"context"
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

func (r *PostgresRepository) Create(ctx context.Context, post *Post) (*Post, error) {
	query := `INSERT INTO posts (user_id, body, media_key, created_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	createdAt := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, post.UserID, post.Body, post.MediaKey, createdAt).Scan(&post.ID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	post.CreatedAt = createdAt
	return post, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Post, error) {
	row := r.db.QueryRowContext(ctx, selectPost+` WHERE p.id = $1`, id)
	return scanPost(row)
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Post, error) {
	query := selectPost + ` ORDER BY p.created_at DESC, p.id DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var result []*Post
	for rows.Next() {
		post, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, body string, mediaKey *string) (bool, error) {
	query := `UPDATE posts SET body = $1, media_key = $2, updated_at = $3 WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query, body, mediaKey, time.Now().UTC(), id)
	if err != nil {
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	return ra > 0, nil
}
