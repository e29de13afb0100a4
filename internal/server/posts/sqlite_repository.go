package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/microstory/server/internal/dbx"
	"github.com/microstory/server/internal/shared"
)

const selectPost = `
SELECT p.id, p.user_id, u.pseudo, p.body, p.media_key, p.created_at, p.updated_at,
       (SELECT COUNT(*) FROM reactions r WHERE r.post_id = p.id) AS likes,
       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comments
FROM posts p
JOIN users u ON u.id = p.user_id`

// SQLiteRepository implements Repository on the single-file SQLite store.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, post *Post) (*Post, error) {
	query := `INSERT INTO posts (user_id, body, media_key, created_at) VALUES (?, ?, ?, ?)`

	createdAt := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, post.UserID, post.Body, post.MediaKey, createdAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("error reading inserted id: %w", err)
	}

	post.ID = id
	post.CreatedAt = createdAt
	return post, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Post, error) {
	row := r.db.QueryRowContext(ctx, selectPost+` WHERE p.id = ?`, id)
	return scanPost(row)
}

func (r *SQLiteRepository) List(ctx context.Context, limit, offset int) ([]*Post, error) {
	query := selectPost + ` ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`

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

func (r *SQLiteRepository) Update(ctx context.Context, id int64, body string, mediaKey *string) (bool, error) {
	query := `UPDATE posts SET body = ?, media_key = ?, updated_at = ? WHERE id = ?`

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

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	return ra > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row *sql.Row) (*Post, error) {
	post, err := scanPostRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

func scanPostRow(s rowScanner) (*Post, error) {
	post := &Post{}
	var mediaKey sql.NullString
	var updatedAt sql.NullTime

	err := s.Scan(&post.ID, &post.UserID, &post.AuthorPseudo, &post.Body,
		&mediaKey, &post.CreatedAt, &updatedAt, &post.LikeCount, &post.CommentCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("error scanning post: %w", err)
	}

	if mediaKey.Valid {
		post.MediaKey = &mediaKey.String
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		post.UpdatedAt = &t
	}
	return post, nil
}
