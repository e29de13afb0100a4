package reactions

import (
	"context"
	"fmt"
	"time"

	"github.com/microstory/server/internal/dbx"
)

// SQLiteRepository implements Repository on the single-file SQLite store.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, postID, userID int64) (bool, error) {
	query := `INSERT INTO reactions (post_id, user_id, created_at) VALUES (?, ?, ?)
	          ON CONFLICT (post_id, user_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, postID, userID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	return ra > 0, nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, postID, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reactions WHERE post_id = ? AND user_id = ?`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	return ra > 0, nil
}

func (r *SQLiteRepository) Count(ctx context.Context, postID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reactions WHERE post_id = ?`, postID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return n, nil
}
