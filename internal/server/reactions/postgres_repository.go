package reactions

import (
	"context"
	"fmt"
	"time"

	"github.com/microstory/server/internal/dbx"
)

// PostgresRepository implements Repository on PostgreSQL via the pgx stdlib
// driver.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, postID, userID int64) (bool, error) {
	query := `INSERT INTO reactions (post_id, user_id, created_at) VALUES ($1, $2, $3)
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

func (r *PostgresRepository) Remove(ctx context.Context, postID, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reactions WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected: %w", err)
	}
	return ra > 0, nil
}

func (r *PostgresRepository) Count(ctx context.Context, postID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reactions WHERE post_id = $1`, postID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return n, nil
}
