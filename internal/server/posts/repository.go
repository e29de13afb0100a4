package posts

import "context"

// Repository is the post store contract. Reads hydrate the author pseudo and
// the like/comment aggregates; absence surfaces as shared.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, post *Post) (*Post, error)
	GetByID(ctx context.Context, id int64) (*Post, error)
	List(ctx context.Context, limit, offset int) ([]*Post, error)
	Update(ctx context.Context, id int64, body string, mediaKey *string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
