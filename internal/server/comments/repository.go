package comments

import "context"

// Repository is the comment store contract. Reads hydrate the author pseudo;
// absence surfaces as shared.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, comment *Comment) (*Comment, error)
	GetByID(ctx context.Context, id int64) (*Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]*Comment, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
