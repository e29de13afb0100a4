// Package reactions implements per-user likes on posts.
package reactions

import "context"

// Repository is the reaction store contract. The (post, user) pair is unique;
// Add reports false when the like already existed, making the operation
// naturally idempotent.
type Repository interface {
	Add(ctx context.Context, postID, userID int64) (bool, error)
	Remove(ctx context.Context, postID, userID int64) (bool, error)
	Count(ctx context.Context, postID int64) (int64, error)
}
