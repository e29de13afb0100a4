package reactions

import (
	"context"
	"errors"

	"github.com/microstory/server/internal/server/posts"
	"github.com/microstory/server/internal/shared"
)

// PostLookup is the slice of the post store the reaction service needs to
// confirm a post exists before counting a like against it.
type PostLookup interface {
	GetByID(ctx context.Context, id int64) (*posts.Post, error)
}

// Service records likes. Like and Unlike are idempotent; repeating either
// leaves the count unchanged.
type Service struct {
	repo      Repository
	postsRepo PostLookup
}

func NewService(repo Repository, postsRepo PostLookup) *Service {
	return &Service{repo: repo, postsRepo: postsRepo}
}

// Like marks a post as liked by the user and returns the new like count.
func (s *Service) Like(ctx context.Context, userID, postID int64) (int64, error) {
	if err := s.checkPost(ctx, postID); err != nil {
		return 0, err
	}

	if _, err := s.repo.Add(ctx, postID, userID); err != nil {
		return 0, shared.ErrInternal
	}
	return s.count(ctx, postID)
}

// Unlike removes the user's like from a post and returns the new like count.
func (s *Service) Unlike(ctx context.Context, userID, postID int64) (int64, error) {
	if err := s.checkPost(ctx, postID); err != nil {
		return 0, err
	}

	if _, err := s.repo.Remove(ctx, postID, userID); err != nil {
		return 0, shared.ErrInternal
	}
	return s.count(ctx, postID)
}

func (s *Service) checkPost(ctx context.Context, postID int64) error {
	if _, err := s.postsRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return err
		}
		return shared.ErrInternal
	}
	return nil
}

func (s *Service) count(ctx context.Context, postID int64) (int64, error) {
	n, err := s.repo.Count(ctx, postID)
	if err != nil {
		return 0, shared.ErrInternal
	}
	return n, nil
}
