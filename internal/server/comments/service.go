package comments

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/microstory/server/internal/server/posts"
	"github.com/microstory/server/internal/shared"
)

// PostLookup is the slice of the post store the comment service needs to
// confirm a post exists before attaching a reply to it.
type PostLookup interface {
	GetByID(ctx context.Context, id int64) (*posts.Post, error)
}

// Service validates and stores replies, gating deletion by ownership.
type Service struct {
	repo      Repository
	postsRepo PostLookup
}

func NewService(repo Repository, postsRepo PostLookup) *Service {
	return &Service{repo: repo, postsRepo: postsRepo}
}

// Add attaches a reply to a post. The post must exist.
func (s *Service) Add(ctx context.Context, userID, postID int64, body string) (*Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, shared.NewValidationError("body", "is required")
	}
	if utf8.RuneCountInString(body) > MaxBodyLength {
		return nil, shared.NewValidationError("body", "must be at most 500 characters")
	}

	if _, err := s.postsRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		return nil, shared.ErrInternal
	}

	comment, err := s.repo.Create(ctx, &Comment{PostID: postID, UserID: userID, Body: body})
	if err != nil {
		return nil, shared.ErrInternal
	}
	return comment, nil
}

// List returns a post's replies oldest first.
func (s *Service) List(ctx context.Context, postID int64) ([]*Comment, error) {
	if _, err := s.postsRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		return nil, shared.ErrInternal
	}

	list, err := s.repo.ListByPost(ctx, postID)
	if err != nil {
		return nil, shared.ErrInternal
	}
	if list == nil {
		list = []*Comment{}
	}
	return list, nil
}

// Delete removes a reply. Only its author may delete it.
func (s *Service) Delete(ctx context.Context, userID, commentID int64) error {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return err
		}
		return shared.ErrInternal
	}
	if comment.UserID != userID {
		return shared.ErrForbidden
	}

	removed, err := s.repo.Delete(ctx, commentID)
	if err != nil {
		return shared.ErrInternal
	}
	if !removed {
		return shared.ErrNotFound
	}
	return nil
}
