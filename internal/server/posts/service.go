package posts

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/microstory/server/internal/shared"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

// Service gates post mutations by ownership and validates story bodies.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validateBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", shared.NewValidationError("body", "is required")
	}
	if utf8.RuneCountInString(body) > MaxBodyLength {
		return "", shared.NewValidationError("body", "must be at most 500 characters")
	}
	return body, nil
}

// Create persists a new story for userID.
func (s *Service) Create(ctx context.Context, userID int64, body string, mediaKey *string) (*Post, error) {
	body, err := validateBody(body)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.Create(ctx, &Post{UserID: userID, Body: body, MediaKey: mediaKey})
	if err != nil {
		return nil, shared.ErrInternal
	}
	return post, nil
}

// Get returns a single story.
func (s *Service) Get(ctx context.Context, id int64) (*Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		return nil, shared.ErrInternal
	}
	return post, nil
}

// Feed lists stories newest first. The limit is clamped to [1, 100] with a
// default of 20; a negative offset is treated as zero.
func (s *Service) Feed(ctx context.Context, limit, offset int) ([]*Post, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	if offset < 0 {
		offset = 0
	}

	list, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, shared.ErrInternal
	}
	if list == nil {
		list = []*Post{}
	}
	return list, nil
}

// Update rewrites a story's body and media key. Only the author may update;
// anyone else gets shared.ErrForbidden.
func (s *Service) Update(ctx context.Context, userID, postID int64, body string, mediaKey *string) (*Post, error) {
	body, err := validateBody(body)
	if err != nil {
		return nil, err
	}

	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, shared.ErrForbidden
	}

	if _, err := s.repo.Update(ctx, postID, body, mediaKey); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		return nil, shared.ErrInternal
	}

	return s.Get(ctx, postID)
}

// Delete removes a story. Only the author may delete.
func (s *Service) Delete(ctx context.Context, userID, postID int64) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return shared.ErrForbidden
	}

	removed, err := s.repo.Delete(ctx, postID)
	if err != nil {
		return shared.ErrInternal
	}
	if !removed {
		return shared.ErrNotFound
	}
	return nil
}
