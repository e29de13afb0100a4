package posts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/microstory/server/internal/shared"
)

type fakeRepo struct {
	seq  int64
	byID map[int64]*Post
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[int64]*Post{}}
}

func (f *fakeRepo) Create(ctx context.Context, p *Post) (*Post, error) {
	f.seq++
	p.ID = f.seq
	p.CreatedAt = time.Now().UTC()
	cp := *p
	f.byID[p.ID] = &cp
	return p, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*Post, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, limit, offset int) ([]*Post, error) {
	var out []*Post
	for i := f.seq; i >= 1 && len(out) < limit; i-- {
		if p, ok := f.byID[i]; ok {
			if offset > 0 {
				offset--
				continue
			}
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, body string, mediaKey *string) (bool, error) {
	p, ok := f.byID[id]
	if !ok {
		return false, shared.ErrNotFound
	}
	p.Body = body
	p.MediaKey = mediaKey
	now := time.Now().UTC()
	p.UpdatedAt = &now
	return true, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func TestCreate_ValidatesBody(t *testing.T) {
	s := NewService(newFakeRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"only spaces", "   "},
		{"too long", strings.Repeat("x", MaxBodyLength+1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(ctx, 1, tc.body, nil)
			var ve *shared.ValidationError
			if !errors.As(err, &ve) || ve.Field != "body" {
				t.Fatalf("want body ValidationError, got %v", err)
			}
		})
	}

	// The limit counts characters, so a multibyte body under it is fine.
	if _, err := s.Create(ctx, 1, strings.Repeat("é", MaxBodyLength), nil); err != nil {
		t.Fatalf("multibyte body at the limit rejected: %v", err)
	}
	_, err := s.Create(ctx, 1, strings.Repeat("é", MaxBodyLength+1), nil)
	var ve *shared.ValidationError
	if !errors.As(err, &ve) || ve.Field != "body" {
		t.Fatalf("want body ValidationError, got %v", err)
	}

	post, err := s.Create(ctx, 1, "  hello feed  ", nil)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if post.Body != "hello feed" {
		t.Fatalf("body not trimmed: %q", post.Body)
	}
}

func TestFeed_ClampsPaging(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo)
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		if _, err := s.Create(ctx, 1, "story", nil); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	feed, err := s.Feed(ctx, 0, -5)
	if err != nil {
		t.Fatalf("Feed error: %v", err)
	}
	if len(feed) != defaultFeedLimit {
		t.Fatalf("default limit: got %d want %d", len(feed), defaultFeedLimit)
	}
	// Newest first.
	if feed[0].ID <= feed[1].ID {
		t.Fatalf("feed not newest first: %d then %d", feed[0].ID, feed[1].ID)
	}

	feed, err = s.Feed(ctx, 1000, 0)
	if err != nil {
		t.Fatalf("Feed error: %v", err)
	}
	if len(feed) != 30 {
		t.Fatalf("oversized limit: got %d want 30", len(feed))
	}
}

func TestFeed_EmptyIsNotNil(t *testing.T) {
	s := NewService(newFakeRepo())

	feed, err := s.Feed(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("Feed error: %v", err)
	}
	if feed == nil {
		t.Fatalf("empty feed must be a non-nil slice")
	}
}

func TestUpdate_OwnerOnly(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo)
	ctx := context.Background()

	post, err := s.Create(ctx, 1, "mine", nil)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := s.Update(ctx, 2, post.ID, "stolen", nil); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}

	updated, err := s.Update(ctx, 1, post.ID, "edited", nil)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Body != "edited" || updated.UpdatedAt == nil {
		t.Fatalf("unexpected updated post: %+v", updated)
	}

	if _, err := s.Update(ctx, 1, 9999, "nope", nil); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDelete_OwnerOnly(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo)
	ctx := context.Background()

	post, err := s.Create(ctx, 1, "mine", nil)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := s.Delete(ctx, 2, post.ID); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
	if err := s.Delete(ctx, 1, post.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := s.Delete(ctx, 1, post.ID); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
}
