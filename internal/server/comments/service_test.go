package comments

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microstory/server/internal/server/posts"
	"github.com/microstory/server/internal/shared"
)

type fakeRepo struct {
	nextID   int64
	comments map[int64]*Comment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{comments: make(map[int64]*Comment)}
}

func (r *fakeRepo) Create(_ context.Context, comment *Comment) (*Comment, error) {
	r.nextID++
	c := *comment
	c.ID = r.nextID
	r.comments[c.ID] = &c
	return &c, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copy := *c
	return &copy, nil
}

func (r *fakeRepo) ListByPost(_ context.Context, postID int64) ([]*Comment, error) {
	var result []*Comment
	for id := int64(1); id <= r.nextID; id++ {
		if c, ok := r.comments[id]; ok && c.PostID == postID {
			copy := *c
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.comments[id]; !ok {
		return false, nil
	}
	delete(r.comments, id)
	return true, nil
}

type fakePostLookup struct {
	posts map[int64]*posts.Post
}

func (l *fakePostLookup) GetByID(_ context.Context, id int64) (*posts.Post, error) {
	p, ok := l.posts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	lookup := &fakePostLookup{posts: map[int64]*posts.Post{
		1: {ID: 1, UserID: 10, Body: "first"},
	}}
	return NewService(repo, lookup), repo
}

func TestAddAndList(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c1, err := svc.Add(ctx, 20, 1, "  nice one  ")
	require.NoError(t, err)
	assert.Equal(t, "nice one", c1.Body)
	assert.Equal(t, int64(1), c1.PostID)

	c2, err := svc.Add(ctx, 30, 1, "me too")
	require.NoError(t, err)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, c1.ID, list[0].ID)
	assert.Equal(t, c2.ID, list[1].ID)
}

func TestAddValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, 20, 1, "   ")
	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "body", ve.Field)

	_, err = svc.Add(ctx, 20, 1, strings.Repeat("x", MaxBodyLength+1))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "body", ve.Field)

	// The limit counts characters, not bytes.
	_, err = svc.Add(ctx, 20, 1, strings.Repeat("é", MaxBodyLength))
	require.NoError(t, err)
	_, err = svc.Add(ctx, 20, 1, strings.Repeat("é", MaxBodyLength+1))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "body", ve.Field)
}

func TestAddMissingPost(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), 20, 999, "hello")
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestListMissingPost(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.List(context.Background(), 999)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestListEmptyIsNotNil(t *testing.T) {
	svc, _ := newTestService()

	list, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDeleteOwnership(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c, err := svc.Add(ctx, 20, 1, "mine")
	require.NoError(t, err)

	err = svc.Delete(ctx, 30, c.ID)
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	err = svc.Delete(ctx, 20, c.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, 20, c.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
