// Package posts implements the micro-story feed: creation, lookup, paging,
// and owner-gated mutation of posts.
package posts

import "time"

// MaxBodyLength bounds a story body, matching what the feed UI renders.
const MaxBodyLength = 500

// Post is a single story. MediaKey optionally references an object in the
// media store (audio narration or an image), never the bytes themselves.
// LikeCount and CommentCount are read-time aggregates, not stored columns.
type Post struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	AuthorPseudo string     `json:"authorPseudo"`
	Body         string     `json:"body"`
	MediaKey     *string    `json:"mediaKey,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
	LikeCount    int64      `json:"likeCount"`
	CommentCount int64      `json:"commentCount"`
}
