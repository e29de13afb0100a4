// Package comments implements replies attached to posts.
package comments

import "time"

// MaxBodyLength bounds a comment body.
const MaxBodyLength = 500

// Comment is a single reply on a post.
type Comment struct {
	ID           int64     `json:"id"`
	PostID       int64     `json:"postId"`
	UserID       int64     `json:"userId"`
	AuthorPseudo string    `json:"authorPseudo"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"createdAt"`
}
