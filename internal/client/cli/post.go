package cli

import (
	"context"
	"fmt"
	"os"
)

// Post prompts for a story body and publishes it.
func (a *App) Post(ctx context.Context) error {
	body, err := GetMultiline(a.reader, "Write your story (max 500 characters)", os.Stdout)
	if err != nil {
		return err
	}

	post, err := a.client.CreatePost(ctx, body)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	fmt.Printf("Published story %d\n", post.ID)
	return nil
}

// Feed prints the newest stories.
func (a *App) Feed(ctx context.Context) error {
	posts, err := a.client.Feed(ctx, 20, 0)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	if len(posts) == 0 {
		fmt.Println("No stories yet")
		return nil
	}

	for _, p := range posts {
		fmt.Printf("[%d] %s (%s): %s (likes: %d, comments: %d)\n",
			p.ID, p.AuthorPseudo, p.CreatedAt.Format("2006-01-02 15:04"), p.Body, p.LikeCount, p.CommentCount)
	}
	return nil
}
