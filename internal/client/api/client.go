// Package api is a thin JSON client for the Microstory HTTP API. It holds the
// session token after a successful register or login and sends it as a bearer
// credential on subsequent calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnavailable reports that the server could not be reached at all, as
// opposed to the server answering with an error.
var ErrUnavailable = errors.New("server unavailable")

// User mirrors the public user fields returned by the API.
type User struct {
	ID        int64     `json:"id"`
	Pseudo    string    `json:"pseudo"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post mirrors a feed entry returned by the API.
type Post struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	AuthorPseudo string    `json:"authorPseudo"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"createdAt"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Field   string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Token returns the current session token, empty when logged out.
func (c *Client) Token() string {
	return c.token
}

// Logout drops the session token.
func (c *Client) Logout() {
	c.token = ""
}

type envelope struct {
	Success bool   `json:"success"`
	Field   string `json:"field"`
	Message string `json:"message"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
	Post    *Post  `json:"post"`
	Posts   []Post `json:"posts"`
}

func (c *Client) do(ctx context.Context, method, path string, in any) (*envelope, error) {
	var body *bytes.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return nil, &APIError{Status: resp.StatusCode, Field: env.Field, Message: env.Message}
	}
	return &env, nil
}

// Register creates an account and stores the returned session token.
func (c *Client) Register(ctx context.Context, pseudo, email, password string) (*User, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"pseudo":   pseudo,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	c.token = env.Token
	return env.User, nil
}

// Login authenticates and stores the returned session token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	c.token = env.Token
	return env.User, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// CreatePost publishes a new story.
func (c *Client) CreatePost(ctx context.Context, body string) (*Post, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/posts", map[string]string{"body": body})
	if err != nil {
		return nil, err
	}
	return env.Post, nil
}

// Feed lists stories newest first.
func (c *Client) Feed(ctx context.Context, limit, offset int) ([]Post, error) {
	path := fmt.Sprintf("/api/posts?limit=%d&offset=%d", limit, offset)
	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return env.Posts, nil
}

// Ping checks server liveness.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/ping", nil)
	return err
}
