// Package httpapi exposes the REST surface of the Microstory server. Handlers
// stay thin: they bind JSON, call a service, and translate the outcome through
// the shared error mapping.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/microstory/server/internal/logging"
	"github.com/microstory/server/internal/server/comments"
	"github.com/microstory/server/internal/server/posts"
	"github.com/microstory/server/internal/server/users"
)

// UserService is the slice of the user service the transport needs.
type UserService interface {
	Register(ctx context.Context, pseudo, email, password string) (*users.AuthResult, error)
	Login(ctx context.Context, email, password string) (*users.AuthResult, error)
	GetProfile(ctx context.Context, id int64) (*users.PublicUser, error)
	UpdateProfile(ctx context.Context, id int64, upd users.ProfileUpdate) (*users.PublicUser, error)
	DeleteAccount(ctx context.Context, id int64) error
}

type PostService interface {
	Create(ctx context.Context, userID int64, body string, mediaKey *string) (*posts.Post, error)
	Get(ctx context.Context, id int64) (*posts.Post, error)
	Feed(ctx context.Context, limit, offset int) ([]*posts.Post, error)
	Update(ctx context.Context, userID, postID int64, body string, mediaKey *string) (*posts.Post, error)
	Delete(ctx context.Context, userID, postID int64) error
}

type CommentService interface {
	Add(ctx context.Context, userID, postID int64, body string) (*comments.Comment, error)
	List(ctx context.Context, postID int64) ([]*comments.Comment, error)
	Delete(ctx context.Context, userID, commentID int64) error
}

type ReactionService interface {
	Like(ctx context.Context, userID, postID int64) (int64, error)
	Unlike(ctx context.Context, userID, postID int64) (int64, error)
}

type MediaService interface {
	PresignUpload(ctx context.Context) (string, string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

type Server struct {
	address   string
	logger    logging.Logger
	jwtSecret []byte

	users     UserService
	posts     PostService
	comments  CommentService
	reactions ReactionService
	media     MediaService
}

func NewServer(address string, ginMode string, l logging.Logger, jwtSecret []byte,
	us UserService, ps PostService, cs CommentService, rs ReactionService, ms MediaService) *Server {

	gin.SetMode(ginMode)

	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		jwtSecret: jwtSecret,
		users:     us,
		posts:     ps,
		comments:  cs,
		reactions: rs,
		media:     ms,
	}
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	api := r.Group("/api")
	api.GET("/ping", s.ping)

	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	authed := api.Group("", authRequired(s.jwtSecret))
	authed.GET("/auth/profile", s.getProfile)
	authed.PUT("/auth/profile", s.updateProfile)
	authed.DELETE("/auth/profile", s.deleteProfile)

	api.GET("/posts", s.feed)
	api.GET("/posts/:id", s.getPost)
	authed.POST("/posts", s.createPost)
	authed.PUT("/posts/:id", s.updatePost)
	authed.DELETE("/posts/:id", s.deletePost)

	api.GET("/posts/:id/comments", s.listComments)
	authed.POST("/posts/:id/comments", s.addComment)
	authed.DELETE("/comments/:id", s.deleteComment)

	authed.PUT("/posts/:id/like", s.likePost)
	authed.DELETE("/posts/:id/like", s.unlikePost)

	authed.POST("/media/uploads", s.presignUpload)
	authed.GET("/media/*key", s.presignDownload)

	return r
}

func (s *Server) ping(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"message": "pong"})
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
