// Package server wires the Microstory application together: configuration,
// storage, domain services and the HTTP transport, plus graceful shutdown on
// OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/microstory/server/internal/logging"
	"github.com/microstory/server/internal/server/comments"
	"github.com/microstory/server/internal/server/config"
	"github.com/microstory/server/internal/server/httpapi"
	"github.com/microstory/server/internal/server/media"
	"github.com/microstory/server/internal/server/posts"
	"github.com/microstory/server/internal/server/reactions"
	"github.com/microstory/server/internal/server/storage"
	"github.com/microstory/server/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  storage.RepositoryManager

	userService     *users.Service
	postService     *posts.Service
	commentService  *comments.Service
	reactionService *reactions.Service
	mediaService    *media.Service
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, slog.LevelInfo)

	store, err := storage.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := users.NewService(store.Users(), cfg)
	ps := posts.NewService(store.Posts())
	cs := comments.NewService(store.Comments(), store.Posts())
	rs := reactions.NewService(store.Reactions(), store.Posts())
	ms := media.NewService(cfg)

	return &App{
		config:          cfg,
		logger:          logger,
		store:           store,
		userService:     us,
		postService:     ps,
		commentService:  cs,
		reactionService: rs,
		mediaService:    ms,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.config.GinMode, app.logger,
		[]byte(app.config.SecretKey),
		app.userService, app.postService, app.commentService, app.reactionService, app.mediaService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}
}
