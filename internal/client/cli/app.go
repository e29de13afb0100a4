package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/microstory/server/internal/client/api"
	"github.com/microstory/server/internal/client/config"
)

// apiClient is the surface of the HTTP client the REPL commands use. The real
// api.Client satisfies it; tests provide a stub.
type apiClient interface {
	Register(ctx context.Context, pseudo, email, password string) (*api.User, error)
	Login(ctx context.Context, email, password string) (*api.User, error)
	Profile(ctx context.Context) (*api.User, error)
	CreatePost(ctx context.Context, body string) (*api.Post, error)
	Feed(ctx context.Context, limit, offset int) ([]api.Post, error)
	Ping(ctx context.Context) error
	Token() string
	Logout()
}

type App struct {
	config   *config.Config
	client   apiClient
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	client := api.New(c.ServerBaseURL, c.RequestTimeout)
	return &App{config: c, client: client, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.client.Token() != ""
}
