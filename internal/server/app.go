// Package server wires configuration, stores, services and the HTTP API
// into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/cryptox"
	"github.com/dmitrijs2005/snipkeeper/internal/logging"
	"github.com/dmitrijs2005/snipkeeper/internal/server/auth"
	"github.com/dmitrijs2005/snipkeeper/internal/server/config"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/snipkeeper/internal/server/seed"
	"github.com/dmitrijs2005/snipkeeper/internal/server/services"

	hs "github.com/dmitrijs2005/snipkeeper/internal/server/http"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	userService    *services.UserService
	snippetService *services.SnippetService
	httpServer     *hs.HTTPServer
}

// NewApp builds the application from c, logging to stdout.
func NewApp(c *config.Config) (*App, error) {
	return newApp(c, os.Stdout)
}

func newApp(c *config.Config, logOut io.Writer) (*App, error) {
	ctx := context.Background()

	logger, err := logging.New(c.LogFormat, logOut)
	if err != nil {
		return nil, err
	}

	key, err := cryptox.ParseKey(c.EncryptionKey)
	if err != nil {
		return nil, err
	}
	envelope, err := cryptox.NewEnvelope(key)
	// the cipher keeps its own expanded key
	common.WipeByteArray(key)
	if err != nil {
		return nil, err
	}

	secret, generated := auth.ResolveSigningSecret(c.SigningSecret)
	if generated {
		logger.Warn(ctx, "no signing secret configured, using a per-process random secret; tokens will not survive a restart")
	}
	tokens := auth.NewTokenService(secret)

	rm := repomanager.NewInMemoryRepositoryManager()

	us, err := services.NewUserService(rm, services.NewPasswordHasher(c.BcryptCost, c.HashWorkers), tokens)
	if err != nil {
		return nil, fmt.Errorf("user service init error: %w", err)
	}
	ss := services.NewSnippetService(rm, envelope, tokens)

	if c.SeedFile != "" {
		n, err := seed.Load(ctx, c.SeedFile, ss)
		if err != nil {
			return nil, fmt.Errorf("seed error: %w", err)
		}
		logger.Info(ctx, "seeded snippets", "count", n, "file", c.SeedFile)
	}

	server := hs.NewHTTPServer(c.ListenAddr, logger, us, ss, c.ShutdownTimeout)

	return &App{
		config:         c,
		logger:         logger,
		userService:    us,
		snippetService: ss,
		httpServer:     server,
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

// Run serves the API until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server error", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
