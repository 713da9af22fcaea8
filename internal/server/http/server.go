// Package http exposes the snippet store over a JSON HTTP API.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/logging"
	"github.com/dmitrijs2005/snipkeeper/internal/server/auth"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
)

// UserService is the account side of the API.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*auth.Token, error)
}

// SnippetService is the snippet side of the API. A nil caller is anonymous.
type SnippetService interface {
	Authenticate(token string) (*auth.Identity, error)
	Create(ctx context.Context, caller *auth.Identity, language, code string, private bool) (*models.SnippetView, error)
	Get(ctx context.Context, caller *auth.Identity, id int64) (*models.SnippetView, error)
	List(ctx context.Context, caller *auth.Identity) ([]*models.SnippetView, error)
	ListMine(ctx context.Context, caller *auth.Identity) ([]*models.SnippetView, error)
}

type HTTPServer struct {
	address         string
	users           UserService
	snippets        SnippetService
	logger          logging.Logger
	metrics         *metrics
	shutdownTimeout time.Duration
}

func NewHTTPServer(a string, l logging.Logger, us UserService, ss SnippetService, shutdownTimeout time.Duration) *HTTPServer {
	return &HTTPServer{
		address:         a,
		logger:          l.With("module", "http_server"),
		users:           us,
		snippets:        ss,
		metrics:         newMetrics(),
		shutdownTimeout: shutdownTimeout,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most shutdownTimeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
