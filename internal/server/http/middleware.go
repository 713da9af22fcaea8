package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/server/auth"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ctxKey string

const (
	identityKey       ctxKey = "identity"
	tokenPresentedKey ctxKey = "tokenPresented"
	requestIDKey      ctxKey = "requestID"
)

// RequestIDHeader carries the per-request id back to the client.
const RequestIDHeader = "X-Request-ID"

// IdentityFromContext returns the authenticated caller, or nil when the
// request is anonymous.
func IdentityFromContext(ctx context.Context) *auth.Identity {
	id, _ := ctx.Value(identityKey).(*auth.Identity)
	return id
}

func tokenPresented(ctx context.Context) bool {
	v, _ := ctx.Value(tokenPresentedKey).(bool)
	return v
}

func requestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// authenticate resolves an optional bearer token. A missing or invalid
// token leaves the request anonymous; handlers decide whether that is
// acceptable.
func (s *HTTPServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), tokenPresentedKey, true)

		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, common.BearerScheme) {
			if id, err := s.snippets.Authenticate(strings.TrimSpace(token)); err == nil {
				ctx = context.WithValue(ctx, identityKey, id)
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger tags each request with an id, logs it once on completion and
// records it in the request metrics under its route pattern.
func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		elapsed := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		s.metrics.observe(r.Method, route, status, elapsed.Seconds())

		s.logger.Info(ctx, "request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed,
		)
	})
}
