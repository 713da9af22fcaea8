package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handler builds the API router.
//
// Routes:
//
//	POST /api/register         register an account
//	POST /api/login            exchange credentials for a bearer token
//	GET  /api/snippets         public snippets plus the caller's own
//	GET  /api/snippets/mine    the caller's snippets only
//	GET  /api/snippets/{id}    one snippet
//	POST /api/snippets         create a snippet
//	GET  /healthz              liveness
//	GET  /metrics              Prometheus metrics
func (s *HTTPServer) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestLogger)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authenticate)

		jsonOnly := chiMiddleware.AllowContentType("application/json")

		r.With(jsonOnly).Post("/register", s.register)
		r.With(jsonOnly).Post("/login", s.login)

		r.Route("/snippets", func(r chi.Router) {
			r.Get("/", s.listSnippets)
			r.Get("/mine", s.listMySnippets)
			r.Get("/{id}", s.getSnippet)
			r.With(jsonOnly).Post("/", s.createSnippet)
		})
	})

	return r
}
