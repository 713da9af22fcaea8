package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresIn string    `json:"expires_in"`
	ExpiresAt time.Time `json:"expires_at"`
}

type createSnippetRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Private  bool   `json:"private"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed body: %v", common.ErrValidation, err)
	}
	// exactly one JSON value per body
	if dec.More() {
		return fmt.Errorf("%w: trailing data after body", common.ErrValidation)
	}
	return nil
}

func (s *HTTPServer) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "user_id", user.ID, "email", user.Email)
	writeJSON(w, http.StatusCreated, registerResponse{ID: user.ID, Email: user.Email})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token.Value,
		ExpiresIn: token.ExpiresIn,
		ExpiresAt: token.ExpiresAt,
	})
}

func (s *HTTPServer) listSnippets(w http.ResponseWriter, r *http.Request) {
	views, err := s.snippets.List(r.Context(), IdentityFromContext(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) listMySnippets(w http.ResponseWriter, r *http.Request) {
	views, err := s.snippets.ListMine(r.Context(), IdentityFromContext(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) getSnippet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		s.fail(w, r, common.ErrNotFound)
		return
	}

	view, err := s.snippets.Get(r.Context(), IdentityFromContext(r.Context()), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) createSnippet(w http.ResponseWriter, r *http.Request) {
	var req createSnippetRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	view, err := s.snippets.Create(r.Context(), IdentityFromContext(r.Context()), req.Language, req.Code, req.Private)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}
