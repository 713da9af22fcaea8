package http

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

var statusByKind = map[string]int{
	common.KindValidation:             http.StatusBadRequest,
	common.KindInvalidCredentials:     http.StatusUnauthorized,
	common.KindInvalidOrExpiredToken:  http.StatusUnauthorized,
	common.KindAuthenticationRequired: http.StatusUnauthorized,
	common.KindForbidden:              http.StatusForbidden,
	common.KindNotFound:               http.StatusNotFound,
	common.KindDuplicateEmail:         http.StatusConflict,
	common.KindDecodeError:            http.StatusInternalServerError,
	common.KindInternal:               http.StatusInternalServerError,
}

var messageByKind = map[string]string{
	common.KindValidation:             "invalid request",
	common.KindInvalidCredentials:     "invalid email or password",
	common.KindInvalidOrExpiredToken:  "invalid or expired token",
	common.KindAuthenticationRequired: "authentication required",
	common.KindForbidden:              "access denied",
	common.KindNotFound:               "not found",
	common.KindDuplicateEmail:         "email already registered",
	common.KindDecodeError:            "stored snippet could not be decoded",
	common.KindInternal:               "internal error",
}

// statusFor returns the HTTP status and public message for an error kind.
func statusFor(kind string) (int, string) {
	status, ok := statusByKind[kind]
	if !ok {
		return http.StatusInternalServerError, messageByKind[common.KindInternal]
	}
	return status, messageByKind[kind]
}

// fail reports err to the client. Server-side failures are logged with
// their detail, which never reaches the response.
func (s *HTTPServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := common.Kind(err)

	// an owner-only path reached with a rejected token is a token problem
	if kind == common.KindAuthenticationRequired && tokenPresented(r.Context()) {
		kind = common.KindInvalidOrExpiredToken
	}

	status, message := statusFor(kind)
	s.metrics.failures.WithLabelValues(kind).Inc()
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "request_id", requestID(r.Context()), "kind", kind, "error", err)
	}

	writeJSON(w, status, errorBody{Error: errorDetail{Kind: kind, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
