// Package common defines shared constants and sentinel errors used across
// the snipkeeper server. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Service-level errors.
	ErrorInternal             = errors.New("internal error")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrForbidden              = errors.New("forbidden")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrValidation             = errors.New("validation error")

	// Token errors. Bad signature, malformed structure and expiry all collapse here.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	// Stored envelope could not be parsed or decrypted.
	ErrDecode = errors.New("unreadable record")

	// Startup misconfiguration; the process must not start.
	ErrFatalConfiguration = errors.New("fatal configuration")
)
