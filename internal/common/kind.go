package common

import "errors"

// Stable machine-readable error kinds exposed over the API boundary.
const (
	KindDuplicateEmail         = "duplicate_email"
	KindInvalidCredentials     = "invalid_credentials"
	KindInvalidOrExpiredToken  = "invalid_or_expired_token"
	KindDecodeError            = "decode_error"
	KindNotFound               = "not_found"
	KindForbidden              = "forbidden"
	KindValidation             = "validation_error"
	KindAuthenticationRequired = "authentication_required"
	KindInternal               = "internal"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrDuplicateEmail, KindDuplicateEmail},
	{ErrInvalidCredentials, KindInvalidCredentials},
	{ErrInvalidOrExpiredToken, KindInvalidOrExpiredToken},
	{ErrDecode, KindDecodeError},
	{ErrNotFound, KindNotFound},
	{ErrForbidden, KindForbidden},
	{ErrValidation, KindValidation},
	{ErrAuthenticationRequired, KindAuthenticationRequired},
}

// Kind returns the stable kind for err. Anything not in the taxonomy,
// including ErrorInternal, is reported as KindInternal.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
