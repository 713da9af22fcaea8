// Package auth issues and verifies the bearer tokens that bind a request to
// a registered user.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenLifetime is how long an issued token stays valid.
	TokenLifetime = 24 * time.Hour

	// TokenIssuer is stamped into and required on every token.
	TokenIssuer = "snipkeeper"
)

// Claims is the signed claim set: registered claims (sub, iat, exp, ...)
// plus the user id and email.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
}

// Token is an issued token together with its declared expiry.
type Token struct {
	Value     string
	ExpiresIn string
	ExpiresAt time.Time
}

// TokenService signs and verifies HS256 tokens with a process-wide secret.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// Option configures a TokenService.
type Option func(*TokenService)

// WithClock replaces time.Now for both issuing and verification.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService returns a TokenService signing with secret.
func NewTokenService(secret []byte, opts ...Option) *TokenService {
	s := &TokenService{
		secret:   secret,
		lifetime: TokenLifetime,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue mints a token for the given user.
func (s *TokenService) Issue(userID int64, email string) (*Token, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.lifetime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
		UserID: userID,
		Email:  email,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{Value: signed, ExpiresIn: s.lifetime.String(), ExpiresAt: expiresAt}, nil
}

// Verify checks signature, issuer and expiry and returns the claims.
// Every failure is reported as common.ErrInvalidOrExpiredToken; the
// underlying reason is not exposed.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidOrExpiredToken
	}

	if claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return nil, common.ErrInvalidOrExpiredToken
	}

	return claims, nil
}
