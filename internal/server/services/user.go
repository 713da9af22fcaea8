// Package services contains server-side business logic. This file implements
// UserService, which registers users, verifies credentials and issues
// bearer tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/server/auth"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/repomanager"
)

// bcrypt ignores input past this many bytes.
const maxPasswordBytes = 72

// UserService provides authentication-related operations:
// - Register: create users
// - VerifyLogin: check an email/password pair
// - Login: verify credentials and mint a token
type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      *PasswordHasher
	tokens      *auth.TokenService
	dummyHash   []byte
}

// NewUserService constructs a UserService. It computes one throwaway hash
// up front so lookups for unknown emails cost the same as real ones.
func NewUserService(m repomanager.RepositoryManager, hasher *PasswordHasher, tokens *auth.TokenService) (*UserService, error) {
	filler, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, err
	}
	dummy, err := hasher.Hash(context.Background(), filler)
	if err != nil {
		return nil, err
	}
	return &UserService{
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		dummyHash:   dummy,
	}, nil
}

// Register creates a new user. The raw password is hashed and discarded.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users()

	// cheap pre-check so duplicates do not pay for a hash
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrDuplicateEmail
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, err
	}

	u, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash, CreatedAt: time.Now()})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// VerifyLogin returns the user for a matching email/password pair. Unknown
// email and wrong password both yield common.ErrInvalidCredentials.
func (s *UserService) VerifyLogin(ctx context.Context, email, password string) (*models.User, error) {
	// bcrypt would silently truncate, so an over-long password can never match
	if len(password) > maxPasswordBytes {
		if _, cmpErr := s.hasher.Compare(ctx, s.dummyHash, password[:maxPasswordBytes]); cmpErr != nil {
			return nil, cmpErr
		}
		return nil, common.ErrInvalidCredentials
	}

	user, err := s.repomanager.Users().GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrorInternal
		}
		// burn the same work as a real comparison
		if _, cmpErr := s.hasher.Compare(ctx, s.dummyHash, password); cmpErr != nil {
			return nil, cmpErr
		}
		return nil, common.ErrInvalidCredentials
	}

	ok, err := s.hasher.Compare(ctx, user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

// Login verifies credentials and, on success, issues a bearer token.
func (s *UserService) Login(ctx context.Context, email, password string) (*auth.Token, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	user, err := s.VerifyLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return token, nil
}

func validateCredentials(email, password string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email is malformed", common.ErrValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", common.ErrValidation, maxPasswordBytes)
	}
	return nil
}
