package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultBcryptCost is used when no cost is configured.
const DefaultBcryptCost = 10

// PasswordHasher runs bcrypt on a bounded pool so that a burst of logins
// cannot occupy every CPU at once. Callers waiting for a slot give up
// when their context is cancelled.
type PasswordHasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewPasswordHasher allows at most workers concurrent hash computations.
func NewPasswordHasher(cost, workers int) *PasswordHasher {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if workers < 1 {
		workers = 1
	}
	return &PasswordHasher{cost: cost, sem: semaphore.NewWeighted(int64(workers))}
}

// Hash derives a bcrypt digest with an embedded salt and cost.
func (h *PasswordHasher) Hash(ctx context.Context, password string) ([]byte, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// Compare reports whether password matches hash, using bcrypt's own
// comparison.
func (h *PasswordHasher) Compare(ctx context.Context, hash []byte, password string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("failed to compare password: %w", err)
	}
}
