// Package users holds the user record store.
package users

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
	"golang.org/x/text/cases"
)

// Repository stores users. Emails are unique under case folding.
type Repository interface {
	// Create assigns the next id and stores u as one step. It returns
	// common.ErrDuplicateEmail if the folded email is already taken.
	Create(ctx context.Context, u *models.User) (*models.User, error)
	// GetByEmail looks up a user case-insensitively.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// FoldEmail returns the comparison key for an email address.
func FoldEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}
