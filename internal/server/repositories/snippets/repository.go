// Package snippets holds the snippet record store.
package snippets

import (
	"context"

	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
)

// Filter selects snippets for List. A snippet matches when it is public and
// IncludePublic is set, or when it is owned by *OwnerID. The zero Filter
// matches nothing.
type Filter struct {
	OwnerID       *int64
	IncludePublic bool
}

// Match reports whether s is selected by f.
func (f Filter) Match(s *models.Snippet) bool {
	if f.IncludePublic && s.IsPublic() {
		return true
	}
	return f.OwnerID != nil && s.OwnedBy(*f.OwnerID)
}

// Repository stores snippets. Records are immutable once created.
type Repository interface {
	// Create assigns the next id and appends s as one indivisible step.
	Create(ctx context.Context, s *models.Snippet) (*models.Snippet, error)
	GetByID(ctx context.Context, id int64) (*models.Snippet, error)
	// List returns the matching snippets in id order.
	List(ctx context.Context, f Filter) ([]*models.Snippet, error)
}
