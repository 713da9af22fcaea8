package snippets

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
)

// InMemoryRepository is an append-only slice guarded by a single writer
// lock. Ids start at 1 and equal position+1, so lookups are O(1).
type InMemoryRepository struct {
	mu    sync.RWMutex
	items []*models.Snippet
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(_ context.Context, s *models.Snippet) (*models.Snippet, error) {
	stored := s.Clone()

	r.mu.Lock()
	stored.ID = int64(len(r.items)) + 1
	r.items = append(r.items, stored)
	r.mu.Unlock()

	return stored.Clone(), nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int64) (*models.Snippet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id < 1 || id > int64(len(r.items)) {
		return nil, common.ErrNotFound
	}
	return r.items[id-1].Clone(), nil
}

func (r *InMemoryRepository) List(_ context.Context, f Filter) ([]*models.Snippet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Snippet, 0)
	for _, s := range r.items {
		if f.Match(s) {
			out = append(out, s.Clone())
		}
	}
	return out, nil
}
