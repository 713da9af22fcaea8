package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
)

type InMemoryRepository struct {
	mu      sync.RWMutex
	lastID  int64
	byID    map[int64]*models.User
	byEmail map[string]int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    make(map[int64]*models.User),
		byEmail: make(map[string]int64),
	}
}

func (r *InMemoryRepository) Create(_ context.Context, u *models.User) (*models.User, error) {
	key := FoldEmail(u.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[key]; ok {
		return nil, common.ErrDuplicateEmail
	}

	r.lastID++
	stored := u.Clone()
	stored.ID = r.lastID
	r.byID[stored.ID] = stored
	r.byEmail[key] = stored.ID

	return stored.Clone(), nil
}

func (r *InMemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	key := FoldEmail(email)

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u.Clone(), nil
}
