package users

import (
	"context"
	"sync"

	"github.com/signalregistry/api/internal/common"
	"github.com/signalregistry/api/internal/server/models"
)

// InMemoryRepository is a store-free implementation used by tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, *user)
	return nil
}
