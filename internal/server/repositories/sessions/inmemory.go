package sessions

import (
	"context"
	"sync"

	"github.com/signalregistry/api/internal/common"
	"github.com/signalregistry/api/internal/server/models"
)

// InMemoryRepository is a store-free implementation used by tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	sessions []models.Session
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Find(ctx context.Context, token string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.sessions {
		if r.sessions[i].Token == token {
			s := r.sessions[i]
			return &s, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) Create(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, *session)
	return nil
}

func (r *InMemoryRepository) DeleteByToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteWhere(func(s *models.Session) bool { return s.Token == token })
	return nil
}

func (r *InMemoryRepository) DeleteByUsername(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteWhere(func(s *models.Session) bool { return s.Username == username })
	return nil
}

func (r *InMemoryRepository) deleteWhere(match func(*models.Session) bool) {
	kept := r.sessions[:0]
	for i := range r.sessions {
		if !match(&r.sessions[i]) {
			kept = append(kept, r.sessions[i])
		}
	}
	r.sessions = kept
}

// Count reports the number of stored sessions matching the username.
// Test helper for the one-session-per-user property.
func (r *InMemoryRepository) Count(username string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for i := range r.sessions {
		if r.sessions[i].Username == username {
			n++
		}
	}
	return n
}
