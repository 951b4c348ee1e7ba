package repomanager

import (
	"context"

	"github.com/signalregistry/api/internal/server/repositories/sessions"
	"github.com/signalregistry/api/internal/server/repositories/signals"
	"github.com/signalregistry/api/internal/server/repositories/users"
)

// InMemoryRepositoryManager wires the in-memory repositories together for
// tests. SetPingError simulates a store outage.
type InMemoryRepositoryManager struct {
	users    *users.InMemoryRepository
	sessions *sessions.InMemoryRepository
	signals  *signals.InMemoryRepository
	pingErr  error
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:    users.NewInMemoryRepository(),
		sessions: sessions.NewInMemoryRepository(),
		signals:  signals.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository       { return m.users }
func (m *InMemoryRepositoryManager) Sessions() sessions.Repository { return m.sessions }
func (m *InMemoryRepositoryManager) Signals() signals.Repository   { return m.signals }

// UserStore, SessionStore, and SignalStore expose the concrete in-memory
// repositories so tests can seed and inspect them directly.
func (m *InMemoryRepositoryManager) UserStore() *users.InMemoryRepository       { return m.users }
func (m *InMemoryRepositoryManager) SessionStore() *sessions.InMemoryRepository { return m.sessions }
func (m *InMemoryRepositoryManager) SignalStore() *signals.InMemoryRepository   { return m.signals }

func (m *InMemoryRepositoryManager) SetPingError(err error) { m.pingErr = err }

func (m *InMemoryRepositoryManager) Ping(ctx context.Context) error { return m.pingErr }

func (m *InMemoryRepositoryManager) Close(ctx context.Context) error { return nil }
