// Package repomanager bundles the per-collection repositories behind one
// interface and owns the store connection, including its health. Connection
// health is an explicit synchronous query (Ping), not a shared flag toggled
// by background heartbeats.
package repomanager

import (
	"context"

	"github.com/signalregistry/api/internal/server/repositories/sessions"
	"github.com/signalregistry/api/internal/server/repositories/signals"
	"github.com/signalregistry/api/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Sessions() sessions.Repository
	Signals() signals.Repository

	// Ping reports store reachability; any failure surfaces as
	// common.ErrorStoreUnavailable.
	Ping(ctx context.Context) error

	Close(ctx context.Context) error
}
