package repomanager

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/signalregistry/api/internal/common"
	"github.com/signalregistry/api/internal/server/config"
	"github.com/signalregistry/api/internal/server/repositories/sessions"
	"github.com/signalregistry/api/internal/server/repositories/signals"
	"github.com/signalregistry/api/internal/server/repositories/users"
)

type MongoRepositoryManager struct {
	client   *mongo.Client
	users    *users.MongoRepository
	sessions *sessions.MongoRepository
	signals  *signals.MongoRepository
}

// NewMongoRepositoryManager connects to the document store with the
// configured pool bounds and server-selection timeout. Connection errors are
// not fatal here; the client keeps retrying in the background and Ping
// reports current reachability per request.
func NewMongoRepositoryManager(ctx context.Context, cfg *config.Config) (*MongoRepositoryManager, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxPoolSize(cfg.MaxPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	db := client.Database(cfg.Database)

	return &MongoRepositoryManager{
		client:   client,
		users:    users.NewMongoRepository(db),
		sessions: sessions.NewMongoRepository(db),
		signals:  signals.NewMongoRepository(db),
	}, nil
}

func (m *MongoRepositoryManager) Users() users.Repository       { return m.users }
func (m *MongoRepositoryManager) Sessions() sessions.Repository { return m.sessions }
func (m *MongoRepositoryManager) Signals() signals.Repository   { return m.signals }

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return common.ErrorStoreUnavailable
	}
	return nil
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
