// Package signals stores the named, owned signal records of the registry
// and list collections. Every query is constrained by an ownership scope;
// a document outside the scope behaves exactly like a missing one.
package signals

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/signalregistry/api/internal/server/models"
)

type Repository interface {
	// Find returns the full items in the collection visible to the scope.
	Find(ctx context.Context, coll string, scope models.Scope) ([]models.Item, error)

	// FindOne looks up an item by name within the scope.
	FindOne(ctx context.Context, coll, name string, scope models.Scope) (*models.Item, error)

	// FindByID looks up an item by document id within the scope.
	FindByID(ctx context.Context, coll string, id primitive.ObjectID, scope models.Scope) (*models.Item, error)

	// UpsertMeta creates or refreshes an item's metadata keyed on
	// (owner, name), stamping create_date.
	UpsertMeta(ctx context.Context, coll string, item *models.Item) error

	// Count reports how many documents match (scope, name).
	Count(ctx context.Context, coll, name string, scope models.Scope) (int64, error)

	// CreateList upserts a list item owned by owner with the given initial
	// data, stamping create_date and last_update.
	CreateList(ctx context.Context, name, owner string, data []any) error

	// AppendList appends each element of data to an existing list item and
	// stamps last_update.
	AppendList(ctx context.Context, name string, scope models.Scope, data []any) error

	// PushReading appends one reading to the item with the given id,
	// constrained by the scope. Returns false when no document matched.
	PushReading(ctx context.Context, coll string, id primitive.ObjectID, scope models.Scope, reading models.Reading) (bool, error)

	// DeleteOne removes exactly one document matching (scope, name).
	DeleteOne(ctx context.Context, coll, name string, scope models.Scope) error

	// Summaries returns the per-item listing projection: counts plus the
	// set of distinct value-type tags in data.
	Summaries(ctx context.Context, coll string, scope models.Scope) ([]models.Summary, error)

	// Templates returns the available source templates.
	Templates(ctx context.Context) ([]models.Template, error)
}
