// Package registry implements the signal CRUD policies on top of the
// signals repository: listing summaries, list-item upsert/append, the
// trigger write rule, and scoped deletes.
package registry

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/signalregistry/api/internal/common"
	"github.com/signalregistry/api/internal/server/models"
	"github.com/signalregistry/api/internal/server/repositories/signals"
)

// CollectionRegistry is the collection holding typed signal items; list
// items live in the collection named after their type.
const CollectionRegistry = "registry"

const defaultDescription = "Description will be added soon."

type Service struct {
	repo signals.Repository
}

func NewService(repo signals.Repository) *Service {
	return &Service{repo: repo}
}

func recognized(coll string) bool {
	return coll == CollectionRegistry || coll == models.TypeList
}

// List returns the summary projection for every item the principal may see.
func (s *Service) List(ctx context.Context, coll string, p models.Principal) ([]models.Summary, error) {
	if !recognized(coll) {
		return nil, common.ErrorUnsupportedType
	}
	return s.repo.Summaries(ctx, coll, p.Scope())
}

// Items returns the full registry documents visible to the principal.
func (s *Service) Items(ctx context.Context, p models.Principal) ([]models.Item, error) {
	return s.repo.Find(ctx, CollectionRegistry, p.Scope())
}

func (s *Service) Get(ctx context.Context, coll, name string, p models.Principal) (*models.Item, error) {
	if !recognized(coll) {
		return nil, common.ErrorUnsupportedType
	}
	return s.repo.FindOne(ctx, coll, name, p.Scope())
}

// GetByID fetches a registry item by document id. The ownership scope
// applies here too: an item owned by someone else reads as not found.
func (s *Service) GetByID(ctx context.Context, id string, p models.Principal) (*models.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	return s.repo.FindByID(ctx, CollectionRegistry, oid, p.Scope())
}

// CreateItem upserts a registry item's metadata keyed on (owner, name).
func (s *Service) CreateItem(ctx context.Context, p models.Principal, name, itemType, desc string) error {
	if desc == "" {
		desc = defaultDescription
	}
	item := &models.Item{
		Owner: p.Owner(),
		Name:  name,
		Type:  itemType,
		Desc:  desc,
	}
	return s.repo.UpsertMeta(ctx, CollectionRegistry, item)
}

// UpsertList creates a list item with the given initial data, or appends to
// an existing one. A nil payload creates an empty list. Elements must be
// strings or numbers. Only the list collection accepts this write.
func (s *Service) UpsertList(ctx context.Context, coll, name string, p models.Principal, data []any) error {
	if coll != models.TypeList {
		return common.ErrorUnsupportedType
	}
	for _, v := range data {
		if !scalar(v) {
			return common.ErrorInconsistentData
		}
	}

	n, err := s.repo.Count(ctx, models.TypeList, name, p.Scope())
	if err != nil {
		return err
	}
	if n == 0 {
		return s.repo.CreateList(ctx, name, p.Owner(), data)
	}
	if len(data) > 0 {
		return s.repo.AppendList(ctx, name, p.Scope(), data)
	}
	return nil
}

// AppendTriggerValue appends one fired reading to a trigger item. The
// payload must be exactly [1]; anything else is rejected without touching
// the store.
func (s *Service) AppendTriggerValue(ctx context.Context, id string, p models.Principal, values []any) error {
	switch {
	case len(values) == 0:
		return common.ErrorNoData
	case len(values) > 1:
		return common.ErrorDataLengthExceeded
	case !isOne(values[0]):
		return common.ErrorInconsistentData
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrorNotFound
	}

	item, err := s.repo.FindByID(ctx, CollectionRegistry, oid, p.Scope())
	if err != nil {
		return err
	}
	if item.Type != models.TypeTrigger {
		return common.ErrorUnsupportedType
	}

	reading := models.Reading{Value: values[0], Date: time.Now(), Location: ""}
	matched, err := s.repo.PushReading(ctx, CollectionRegistry, oid, p.Scope(), reading)
	if err != nil {
		return err
	}
	if !matched {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes exactly one document matching (scope, name), or reports
// not found without mutating anything.
func (s *Service) Delete(ctx context.Context, coll, name string, p models.Principal) error {
	if !recognized(coll) {
		return common.ErrorUnsupportedType
	}
	n, err := s.repo.Count(ctx, coll, name, p.Scope())
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return s.repo.DeleteOne(ctx, coll, name, p.Scope())
}

func (s *Service) Templates(ctx context.Context) ([]models.Template, error) {
	return s.repo.Templates(ctx)
}

func scalar(v any) bool {
	switch v.(type) {
	case string, float32, float64, int, int32, int64, json.Number:
		return true
	default:
		return false
	}
}

// isOne accepts the numeric representations the JSON decoder may produce
// for the literal 1.
func isOne(v any) bool {
	switch value := v.(type) {
	case float64:
		return value == 1
	case float32:
		return value == 1
	case int:
		return value == 1
	case int32:
		return value == 1
	case int64:
		return value == 1
	case json.Number:
		return value.String() == "1"
	default:
		return false
	}
}
