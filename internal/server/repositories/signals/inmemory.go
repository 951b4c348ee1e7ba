package signals

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/signalregistry/api/internal/common"
	"github.com/signalregistry/api/internal/server/models"
)

// InMemoryRepository is a store-free implementation used by tests. It mirrors
// the document store's behavior, including upsert-on-(owner, name) and the
// type-tag summary reduction.
type InMemoryRepository struct {
	mu          sync.RWMutex
	collections map[string][]models.Item
	templates   []models.Template
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{collections: map[string][]models.Item{}}
}

// SeedTemplates installs source templates for listing tests.
func (r *InMemoryRepository) SeedTemplates(templates []models.Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates = templates
}

func (r *InMemoryRepository) Find(ctx context.Context, coll string, scope models.Scope) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := []models.Item{}
	for _, item := range r.collections[coll] {
		if scope.Matches(item.Owner) {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *InMemoryRepository) FindOne(ctx context.Context, coll, name string, scope models.Scope) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.collections[coll] {
		item := &r.collections[coll][i]
		if item.Name == name && scope.Matches(item.Owner) {
			found := *item
			return &found, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) FindByID(ctx context.Context, coll string, id primitive.ObjectID, scope models.Scope) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item := r.findByID(coll, id, scope)
	if item == nil {
		return nil, common.ErrorNotFound
	}
	found := *item
	return &found, nil
}

func (r *InMemoryRepository) UpsertMeta(ctx context.Context, coll string, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for i := range r.collections[coll] {
		existing := &r.collections[coll][i]
		if existing.Owner == item.Owner && existing.Name == item.Name {
			existing.Type = item.Type
			existing.Desc = item.Desc
			existing.CreateDate = now
			return nil
		}
	}
	created := *item
	created.ID = primitive.NewObjectID()
	created.CreateDate = now
	r.collections[coll] = append(r.collections[coll], created)
	return nil
}

func (r *InMemoryRepository) Count(ctx context.Context, coll, name string, scope models.Scope) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for i := range r.collections[coll] {
		item := &r.collections[coll][i]
		if item.Name == name && scope.Matches(item.Owner) {
			n++
		}
	}
	return n, nil
}

func (r *InMemoryRepository) CreateList(ctx context.Context, name, owner string, data []any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if data == nil {
		data = []any{}
	}
	now := time.Now()
	coll := models.TypeList
	for i := range r.collections[coll] {
		existing := &r.collections[coll][i]
		if existing.Owner == owner && existing.Name == name {
			existing.Data = data
			existing.CreateDate = now
			existing.LastUpdate = now
			return nil
		}
	}
	r.collections[coll] = append(r.collections[coll], models.Item{
		ID:         primitive.NewObjectID(),
		Owner:      owner,
		Name:       name,
		Type:       models.TypeList,
		CreateDate: now,
		LastUpdate: now,
		Data:       data,
	})
	return nil
}

func (r *InMemoryRepository) AppendList(ctx context.Context, name string, scope models.Scope, data []any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	coll := models.TypeList
	for i := range r.collections[coll] {
		item := &r.collections[coll][i]
		if item.Name == name && scope.Matches(item.Owner) {
			item.Data = append(item.Data, data...)
			item.LastUpdate = time.Now()
			return nil
		}
	}
	return nil
}

func (r *InMemoryRepository) PushReading(ctx context.Context, coll string, id primitive.ObjectID, scope models.Scope, reading models.Reading) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.findByID(coll, id, scope)
	if item == nil {
		return false, nil
	}
	item.Data = append(item.Data, reading)
	item.LastUpdate = time.Now()
	return true, nil
}

func (r *InMemoryRepository) DeleteOne(ctx context.Context, coll, name string, scope models.Scope) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.collections[coll] {
		item := &r.collections[coll][i]
		if item.Name == name && scope.Matches(item.Owner) {
			r.collections[coll] = append(r.collections[coll][:i], r.collections[coll][i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *InMemoryRepository) Summaries(ctx context.Context, coll string, scope models.Scope) ([]models.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	summaries := []models.Summary{}
	for i := range r.collections[coll] {
		item := &r.collections[coll][i]
		if !scope.Matches(item.Owner) {
			continue
		}
		summaries = append(summaries, models.Summary{
			Owner:      item.Owner,
			Name:       item.Name,
			CreateDate: item.CreateDate,
			LastUpdate: item.LastUpdate,
			Count:      len(item.Data),
			Types:      distinctTypeTags(item.Data),
		})
	}
	return summaries, nil
}

func (r *InMemoryRepository) Templates(ctx context.Context) ([]models.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	templates := make([]models.Template, len(r.templates))
	copy(templates, r.templates)
	return templates, nil
}

func (r *InMemoryRepository) findByID(coll string, id primitive.ObjectID, scope models.Scope) *models.Item {
	for i := range r.collections[coll] {
		item := &r.collections[coll][i]
		if item.ID == id && scope.Matches(item.Owner) {
			return item
		}
	}
	return nil
}

// distinctTypeTags reproduces the store's reduction: one tag per distinct
// element type, in first-seen order.
func distinctTypeTags(data []any) []string {
	tags := []string{}
	seen := map[string]struct{}{}
	for _, v := range data {
		tag := bsonTypeTag(v)
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

func bsonTypeTag(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case float32, float64:
		return "double"
	case int, int32:
		return "int"
	case int64:
		return "long"
	case time.Time:
		return "date"
	default:
		return "object"
	}
}
