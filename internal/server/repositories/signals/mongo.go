package signals

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/signalregistry/api/internal/server/models"
	"github.com/signalregistry/api/internal/server/repositories/mongox"
)

const templatesCollection = "sourceTemplates"

type MongoRepository struct {
	db *mongo.Database
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{db: db}
}

// scopeFilter builds the query document for a scope plus extra criteria.
// An unconstrained scope contributes no owner clause at all.
func scopeFilter(scope models.Scope, extra bson.M) bson.M {
	filter := bson.M{}
	if !scope.All {
		filter["owner"] = scope.Owner
	}
	for k, v := range extra {
		filter[k] = v
	}
	return filter
}

func (r *MongoRepository) Find(ctx context.Context, coll string, scope models.Scope) ([]models.Item, error) {
	cursor, err := r.db.Collection(coll).Find(ctx, scopeFilter(scope, nil))
	if err != nil {
		return nil, mongox.WrapError(err)
	}
	items := []models.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, mongox.WrapError(err)
	}
	return items, nil
}

func (r *MongoRepository) FindOne(ctx context.Context, coll, name string, scope models.Scope) (*models.Item, error) {
	item := &models.Item{}
	err := r.db.Collection(coll).FindOne(ctx, scopeFilter(scope, bson.M{"name": name})).Decode(item)
	if err != nil {
		return nil, mongox.WrapError(err)
	}
	return item, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, coll string, id primitive.ObjectID, scope models.Scope) (*models.Item, error) {
	item := &models.Item{}
	err := r.db.Collection(coll).FindOne(ctx, scopeFilter(scope, bson.M{"_id": id})).Decode(item)
	if err != nil {
		return nil, mongox.WrapError(err)
	}
	return item, nil
}

func (r *MongoRepository) UpsertMeta(ctx context.Context, coll string, item *models.Item) error {
	filter := bson.M{"owner": item.Owner, "name": item.Name}
	update := bson.M{
		"$currentDate": bson.M{"create_date": true},
		"$set": bson.M{
			"owner": item.Owner,
			"name":  item.Name,
			"type":  item.Type,
			"desc":  item.Desc,
		},
	}
	_, err := r.db.Collection(coll).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return mongox.WrapError(err)
}

func (r *MongoRepository) Count(ctx context.Context, coll, name string, scope models.Scope) (int64, error) {
	n, err := r.db.Collection(coll).CountDocuments(ctx, scopeFilter(scope, bson.M{"name": name}))
	if err != nil {
		return 0, mongox.WrapError(err)
	}
	return n, nil
}

func (r *MongoRepository) CreateList(ctx context.Context, name, owner string, data []any) error {
	if data == nil {
		data = []any{}
	}
	filter := bson.M{"owner": owner, "name": name}
	update := bson.M{
		"$currentDate": bson.M{"create_date": true, "last_update": true},
		"$set": bson.M{
			"owner": owner,
			"name":  name,
			"type":  models.TypeList,
			"data":  data,
		},
	}
	coll := r.db.Collection(models.TypeList)
	_, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return mongox.WrapError(err)
}

func (r *MongoRepository) AppendList(ctx context.Context, name string, scope models.Scope, data []any) error {
	update := bson.M{
		"$currentDate": bson.M{"last_update": true},
		"$push":        bson.M{"data": bson.M{"$each": data}},
	}
	coll := r.db.Collection(models.TypeList)
	_, err := coll.UpdateOne(ctx, scopeFilter(scope, bson.M{"name": name}), update)
	return mongox.WrapError(err)
}

func (r *MongoRepository) PushReading(ctx context.Context, coll string, id primitive.ObjectID, scope models.Scope, reading models.Reading) (bool, error) {
	update := bson.M{
		"$currentDate": bson.M{"last_update": true},
		"$push":        bson.M{"data": reading},
	}
	res, err := r.db.Collection(coll).UpdateOne(ctx, scopeFilter(scope, bson.M{"_id": id}), update)
	if err != nil {
		return false, mongox.WrapError(err)
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoRepository) DeleteOne(ctx context.Context, coll, name string, scope models.Scope) error {
	_, err := r.db.Collection(coll).DeleteOne(ctx, scopeFilter(scope, bson.M{"name": name}))
	return mongox.WrapError(err)
}

// Summaries projects each visible item into its listing summary. The types
// reduction walks the data array and collects BSON type tags, skipping tags
// already seen, so the result is deduplicated by type name regardless of
// element order.
func (r *MongoRepository) Summaries(ctx context.Context, coll string, scope models.Scope) ([]models.Summary, error) {
	safeData := bson.D{{Key: "$ifNull", Value: bson.A{"$data", bson.A{}}}}
	elementType := bson.D{{Key: "$type", Value: "$$this"}}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: scopeFilter(scope, nil)}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "owner", Value: 1},
			{Key: "name", Value: 1},
			{Key: "create_date", Value: 1},
			{Key: "last_update", Value: 1},
			{Key: "count", Value: bson.D{{Key: "$size", Value: safeData}}},
			{Key: "types", Value: bson.D{{Key: "$reduce", Value: bson.D{
				{Key: "input", Value: safeData},
				{Key: "initialValue", Value: bson.A{}},
				{Key: "in", Value: bson.D{{Key: "$concatArrays", Value: bson.A{
					"$$value",
					bson.D{{Key: "$cond", Value: bson.D{
						{Key: "if", Value: bson.D{{Key: "$in", Value: bson.A{elementType, "$$value"}}}},
						{Key: "then", Value: bson.A{}},
						{Key: "else", Value: bson.A{elementType}},
					}}},
				}}}},
			}}}},
		}}},
	}

	cursor, err := r.db.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mongox.WrapError(err)
	}
	summaries := []models.Summary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, mongox.WrapError(err)
	}
	return summaries, nil
}

func (r *MongoRepository) Templates(ctx context.Context) ([]models.Template, error) {
	cursor, err := r.db.Collection(templatesCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, mongox.WrapError(err)
	}
	templates := []models.Template{}
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, mongox.WrapError(err)
	}
	return templates, nil
}
