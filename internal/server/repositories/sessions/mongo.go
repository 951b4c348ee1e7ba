package sessions

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/signalregistry/api/internal/server/models"
	"github.com/signalregistry/api/internal/server/repositories/mongox"
)

const collectionName = "sessions"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

func (r *MongoRepository) Find(ctx context.Context, token string) (*models.Session, error) {
	session := &models.Session{}
	if err := r.coll.FindOne(ctx, bson.M{"cookie": token}).Decode(session); err != nil {
		return nil, mongox.WrapError(err)
	}
	return session, nil
}

func (r *MongoRepository) Create(ctx context.Context, session *models.Session) error {
	_, err := r.coll.InsertOne(ctx, session)
	return mongox.WrapError(err)
}

func (r *MongoRepository) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"cookie": token})
	return mongox.WrapError(err)
}

func (r *MongoRepository) DeleteByUsername(ctx context.Context, username string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"username": username})
	return mongox.WrapError(err)
}
