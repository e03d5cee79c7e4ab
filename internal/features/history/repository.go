package history

import (
	"context"

	"go-shop/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HistoryRepository interface {
	Append(ctx context.Context, collection string, record QueryRecord) error
	ListRecent(ctx context.Context, collection string, limit int64) ([]QueryRecord, error)
	Count(ctx context.Context, collection string) (int64, error)
}

type HistoryRepositoryImpl struct {
	DB *mongo.Database
}

func NewHistoryRepository(mongodb *database.Mongo) HistoryRepository {
	return &HistoryRepositoryImpl{DB: mongodb.DB}
}

func (r *HistoryRepositoryImpl) Append(ctx context.Context, collection string, record QueryRecord) error {
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	_, err := r.DB.Collection(collection).InsertOne(ctx, record)
	return err
}

func (r *HistoryRepositoryImpl) ListRecent(ctx context.Context, collection string, limit int64) ([]QueryRecord, error) {
	opts := options.Find().SetLimit(limit).SetSort(bson.M{"timestamp": -1})

	cursor, err := r.DB.Collection(collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var records []QueryRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *HistoryRepositoryImpl) Count(ctx context.Context, collection string) (int64, error) {
	return r.DB.Collection(collection).CountDocuments(ctx, bson.M{})
}
