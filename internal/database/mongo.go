package database

import (
	"context"
	"log"
	"time"

	"go-shop/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

// Mongo wraps the audit-store database handle. The audit store is
// best-effort: a lost write there never fails the catalog pipeline.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongo creates the MongoDB connection with lifecycle management
func NewMongo(lc fx.Lifecycle, cfg *config.Config) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("Connected to MongoDB!")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("Disconnecting from MongoDB...")
			return client.Disconnect(ctx)
		},
	})

	return &Mongo{Client: client, DB: client.Database(cfg.MongoDBName)}, nil
}

// ConnectMongo dials the audit store without fx, for one-shot commands.
// The caller owns the returned client and must Disconnect it.
func ConnectMongo(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &Mongo{Client: client, DB: client.Database(cfg.MongoDBName)}, nil
}
