package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConfig carries the connection knobs for the storefront database,
// which holds the catalog collections and cart sessions. Zero pool sizes
// fall back to the defaults.
type MongoConfig struct {
	URI         string
	Database    string
	MaxPoolSize uint64
	MinPoolSize uint64
}

// ConnectMongoDB dials the storefront database, verifies it answers on
// the primary, and ensures the cart session TTL index exists so
// abandoned carts expire on their own.
func ConnectMongoDB(ctx context.Context, cfg MongoConfig) (*mongo.Database, error) {
	if cfg.MaxPoolSize == 0 {
		cfg.MaxPoolSize = 100
	}
	if cfg.MinPoolSize == 0 {
		cfg.MinPoolSize = 10
	}

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("kani-hampers").
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := CreateCartIndexes(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}
