package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nickatkani/kani-hampers/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type catalogMongoRepository struct {
	db *mongo.Database
}

func NewCatalogMongoRepository(db *mongo.Database) CatalogRepository {
	return &catalogMongoRepository{db: db}
}

func (m *catalogMongoRepository) ListItems(ctx context.Context, collection string) ([]domain.CatalogItem, error) {
	cursor, err := m.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	items := []domain.CatalogItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
	}

	return items, nil
}

func (m *catalogMongoRepository) InsertItem(ctx context.Context, collection string, item *domain.CatalogItem) error {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := m.db.Collection(collection).InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	return nil
}

func (m *catalogMongoRepository) UpdateItem(ctx context.Context, collection, id string, item *domain.CatalogItem) error {
	item.ID = id
	item.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"name":        item.Name,
		"price":       item.Price,
		"image":       item.Image,
		"category":    item.Category,
		"description": item.Description,
		"updated_at":  item.UpdatedAt,
	}}

	result, err := m.db.Collection(collection).UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}

	if result.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (m *catalogMongoRepository) DeleteItem(ctx context.Context, collection, id string) error {
	result, err := m.db.Collection(collection).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}

	if result.DeletedCount == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (m *catalogMongoRepository) GetConfig(ctx context.Context) (*domain.StoreConfig, error) {
	var cfg domain.StoreConfig

	err := m.db.Collection("config").FindOne(ctx, bson.M{"id": "main_config"}).Decode(&cfg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	return &cfg, nil
}
