package cache

import (
	"context"
	"errors"

	"github.com/nickatkani/kani-hampers/internal/domain"
)

type CartCache interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Set(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// CatalogCache holds the two read-mostly catalog lists, keyed by
// collection name.
type CatalogCache interface {
	GetItems(ctx context.Context, collection string) ([]domain.CatalogItem, error)
	SetItems(ctx context.Context, collection string, items []domain.CatalogItem) error
	DeleteItems(ctx context.Context, collection string) error
}

var ErrCacheMiss = errors.New("cache miss")
