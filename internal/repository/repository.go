package repository

import (
	"context"
	"errors"

	"github.com/nickatkani/kani-hampers/internal/domain"
)

var (
	ErrCartNotFound   = errors.New("cart session not found")
	ErrItemNotFound   = errors.New("catalog item not found")
	ErrConfigNotFound = errors.New("store configuration not found")
)

// CartRepository defines the interface for cart session persistence.
// Consumers define this interface, not the MongoDB implementation.
type CartRepository interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

// CatalogRepository covers the two read-mostly catalog collections plus
// the storefront configuration document.
type CatalogRepository interface {
	ListItems(ctx context.Context, collection string) ([]domain.CatalogItem, error)
	InsertItem(ctx context.Context, collection string, item *domain.CatalogItem) error
	UpdateItem(ctx context.Context, collection, id string, item *domain.CatalogItem) error
	DeleteItem(ctx context.Context, collection, id string) error
	GetConfig(ctx context.Context) (*domain.StoreConfig, error)
}

// Catalog collection names.
const (
	CollectionRakhis = "rakhis"
	CollectionAddons = "addons"
)
