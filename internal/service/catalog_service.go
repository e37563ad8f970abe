package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nickatkani/kani-hampers/internal/cache"
	"github.com/nickatkani/kani-hampers/internal/domain"
	"github.com/nickatkani/kani-hampers/internal/repository"
	"golang.org/x/sync/singleflight"
)

// CatalogService fronts the read-mostly catalog collections with a
// Redis cache. Admin CRUD invalidates the cached list.
type CatalogService struct {
	repo  repository.CatalogRepository
	cache cache.CatalogCache
	sfg   singleflight.Group
}

func NewCatalogService(repo repository.CatalogRepository, c cache.CatalogCache) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: c,
	}
}

func (s *CatalogService) ListRakhis(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.ListItems(ctx, repository.CollectionRakhis)
}

func (s *CatalogService) ListAddons(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.ListItems(ctx, repository.CollectionAddons)
}

func (s *CatalogService) ListItems(ctx context.Context, collection string) ([]domain.CatalogItem, error) {
	v, err, _ := s.sfg.Do(collection, func() (interface{}, error) {
		items, err := s.cache.GetItems(ctx, collection)
		if err == nil {
			return items, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("catalog cache get error: %v", err)
		}

		items, err = s.repo.ListItems(ctx, collection)
		if err != nil {
			return nil, err
		}

		go func() {
			if errSet := s.cache.SetItems(context.Background(), collection, items); errSet != nil {
				log.Printf("catalog cache set error: %v", errSet)
			}
		}()

		return items, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]domain.CatalogItem), nil
}

// FindItem resolves a catalog item by id from the cached list.
func (s *CatalogService) FindItem(ctx context.Context, collection, id string) (*domain.CatalogItem, error) {
	items, err := s.ListItems(ctx, collection)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s/%s", repository.ErrItemNotFound, collection, id)
}

func (s *CatalogService) AddItem(ctx context.Context, collection string, item *domain.CatalogItem) error {
	if err := s.repo.InsertItem(ctx, collection, item); err != nil {
		return err
	}
	s.invalidate(collection)
	return nil
}

func (s *CatalogService) UpdateItem(ctx context.Context, collection, id string, item *domain.CatalogItem) error {
	if err := s.repo.UpdateItem(ctx, collection, id, item); err != nil {
		return err
	}
	s.invalidate(collection)
	return nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, collection, id string) error {
	if err := s.repo.DeleteItem(ctx, collection, id); err != nil {
		return err
	}
	s.invalidate(collection)
	return nil
}

func (s *CatalogService) GetConfig(ctx context.Context) (*domain.StoreConfig, error) {
	return s.repo.GetConfig(ctx)
}

// Pricing derives the cart pricing knobs from the store configuration,
// falling back to no surcharge when none is configured.
func (s *CatalogService) Pricing(ctx context.Context) domain.Pricing {
	cfg, err := s.repo.GetConfig(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrConfigNotFound) {
			log.Printf("load store config error: %v", err)
		}
		return domain.Pricing{}
	}
	return domain.Pricing{
		DeliveryCharge:    cfg.DeliveryCharge,
		FreeDeliveryAbove: cfg.FreeDeliveryAbove,
	}
}

func (s *CatalogService) invalidate(collection string) {
	if err := s.cache.DeleteItems(context.Background(), collection); err != nil {
		log.Printf("catalog cache invalidate error: %v", err)
	}
}
