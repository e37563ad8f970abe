package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/nickatkani/kani-hampers/internal/cache"
	"github.com/nickatkani/kani-hampers/internal/domain"
	"github.com/nickatkani/kani-hampers/internal/photos"
	"github.com/nickatkani/kani-hampers/internal/repository"
	"golang.org/x/sync/singleflight"
)

// CatalogReader is the slice of the catalog the cart needs: resolving an
// item id to its current name and price, so clients cannot submit their
// own prices.
type CatalogReader interface {
	FindItem(ctx context.Context, collection, id string) (*domain.CatalogItem, error)
}

type CartService struct {
	repo     repository.CartRepository
	cache    cache.CartCache
	catalog  CatalogReader
	gate     *photos.Gate
	uploader photos.Uploader
	sfg      singleflight.Group // Prevents cache stampede
	locks    sync.Map           // per-session mutexes serializing mutate
}

func NewCartService(repo repository.CartRepository, c cache.CartCache, catalog CatalogReader, gate *photos.Gate, uploader photos.Uploader) *CartService {
	return &CartService{
		repo:     repo,
		cache:    c,
		catalog:  catalog,
		gate:     gate,
		uploader: uploader,
	}
}

// GetCart returns the session's cart, creating an empty one for unknown
// sessions. Reads go through the cache with singleflight so concurrent
// misses for the same session hit Mongo once.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, sessionID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, sessionID)
		if errGet != nil && errors.Is(errGet, repository.ErrCartNotFound) {
			return domain.NewCart(sessionID), nil
		}
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			errSet := s.cache.Set(context.Background(), sessionID, cart)
			if errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// SelectHamper puts the chosen hamper on the cart and moves the wizard
// past hamper selection. Switching hampers drops uploaded photos since
// the photo allowance changes.
func (s *CartService) SelectHamper(ctx context.Context, sessionID, hamperID string) (*domain.Cart, error) {
	option := domain.HamperByID(hamperID)
	if option == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHamper, hamperID)
	}

	return s.mutate(ctx, sessionID, func(cart *domain.Cart) error {
		cart.SelectHamper(*option)
		if cart.Step == domain.StepSelectHamper {
			cart.Step = NextStep(cart)
		}
		return nil
	})
}

func (s *CartService) AddLine(ctx context.Context, sessionID string, kind domain.LineKind, itemID string) (*domain.Cart, error) {
	collection, err := collectionForKind(kind)
	if err != nil {
		return nil, err
	}

	item, err := s.catalog.FindItem(ctx, collection, itemID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, sessionID, func(cart *domain.Cart) error {
		cart.AddLine(kind, domain.CartAddonLine{
			ID:    item.ID,
			Name:  item.Name,
			Price: item.Price,
		})
		return nil
	})
}

// RemoveLine decrements or deletes a line. Unknown item ids are a no-op,
// not an error.
func (s *CartService) RemoveLine(ctx context.Context, sessionID string, kind domain.LineKind, itemID string) (*domain.Cart, error) {
	if _, err := collectionForKind(kind); err != nil {
		return nil, err
	}

	return s.mutate(ctx, sessionID, func(cart *domain.Cart) error {
		cart.RemoveLine(kind, itemID)
		return nil
	})
}

func (s *CartService) SetMessage(ctx context.Context, sessionID, text string) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(cart *domain.Cart) error {
		cart.SetMessage(text)
		return nil
	})
}

// StagePhoto runs the upload gate and, when the candidate is admitted,
// appends a placeholder reference to the cart. The caller then streams
// the bytes through CompletePhotoUpload.
func (s *CartService) StagePhoto(ctx context.Context, sessionID string, file photos.FileInfo) (string, error) {
	var placeholder string

	_, err := s.mutate(ctx, sessionID, func(cart *domain.Cart) error {
		if cart.Hamper == nil {
			return ErrNoHamperSelected
		}

		ref, gateErr := s.gate.ValidateAndStage(file, cart.Hamper.ID, len(cart.Photos))
		if gateErr != nil {
			return gateErr
		}

		cart.AppendPhoto(ref)
		placeholder = ref
		return nil
	})
	if err != nil {
		return "", err
	}

	return placeholder, nil
}

// CompletePhotoUpload pushes the image bytes to the durable store and
// patches the placeholder slot with the returned URL. On failure the
// placeholder stays where it is so the photo is neither dropped nor
// reordered; the user can retry or remove it. Uploads for different
// placeholders are independent and may complete out of order.
func (s *CartService) CompletePhotoUpload(ctx context.Context, sessionID, placeholder string, file photos.FileInfo, data io.Reader) (*domain.Cart, error) {
	url, err := s.uploader.Upload(ctx, file, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return s.mutate(ctx, sessionID, func(cart *domain.Cart) error {
		if !cart.PatchPhoto(placeholder, url) {
			// photo was removed while the upload was in flight; nothing to patch
			log.Printf("placeholder %s no longer in cart %s, dropping upload result", placeholder, sessionID)
		}
		return nil
	})
}

func (s *CartService) RemovePhoto(ctx context.Context, sessionID string, index int) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(cart *domain.Cart) error {
		cart.RemovePhotoAt(index)
		return nil
	})
}

// Advance moves the wizard one step forward if the current step's guard
// allows it.
func (s *CartService) Advance(ctx context.Context, sessionID string) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(cart *domain.Cart) error {
		return AdvanceWizard(cart)
	})
}

// Back moves the wizard one step backward. Cart contents are untouched.
func (s *CartService) Back(ctx context.Context, sessionID string) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(cart *domain.Cart) error {
		return BackWizard(cart)
	})
}

// ClearCart discards the session after a successful submission or an
// explicit cancel.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	errDelete := s.repo.DeleteCart(ctx, sessionID)
	if errDelete != nil && !errors.Is(errDelete, repository.ErrCartNotFound) {
		log.Printf("repo delete cart error: %v", errDelete)
		return errDelete
	}

	s.invalidateCache(sessionID)
	return nil
}

// mutate loads the session's cart, applies fn, and persists the result.
// The cache entry is invalidated rather than rewritten.
//
// Mutations for the same session are serialized: the whole cart document
// is read, modified and written back, so two interleaved mutations would
// silently drop one of the writes. Photo uploads in particular complete
// concurrently and each must land in its own slot.
func (s *CartService) mutate(ctx context.Context, sessionID string, fn func(*domain.Cart) error) (*domain.Cart, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.repo.GetCart(ctx, sessionID)
	if errors.Is(err, repository.ErrCartNotFound) {
		cart = domain.NewCart(sessionID)
	} else if err != nil {
		return nil, err
	}

	if err := fn(cart); err != nil {
		return nil, err
	}

	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		log.Printf("repo upsert cart error: %v", err)
		return nil, err
	}

	s.invalidateCache(sessionID)
	return cart, nil
}

func (s *CartService) sessionLock(sessionID string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (s *CartService) invalidateCache(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	errInvalidate := s.cache.Delete(ctx, sessionID)
	if errInvalidate != nil {
		log.Printf("cache invalidate error: %v", errInvalidate)
	}
}

func collectionForKind(kind domain.LineKind) (string, error) {
	switch kind {
	case domain.LineKindRakhi:
		return repository.CollectionRakhis, nil
	case domain.LineKindAddon:
		return repository.CollectionAddons, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLineKind, kind)
	}
}
