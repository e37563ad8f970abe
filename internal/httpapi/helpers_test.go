package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nickatkani/kani-hampers/internal/cache"
	"github.com/nickatkani/kani-hampers/internal/domain"
	"github.com/nickatkani/kani-hampers/internal/payment"
	"github.com/nickatkani/kani-hampers/internal/photos"
	"github.com/nickatkani/kani-hampers/internal/repository"
	"github.com/nickatkani/kani-hampers/internal/service"
)

// In-memory fakes standing in for Mongo, Redis, Postgres and the image
// store, so handler tests can drive the full router.

type fakeCartStore struct {
	m     sync.RWMutex
	carts map[string]*domain.Cart
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[string]*domain.Cart)}
}

func (f *fakeCartStore) GetCart(_ context.Context, sessionID string) (*domain.Cart, error) {
	f.m.RLock()
	defer f.m.RUnlock()
	cart, ok := f.carts[sessionID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	copied := *cart
	return &copied, nil
}

func (f *fakeCartStore) UpsertCart(_ context.Context, cart *domain.Cart) error {
	f.m.Lock()
	defer f.m.Unlock()
	copied := *cart
	f.carts[cart.ID] = &copied
	return nil
}

func (f *fakeCartStore) DeleteCart(_ context.Context, sessionID string) error {
	f.m.Lock()
	defer f.m.Unlock()
	if _, ok := f.carts[sessionID]; !ok {
		return repository.ErrCartNotFound
	}
	delete(f.carts, sessionID)
	return nil
}

type noopCartCache struct{}

func (noopCartCache) Get(context.Context, string) (*domain.Cart, error) {
	return nil, cache.ErrCacheMiss
}
func (noopCartCache) Set(context.Context, string, *domain.Cart) error { return nil }
func (noopCartCache) Delete(context.Context, string) error            { return nil }

type noopCatalogCache struct{}

func (noopCatalogCache) GetItems(context.Context, string) ([]domain.CatalogItem, error) {
	return nil, cache.ErrCacheMiss
}
func (noopCatalogCache) SetItems(context.Context, string, []domain.CatalogItem) error {
	return nil
}
func (noopCatalogCache) DeleteItems(context.Context, string) error { return nil }

type fakeCatalogStore struct {
	m      sync.RWMutex
	items  map[string][]domain.CatalogItem
	config *domain.StoreConfig
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{items: map[string][]domain.CatalogItem{
		repository.CollectionRakhis: {
			{ID: "r1", Name: "Classic Rakhi", Price: 51},
		},
		repository.CollectionAddons: {
			{ID: "ferrero", Name: "Ferrero Rocher", Price: 150},
			{ID: "dryfruits", Name: "Dry Fruit Pouch", Price: 100},
		},
	}}
}

func (f *fakeCatalogStore) ListItems(_ context.Context, collection string) ([]domain.CatalogItem, error) {
	f.m.RLock()
	defer f.m.RUnlock()
	return append([]domain.CatalogItem{}, f.items[collection]...), nil
}

func (f *fakeCatalogStore) InsertItem(_ context.Context, collection string, item *domain.CatalogItem) error {
	f.m.Lock()
	defer f.m.Unlock()
	f.items[collection] = append(f.items[collection], *item)
	return nil
}

func (f *fakeCatalogStore) UpdateItem(_ context.Context, collection, id string, item *domain.CatalogItem) error {
	f.m.Lock()
	defer f.m.Unlock()
	for i := range f.items[collection] {
		if f.items[collection][i].ID == id {
			updated := *item
			updated.ID = id
			f.items[collection][i] = updated
			return nil
		}
	}
	return repository.ErrItemNotFound
}

func (f *fakeCatalogStore) DeleteItem(_ context.Context, collection, id string) error {
	f.m.Lock()
	defer f.m.Unlock()
	list := f.items[collection]
	for i := range list {
		if list[i].ID == id {
			f.items[collection] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrItemNotFound
}

func (f *fakeCatalogStore) GetConfig(context.Context) (*domain.StoreConfig, error) {
	f.m.RLock()
	defer f.m.RUnlock()
	if f.config == nil {
		return nil, repository.ErrConfigNotFound
	}
	return f.config, nil
}

type fakeOrderStore struct {
	m      sync.Mutex
	orders []*domain.Order
	err    error
}

func (f *fakeOrderStore) CreateOrder(_ context.Context, order *domain.Order) error {
	f.m.Lock()
	defer f.m.Unlock()
	if f.err != nil {
		return f.err
	}
	copied := *order
	f.orders = append(f.orders, &copied)
	return nil
}

func (f *fakeOrderStore) ListOrders(context.Context) ([]domain.Order, error) {
	f.m.Lock()
	defer f.m.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Order, len(f.orders))
	for i, o := range f.orders {
		out[i] = *o
	}
	return out, nil
}

func (f *fakeOrderStore) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	f.m.Lock()
	defer f.m.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			copied := *o
			return &copied, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (f *fakeOrderStore) UpdateOrderStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) error {
	f.m.Lock()
	defer f.m.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			o.Status = status
			return nil
		}
	}
	return repository.ErrOrderNotFound
}

func (f *fakeOrderStore) DeleteOrder(_ context.Context, id uuid.UUID) error {
	f.m.Lock()
	defer f.m.Unlock()
	for i, o := range f.orders {
		if o.ID == id {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			return nil
		}
	}
	return repository.ErrOrderNotFound
}

func (f *fakeOrderStore) GetUnprocessedEvents(context.Context, int) ([]repository.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOrderStore) MarkEventAsProcessed(context.Context, uuid.UUID) error {
	return nil
}

type fakeUploader struct{}

func (fakeUploader) Upload(_ context.Context, file photos.FileInfo, _ io.Reader) (string, error) {
	return "https://img.example.com/" + file.Name, nil
}

type testEnv struct {
	server    *httptest.Server
	cartStore *fakeCartStore
	catStore  *fakeCatalogStore
	orders    *fakeOrderStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cartStore := newFakeCartStore()
	catStore := newFakeCatalogStore()
	orders := &fakeOrderStore{}

	catalog := service.NewCatalogService(catStore, noopCatalogCache{})
	carts := service.NewCartService(cartStore, noopCartCache{}, catalog, photos.NewGate(), fakeUploader{})
	checkout := service.NewCheckoutService(carts, catalog, orders, payment.NewAlwaysApproveProvider())
	orderSvc := service.NewOrderService(orders)

	router := NewRouter(Handlers{
		Catalog:  NewCatalogHandler(catalog),
		Cart:     NewCartHandler(carts, catalog),
		Checkout: NewCheckoutHandler(checkout),
		Orders:   NewOrdersHandler(orderSvc),
		Upload:   NewUploadHandler(photos.NewGate(), fakeUploader{}),
	}, 30*time.Second)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, cartStore: cartStore, catStore: catStore, orders: orders}
}

func (e *testEnv) do(t *testing.T, method, path string, body io.Reader) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, e.server.URL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
