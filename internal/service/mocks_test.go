package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/nickatkani/kani-hampers/internal/cache"
	"github.com/nickatkani/kani-hampers/internal/domain"
	"github.com/nickatkani/kani-hampers/internal/payment"
	"github.com/nickatkani/kani-hampers/internal/photos"
	"github.com/nickatkani/kani-hampers/internal/repository"
)

type mockCartRepo struct {
	m     sync.RWMutex
	carts map[string]*domain.Cart
	err   error
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[string]*domain.Cart)}
}

// cloneCart copies the cart the way Mongo hands back a fresh document on
// every read: nothing in the returned cart aliases the stored one.
func cloneCart(cart *domain.Cart) *domain.Cart {
	copied := *cart
	if cart.Hamper != nil {
		hamper := *cart.Hamper
		hamper.Includes = append([]string(nil), cart.Hamper.Includes...)
		copied.Hamper = &hamper
	}
	copied.Photos = append([]string(nil), cart.Photos...)
	copied.AdditionalRakhis = append([]domain.CartAddonLine(nil), cart.AdditionalRakhis...)
	copied.Addons = append([]domain.CartAddonLine(nil), cart.Addons...)
	return &copied
}

func (m *mockCartRepo) GetCart(_ context.Context, sessionID string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	cart, ok := m.carts[sessionID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	return cloneCart(cart), nil
}

func (m *mockCartRepo) UpsertCart(_ context.Context, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.carts[cart.ID] = cloneCart(cart)
	return nil
}

func (m *mockCartRepo) DeleteCart(_ context.Context, sessionID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.carts[sessionID]; !ok {
		return repository.ErrCartNotFound
	}
	delete(m.carts, sessionID)
	return nil
}

type mockCartCache struct {
	m    sync.RWMutex
	cart *domain.Cart
	err  error
}

func (m *mockCartCache) Get(context.Context, string) (*domain.Cart, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.cart, nil
}

func (m *mockCartCache) Set(_ context.Context, _ string, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = cart
	return m.err
}

func (m *mockCartCache) Delete(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.cart = nil
	return m.err
}

type mockCatalogReader struct {
	items map[string]domain.CatalogItem // key collection/id
	err   error
}

func (m *mockCatalogReader) FindItem(_ context.Context, collection, id string) (*domain.CatalogItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[collection+"/"+id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", repository.ErrItemNotFound, collection, id)
	}
	return &item, nil
}

type mockCatalogRepo struct {
	m      sync.RWMutex
	items  map[string][]domain.CatalogItem
	config *domain.StoreConfig
	err    error
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{items: make(map[string][]domain.CatalogItem)}
}

func (m *mockCatalogRepo) ListItems(_ context.Context, collection string) ([]domain.CatalogItem, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.CatalogItem{}, m.items[collection]...), nil
}

func (m *mockCatalogRepo) InsertItem(_ context.Context, collection string, item *domain.CatalogItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items[collection] = append(m.items[collection], *item)
	return nil
}

func (m *mockCatalogRepo) UpdateItem(_ context.Context, collection, id string, item *domain.CatalogItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i := range m.items[collection] {
		if m.items[collection][i].ID == id {
			m.items[collection][i] = *item
			return nil
		}
	}
	return repository.ErrItemNotFound
}

func (m *mockCatalogRepo) DeleteItem(_ context.Context, collection, id string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	list := m.items[collection]
	for i := range list {
		if list[i].ID == id {
			m.items[collection] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrItemNotFound
}

func (m *mockCatalogRepo) GetConfig(context.Context) (*domain.StoreConfig, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.config == nil {
		return nil, repository.ErrConfigNotFound
	}
	return m.config, nil
}

type mockCatalogCache struct {
	m       sync.RWMutex
	lists   map[string][]domain.CatalogItem
	nSets   int
	deletes []string
}

func newMockCatalogCache() *mockCatalogCache {
	return &mockCatalogCache{lists: make(map[string][]domain.CatalogItem)}
}

func (m *mockCatalogCache) GetItems(_ context.Context, collection string) ([]domain.CatalogItem, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	items, ok := m.lists[collection]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return items, nil
}

func (m *mockCatalogCache) SetItems(_ context.Context, collection string, items []domain.CatalogItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.lists[collection] = items
	m.nSets++
	return nil
}

func (m *mockCatalogCache) DeleteItems(_ context.Context, collection string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.lists, collection)
	m.deletes = append(m.deletes, collection)
	return nil
}

type mockUploader struct {
	m      sync.Mutex
	err    error
	urls   map[string]string // filename -> durable URL
	nCalls int
}

func (m *mockUploader) Upload(_ context.Context, file photos.FileInfo, _ io.Reader) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.nCalls++
	if m.err != nil {
		return "", m.err
	}
	if url, ok := m.urls[file.Name]; ok {
		return url, nil
	}
	return "https://img.example.com/" + file.Name, nil
}

type mockOrderRepo struct {
	m      sync.Mutex
	orders []*domain.Order
	events []repository.OutboxEvent
	err    error
}

func (m *mockOrderRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	copied := *order
	m.orders = append(m.orders, &copied)
	return nil
}

func (m *mockOrderRepo) ListOrders(context.Context) ([]domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Order, len(m.orders))
	for i, o := range m.orders {
		out[i] = *o
	}
	return out, nil
}

func (m *mockOrderRepo) GetOrderByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, o := range m.orders {
		if o.ID == id {
			copied := *o
			return &copied, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *mockOrderRepo) UpdateOrderStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, o := range m.orders {
		if o.ID == id {
			o.Status = status
			return nil
		}
	}
	return repository.ErrOrderNotFound
}

func (m *mockOrderRepo) DeleteOrder(_ context.Context, id uuid.UUID) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, o := range m.orders {
		if o.ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return repository.ErrOrderNotFound
}

func (m *mockOrderRepo) GetUnprocessedEvents(context.Context, int) ([]repository.OutboxEvent, error) {
	m.m.Lock()
	defer m.m.Unlock()
	return m.events, m.err
}

func (m *mockOrderRepo) MarkEventAsProcessed(context.Context, uuid.UUID) error {
	return m.err
}

type mockProvider struct {
	result *payment.ChargeResult
	err    error
	amount float64
}

func (m *mockProvider) Charge(_ context.Context, _ string, amount float64) (*payment.ChargeResult, error) {
	m.amount = amount
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func approvingProvider() *mockProvider {
	return &mockProvider{result: &payment.ChargeResult{
		Status:    payment.ChargeStatusSuccess,
		PaymentID: "TXN-test-1",
	}}
}
