package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nickatkani/kani-hampers/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OutboxEvent is one pending order event awaiting publication.
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// Outbox event types.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderRepository persists orders and their outbox events. Writes that
// produce events do so in the same transaction as the order mutation.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	GetUnprocessedEvents(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id uuid.UUID) error
}
