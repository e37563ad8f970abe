package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nickatkani/kani-hampers/internal/domain"
	"github.com/nickatkani/kani-hampers/internal/repository"
)

// OrderService backs the admin order board: listing, lookups, status
// transitions through the fixed enum, and explicit deletion.
type OrderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

// CreateOrder persists an externally assembled order record, as when a
// client that completed payment on its own posts the finished order.
func (s *OrderService) CreateOrder(ctx context.Context, order *domain.Order) error {
	return s.repo.CreateOrder(ctx, order)
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

// UpdateStatus applies an admin status transition. Values outside the
// enum are rejected before touching storage, and orders that reached a
// terminal status (delivered, cancelled) stay there.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	if !domain.ValidOrderStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrOrderFinalized, order.Status)
	}

	return s.repo.UpdateOrderStatus(ctx, id, status)
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteOrder(ctx, id)
}
