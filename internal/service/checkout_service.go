package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nickatkani/kani-hampers/internal/domain"
	"github.com/nickatkani/kani-hampers/internal/payment"
	"github.com/nickatkani/kani-hampers/internal/repository"
)

// CheckoutService turns a reviewed cart plus delivery info into a
// persisted order. The cart is cleared only after the order write is
// acknowledged; any failure leaves it intact so the user can retry.
type CheckoutService struct {
	carts   *CartService
	catalog *CatalogService
	orders  repository.OrderRepository
	payment payment.Provider
}

func NewCheckoutService(carts *CartService, catalog *CatalogService, orders repository.OrderRepository, provider payment.Provider) *CheckoutService {
	return &CheckoutService{
		carts:   carts,
		catalog: catalog,
		orders:  orders,
		payment: provider,
	}
}

// Submit drives ReviewAndPay to OrderConfirmed: delivery info must pass
// full validation and the payment provider must confirm the charge before
// the order record is written.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, info domain.DeliveryInfo) (*domain.Order, error) {
	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if cart.Step == domain.StepConfirmed {
		return nil, ErrAlreadyConfirmed
	}
	if cart.Step != domain.StepReview {
		return nil, fmt.Errorf("%w: at %q", ErrNotAtReview, cart.Step)
	}
	if cart.Hamper == nil {
		return nil, ErrNoHamperSelected
	}

	if err := ValidateDeliveryInfo(info); err != nil {
		return nil, err
	}

	pricing := s.catalog.Pricing(ctx)
	total := cart.Total(pricing)

	order := buildOrder(cart, info, total)

	charge, err := s.payment.Charge(ctx, order.ID.String(), total)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	if charge.Status != payment.ChargeStatusSuccess {
		// The provider answered and said no, as opposed to a transport
		// failure where the charge outcome is unknown.
		return nil, fmt.Errorf("%w: %w: %s", ErrPaymentFailed, payment.ErrPaymentDeclined, charge.FailureReason)
	}

	order.PaymentStatus = domain.PaymentStatusCompleted
	order.PaymentID = charge.PaymentID

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		// Payment went through but the write failed. Keep the cart so
		// the user retains context and can retry with support.
		log.Printf("order write failed for session %s after payment %s: %v", sessionID, charge.PaymentID, err)
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		// The order is safely persisted; a stale cart is only cosmetic.
		log.Printf("clear cart failed for session %s: %v", sessionID, err)
	}

	return order, nil
}

func buildOrder(cart *domain.Cart, info domain.DeliveryInfo, total float64) *domain.Order {
	now := time.Now()
	return &domain.Order{
		ID:               uuid.New(),
		CustomerName:     info.Name,
		Email:            info.Email,
		Phone:            info.Phone,
		Address:          info.Address,
		Pincode:          info.Pincode,
		HamperType:       cart.Hamper.ID,
		HamperTitle:      cart.Hamper.Title,
		HamperPrice:      cart.Hamper.Price,
		Photo:            cart.Photo,
		Photos:           append([]string{}, cart.Photos...),
		Message:          cart.Message,
		AdditionalRakhis: append([]domain.CartAddonLine{}, cart.AdditionalRakhis...),
		Addons:           append([]domain.CartAddonLine{}, cart.Addons...),
		TotalAmount:      total,
		Status:           domain.OrderStatusPending,
		DeliveryDate:     info.DeliveryDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
