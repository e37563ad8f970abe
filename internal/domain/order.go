package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a member of the status enum.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// PaymentStatus mirrors what the payment collaborator reported for an order.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// DeliveryInfo is the recipient block collected at the review step. It is
// validated in full before an order may be submitted.
type DeliveryInfo struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Pincode      string `json:"pincode"`
	DeliveryDate string `json:"deliveryDate"`
}

// Order is the persisted record derived from a cart plus delivery info.
type Order struct {
	ID               uuid.UUID       `json:"id"`
	CustomerName     string          `json:"customerName"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Address          string          `json:"address"`
	Pincode          string          `json:"pincode"`
	HamperType       string          `json:"hamperType"`
	HamperTitle      string          `json:"hamperTitle"`
	HamperPrice      float64         `json:"hamperPrice"`
	Photo            string          `json:"photoURL"`
	Photos           []string        `json:"photos"`
	Message          string          `json:"message"`
	AdditionalRakhis []CartAddonLine `json:"additionalRakhis"`
	Addons           []CartAddonLine `json:"addons"`
	TotalAmount      float64         `json:"totalAmount"`
	Status           OrderStatus     `json:"status"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus"`
	PaymentID        string          `json:"paymentId"`
	DeliveryDate     string          `json:"deliveryDate"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}
