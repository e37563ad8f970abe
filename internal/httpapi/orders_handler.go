package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nickatkani/kani-hampers/internal/domain"
	"github.com/nickatkani/kani-hampers/internal/service"
)

type OrdersHandler struct {
	orders *service.OrderService
}

func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// createOrderDTO is the minimum order shape a backend must accept on
// creation. Status and timestamps are server-assigned regardless of what
// the client sends.
type createOrderDTO struct {
	CustomerName     string                 `json:"customerName"`
	Email            string                 `json:"email"`
	Phone            string                 `json:"phone"`
	Address          string                 `json:"address"`
	Pincode          string                 `json:"pincode"`
	HamperType       string                 `json:"hamperType"`
	HamperTitle      string                 `json:"hamperTitle"`
	HamperPrice      float64                `json:"hamperPrice"`
	Photos           []string               `json:"photos"`
	Message          string                 `json:"message"`
	AdditionalRakhis []domain.CartAddonLine `json:"additionalRakhis"`
	Addons           []domain.CartAddonLine `json:"addons"`
	TotalAmount      float64                `json:"totalAmount"`
	PaymentStatus    string                 `json:"paymentStatus"`
	PaymentID        string                 `json:"paymentId"`
	DeliveryDate     string                 `json:"deliveryDate"`
}

type updateStatusDTO struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.CustomerName == "" || req.HamperType == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "customerName and hamperType are required")
		return
	}
	if req.TotalAmount < 0 {
		respondError(w, http.StatusBadRequest, "invalid_amount", "totalAmount must not be negative")
		return
	}

	photos := req.Photos
	if photos == nil {
		photos = []string{}
	}
	var primary string
	if len(photos) > 0 {
		primary = photos[0]
	}

	now := time.Now()
	order := &domain.Order{
		ID:               uuid.New(),
		CustomerName:     req.CustomerName,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		Pincode:          req.Pincode,
		HamperType:       req.HamperType,
		HamperTitle:      req.HamperTitle,
		HamperPrice:      req.HamperPrice,
		Photo:            primary,
		Photos:           photos,
		Message:          req.Message,
		AdditionalRakhis: emptyIfNil(req.AdditionalRakhis),
		Addons:           emptyIfNil(req.Addons),
		TotalAmount:      req.TotalAmount,
		Status:           domain.OrderStatusPending,
		PaymentStatus:    domain.PaymentStatus(req.PaymentStatus),
		PaymentID:        req.PaymentID,
		DeliveryDate:     req.DeliveryDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := h.orders.CreateOrder(r.Context(), order); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"orderId": order.ID,
	})
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "order id must be a UUID")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "order id must be a UUID")
		return
	}

	var req updateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), id, domain.OrderStatus(req.Status)); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Order status updated successfully"})
}

func (h *OrdersHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "order id must be a UUID")
		return
	}

	if err := h.orders.DeleteOrder(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

func emptyIfNil(lines []domain.CartAddonLine) []domain.CartAddonLine {
	if lines == nil {
		return []domain.CartAddonLine{}
	}
	return lines
}
