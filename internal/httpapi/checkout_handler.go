package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/nickatkani/kani-hampers/internal/domain"
	"github.com/nickatkani/kani-hampers/internal/service"
)

type CheckoutHandler struct {
	checkout *service.CheckoutService
}

func NewCheckoutHandler(checkout *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type deliveryInfoDTO struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Pincode      string `json:"pincode"`
	DeliveryDate string `json:"deliveryDate"`
}

// Submit finalizes the session's cart: validates delivery info, charges
// the payment provider, and persists the order. The cart survives any
// failure so the user can retry.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req deliveryInfoDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.checkout.Submit(r.Context(), sessionID(r), domain.DeliveryInfo{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Pincode:      req.Pincode,
		DeliveryDate: req.DeliveryDate,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"orderId": order.ID,
		"order":   order,
	})
}
