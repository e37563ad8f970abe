package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nickatkani/kani-hampers/internal/domain"
	"github.com/nickatkani/kani-hampers/internal/service"
)

type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type catalogItemDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

func (h *CatalogHandler) ListItems(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.catalog.ListItems(r.Context(), collection)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, items)
	}
}

func (h *CatalogHandler) AddItem(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req catalogItemDTO
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}
		if req.ID == "" || req.Name == "" {
			respondError(w, http.StatusBadRequest, "invalid_request", "id and name are required")
			return
		}
		if req.Price < 0 {
			respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
			return
		}

		item := domain.CatalogItem{
			ID:          req.ID,
			Name:        req.Name,
			Price:       req.Price,
			Image:       req.Image,
			Category:    req.Category,
			Description: req.Description,
		}
		if err := h.catalog.AddItem(r.Context(), collection, &item); err != nil {
			handleServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, item)
	}
}

func (h *CatalogHandler) UpdateItem(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req catalogItemDTO
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}
		if req.Price < 0 {
			respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
			return
		}

		item := domain.CatalogItem{
			Name:        req.Name,
			Price:       req.Price,
			Image:       req.Image,
			Category:    req.Category,
			Description: req.Description,
		}
		if err := h.catalog.UpdateItem(r.Context(), collection, id, &item); err != nil {
			handleServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, item)
	}
}

func (h *CatalogHandler) DeleteItem(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := h.catalog.DeleteItem(r.Context(), collection, id); err != nil {
			handleServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
	}
}

func (h *CatalogHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.catalog.GetConfig(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

// ListHampers serves the static hamper lineup.
func (h *CatalogHandler) ListHampers(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, domain.HamperOptions)
}
