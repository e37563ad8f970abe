package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/nickatkani/kani-hampers/internal/domain"
	"github.com/nickatkani/kani-hampers/internal/photos"
	"github.com/nickatkani/kani-hampers/internal/service"
)

type CartHandler struct {
	carts   *service.CartService
	catalog *service.CatalogService
}

func NewCartHandler(carts *service.CartService, catalog *service.CatalogService) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

type selectHamperDTO struct {
	HamperID string `json:"hamperId"`
}

type setMessageDTO struct {
	Message string `json:"message"`
}

type addLineDTO struct {
	Kind   string `json:"kind"`
	ItemID string `json:"itemId"`
}

// cartResponse wraps the cart with its computed total so clients never
// sum prices themselves.
type cartResponse struct {
	*domain.Cart
	Total     float64 `json:"total"`
	MaxPhotos int     `json:"maxPhotos"`
}

func (h *CartHandler) respondCart(w http.ResponseWriter, r *http.Request, status int, cart *domain.Cart) {
	pricing := h.catalog.Pricing(r.Context())
	respondJSON(w, status, cartResponse{
		Cart:      cart,
		Total:     cart.Total(pricing),
		MaxPhotos: domain.MaxPhotos(cart.HamperID()),
	})
}

func sessionID(r *http.Request) string {
	return chi.URLParam(r, "sessionID")
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetCart(r.Context(), sessionID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondCart(w, r, http.StatusOK, cart)
}

func (h *CartHandler) SelectHamper(w http.ResponseWriter, r *http.Request) {
	var req selectHamperDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cart, err := h.carts.SelectHamper(r.Context(), sessionID(r), req.HamperID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondCart(w, r, http.StatusOK, cart)
}

func (h *CartHandler) SetMessage(w http.ResponseWriter, r *http.Request) {
	var req setMessageDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cart, err := h.carts.SetMessage(r.Context(), sessionID(r), req.Message)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondCart(w, r, http.StatusOK, cart)
}

func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req addLineDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cart, err := h.carts.AddLine(r.Context(), sessionID(r), domain.LineKind(req.Kind), req.ItemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondCart(w, r, http.StatusCreated, cart)
}

func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	kind := domain.LineKind(chi.URLParam(r, "kind"))
	itemID := chi.URLParam(r, "itemID")

	cart, err := h.carts.RemoveLine(r.Context(), sessionID(r), kind, itemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondCart(w, r, http.StatusOK, cart)
}

type photoResult struct {
	Filename string `json:"filename"`
	Ref      string `json:"ref,omitempty"`
	Error    string `json:"error,omitempty"`
}

// UploadPhotos accepts a multipart batch. Each admitted file gets a
// staged placeholder immediately; uploads to the image store then run
// concurrently and patch their own slot as they finish, so an individual
// failure never blocks or reorders the others.
func (h *CartHandler) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(photos.MaxFileSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid multipart body")
		return
	}

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no_file", "no file provided")
		return
	}

	session := sessionID(r)
	results := make([]photoResult, len(files))

	type staged struct {
		index       int
		placeholder string
		info        photos.FileInfo
		data        []byte
	}
	var toUpload []staged

	for i, header := range files {
		results[i].Filename = header.Filename

		info := photos.FileInfo{
			Name:        header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
		}

		placeholder, err := h.carts.StagePhoto(r.Context(), session, info)
		if err != nil {
			results[i].Error = err.Error()
			continue
		}
		results[i].Ref = placeholder

		data, err := readMultipartFile(header)
		if err != nil {
			results[i].Error = err.Error()
			continue
		}

		toUpload = append(toUpload, staged{i, placeholder, info, data})
	}

	// Independent uploads; completion order does not matter since each
	// patches its own placeholder.
	var wg sync.WaitGroup
	for _, s := range toUpload {
		wg.Add(1)
		go func(s staged) {
			defer wg.Done()
			_, err := h.carts.CompletePhotoUpload(r.Context(), session, s.placeholder, s.info, bytes.NewReader(s.data))
			if err != nil {
				// local placeholder stays; user may retry or remove
				log.Printf("photo upload failed for %s (request-id %s): %v", s.info.Name, getRequestID(r.Context()), err)
				results[s.index].Error = err.Error()
			}
		}(s)
	}
	wg.Wait()

	cart, err := h.carts.GetCart(r.Context(), session)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	pricing := h.catalog.Pricing(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"cart":    cartResponse{Cart: cart, Total: cart.Total(pricing), MaxPhotos: domain.MaxPhotos(cart.HamperID())},
		"results": results,
	})
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *CartHandler) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		respondError(w, http.StatusBadRequest, "invalid_index", "index must be a non-negative integer")
		return
	}

	cart, err := h.carts.RemovePhoto(r.Context(), sessionID(r), index)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondCart(w, r, http.StatusOK, cart)
}

func (h *CartHandler) Advance(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Advance(r.Context(), sessionID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondCart(w, r, http.StatusOK, cart)
}

func (h *CartHandler) Back(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Back(r.Context(), sessionID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.respondCart(w, r, http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.ClearCart(r.Context(), sessionID(r)); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}
