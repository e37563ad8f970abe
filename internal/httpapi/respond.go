package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/nickatkani/kani-hampers/internal/photos"
	"github.com/nickatkani/kani-hampers/internal/repository"
	"github.com/nickatkani/kani-hampers/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
	})
}

// handleServiceError maps service-layer errors to HTTP responses. All of
// them are recoverable by user action; nothing here is fatal.
func handleServiceError(w http.ResponseWriter, err error) {
	var fieldErr *service.FieldError
	switch {
	case errors.As(err, &fieldErr):
		respondError(w, http.StatusBadRequest, "invalid_"+fieldErr.Field, fieldErr.Error())
	case errors.Is(err, photos.ErrFileTooLarge):
		respondError(w, http.StatusBadRequest, "file_too_large", err.Error())
	case errors.Is(err, photos.ErrUnsupportedType):
		respondError(w, http.StatusBadRequest, "unsupported_type", err.Error())
	case errors.Is(err, photos.ErrLimitReached):
		respondError(w, http.StatusBadRequest, "photo_limit_reached", err.Error())
	case errors.Is(err, service.ErrUnknownHamper),
		errors.Is(err, service.ErrUnknownLineKind),
		errors.Is(err, service.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, service.ErrNoHamperSelected),
		errors.Is(err, service.ErrPhotoQuotaNotMet),
		errors.Is(err, service.ErrNotAtReview),
		errors.Is(err, service.ErrReviewNeedsOrder),
		errors.Is(err, service.ErrAlreadyConfirmed):
		respondError(w, http.StatusConflict, "wizard_state", err.Error())
	case errors.Is(err, service.ErrOrderFinalized):
		respondError(w, http.StatusConflict, "order_finalized", err.Error())
	case errors.Is(err, service.ErrPaymentFailed):
		respondError(w, http.StatusPaymentRequired, "payment_failed", err.Error())
	case errors.Is(err, service.ErrUploadFailed):
		respondError(w, http.StatusBadGateway, "upload_failed", err.Error())
	case errors.Is(err, service.ErrSubmissionFailed):
		respondError(w, http.StatusServiceUnavailable, "submission_failed", err.Error())
	case errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrItemNotFound),
		errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, repository.ErrConfigNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
