package service

import (
	"fmt"
	"regexp"

	"github.com/nickatkani/kani-hampers/internal/domain"
)

var (
	nameRegex    = regexp.MustCompile(`^[a-zA-Z\s]{2,}$`)
	emailRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex   = regexp.MustCompile(`^[6-9]\d{9}$`)
	pincodeRegex = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

const minAddressLength = 10

// FieldError reports which delivery field failed validation and why.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ValidateDeliveryInfo checks every mandatory field and stops at the
// first failure. All fields must pass before payment may be initiated.
func ValidateDeliveryInfo(info domain.DeliveryInfo) error {
	if !nameRegex.MatchString(info.Name) {
		return &FieldError{Field: "name", Message: "must be at least 2 letters"}
	}
	if !emailRegex.MatchString(info.Email) {
		return &FieldError{Field: "email", Message: "must be a valid email address"}
	}
	if !phoneRegex.MatchString(info.Phone) {
		return &FieldError{Field: "phone", Message: "must be a 10-digit Indian mobile number"}
	}
	if !pincodeRegex.MatchString(info.Pincode) {
		return &FieldError{Field: "pincode", Message: "must be a valid 6-digit pincode (e.g., 110001)"}
	}
	if len(info.Address) < minAddressLength {
		return &FieldError{Field: "address", Message: fmt.Sprintf("must be at least %d characters", minAddressLength)}
	}
	return nil
}
