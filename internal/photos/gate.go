// Package photos admits or rejects candidate images before they become
// cart photo entries, and drives the two-phase upload: a local staging
// reference is handed out immediately and later swapped in place for the
// durable URL once the remote store acknowledges the upload.
package photos

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nickatkani/kani-hampers/internal/domain"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrLimitReached    = errors.New("photo limit reached for this hamper")
)

// MaxFileSize is the authoritative upload limit. The storefront historically
// carried both a 2MB and a 5MB limit; 5MB is the one the backend enforced.
const MaxFileSize = 5 * 1024 * 1024

// allowedTypes are the accepted image MIME types.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// StagingPrefix marks a photo reference that has not been uploaded yet.
const StagingPrefix = "staging://"

// FileInfo describes a candidate upload. Only metadata is needed for
// admission; the bytes flow through the uploader separately.
type FileInfo struct {
	Name        string
	Size        int64
	ContentType string
}

// Gate validates candidate images against the size, type and per-hamper
// count limits.
type Gate struct {
	maxFileSize int64
}

func NewGate() *Gate {
	return &Gate{maxFileSize: MaxFileSize}
}

// Validate checks a candidate image against the size and type limits,
// independent of any cart.
func (g *Gate) Validate(file FileInfo) error {
	if file.Size > g.maxFileSize {
		return fmt.Errorf("%w: %s is %.2fMB, limit is %dMB",
			ErrFileTooLarge, file.Name, float64(file.Size)/(1024*1024), g.maxFileSize/(1024*1024))
	}

	if !allowedTypes[strings.ToLower(file.ContentType)] {
		return fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, file.Name, file.ContentType)
	}

	return nil
}

// ValidateAndStage checks a candidate image and, if admitted, returns the
// opaque staging reference to append to the cart's photos. The reference
// is later patched to the durable URL at the same slot.
func (g *Gate) ValidateAndStage(file FileInfo, hamperID string, currentPhotoCount int) (string, error) {
	if err := g.Validate(file); err != nil {
		return "", err
	}

	if currentPhotoCount >= domain.MaxPhotos(hamperID) {
		return "", fmt.Errorf("%w: already have %d of %d",
			ErrLimitReached, currentPhotoCount, domain.MaxPhotos(hamperID))
	}

	return StagingPrefix + uuid.NewString(), nil
}

// IsStaged reports whether ref is a staging placeholder rather than a
// durable URL.
func IsStaged(ref string) bool {
	return strings.HasPrefix(ref, StagingPrefix)
}
