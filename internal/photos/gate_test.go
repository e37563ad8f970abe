package photos

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndStage_AdmitsValidFile(t *testing.T) {
	gate := NewGate()

	ref, err := gate.ValidateAndStage(FileInfo{
		Name:        "family.jpg",
		Size:        2 * 1024 * 1024,
		ContentType: "image/jpeg",
	}, "silver", 0)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, StagingPrefix))
	assert.True(t, IsStaged(ref))
}

func TestValidateAndStage_UniqueReferences(t *testing.T) {
	gate := NewGate()
	file := FileInfo{Name: "a.jpg", Size: 100, ContentType: "image/png"}

	first, err := gate.ValidateAndStage(file, "gold", 0)
	require.NoError(t, err)
	second, err := gate.ValidateAndStage(file, "gold", 1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateAndStage_SizeLimit(t *testing.T) {
	gate := NewGate()

	// exactly at the limit is fine
	_, err := gate.ValidateAndStage(FileInfo{
		Name: "exact.jpg", Size: MaxFileSize, ContentType: "image/jpeg",
	}, "silver", 0)
	assert.NoError(t, err)

	_, err = gate.ValidateAndStage(FileInfo{
		Name: "big.jpg", Size: MaxFileSize + 1, ContentType: "image/jpeg",
	}, "silver", 0)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestValidateAndStage_ContentTypes(t *testing.T) {
	gate := NewGate()

	for _, ct := range []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp", "IMAGE/PNG"} {
		_, err := gate.ValidateAndStage(FileInfo{Name: "a", Size: 100, ContentType: ct}, "gold", 0)
		assert.NoError(t, err, ct)
	}

	for _, ct := range []string{"image/svg+xml", "application/pdf", "text/html", ""} {
		_, err := gate.ValidateAndStage(FileInfo{Name: "a", Size: 100, ContentType: ct}, "gold", 0)
		assert.ErrorIs(t, err, ErrUnsupportedType, ct)
	}
}

func TestValidateAndStage_PerHamperLimits(t *testing.T) {
	gate := NewGate()
	file := FileInfo{Name: "a.jpg", Size: 100, ContentType: "image/jpeg"}

	tests := []struct {
		hamperID string
		have     int
		wantErr  bool
	}{
		{"normal", 0, true}, // no photo slots at all
		{"silver", 1, false},
		{"silver", 2, true},
		{"gold", 2, false},
		{"gold", 3, true},
		{"custom", 0, false},
		{"custom", 1, true},
		{"mystery", 0, false}, // unknown hampers default to one slot
		{"mystery", 1, true},
	}

	for _, tt := range tests {
		_, err := gate.ValidateAndStage(file, tt.hamperID, tt.have)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrLimitReached, "%s with %d photos", tt.hamperID, tt.have)
		} else {
			assert.NoError(t, err, "%s with %d photos", tt.hamperID, tt.have)
		}
	}
}

func TestIsStaged(t *testing.T) {
	assert.True(t, IsStaged("staging://0b6a1f3e"))
	assert.False(t, IsStaged("https://img.example.com/a.jpg"))
	assert.False(t, IsStaged(""))
}
