package httpapi

import (
	"bytes"
	"net/http"

	"github.com/nickatkani/kani-hampers/internal/photos"
)

// UploadHandler serves standalone image uploads that are not tied to a
// cart session, e.g. catalog item pictures from the admin panel.
type UploadHandler struct {
	gate     *photos.Gate
	uploader photos.Uploader
}

func NewUploadHandler(gate *photos.Gate, uploader photos.Uploader) *UploadHandler {
	return &UploadHandler{gate: gate, uploader: uploader}
}

type uploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(photos.MaxFileSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid multipart body")
		return
	}

	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no_file", "no file provided")
		return
	}
	header := files[0]

	info := photos.FileInfo{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
	}
	if err := h.gate.Validate(info); err != nil {
		handleServiceError(w, err)
		return
	}

	data, err := readMultipartFile(header)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "could not read file")
		return
	}

	url, err := h.uploader.Upload(r.Context(), info, bytes.NewReader(data))
	if err != nil {
		respondError(w, http.StatusBadGateway, "upload_failed", "image store unavailable")
		return
	}

	respondJSON(w, http.StatusCreated, uploadResult{URL: url, Filename: header.Filename})
}
