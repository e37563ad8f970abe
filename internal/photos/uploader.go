package photos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Uploader pushes image bytes to the durable image store and returns the
// public URL.
type Uploader interface {
	Upload(ctx context.Context, file FileInfo, data io.Reader) (string, error)
}

// HTTPUploader posts images as multipart form data to the image store's
// upload endpoint. Calls run through a circuit breaker so a dead image
// store fails fast instead of tying up request handlers.
type HTTPUploader struct {
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker[string]
}

func NewHTTPUploader(endpoint string) *HTTPUploader {
	settings := gobreaker.Settings{
		Name:    "image-upload",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &HTTPUploader{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
		breaker:  gobreaker.NewCircuitBreaker[string](settings),
	}
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Error   string `json:"error"`
}

func (u *HTTPUploader) Upload(ctx context.Context, file FileInfo, data io.Reader) (string, error) {
	return u.breaker.Execute(func() (string, error) {
		return u.doUpload(ctx, file, data)
	})
}

func (u *HTTPUploader) doUpload(ctx context.Context, file FileInfo, data io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", file.Name)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", fmt.Errorf("copy image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !result.Success {
		if result.Error != "" {
			return "", fmt.Errorf("image store rejected upload: %s", result.Error)
		}
		return "", fmt.Errorf("image store returned status %d", resp.StatusCode)
	}

	return result.URL, nil
}
