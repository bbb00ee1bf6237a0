// Package ocr calls the external text-extraction microservice. The service
// is consumed as a capability; this client knows nothing about the OCR
// engine behind it.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"wathiq/internal/platform/config"
)

// Client calls the OCR microservice.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client from config.
func New(cfg config.OCRConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type extractRequest struct {
	Image string `json:"image"` // base64-encoded image bytes
	Lang  string `json:"lang"`
}

type extractResponse struct {
	Text string `json:"text"`
}

// ExtractText submits an image and returns the recognized text. An empty
// string means the service ran but recovered nothing usable (low
// confidence); transport and server errors are returned as errors so the
// caller can distinguish an unreachable service from an unreadable card.
func (c *Client) ExtractText(ctx context.Context, image []byte) (string, error) {
	payload, err := json.Marshal(extractRequest{
		Image: base64.StdEncoding.EncodeToString(image),
		Lang:  "ara",
	})
	if err != nil {
		return "", fmt.Errorf("encode ocr request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build ocr request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ocr service returned %d: %s", resp.StatusCode, body)
	}

	var out extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode ocr response: %w", err)
	}
	return out.Text, nil
}
