package document

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OCRClient talks to the OCR engine sidecar that wraps Tesseract. The
// engine holds its own resources; this client is constructed once and
// shared read-only.
type OCRClient struct {
	baseURL string
	http    *http.Client
}

// OCRClientConfig configures the OCR client
type OCRClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewOCRClient creates a reusable OCR client
func NewOCRClient(cfg OCRClientConfig) *OCRClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &OCRClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Health checks OCR engine availability
func (c *OCRClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("OCR engine unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("OCR engine unhealthy: %s", resp.Status)
	}
	return nil
}

// Recognize runs OCR over image bytes and returns the raw recognized
// text. A transport failure means the engine is unavailable; the caller
// maps that to a processing error.
func (c *OCRClient) Recognize(ctx context.Context, image []byte, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ocr", bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR engine unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("OCR error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode OCR response: %w", err)
	}

	return result.Text, nil
}
