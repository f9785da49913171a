// Package vision provides a client for the image vectorization endpoint.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golf-search-go/internal/config"
	"golf-search-go/pkg/log"
)

// The vision service versions are part of the external contract; the vector
// space changes with the model version, so these must not drift.
const (
	visionAPIVersion   = "2024-02-01"
	visionModelVersion = "2023-04-15"

	downloadTimeout = 30 * time.Second
	downloadUA      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client calls the image vectorization endpoint.
type Client struct {
	endpoint string
	key      string
	client   *http.Client
	fetcher  *http.Client
}

// NewClient creates a vision client from config.
func NewClient(cfg config.VisionConfig) *Client {
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		key:      strings.TrimSpace(cfg.Key),
		client:   &http.Client{},
		fetcher:  &http.Client{Timeout: downloadTimeout},
	}
}

type vectorizeResponse struct {
	Vector []float32 `json:"vector"`
}

// EmbedImage posts raw image bytes and returns the image embedding. A 2xx
// response that carries no vector is still an error.
func (c *Client) EmbedImage(ctx context.Context, imageBytes []byte) ([]float32, error) {
	requestURL := fmt.Sprintf("%s/computervision/retrieval:vectorizeImage?api-version=%s&model-version=%s",
		c.endpoint, visionAPIVersion, visionModelVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call vision api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read vision response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Errorf("[VisionClient] vision api returned %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("vision api call failed (status: %d): %s", resp.StatusCode, string(body))
	}

	var result vectorizeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode vision response: %w", err)
	}
	if len(result.Vector) == 0 {
		return nil, fmt.Errorf("no vector embedding generated")
	}
	return result.Vector, nil
}

// EmbedImageURL downloads the image at url and delegates to EmbedImage.
func (c *Client) EmbedImageURL(ctx context.Context, url string) ([]float32, error) {
	imageBytes, err := c.DownloadImage(ctx, url)
	if err != nil {
		return nil, err
	}
	return c.EmbedImage(ctx, imageBytes)
}

// DownloadImage retrieves image bytes over HTTP. Some image hosts reject
// non-browser clients, hence the browser headers.
func (c *Client) DownloadImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set("User-Agent", downloadUA)
	req.Header.Set("Accept", "image/webp,image/apng,image/*,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.fetcher.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status code %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
