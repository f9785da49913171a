// Package embedding provides a client for the text embedding endpoint.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golf-search-go/internal/config"
	"golf-search-go/pkg/log"
)

const embeddingsAPIVersion = "2023-05-15"

// Client defines the interface for a text embedding client.
type Client interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type deploymentClient struct {
	cfg        config.OpenAIConfig
	dimensions int
	client     *http.Client
}

// NewClient creates an embedding client bound to the configured deployment.
// It fails when the configured dimension is not numeric: no component may
// proceed without a valid embedding dimension.
func NewClient(cfg config.OpenAIConfig) (Client, error) {
	dims, err := cfg.Dimensions()
	if err != nil {
		return nil, err
	}
	return &deploymentClient{
		cfg:        cfg,
		dimensions: dims,
		client:     &http.Client{},
	}, nil
}

type embeddingRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// CreateEmbedding calls the embedding deployment and returns the vector for
// the given text. A vector whose length differs from the configured
// dimension is an error, not a value to pass along.
func (c *deploymentClient) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	reqBody := embeddingRequest{
		Input: []string{text},
		Model: c.cfg.EmbeddingModel,
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding request: %w", err)
	}

	requestURL := fmt.Sprintf("%s/openai/deployments/%s/embeddings?api-version=%s",
		strings.TrimRight(c.cfg.Endpoint, "/"), c.cfg.EmbeddingDeployment, embeddingsAPIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(reqBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call embedding api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Errorf("[EmbeddingClient] embedding api returned %s", resp.Status)
		return nil, fmt.Errorf("embedding api returned non-200 status: %s", resp.Status)
	}

	var embeddingResp embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&embeddingResp); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}

	if len(embeddingResp.Data) == 0 || len(embeddingResp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("received empty embedding from api")
	}

	vector := embeddingResp.Data[0].Embedding
	if len(vector) != c.dimensions {
		return nil, fmt.Errorf("embedding dimension mismatch: got %d, index declares %d", len(vector), c.dimensions)
	}
	return vector, nil
}
