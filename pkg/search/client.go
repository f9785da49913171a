// Package search provides a client for the remote vector search engine.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golf-search-go/internal/config"
	"golf-search-go/pkg/log"
)

const apiVersion = "2024-07-01"

// ErrIndexNotFound marks name-scoped operations against an index that does
// not exist. Callers branch on it with errors.Is.
var ErrIndexNotFound = errors.New("index not found")

// Client talks to the search engine's REST API.
type Client struct {
	endpoint string
	adminKey string
	client   *http.Client
}

// NewClient creates a search engine client from config.
func NewClient(cfg config.SearchConfig) *Client {
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		adminKey: cfg.AdminKey,
		client:   &http.Client{},
	}
}

// do sends a JSON request and returns the response body for 2xx statuses.
// A 404 maps to ErrIndexNotFound; any other failure carries status and body.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	requestURL := c.endpoint + path + sep + "api-version=" + apiVersion

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.adminKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search engine request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search engine response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrIndexNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Errorf("[SearchClient] engine returned %d: %s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("search engine returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// CreateOrUpdateIndex submits an index schema. The operation is idempotent
// on the engine side: repeating it with the same definition converges.
func (c *Client) CreateOrUpdateIndex(ctx context.Context, index Index) error {
	_, err := c.do(ctx, http.MethodPut, "/indexes/"+url.PathEscape(index.Name), index)
	if err != nil {
		return fmt.Errorf("failed to create or update index %q: %w", index.Name, err)
	}
	log.Infof("[SearchClient] index %q created or updated", index.Name)
	return nil
}

// DeleteIndex removes an index by name.
func (c *Client) DeleteIndex(ctx context.Context, indexName string) error {
	if _, err := c.do(ctx, http.MethodDelete, "/indexes/"+url.PathEscape(indexName), nil); err != nil {
		return err
	}
	log.Infof("[SearchClient] index %q deleted", indexName)
	return nil
}

// ListIndexNames returns the names of all indexes on the service.
func (c *Client) ListIndexNames(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, "/indexes?$select=name", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Value []struct {
			Name string `json:"name"`
		} `json:"value"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode index list: %w", err)
	}

	names := make([]string, 0, len(resp.Value))
	for _, v := range resp.Value {
		names = append(names, v.Name)
	}
	return names, nil
}

// GetIndex fetches the schema of an existing index.
func (c *Client) GetIndex(ctx context.Context, indexName string) (*Index, error) {
	body, err := c.do(ctx, http.MethodGet, "/indexes/"+url.PathEscape(indexName), nil)
	if err != nil {
		return nil, err
	}

	var index Index
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, fmt.Errorf("failed to decode index schema: %w", err)
	}
	return &index, nil
}

// GetStatistics fetches document count and storage sizes for an index.
func (c *Client) GetStatistics(ctx context.Context, indexName string) (*Statistics, error) {
	body, err := c.do(ctx, http.MethodGet, "/indexes/"+url.PathEscape(indexName)+"/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats Statistics
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode index statistics: %w", err)
	}
	return &stats, nil
}

// UploadBatch indexes all documents in one request. Each document is wrapped
// in an "upload" action; a per-document rejection fails the whole call.
func (c *Client) UploadBatch(ctx context.Context, indexName string, docs []interface{}) error {
	if len(docs) == 0 {
		return errors.New("upload batch is empty")
	}

	actions := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		var m map[string]interface{}
		if err := json.Unmarshal(raw, &m); err != nil {
			return fmt.Errorf("failed to prepare document for upload: %w", err)
		}
		m["@search.action"] = "upload"
		actions = append(actions, m)
	}

	body, err := c.do(ctx, http.MethodPost, "/indexes/"+url.PathEscape(indexName)+"/docs/index",
		map[string]interface{}{"value": actions})
	if err != nil {
		return fmt.Errorf("failed to upload batch to index %q: %w", indexName, err)
	}

	var resp struct {
		Value []struct {
			Key          string `json:"key"`
			Status       bool   `json:"status"`
			ErrorMessage string `json:"errorMessage"`
		} `json:"value"`
	}
	if err := json.Unmarshal(body, &resp); err == nil {
		for _, item := range resp.Value {
			if !item.Status {
				return fmt.Errorf("document %q was rejected by the index: %s", item.Key, item.ErrorMessage)
			}
		}
	}

	log.Infof("[SearchClient] uploaded %d documents to index %q", len(docs), indexName)
	return nil
}

// QueryIndex executes a document search and returns the raw hits in the
// engine's ranking order.
func (c *Client) QueryIndex(ctx context.Context, indexName string, query Query) ([]Hit, error) {
	body, err := c.do(ctx, http.MethodPost, "/indexes/"+url.PathEscape(indexName)+"/docs/search", query)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Value []map[string]interface{} `json:"value"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	hits := make([]Hit, 0, len(resp.Value))
	for _, doc := range resp.Value {
		hit := Hit{Document: doc}
		if score, ok := doc["@search.score"].(float64); ok {
			hit.Score = score
		}
		if reranker, ok := doc["@search.rerankerScore"].(float64); ok {
			v := reranker
			hit.RerankerScore = &v
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
