package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"golf-search-go/internal/config"
	"golf-search-go/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Init("error", "json", "")
	os.Exit(m.Run())
}

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(config.SearchConfig{Endpoint: server.URL, AdminKey: "admin-key"})
	return client, server
}

func TestCreateOrUpdateIndexSendsSchema(t *testing.T) {
	var gotMethod, gotPath, gotKey, gotVersion string
	var gotBody map[string]interface{}

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotKey = r.Header.Get("api-key")
		gotVersion = r.URL.Query().Get("api-version")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	})
	defer server.Close()

	err := client.CreateOrUpdateIndex(context.Background(), Index{Name: "golfballs"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/indexes/golfballs", gotPath)
	assert.Equal(t, "admin-key", gotKey)
	assert.Equal(t, "2024-07-01", gotVersion)
	assert.Equal(t, "golfballs", gotBody["name"])
}

func TestGetIndexMapsNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	_, err := client.GetIndex(context.Background(), "missing")
	require.ErrorIs(t, err, ErrIndexNotFound)
}

func TestDoReportsEngineError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"overloaded"}`))
	})
	defer server.Close()

	err := client.DeleteIndex(context.Background(), "golfballs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "overloaded")
}

func TestListIndexNames(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "name", r.URL.Query().Get("$select"))
		_, _ = w.Write([]byte(`{"value":[{"name":"golfballs"},{"name":"golfballs-mm"}]}`))
	})
	defer server.Close()

	names, err := client.ListIndexNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"golfballs", "golfballs-mm"}, names)
}

func TestGetStatistics(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/indexes/golfballs/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{"documentCount":12,"vectorIndexSize":2048,"storageSize":8192}`))
	})
	defer server.Close()

	stats, err := client.GetStatistics(context.Background(), "golfballs")
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.DocumentCount)
	assert.Equal(t, int64(2048), stats.VectorIndexSize)
	assert.Equal(t, int64(8192), stats.StorageSize)
}

func TestUploadBatchWrapsDocumentsInUploadActions(t *testing.T) {
	var gotBody struct {
		Value []map[string]interface{} `json:"value"`
	}

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/indexes/golfballs/docs/index", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"value":[{"key":"1","status":true}]}`))
	})
	defer server.Close()

	err := client.UploadBatch(context.Background(), "golfballs",
		[]interface{}{map[string]interface{}{"id": "1", "manufacturer": "Pinetree"}})
	require.NoError(t, err)

	require.Len(t, gotBody.Value, 1)
	assert.Equal(t, "upload", gotBody.Value[0]["@search.action"])
	assert.Equal(t, "Pinetree", gotBody.Value[0]["manufacturer"])
}

func TestUploadBatchRejectedDocumentFailsCall(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"value":[{"key":"1","status":false,"errorMessage":"dimension mismatch"}]}`))
	})
	defer server.Close()

	err := client.UploadBatch(context.Background(), "golfballs", []interface{}{map[string]interface{}{"id": "1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension mismatch")
}

func TestUploadBatchRejectsEmptyBatch(t *testing.T) {
	client := NewClient(config.SearchConfig{Endpoint: "http://unused", AdminKey: "k"})
	err := client.UploadBatch(context.Background(), "golfballs", nil)
	require.Error(t, err)
}

func TestQueryIndexExtractsScores(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/indexes/golfballs/docs/search", r.URL.Path)
		_, _ = w.Write([]byte(`{"value":[
			{"@search.score":0.8,"@search.rerankerScore":2.4,"id":"1"},
			{"@search.score":0.5,"id":"2"}
		]}`))
	})
	defer server.Close()

	hits, err := client.QueryIndex(context.Background(), "golfballs", Query{})
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, 0.8, hits[0].Score)
	require.NotNil(t, hits[0].RerankerScore)
	assert.Equal(t, 2.4, *hits[0].RerankerScore)

	assert.Equal(t, 0.5, hits[1].Score)
	assert.Nil(t, hits[1].RerankerScore)
}
