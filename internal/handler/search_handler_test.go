package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"golf-search-go/internal/model"
	"golf-search-go/pkg/log"
	"golf-search-go/pkg/search"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	log.Init("error", "json", "")
	os.Exit(m.Run())
}

type fakeSearchService struct {
	gotIndex     string
	gotReq       model.SearchTextRequest
	gotImages    [][]byte
	results      []model.GolfBallSummary
	imageResults []model.ImageSearchResult
	err          error
}

func (f *fakeSearchService) SearchText(_ context.Context, indexName string, req model.SearchTextRequest) ([]model.GolfBallSummary, error) {
	f.gotIndex = indexName
	f.gotReq = req
	return f.results, f.err
}

func (f *fakeSearchService) SearchByImage(_ context.Context, indexName string, imageBytes []byte, _ model.ImageSearchRequest) ([]model.ImageSearchResult, error) {
	f.gotIndex = indexName
	f.gotImages = append(f.gotImages, imageBytes)
	return f.imageResults, f.err
}

func newSearchRouter(svc *fakeSearchService) *gin.Engine {
	h := NewSearchHandler(svc)
	router := gin.New()
	router.POST("/indexes/:name/search", h.SearchText)
	router.POST("/indexes/:name/search/image", h.SearchByImage)
	return router
}

func TestSearchTextEmptyBodyUsesDefaults(t *testing.T) {
	svc := &fakeSearchService{}
	router := newSearchRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/indexes/golfballs/search", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "golfballs", svc.gotIndex)
	assert.Equal(t, model.DefaultSearchTextRequest(), svc.gotReq)
}

func TestSearchTextPartialBodyKeepsOtherDefaults(t *testing.T) {
	svc := &fakeSearchService{}
	router := newSearchRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/indexes/golfballs/search",
		strings.NewReader(`{"query":"yellow Srixon","textOnly":true}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "yellow Srixon", svc.gotReq.Query)
	assert.True(t, svc.gotReq.TextOnly)
	assert.Equal(t, 3, svc.gotReq.K)
	assert.Equal(t, 10, svc.gotReq.Top)
	assert.Equal(t, 2.0, svc.gotReq.MinRerankerScore)
}

func TestSearchTextMissingIndexReturns404(t *testing.T) {
	svc := &fakeSearchService{err: fmt.Errorf("text search failed: %w", search.ErrIndexNotFound)}
	router := newSearchRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/indexes/missing/search", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchTextRejectsMalformedBody(t *testing.T) {
	router := newSearchRouter(&fakeSearchService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/indexes/golfballs/search", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartImages(t *testing.T, names ...string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, name := range names {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("bytes-of-" + name))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestSearchByImageSearchesEachFile(t *testing.T) {
	svc := &fakeSearchService{imageResults: []model.ImageSearchResult{{Score: 0.9}}}
	router := newSearchRouter(svc)

	body, contentType := multipartImages(t, "a.jpg", "b.jpg")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/indexes/golfballs-mm/search/image", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, svc.gotImages, 2)

	var resp struct {
		Images []struct {
			FileName string `json:"fileName"`
		} `json:"images"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Images, 2)
	assert.Equal(t, "a.jpg", resp.Images[0].FileName)
	assert.Equal(t, "b.jpg", resp.Images[1].FileName)
}

func TestSearchByImageRequiresFiles(t *testing.T) {
	router := newSearchRouter(&fakeSearchService{})

	body, contentType := multipartImages(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/indexes/golfballs-mm/search/image", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
