package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"golf-search-go/internal/model"
	"golf-search-go/internal/service"
	"golf-search-go/pkg/log"
	"golf-search-go/pkg/search"

	"github.com/gin-gonic/gin"
)

// SearchHandler exposes the query endpoints.
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchText handles POST /indexes/:name/search. The body is merged over the
// default request, so a caller may send only the fields it wants to change
// (or no body at all).
func (h *SearchHandler) SearchText(c *gin.Context) {
	req := model.DefaultSearchTextRequest()
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	results, err := h.searchService.SearchText(c.Request.Context(), c.Param("name"), req)
	if err != nil {
		if errors.Is(err, search.ErrIndexNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "index not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

// SearchByImage handles POST /indexes/:name/search/image. The multipart form
// may carry several files under "images"; each is searched independently and
// one unreadable or unembeddable file does not fail the others.
func (h *SearchHandler) SearchByImage(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart form data"})
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no images provided"})
		return
	}

	req := model.ImageSearchRequest{
		K:               intQuery(c, "k", 3),
		Top:             intQuery(c, "top", 10),
		Filter:          c.Query("filter"),
		SemanticRanking: c.Query("semantic") == "true",
	}

	type imageResult struct {
		FileName string                    `json:"fileName"`
		Results  []model.ImageSearchResult `json:"results,omitempty"`
		Error    string                    `json:"error,omitempty"`
	}

	responses := make([]imageResult, 0, len(files))
	for _, fh := range files {
		entry := imageResult{FileName: fh.Filename}

		f, err := fh.Open()
		if err != nil {
			entry.Error = "failed to read uploaded file"
			responses = append(responses, entry)
			continue
		}
		imageBytes, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			entry.Error = "failed to read uploaded file"
			responses = append(responses, entry)
			continue
		}

		results, err := h.searchService.SearchByImage(c.Request.Context(), c.Param("name"), imageBytes, req)
		if err != nil {
			log.Errorf("[SearchHandler] image search failed for %q: %v", fh.Filename, err)
			entry.Error = err.Error()
		} else {
			entry.Results = results
		}
		responses = append(responses, entry)
	}

	c.JSON(http.StatusOK, gin.H{"images": responses})
}

// intQuery reads an integer query parameter with a default.
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
