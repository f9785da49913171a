package handler

import (
	"errors"
	"net/http"
	"strconv"

	"golf-search-go/internal/service"
	"golf-search-go/pkg/search"

	"github.com/gin-gonic/gin"
)

// DocumentHandler exposes document listing.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// ListDocuments handles GET /indexes/:name/documents.
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	maxResults := 0
	if raw := c.Query("maxResults"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "maxResults must be a positive integer"})
			return
		}
		maxResults = v
	}

	docs, err := h.documentService.ListDocuments(c.Request.Context(), c.Param("name"), maxResults)
	if err != nil {
		if errors.Is(err, search.ErrIndexNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "index not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(docs), "documents": docs})
}
