// Package handler contains the HTTP endpoints.
package handler

import (
	"errors"
	"net/http"

	"golf-search-go/internal/model"
	"golf-search-go/internal/service"
	"golf-search-go/pkg/search"

	"github.com/gin-gonic/gin"
)

// IndexHandler exposes index administration endpoints.
type IndexHandler struct {
	indexService service.IndexService
}

// NewIndexHandler creates an IndexHandler.
func NewIndexHandler(indexService service.IndexService) *IndexHandler {
	return &IndexHandler{indexService: indexService}
}

type createIndexRequest struct {
	Name string `json:"name" binding:"required"`
	Mode string `json:"mode"`
}

// CreateIndex handles POST /indexes. Mode defaults to "text".
func (h *IndexHandler) CreateIndex(c *gin.Context) {
	var req createIndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	mode := model.IndexMode(req.Mode)
	if mode == "" {
		mode = model.ModeText
	}
	if mode != model.ModeText && mode != model.ModeTextImage {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be \"text\" or \"textimage\""})
		return
	}

	if err := h.indexService.CreateIndex(c.Request.Context(), req.Name, mode); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": req.Name, "mode": mode})
}

// DeleteIndex handles DELETE /indexes/:name.
func (h *IndexHandler) DeleteIndex(c *gin.Context) {
	name := c.Param("name")
	if err := h.indexService.DeleteIndex(c.Request.Context(), name); err != nil {
		if errors.Is(err, search.ErrIndexNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "index not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListIndexes handles GET /indexes.
func (h *IndexHandler) ListIndexes(c *gin.Context) {
	names, err := h.indexService.ListIndexNames(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"indexes": names})
}

// GetIndex handles GET /indexes/:name.
func (h *IndexHandler) GetIndex(c *gin.Context) {
	details, err := h.indexService.GetIndexDetails(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, search.ErrIndexNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "index not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, details)
}

// GetStatistics handles GET /indexes/:name/stats.
func (h *IndexHandler) GetStatistics(c *gin.Context) {
	stats, err := h.indexService.GetStatistics(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, search.ErrIndexNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "index not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
