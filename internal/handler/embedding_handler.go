package handler

import (
	"errors"
	"net/http"

	"golf-search-go/internal/model"
	"golf-search-go/internal/repository"
	"golf-search-go/internal/service"

	"github.com/gin-gonic/gin"
)

// EmbeddingHandler exposes the bulk embedding job endpoints.
type EmbeddingHandler struct {
	embeddingService service.EmbeddingService
}

// NewEmbeddingHandler creates an EmbeddingHandler.
func NewEmbeddingHandler(embeddingService service.EmbeddingService) *EmbeddingHandler {
	return &EmbeddingHandler{embeddingService: embeddingService}
}

type startJobRequest struct {
	Mode string `json:"mode"`
}

// StartJob handles POST /indexes/:name/embed. The job runs asynchronously;
// the response carries the id to poll.
func (h *EmbeddingHandler) StartJob(c *gin.Context) {
	var req startJobRequest
	// An empty body is fine, mode just defaults.
	_ = c.ShouldBindJSON(&req)
	if req.Mode == "" {
		req.Mode = string(model.ModeText)
	}

	status, err := h.embeddingService.EnqueueJob(c.Request.Context(), c.Param("name"), model.IndexMode(req.Mode))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, status)
}

// GetJobStatus handles GET /jobs/:id.
func (h *EmbeddingHandler) GetJobStatus(c *gin.Context) {
	status, err := h.embeddingService.GetJobStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}
