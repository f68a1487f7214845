package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tiendafon/backend/internal/domain"
	"github.com/tiendafon/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	assistant *usecase.AssistantService
}

// NewHandler creates a new HTTP handler
func NewHandler(assistant *usecase.AssistantService) *Handler {
	return &Handler{assistant: assistant}
}

// matchRequest is the body for match endpoints.
type matchRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit,omitempty"`
}

// normalizeRequest is the body for the canonicalization endpoint.
type normalizeRequest struct {
	ModelName string `json:"modelName" binding:"required"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "tiendafon-backend",
		"version": "1.0.0",
	})
}

// ResolveModel runs the full chat resolution: best match plus the
// dialogue action the assistant should take.
func (h *Handler) ResolveModel(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	resolution, err := h.assistant.ResolveModel(c.Request.Context(), req.Query)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resolution)
}

// BestMatch returns the single highest-confidence product match.
func (h *Handler) BestMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	resolution, err := h.assistant.ResolveModel(c.Request.Context(), req.Query)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resolution.Match)
}

// Candidates returns the ranked match list for a query.
func (h *Handler) Candidates(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	matches, err := h.assistant.Candidates(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// NormalizeModel canonicalizes a model reference for storage.
func (h *Handler) NormalizeModel(c *gin.Context) {
	var req normalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "modelName is required"})
		return
	}

	canonical, err := h.assistant.CanonicalName(c.Request.Context(), req.ModelName)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"modelName":     req.ModelName,
		"canonicalName": canonical,
	})
}

// writeError maps domain errors to HTTP status codes.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyCatalog):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
