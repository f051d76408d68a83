package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/graph"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/errors"
)

type handlers struct {
	store  GraphStore
	meta   MetadataProvider
	events EventStreamer
	logger *zap.Logger
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) getMetadata(c *gin.Context) {
	inv, err := h.meta.GetMetadata(c.Request.Context())
	if err != nil {
		if errors.IsMetadataUnavailable(err) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Metadata unavailable"})
			return
		}
		h.logger.Error("Failed to fetch metadata", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch metadata"})
		return
	}

	c.JSON(http.StatusOK, inv)
}

func (h *handlers) getGraph(c *gin.Context) {
	labels := splitParam(c.Query("labels"))
	relTypes := splitParam(c.Query("types"))

	if len(labels) == 0 || len(relTypes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "at least one label and one relationship type must be selected",
		})
		return
	}

	limit := graph.DefaultSubgraphLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	view, err := h.store.Subgraph(c.Request.Context(), labels, relTypes, limit)
	if err != nil {
		h.logger.Error("Failed to fetch subgraph", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch graph"})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *handlers) upsertNode(c *gin.Context) {
	var req struct {
		Labels     []string               `json:"labels" binding:"required"`
		Key        string                 `json:"key" binding:"required"`
		Name       string                 `json:"name"`
		Properties map[string]interface{} `json:"properties"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	node, err := h.store.UpsertEntity(c.Request.Context(), graph.EntityInput{
		Labels:     req.Labels,
		Key:        req.Key,
		Name:       req.Name,
		Properties: req.Properties,
	})
	if err != nil {
		if _, ok := err.(graph.ErrInvalidIdentifier); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to upsert node", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert node"})
		return
	}

	c.JSON(http.StatusOK, node)
}

func (h *handlers) upsertRelationship(c *gin.Context) {
	var req struct {
		FromKey    string                 `json:"fromKey" binding:"required"`
		ToKey      string                 `json:"toKey" binding:"required"`
		Type       string                 `json:"type" binding:"required"`
		Properties map[string]interface{} `json:"properties"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	edge, err := h.store.UpsertRelationship(c.Request.Context(), graph.RelationshipInput{
		FromKey:    req.FromKey,
		ToKey:      req.ToKey,
		Type:       req.Type,
		Properties: req.Properties,
	})
	if err != nil {
		switch err.(type) {
		case graph.ErrInvalidIdentifier:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case graph.ErrEntityNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to upsert relationship", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert relationship"})
		}
		return
	}

	c.JSON(http.StatusOK, edge)
}

func (h *handlers) streamEvents(c *gin.Context) {
	if err := h.events.ServeWS(c.Writer, c.Request); err != nil {
		// Upgrade failures already wrote a response.
		h.logger.Warn("Failed to open event stream", zap.Error(err))
	}
}

// splitParam parses a comma-separated query value, dropping empty entries.
func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
