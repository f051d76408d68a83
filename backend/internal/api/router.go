package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/graph"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/metadata"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/config"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/logger"
)

// GraphStore is the slice of the repository the API serves.
type GraphStore interface {
	Subgraph(ctx context.Context, labels, relTypes []string, limit int) (*graph.Subgraph, error)
	UpsertEntity(ctx context.Context, input graph.EntityInput) (*graph.Node, error)
	UpsertRelationship(ctx context.Context, input graph.RelationshipInput) (*graph.Edge, error)
}

// MetadataProvider supplies the label/type inventory.
type MetadataProvider interface {
	GetMetadata(ctx context.Context) (*metadata.Inventory, error)
}

// EventStreamer upgrades a request to a graph-change event stream.
type EventStreamer interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

// Dependencies collects everything the router needs.
type Dependencies struct {
	Store    GraphStore
	Metadata MetadataProvider
	Events   EventStreamer
}

// NewRouter builds the Graph API's gin engine: request logging, recovery,
// CORS for the configured UI origins, and all routes.
func NewRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	log := logger.Get()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	h := &handlers{
		store:  deps.Store,
		meta:   deps.Metadata,
		events: deps.Events,
		logger: log,
	}

	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		api.GET("/metadata", h.getMetadata)
		api.GET("/graph", h.getGraph)
		api.POST("/graph/nodes", h.upsertNode)
		api.POST("/graph/relationships", h.upsertRelationship)
		api.GET("/events", h.streamEvents)
	}

	return router
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}
