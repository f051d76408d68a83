package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/api"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/events"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/graph"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/metadata"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/config"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/logger"
)

func main() {
	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting knowledge graph API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Neo4j driver
	ctx := context.Background()
	driver, err := graph.NewDriver(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	defer driver.Close(ctx)

	// Initialize dependencies
	repo := graph.NewRepository(driver, cfg.Neo4jDatabase)
	hub := events.NewHub()
	repo.SetEventEmitter(hub.Broadcast)
	meta := metadata.NewService(repo)

	router := api.NewRouter(cfg, api.Dependencies{
		Store:    repo,
		Metadata: meta,
		Events:   hub,
	})

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("database", cfg.Neo4jDatabase),
	)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
