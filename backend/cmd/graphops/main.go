package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/graph"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/config"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/logger"
)

func main() {
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	rootCmd := &cobra.Command{
		Use:          "graphops",
		Short:        "Operational tooling for the knowledge graph",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		newSeedCmd(),
		newResetCmd(),
		newReportCmd(),
		newCheckIconsCmd(),
		newValidateCmd(),
		newChatSmokeCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// openRepository connects to Neo4j using the loaded configuration. The
// returned cleanup closes the driver and must run before the process exits.
func openRepository(ctx context.Context, cfg *config.Config) (*graph.Repository, func(), error) {
	driver, err := graph.NewDriver(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := driver.Close(ctx); err != nil {
			logger.Get().Warn("Failed to close Neo4j driver", zap.Error(err))
		}
	}
	return graph.NewRepository(driver, cfg.Neo4jDatabase), cleanup, nil
}
