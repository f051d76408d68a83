package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/seed"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/config"
)

func newSeedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset into Neo4j",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			ctx := cmd.Context()
			repo, cleanup, err := openRepository(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := seed.NewSeeder(repo).Seed(ctx, force)
			if err != nil {
				return err
			}

			if force {
				fmt.Printf("Cleared %d existing nodes\n", result.NodesDeleted)
			}
			fmt.Printf("Seeded %d entities and %d relationships\n", result.Entities, result.Relationships)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Clear the graph before seeding")
	return cmd
}
