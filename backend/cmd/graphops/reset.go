package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/seed"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/config"
)

func newResetCmd() *cobra.Command {
	var yes bool
	var noSeed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every node and relationship, then reseed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes the entire graph; confirm with --yes")
			}

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

			deleted, err := repo.Reset(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d nodes\n", deleted)

			if noSeed {
				return nil
			}

			result, err := seed.NewSeeder(repo).Seed(ctx, false)
			if err != nil {
				return err
			}
			fmt.Printf("Reseeded %d entities and %d relationships\n", result.Entities, result.Relationships)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the destructive reset")
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Skip reseeding after the wipe")
	return cmd
}
