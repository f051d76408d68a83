package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/checks"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/config"
)

func newCheckIconsCmd() *cobra.Command {
	var registryPath string

	cmd := &cobra.Command{
		Use:   "check-icons",
		Short: "Verify every node label has a registered icon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			path := cfg.IconRegistryPath
			if registryPath != "" {
				path = registryPath
			}

			registry, err := checks.LoadIconRegistry(path)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			repo, cleanup, err := openRepository(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			inventory, err := repo.Metadata(ctx)
			if err != nil {
				return err
			}

			report := checks.CheckIcons(registry, inventory.LabelNames())
			for _, label := range report.Orphans {
				fmt.Printf("warning: registry entry %q has no matching label\n", label)
			}
			if !report.OK() {
				return fmt.Errorf("labels missing icons: %s", strings.Join(report.Missing, ", "))
			}

			fmt.Printf("All %d labels have icons\n", len(inventory.NodeLabels))
			return nil
		},
	}

	cmd.Flags().StringVar(&registryPath, "registry", "", "Path to the icon registry JSON (default: ICON_REGISTRY_PATH)")
	return cmd
}
