package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/analytics"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/config"
)

func newReportCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export analytics reports as JSON files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			dir := cfg.ReportsDir
			if outDir != "" {
				dir = outDir
			}

			ctx := cmd.Context()
			repo, cleanup, err := openRepository(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			written, err := analytics.NewExporter(repo, dir).Export(ctx)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Println(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Directory for report files (default: REPORTS_DIR)")
	return cmd
}
