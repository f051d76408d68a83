package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/checks"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/config"
)

func newValidateCmd() *cobra.Command {
	var apiBase string
	var webBase string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Probe a running demo deployment end to end",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			api := cfg.APIBaseURL
			if apiBase != "" {
				api = apiBase
			}
			web := cfg.WebBaseURL
			if webBase != "" {
				web = webBase
			}

			results := checks.NewDemoValidator(api, web).Run(cmd.Context())

			failed := 0
			for _, result := range results {
				status := "PASS"
				if !result.Passed {
					status = "FAIL"
					failed++
				}
				if result.Detail != "" {
					fmt.Printf("%s  %s: %s\n", status, result.Name, result.Detail)
				} else {
					fmt.Printf("%s  %s\n", status, result.Name)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&apiBase, "api", "", "API base URL (default: API_BASE_URL)")
	cmd.Flags().StringVar(&webBase, "web", "", "Web base URL (default: WEB_BASE_URL)")
	return cmd
}
