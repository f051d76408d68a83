package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/internal/chat"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/config"
)

// entityNameLimit caps how many entity names are scanned for references.
const entityNameLimit = 200

func newChatSmokeCmd() *cobra.Command {
	var question string

	cmd := &cobra.Command{
		Use:   "chat-smoke",
		Short: "Ask the chat service one question and verify it cites the graph",
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

			names, err := repo.EntityNames(ctx, entityNameLimit)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				return fmt.Errorf("graph has no named entities; run seed first")
			}

			client := chat.NewClient(cfg.ChatServiceURL, cfg.ChatAPIKey, cfg.ChatModel)
			answer, err := client.Ask(ctx, question, names)
			if err != nil {
				return err
			}

			fmt.Println(answer.Content)
			if len(answer.References) == 0 {
				return fmt.Errorf("answer does not mention any graph entity")
			}
			fmt.Printf("References: %s\n", strings.Join(answer.References, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&question, "question", "Which modules make up the NovaCommerce product?", "Question to ask the chat service")
	return cmd
}
