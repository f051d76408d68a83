package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/errors"
	"github.com/azarab79/KnowledgeGraphVisualizer-sub002/backend/pkg/logger"
)

const systemPromptBase = "You are an assistant for a knowledge-graph explorer. " +
	"Answer questions about the products, modules, components, tests, libraries " +
	"and teams in the graph, and mention entities by their exact names."

// buildSystemPrompt grounds the model in the graph's entity inventory so its
// answers can be checked for references.
func buildSystemPrompt(entityNames []string) string {
	if len(entityNames) == 0 {
		return systemPromptBase
	}
	return systemPromptBase + " Known entities: " + strings.Join(entityNames, ", ") + "."
}

// Answer is a chat reply annotated with the graph entities it mentions.
type Answer struct {
	Content    string   `json:"content"`
	References []string `json:"references"`
}

// Client talks to an OpenAI-compatible chat service.
type Client struct {
	client     *openai.Client
	model      string
	maxRetries int
	logger     *zap.Logger
}

// NewClient creates a chat client for the service's OpenAI-compatible API.
func NewClient(baseURL, apiKey, model string) *Client {
	// The gateway accepts any key when auth is disabled
	if apiKey == "" {
		apiKey = "dummy-key"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL + "/v1"

	return &Client{
		client:     openai.NewClientWithConfig(config),
		model:      model,
		maxRetries: 3,
		logger:     logger.Get(),
	}
}

// Ask sends the question and scans the reply for mentions of the given
// entity names. Matching is case-insensitive; References keeps the original
// casing and is sorted.
func (c *Client) Ask(ctx context.Context, question string, entityNames []string) (*Answer, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: buildSystemPrompt(entityNames),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: question,
			},
		},
		Temperature: 0.2,
	}

	// Retry logic with exponential backoff
	var resp openai.ChatCompletionResponse
	var err error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * time.Second
			c.logger.Warn("Retrying chat request",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
			)
			time.Sleep(backoff)
		}

		resp, err = c.client.CreateChatCompletion(ctx, req)
		if err == nil {
			break
		}

		c.logger.Error("Chat request failed",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.String("model", c.model),
		)
	}
	if err != nil {
		return nil, errors.NewChatRequestFailed(c.model, c.maxRetries, err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.NewChatRequestFailed(c.model, 1, fmt.Errorf("no choices in response"))
	}

	content := resp.Choices[0].Message.Content
	answer := &Answer{
		Content:    content,
		References: findReferences(content, entityNames),
	}

	c.logger.Debug("Chat response received",
		zap.String("model", c.model),
		zap.Int("references", len(answer.References)),
	)
	return answer, nil
}

// findReferences returns the entity names mentioned in content, sorted and
// deduplicated.
func findReferences(content string, entityNames []string) []string {
	lower := strings.ToLower(content)
	references := make([]string, 0)
	seen := make(map[string]struct{}, len(entityNames))

	for _, name := range entityNames {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		if strings.Contains(lower, strings.ToLower(name)) {
			references = append(references, name)
			seen[name] = struct{}{}
		}
	}

	sort.Strings(references)
	return references
}
