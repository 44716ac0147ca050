package anthropic

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultMaxTokens = 1024

type client struct {
	name      string
	cfg       config.ProviderConfig
	anthropic anthropic.Client
}

func NewAnthropicClient(name string, cfg config.ProviderConfig) (providers.Backend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", name, providers.ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = string(anthropic.ModelClaudeHaiku4_5)
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &client{
		name:      name,
		cfg:       cfg,
		anthropic: anthropic.NewClient(opts...),
	}, nil
}

func (c *client) Name() string {
	return c.name
}

func (c *client) Generate(ctx context.Context, req providers.Request) (*providers.Response, error) {
	message, err := c.anthropic.Messages.New(ctx, c.params(req))
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}

	var text string
	for _, content := range message.Content {
		if content.Type == "text" {
			text = content.Text
			break
		}
	}

	return providers.NewResponse(c.name, string(message.Model), text, message.ID, providers.Usage{
		PromptTokens:     int(message.Usage.InputTokens),
		CompletionTokens: int(message.Usage.OutputTokens),
		TotalTokens:      int(message.Usage.InputTokens + message.Usage.OutputTokens),
	})
}

func (c *client) params(req providers.Request) anthropic.MessageNewParams {
	var messages []anthropic.MessageParam
	for _, turn := range providers.Turns(req) {
		switch turn.Role {
		case providers.RoleUser:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(turn.Content)))
		case providers.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn.Content)))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.Model),
		Messages:  messages,
		MaxTokens: int64(c.cfg.MaxTokens),
	}
	if prompt := providers.SystemPrompt(req); prompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: prompt, Type: "text"}}
	}
	if c.cfg.Temperature > 0 {
		params.Temperature = anthropic.Float(c.cfg.Temperature)
	}
	return params
}
