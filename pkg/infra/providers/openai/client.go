package openai

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const defaultModel = "gpt-4o-mini"

type client struct {
	name   string
	cfg    config.ProviderConfig
	openai openai.Client
}

func NewOpenaiClient(name string, cfg config.ProviderConfig) (providers.Backend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", name, providers.ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &client{
		name:   name,
		cfg:    cfg,
		openai: openai.NewClient(opts...),
	}, nil
}

func (c *client) Name() string {
	return c.name
}

func (c *client) Generate(ctx context.Context, req providers.Request) (*providers.Response, error) {
	resp, err := c.openai.Chat.Completions.New(ctx, c.params(req))
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, providers.ErrEmptyResponse
	}

	return providers.NewResponse(c.name, resp.Model, resp.Choices[0].Message.Content, resp.ID, providers.Usage{
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:      int(resp.Usage.TotalTokens),
	})
}

func (c *client) params(req providers.Request) openai.ChatCompletionNewParams {
	var messages []openai.ChatCompletionMessageParamUnion
	if prompt := providers.SystemPrompt(req); prompt != "" {
		messages = append(messages, openai.SystemMessage(prompt))
	}
	for _, turn := range providers.Turns(req) {
		switch turn.Role {
		case providers.RoleUser:
			messages = append(messages, openai.UserMessage(turn.Content))
		case providers.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    c.cfg.Model,
		Messages: messages,
	}
	if c.cfg.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.cfg.MaxTokens))
	}
	if c.cfg.Temperature > 0 {
		params.Temperature = openai.Float(c.cfg.Temperature)
	}
	return params
}
