package gemini

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers"
	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.0-flash"
	roleUser     = "user"
	roleModel    = "model"
)

type client struct {
	name        string
	cfg         config.ProviderConfig
	genaiClient *genai.Client
}

func NewGeminiClient(ctx context.Context, name string, cfg config.ProviderConfig) (providers.Backend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", name, providers.ErrMissingAPIKey)
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &client{name: name, cfg: cfg, genaiClient: genaiClient}, nil
}

func (c *client) Name() string {
	return c.name
}

func (c *client) Generate(ctx context.Context, req providers.Request) (*providers.Response, error) {
	result, err := c.genaiClient.Models.GenerateContent(ctx, c.cfg.Model, contents(req), c.generationConfig(req))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	var usage providers.Usage
	if result.UsageMetadata != nil {
		usage = providers.Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return providers.NewResponse(c.name, c.cfg.Model, result.Text(), "", usage)
}

func (c *client) generationConfig(req providers.Request) *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{}
	if prompt := providers.SystemPrompt(req); prompt != "" {
		gc.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: prompt}}}
	}
	if c.cfg.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(c.cfg.MaxTokens) //nolint:gosec
	}
	if c.cfg.Temperature > 0 {
		gc.Temperature = genai.Ptr(float32(c.cfg.Temperature))
	}
	return gc
}

func contents(req providers.Request) []*genai.Content {
	turns := providers.Turns(req)
	out := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		role := roleUser
		if turn.Role == providers.RoleAssistant {
			role = roleModel
		}
		out = append(out, &genai.Content{Role: role, Parts: []*genai.Part{{Text: turn.Content}}})
	}
	return out
}
