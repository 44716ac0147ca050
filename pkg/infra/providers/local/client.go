package local

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/infra/httpx"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers"
	"github.com/valyala/fasthttp"
)

const completionsPath = "/v1/chat/completions"

type chatRequest struct {
	Model       string           `json:"model"`
	Messages    []providers.Turn `json:"messages"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
	Temperature float64          `json:"temperature,omitempty"`
	Stream      bool             `json:"stream"`
}

type client struct {
	name       string
	cfg        config.ProviderConfig
	url        string
	httpClient *fasthttp.Client
}

// NewLocalClient targets a self-hosted, OpenAI-compatible inference server (vLLM, Ollama, llama.cpp).
func NewLocalClient(name string, cfg config.ProviderConfig, httpClient *fasthttp.Client) (providers.Backend, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%s: %w", name, providers.ErrMissingEndpoint)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%s: %w", name, providers.ErrMissingModel)
	}
	return &client{
		name:       name,
		cfg:        cfg,
		url:        strings.TrimRight(cfg.BaseURL, "/") + completionsPath,
		httpClient: httpClient,
	}, nil
}

func (c *client) Name() string {
	return c.name
}

func (c *client) Generate(ctx context.Context, req providers.Request) (*providers.Response, error) {
	messages := make([]providers.Turn, 0, len(req.History)+2)
	if prompt := providers.SystemPrompt(req); prompt != "" {
		messages = append(messages, providers.Turn{Role: providers.RoleSystem, Content: prompt})
	}
	messages = append(messages, providers.Turns(req)...)

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq := fasthttp.AcquireRequest()
	httpResp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(httpReq)
	defer fasthttp.ReleaseResponse(httpResp)

	httpReq.SetRequestURI(c.url)
	httpReq.Header.SetMethod(fasthttp.MethodPost)
	httpReq.Header.SetContentType("application/json")
	httpReq.Header.Set(fasthttp.HeaderAcceptEncoding, httpx.AcceptEncoding)
	if c.cfg.APIKey != "" {
		httpReq.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.cfg.APIKey)
	}
	httpReq.SetBodyRaw(body)

	if err := c.do(ctx, httpReq, httpResp); err != nil {
		return nil, fmt.Errorf("local inference request failed: %w", err)
	}
	if status := httpResp.StatusCode(); status != fasthttp.StatusOK {
		return nil, fmt.Errorf("local inference returned status %d", status)
	}

	respBody, err := httpx.DecodeBody(string(httpResp.Header.Peek(fasthttp.HeaderContentEncoding)), httpResp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	return providers.ParseChatCompletion(c.name, c.cfg.Model, respBody)
}

// do honours the context deadline; fasthttp has no native context support.
func (c *client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		return c.httpClient.DoDeadline(req, resp, deadline)
	}
	return c.httpClient.DoTimeout(req, resp, httpx.DefaultTimeout)
}

func NewHTTPClient(timeout time.Duration) *fasthttp.Client {
	return &fasthttp.Client{
		ReadTimeout:         timeout,
		WriteTimeout:        timeout,
		MaxConnsPerHost:     httpx.DefaultMaxConnsPerHost,
		MaxIdleConnDuration: httpx.DefaultMaxIdleConnDuration,
		MaxResponseBodySize: httpx.DefaultMaxResponseBodySize,
	}
}
