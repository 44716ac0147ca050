package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/infra/httpx"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers"
	"github.com/mitchellh/mapstructure"
)

const (
	defaultAPIVersion = "2024-02-15-preview"
	cognitiveScope    = "https://cognitiveservices.azure.com/.default"
)

type options struct {
	Endpoint    string `mapstructure:"endpoint"`
	APIVersion  string `mapstructure:"api_version"`
	UseIdentity bool   `mapstructure:"use_identity"`
}

type client struct {
	name       string
	cfg        config.ProviderConfig
	opts       options
	httpClient httpx.Client
	credential azcore.TokenCredential
}

// NewAzureClient talks to an Azure OpenAI deployment; cfg.Model is the deployment id.
// With use_identity the request is authorized with an Azure AD token instead of the api key.
func NewAzureClient(name string, cfg config.ProviderConfig, httpClient httpx.Client) (providers.Backend, error) {
	var opts options
	if err := mapstructure.Decode(cfg.Options, &opts); err != nil {
		return nil, fmt.Errorf("invalid azure options: %w", err)
	}
	if opts.Endpoint == "" {
		opts.Endpoint = cfg.BaseURL
	}
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("%s: %w", name, providers.ErrMissingEndpoint)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%s: %w", name, providers.ErrMissingModel)
	}
	if opts.APIVersion == "" {
		opts.APIVersion = defaultAPIVersion
	}

	c := &client{name: name, cfg: cfg, opts: opts, httpClient: httpClient}
	if opts.UseIdentity {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create azure credential: %w", err)
		}
		c.credential = cred
	} else if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", name, providers.ErrMissingAPIKey)
	}
	return c, nil
}

func (c *client) Name() string {
	return c.name
}

func (c *client) Generate(ctx context.Context, req providers.Request) (*providers.Response, error) {
	body, err := json.Marshal(c.body(req))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(c.opts.Endpoint, "/"), c.cfg.Model, c.opts.APIVersion)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if err := c.authorize(ctx, httpReq); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 status: %d: %s", resp.StatusCode, string(respBody))
	}
	return providers.ParseChatCompletion(c.name, c.cfg.Model, respBody)
}

func (c *client) authorize(ctx context.Context, req *http.Request) error {
	if c.credential == nil {
		req.Header.Set("api-key", c.cfg.APIKey)
		return nil
	}
	token, err := c.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{cognitiveScope}})
	if err != nil {
		return fmt.Errorf("failed to get Azure AD token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.Token)
	return nil
}

func (c *client) body(req providers.Request) map[string]interface{} {
	messages := make([]providers.Turn, 0, len(req.History)+2)
	if prompt := providers.SystemPrompt(req); prompt != "" {
		messages = append(messages, providers.Turn{Role: providers.RoleSystem, Content: prompt})
	}
	messages = append(messages, providers.Turns(req)...)

	body := map[string]interface{}{"messages": messages}
	if c.cfg.Temperature > 0 {
		body["temperature"] = c.cfg.Temperature
	}
	if c.cfg.MaxTokens > 0 {
		body["max_tokens"] = c.cfg.MaxTokens
	}
	return body
}
