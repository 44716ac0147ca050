package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/infra/httpx"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers/anthropic"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers/azure"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers/bedrock"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers/gemini"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers/local"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers/openai"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
	ProviderAzure     = "azure"
	ProviderLocal     = "local"

	// kindOption lets a provider entry use any name, e.g. "local-llama" with kind "local".
	kindOption = "kind"
)

//go:generate mockery --name=ProviderLocator --dir=. --output=./mocks --filename=provider_locator_mock.go --case=underscore --with-expecter

type ProviderLocator interface {
	Get(ctx context.Context, name string, cfg config.ProviderConfig) (providers.Backend, error)
	Registry(ctx context.Context, cfgs config.ProvidersConfig) map[string]providers.Backend
}

type providerLocator struct {
	logger         *logrus.Logger
	httpClient     httpx.Client
	fastClient     *fasthttp.Client
	breakerTimeout time.Duration
	maxFailures    uint32
}

func NewProviderLocator(
	logger *logrus.Logger,
	httpClient httpx.Client,
	fastClient *fasthttp.Client,
	routerCfg config.RouterConfig,
) ProviderLocator {
	return &providerLocator{
		logger:         logger,
		httpClient:     httpClient,
		fastClient:     fastClient,
		breakerTimeout: routerCfg.BreakerTimeout,
		maxFailures:    routerCfg.BreakerMaxFailures,
	}
}

func (f *providerLocator) Get(ctx context.Context, name string, cfg config.ProviderConfig) (providers.Backend, error) {
	kind := name
	if k, ok := cfg.Options[kindOption].(string); ok && k != "" {
		kind = k
	}
	switch kind {
	case ProviderOpenAI:
		return openai.NewOpenaiClient(name, cfg)
	case ProviderGemini:
		return gemini.NewGeminiClient(ctx, name, cfg)
	case ProviderAnthropic:
		return anthropic.NewAnthropicClient(name, cfg)
	case ProviderBedrock:
		return bedrock.NewBedrockClient(ctx, name, cfg)
	case ProviderAzure:
		return azure.NewAzureClient(name, cfg, f.httpClient)
	case ProviderLocal:
		return local.NewLocalClient(name, cfg, f.fastClient)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", kind)
	}
}

// Registry builds every enabled provider, each behind its own circuit breaker.
// Providers that fail to build are logged and left out.
func (f *providerLocator) Registry(ctx context.Context, cfgs config.ProvidersConfig) map[string]providers.Backend {
	registry := make(map[string]providers.Backend, len(cfgs))
	for name, cfg := range cfgs {
		if !cfg.Enabled {
			continue
		}
		backend, err := f.Get(ctx, name, cfg)
		if err != nil {
			f.logger.WithError(err).WithField("provider", name).Error("failed to initialize provider")
			continue
		}
		breaker := httpx.NewCircuitBreaker(name, f.breakerTimeout, f.maxFailures)
		registry[name] = providers.WithCircuitBreaker(backend, breaker)
	}
	return registry
}
