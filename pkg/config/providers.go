package config

const (
	StrategyAuto       = "auto"
	StrategyRoundRobin = "round_robin"
)

// ProviderConfig configures one AI backend. Options carries provider specific settings
// (azure endpoint, aws region, ...) decoded by the backend itself.
type ProviderConfig struct {
	Enabled     bool                   `mapstructure:"enabled"`
	APIKey      string                 `mapstructure:"api_key"`
	BaseURL     string                 `mapstructure:"base_url"`
	Model       string                 `mapstructure:"model"`
	MaxTokens   int                    `mapstructure:"max_tokens"`
	Temperature float64                `mapstructure:"temperature"`
	Options     map[string]interface{} `mapstructure:"options"`
}

// ProvidersConfig is keyed by provider name (openai, anthropic, gemini, bedrock, azure, local).
type ProvidersConfig map[string]ProviderConfig
