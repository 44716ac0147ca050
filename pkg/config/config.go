package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Auth          AuthConfig          `mapstructure:"auth"`
	WebSocket     WebSocketConfig     `mapstructure:"websocket"`
	Providers     ProvidersConfig     `mapstructure:"providers"`
	Router        RouterConfig        `mapstructure:"router"`
	Safety        SafetyConfig        `mapstructure:"safety"`
	Crisis        CrisisConfig        `mapstructure:"crisis"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
}

type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	MetricsPort  int      `mapstructure:"metrics_port"`
	Host         string   `mapstructure:"host"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type AuthConfig struct {
	SecretKey string        `mapstructure:"secret_key"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type WebSocketConfig struct {
	MaxConnections int           `mapstructure:"max_connections"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	PingPeriod     time.Duration `mapstructure:"ping_period"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
}

// RouterConfig drives provider selection between the default remote provider and the local one.
type RouterConfig struct {
	Strategy                string        `mapstructure:"strategy"`
	DefaultProvider         string        `mapstructure:"default_provider"`
	LocalProvider           string        `mapstructure:"local_provider"`
	LocalEnabled            bool          `mapstructure:"local_enabled"`
	LocalPercentage         int           `mapstructure:"local_percentage"`
	PreferLocalWhenDetailed bool          `mapstructure:"prefer_local_when_detailed"`
	DetailedProfileFields   []string      `mapstructure:"detailed_profile_fields"`
	Timeout                 time.Duration `mapstructure:"timeout"`
	BreakerTimeout          time.Duration `mapstructure:"breaker_timeout"`
	BreakerMaxFailures      uint32        `mapstructure:"breaker_max_failures"`
	SystemPrompt            string        `mapstructure:"system_prompt"`
	HistoryLimit            int           `mapstructure:"history_limit"`
}

type CrisisConfig struct {
	Keywords     []string      `mapstructure:"keywords"`
	Workers      int           `mapstructure:"workers"`
	QueueSize    int           `mapstructure:"queue_size"`
	TaskTimeout  time.Duration `mapstructure:"task_timeout"`
	ScorerAPIKey string        `mapstructure:"scorer_api_key"`
	ScorerModel  string        `mapstructure:"scorer_model"`
}

type NotificationsConfig struct {
	SMTP SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type KafkaConfig struct {
	Enabled  bool                   `mapstructure:"enabled"`
	Settings map[string]interface{} `mapstructure:"settings"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("⚠️ Warning: Could not load main config file: %v", err)
	}
	setDefaultValues(&globalConfig)
	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues(cfg *Config) {
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MetricsPort == 0 {
		cfg.Server.MetricsPort = 9090
	}
	if cfg.WebSocket.MaxConnections == 0 {
		cfg.WebSocket.MaxConnections = 1000
	}
	if cfg.WebSocket.WriteTimeout == 0 {
		cfg.WebSocket.WriteTimeout = 10 * time.Second
	}
	if cfg.WebSocket.PongWait == 0 {
		cfg.WebSocket.PongWait = 60 * time.Second
	}
	if cfg.WebSocket.PingPeriod == 0 || cfg.WebSocket.PingPeriod >= cfg.WebSocket.PongWait {
		cfg.WebSocket.PingPeriod = cfg.WebSocket.PongWait * 9 / 10
	}
	cfg.Router = cfg.Router.withDefaults()
	cfg.Safety = cfg.Safety.withDefaults()
	cfg.Crisis = cfg.Crisis.withDefaults()
}

func (r RouterConfig) withDefaults() RouterConfig {
	if r.Strategy == "" {
		r.Strategy = StrategyAuto
	}
	if r.DefaultProvider == "" {
		r.DefaultProvider = "openai"
	}
	if r.LocalProvider == "" {
		r.LocalProvider = "local"
	}
	if r.LocalPercentage < 0 {
		r.LocalPercentage = 0
	}
	if r.LocalPercentage > 100 {
		r.LocalPercentage = 100
	}
	if len(r.DetailedProfileFields) == 0 {
		r.DetailedProfileFields = []string{"age_range", "primary_concern", "support_goal"}
	}
	if r.Timeout == 0 {
		r.Timeout = 30 * time.Second
	}
	if r.BreakerTimeout == 0 {
		r.BreakerTimeout = 30 * time.Second
	}
	if r.BreakerMaxFailures == 0 {
		r.BreakerMaxFailures = 5
	}
	if r.SystemPrompt == "" {
		r.SystemPrompt = DefaultSystemPrompt
	}
	if r.HistoryLimit == 0 {
		r.HistoryLimit = 20
	}
	return r
}

func (c CrisisConfig) withDefaults() CrisisConfig {
	if len(c.Keywords) == 0 {
		c.Keywords = DefaultCrisisKeywords
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.QueueSize == 0 {
		c.QueueSize = 1000
	}
	if c.TaskTimeout == 0 {
		c.TaskTimeout = 30 * time.Second
	}
	if c.ScorerModel == "" {
		c.ScorerModel = "gpt-4o-mini"
	}
	return c
}

// Default returns a configuration holding only default values.
func Default() *Config {
	cfg := &Config{}
	setDefaultValues(cfg)
	return cfg
}

func GetConfig() *Config {
	return &globalConfig
}
