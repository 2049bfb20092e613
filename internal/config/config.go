// Package config loads application configuration from file and
// environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Research   ResearchConfig   `yaml:"research" mapstructure:"research"`
	Perplexity PerplexityConfig `yaml:"perplexity" mapstructure:"perplexity"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Census     CensusConfig     `yaml:"census" mapstructure:"census"`
	Stripe     StripeConfig     `yaml:"stripe" mapstructure:"stripe"`
	Notion     NotionConfig     `yaml:"notion" mapstructure:"notion"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Pricing    PricingConfig    `yaml:"pricing" mapstructure:"pricing"`
	Retry      RetryConfig      `yaml:"retry" mapstructure:"retry"`
	Breaker    BreakerConfig    `yaml:"breaker" mapstructure:"breaker"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// ResearchConfig tunes the research orchestrator.
type ResearchConfig struct {
	// Provider selects the research backend: "perplexity" or "anthropic".
	Provider string `yaml:"provider" mapstructure:"provider"`

	// MinRecords is the quality gate threshold for the landing-page lists.
	MinRecords int `yaml:"min_records" mapstructure:"min_records"`

	// CacheTTLHours is how long research responses are cached.
	CacheTTLHours int `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
}

// PerplexityConfig holds Perplexity API settings.
type PerplexityConfig struct {
	Key           string  `yaml:"key" mapstructure:"key"`
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	Model         string  `yaml:"model" mapstructure:"model"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// CensusConfig holds Census open-data API settings.
type CensusConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// StripeConfig holds Stripe payment settings.
type StripeConfig struct {
	SecretKey     string `yaml:"secret_key" mapstructure:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret" mapstructure:"webhook_secret"`
	SuccessURL    string `yaml:"success_url" mapstructure:"success_url"`
	CancelURL     string `yaml:"cancel_url" mapstructure:"cancel_url"`
}

// NotionConfig holds the Notion review-queue settings for community error
// reports. Optional: reports are stored locally either way.
type NotionConfig struct {
	Token    string `yaml:"token" mapstructure:"token"`
	ReportDB string `yaml:"report_db" mapstructure:"report_db"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// PricingConfig holds per-provider pricing rates.
type PricingConfig struct {
	Anthropic  map[string]ModelPricing `yaml:"anthropic" mapstructure:"anthropic"`
	Perplexity PerplexityPricing       `yaml:"perplexity" mapstructure:"perplexity"`
}

// ModelPricing holds per-model token pricing (USD per million tokens).
type ModelPricing struct {
	Input  float64 `yaml:"input" mapstructure:"input"`
	Output float64 `yaml:"output" mapstructure:"output"`
}

// PerplexityPricing holds Perplexity pricing.
type PerplexityPricing struct {
	PerQuery float64 `yaml:"per_query" mapstructure:"per_query"`
}

// RetryConfig tunes retries of upstream API calls.
type RetryConfig struct {
	MaxAttempts      int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs int     `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int     `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
	Multiplier       float64 `yaml:"multiplier" mapstructure:"multiplier"`
}

// BreakerConfig tunes the upstream circuit breaker.
type BreakerConfig struct {
	FailureThreshold int `yaml:"failure_threshold" mapstructure:"failure_threshold"`
	ResetTimeoutSecs int `yaml:"reset_timeout_secs" mapstructure:"reset_timeout_secs"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CIVIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("research.provider", "perplexity")
	v.SetDefault("research.min_records", 2)
	v.SetDefault("research.cache_ttl_hours", 24)
	v.SetDefault("perplexity.base_url", "https://api.perplexity.ai")
	v.SetDefault("perplexity.model", "sonar")
	v.SetDefault("perplexity.rate_per_second", 2)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("census.base_url", "https://api.census.gov/data/2021/pep/population")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "civic.db")
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.initial_backoff_ms", 500)
	v.SetDefault("retry.max_backoff_ms", 15000)
	v.SetDefault("retry.multiplier", 2.0)
	v.SetDefault("breaker.failure_threshold", 5)
	v.SetDefault("breaker.reset_timeout_secs", 30)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("pricing.perplexity.per_query", 0.005)

	// Secrets come from the environment; registering them gives
	// AutomaticEnv a key to bind against.
	for _, key := range []string{
		"perplexity.key", "anthropic.key",
		"stripe.secret_key", "stripe.webhook_secret",
		"stripe.success_url", "stripe.cancel_url",
		"notion.token", "notion.report_db",
	} {
		v.SetDefault(key, "")
	}

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration carries everything the serve
// command needs.
func (c *Config) Validate() error {
	switch c.Research.Provider {
	case "perplexity":
		if c.Perplexity.Key == "" {
			return eris.New("config: perplexity.key is required (CIVIC_PERPLEXITY_KEY)")
		}
	case "anthropic":
		if c.Anthropic.Key == "" {
			return eris.New("config: anthropic.key is required (CIVIC_ANTHROPIC_KEY)")
		}
	default:
		return eris.Errorf("config: unknown research provider %q", c.Research.Provider)
	}

	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		return eris.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	if c.Store.DatabaseURL == "" {
		return eris.New("config: store.database_url is required")
	}

	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
