// Package config defines all configuration structures for VendorIQ.
// No I/O or parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Neo4jConfig holds graph-store connection parameters.
type Neo4jConfig struct {
	URI                   string        `mapstructure:"uri"`
	User                  string        `mapstructure:"user"`
	Password              string        `mapstructure:"password"`
	Database              string        `mapstructure:"database"`
	MaxConnectionPoolSize int           `mapstructure:"max_connection_pool_size"`
	ConnectionTimeout     time.Duration `mapstructure:"connection_timeout"`
	QueryTimeout          time.Duration `mapstructure:"query_timeout"`
}

// RedisConfig holds Redis connection parameters. Redis backs the HTTP
// rate-limit middleware only; match results are never cached.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig holds catalog-event producer parameters. Publishing is disabled
// when Brokers is empty.
type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
}

// MatchingConfig holds matching-engine and extraction parameters.
type MatchingConfig struct {
	// Provider selects the criteria-extraction strategy, resolved once at
	// process start: "deterministic" or "llm". The llm provider still falls
	// back to the deterministic strategy per request on any failure.
	Provider string `mapstructure:"provider"`

	// DefaultResultLimit caps result lists when the request does not set one.
	DefaultResultLimit int `mapstructure:"default_result_limit"`

	// LLM extraction backend (used only when Provider == "llm").
	LLMBaseURL string        `mapstructure:"llm_base_url"`
	LLMModel   string        `mapstructure:"llm_model"`
	LLMAPIKey  string        `mapstructure:"llm_api_key"`
	LLMTimeout time.Duration `mapstructure:"llm_timeout"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
}

// RateLimitConfig holds HTTP rate-limit middleware parameters.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	BurstSize         int  `mapstructure:"burst_size"`
}

// Config is the root configuration structure for the service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Neo4j     Neo4jConfig     `mapstructure:"neo4j"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}

	if c.Neo4j.URI == "" {
		return fmt.Errorf("config: neo4j.uri is required")
	}
	if c.Neo4j.User == "" {
		return fmt.Errorf("config: neo4j.user is required")
	}

	switch c.Matching.Provider {
	case ProviderDeterministic:
	case ProviderLLM:
		if c.Matching.LLMBaseURL == "" {
			return fmt.Errorf("config: matching.llm_base_url is required when matching.provider is %q", ProviderLLM)
		}
		if c.Matching.LLMModel == "" {
			return fmt.Errorf("config: matching.llm_model is required when matching.provider is %q", ProviderLLM)
		}
	default:
		return fmt.Errorf("config: matching.provider %q is invalid; expected %s|%s",
			c.Matching.Provider, ProviderDeterministic, ProviderLLM)
	}

	if c.Matching.DefaultResultLimit < 1 {
		return fmt.Errorf("config: matching.default_result_limit must be >= 1, got %d", c.Matching.DefaultResultLimit)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when redis.enabled is true")
	}

	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute < 1 {
		return fmt.Errorf("config: rate_limit.requests_per_minute must be >= 1, got %d", c.RateLimit.RequestsPerMinute)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
