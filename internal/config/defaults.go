package config

import "time"

// Extraction provider names accepted by MatchingConfig.Provider.
const (
	ProviderDeterministic = "deterministic"
	ProviderLLM           = "llm"
)

// DefaultConfig returns a Config populated with sane defaults for local
// development. Loaded files and environment variables override these values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Neo4j: Neo4jConfig{
			URI:                   "neo4j://localhost:7687",
			User:                  "neo4j",
			Password:              "password",
			Database:              "neo4j",
			MaxConnectionPoolSize: 50,
			ConnectionTimeout:     5 * time.Second,
			QueryTimeout:          15 * time.Second,
		},
		Redis: RedisConfig{
			Enabled:      false,
			Addr:         "localhost:6379",
			DB:           0,
			PoolSize:     10,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			KeyPrefix:    "vendoriq",
		},
		Kafka: KafkaConfig{
			Brokers:      nil,
			Topic:        "vendoriq.catalog.events",
			BatchTimeout: 100 * time.Millisecond,
			WriteTimeout: 10 * time.Second,
			MaxRetries:   3,
		},
		Matching: MatchingConfig{
			Provider:           ProviderDeterministic,
			DefaultResultLimit: 20,
			LLMModel:           "gpt-4o-mini",
			LLMTimeout:         20 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:           false,
			RequestsPerMinute: 120,
			BurstSize:         20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
