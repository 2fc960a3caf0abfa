package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "VENDORIQ"

// Load reads configuration from an optional YAML file and the environment,
// layered over DefaultConfig. Environment variables use the VENDORIQ_ prefix
// with underscores for nesting, e.g. VENDORIQ_NEO4J_URI, VENDORIQ_SERVER_PORT.
// An empty path skips file loading entirely.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := DefaultConfig()
	bindDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindDefaults registers every default value with viper so AutomaticEnv can
// see the keys even when no config file is present. Viper only consults the
// environment for keys it already knows about.
func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)

	v.SetDefault("neo4j.uri", cfg.Neo4j.URI)
	v.SetDefault("neo4j.user", cfg.Neo4j.User)
	v.SetDefault("neo4j.password", cfg.Neo4j.Password)
	v.SetDefault("neo4j.database", cfg.Neo4j.Database)
	v.SetDefault("neo4j.max_connection_pool_size", cfg.Neo4j.MaxConnectionPoolSize)
	v.SetDefault("neo4j.connection_timeout", cfg.Neo4j.ConnectionTimeout)
	v.SetDefault("neo4j.query_timeout", cfg.Neo4j.QueryTimeout)

	v.SetDefault("redis.enabled", cfg.Redis.Enabled)
	v.SetDefault("redis.addr", cfg.Redis.Addr)
	v.SetDefault("redis.password", cfg.Redis.Password)
	v.SetDefault("redis.db", cfg.Redis.DB)
	v.SetDefault("redis.pool_size", cfg.Redis.PoolSize)
	v.SetDefault("redis.dial_timeout", cfg.Redis.DialTimeout)
	v.SetDefault("redis.read_timeout", cfg.Redis.ReadTimeout)
	v.SetDefault("redis.write_timeout", cfg.Redis.WriteTimeout)
	v.SetDefault("redis.key_prefix", cfg.Redis.KeyPrefix)

	v.SetDefault("kafka.brokers", cfg.Kafka.Brokers)
	v.SetDefault("kafka.topic", cfg.Kafka.Topic)
	v.SetDefault("kafka.batch_timeout", cfg.Kafka.BatchTimeout)
	v.SetDefault("kafka.write_timeout", cfg.Kafka.WriteTimeout)
	v.SetDefault("kafka.max_retries", cfg.Kafka.MaxRetries)

	v.SetDefault("matching.provider", cfg.Matching.Provider)
	v.SetDefault("matching.default_result_limit", cfg.Matching.DefaultResultLimit)
	v.SetDefault("matching.llm_base_url", cfg.Matching.LLMBaseURL)
	v.SetDefault("matching.llm_model", cfg.Matching.LLMModel)
	v.SetDefault("matching.llm_api_key", cfg.Matching.LLMAPIKey)
	v.SetDefault("matching.llm_timeout", cfg.Matching.LLMTimeout)

	v.SetDefault("rate_limit.enabled", cfg.RateLimit.Enabled)
	v.SetDefault("rate_limit.requests_per_minute", cfg.RateLimit.RequestsPerMinute)
	v.SetDefault("rate_limit.burst_size", cfg.RateLimit.BurstSize)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}
