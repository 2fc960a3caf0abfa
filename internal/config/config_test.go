package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ProviderDeterministic, cfg.Matching.Provider)
	assert.Equal(t, 20, cfg.Matching.DefaultResultLimit)
	assert.Equal(t, "vendoriq.catalog.events", cfg.Kafka.Topic)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too low", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"missing neo4j uri", func(c *Config) { c.Neo4j.URI = "" }},
		{"missing neo4j user", func(c *Config) { c.Neo4j.User = "" }},
		{"unknown provider", func(c *Config) { c.Matching.Provider = "magic" }},
		{"llm without base url", func(c *Config) {
			c.Matching.Provider = ProviderLLM
			c.Matching.LLMBaseURL = ""
		}},
		{"zero result limit", func(c *Config) { c.Matching.DefaultResultLimit = 0 }},
		{"redis enabled without addr", func(c *Config) {
			c.Redis.Enabled = true
			c.Redis.Addr = ""
		}},
		{"rate limit enabled without rpm", func(c *Config) {
			c.RateLimit.Enabled = true
			c.RateLimit.RequestsPerMinute = 0
		}},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateAcceptsLLMProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Matching.Provider = ProviderLLM
	cfg.Matching.LLMBaseURL = "https://api.example.com/v1"
	cfg.Matching.LLMModel = "gpt-4o-mini"
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server.Port, cfg.Server.Port)
	assert.Equal(t, DefaultConfig().Neo4j.URI, cfg.Neo4j.URI)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
server:
  port: 9090
neo4j:
  uri: neo4j://db:7687
  user: svc
matching:
  default_result_limit: 5
log:
  level: debug
  format: console
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "neo4j://db:7687", cfg.Neo4j.URI)
	assert.Equal(t, "svc", cfg.Neo4j.User)
	assert.Equal(t, 5, cfg.Matching.DefaultResultLimit)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched sections keep defaults.
	assert.Equal(t, "vendoriq.catalog.events", cfg.Kafka.Topic)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("VENDORIQ_SERVER_PORT", "7070")
	t.Setenv("VENDORIQ_NEO4J_URI", "neo4j://env:7687")
	t.Setenv("VENDORIQ_MATCHING_PROVIDER", "deterministic")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "neo4j://env:7687", cfg.Neo4j.URI)
}

func TestLoadRejectsInvalidFileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: -1\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
