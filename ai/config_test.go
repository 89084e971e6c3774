package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.GenerativeHost)
	assert.NotEmpty(t, cfg.EmbeddingModel)
	assert.NotEmpty(t, cfg.GenerativeModel)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 1*time.Second, cfg.RetryDelay)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig(t *testing.T) {
	t.Run("options applied over defaults", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("https://api.openai.com"),
			WithEmbeddingModel("text-embedding-3-small"),
			WithGenerativeModel("gpt-4o-mini"),
			WithToken("sk-test"),
			WithMaxAttempts(5),
			WithRetryDelay(2*time.Second),
			WithRequestTimeout(30*time.Second),
		)

		require.NoError(t, cfg.Validate())
		assert.Equal(t, "https://api.openai.com/v1", cfg.EmbeddingHost)
		assert.Equal(t, "https://api.openai.com/v1", cfg.GenerativeHost)
		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-4o-mini", cfg.GenerativeModel)
		assert.Equal(t, "sk-test", cfg.Token)
		assert.Equal(t, 5, cfg.MaxAttempts)
	})

	t.Run("separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://localhost:11434"),
			WithGenerativeHost("http://localhost:9100"),
		)

		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:9100/v1", cfg.GenerativeHost)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"bare host", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"already normalized", "http://localhost:11434/v1", "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.GenerativeHost)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty embedding host", func(c *Config) { c.EmbeddingHost = "" }},
		{"empty generative host", func(c *Config) { c.GenerativeHost = "" }},
		{"empty embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"empty generative model", func(c *Config) { c.GenerativeModel = "" }},
		{"zero max attempts", func(c *Config) { c.MaxAttempts = 0 }},
		{"negative retry delay", func(c *Config) { c.RetryDelay = -time.Second }},
		{"negative request timeout", func(c *Config) { c.RequestTimeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
