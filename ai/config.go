// Copyright 2026 Greation Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// GenerativeHost is the base URL for the generative (chat) service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	GenerativeHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// GenerativeModel is the model identifier to use for analysis, feedback,
	// curation, and guide composition.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	GenerativeModel string

	// Token is the API token. "none" works for local OpenAI-compatible
	// services that don't require authentication.
	Token string

	// MaxAttempts bounds retries of a transient embedding failure.
	// Default: 3
	MaxAttempts int

	// RetryDelay is the fixed pause between retry attempts.
	// Default: 1 second
	RetryDelay time.Duration

	// RequestTimeout bounds each external call. Zero disables the bound.
	// Default: 60 seconds
	RequestTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithGenerativeHost sets the generative service host URL.
func WithGenerativeHost(host string) ConfigOption {
	return func(c *Config) {
		c.GenerativeHost = host
	}
}

// WithHost sets both embedding and generative hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.GenerativeHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithGenerativeModel sets the generative model identifier.
func WithGenerativeModel(model string) ConfigOption {
	return func(c *Config) {
		c.GenerativeModel = model
	}
}

// WithToken sets the API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithMaxAttempts sets the retry bound for transient failures.
func WithMaxAttempts(attempts int) ConfigOption {
	return func(c *Config) {
		c.MaxAttempts = attempts
	}
}

// WithRetryDelay sets the fixed pause between retry attempts.
func WithRetryDelay(delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.RetryDelay = delay
	}
}

// WithRequestTimeout sets the per-call timeout.
func WithRequestTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.RequestTimeout = timeout
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services. By default, both embedding and generative
// calls use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:   defaultHost,
		GenerativeHost:  defaultHost,
		EmbeddingModel:  "embeddinggemma",
		GenerativeModel: "qwen2.5:3b",
		Token:           "none",
		MaxAttempts:     3,
		RetryDelay:      1 * time.Second,
		RequestTimeout:  60 * time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options. This is the recommended way to create a Config.
//
// Example:
//   cfg := NewConfig(
//       WithHost("https://api.openai.com"),
//       WithEmbeddingModel("text-embedding-3-small"),
//       WithGenerativeModel("gpt-4o-mini"),
//       WithToken(os.Getenv("OPENAI_API_KEY")),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.GenerativeHost != "" && !strings.HasSuffix(c.GenerativeHost, "/v1") {
		c.GenerativeHost = strings.TrimSuffix(c.GenerativeHost, "/")
		c.GenerativeHost = c.GenerativeHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.GenerativeHost == "" {
		return errors.New("ai config: GenerativeHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.GenerativeModel == "" {
		return errors.New("ai config: GenerativeModel is required")
	}
	if c.MaxAttempts < 1 {
		return errors.New("ai config: MaxAttempts must be at least 1")
	}
	if c.RetryDelay < 0 {
		return errors.New("ai config: RetryDelay cannot be negative")
	}
	if c.RequestTimeout < 0 {
		return errors.New("ai config: RequestTimeout cannot be negative")
	}
	return nil
}
