// Copyright 2025 Poiesic Systems
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
	"fmt"
	"strings"
	"time"
)

// Supported provider names.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Embedding task types understood by the providers. Only Gemini acts on
// them; OpenAI-compatible services ignore the setting.
const (
	TaskRetrievalDocument  = "retrieval_document"
	TaskRetrievalQuery     = "retrieval_query"
	TaskSemanticSimilarity = "semantic_similarity"
	TaskClassification     = "classification"
	TaskClustering         = "clustering"
)

const (
	DefaultModel          = "text-embedding-004"
	DefaultOpenAIHost     = "http://localhost:11434/v1"
	DefaultPaceInterval   = time.Second
	DefaultMaxAttempts    = 1
	DefaultRetryBaseDelay = time.Second
)

// Config holds configuration for embedding providers.
type Config struct {
	// Provider selects the implementation: "gemini" or "openai".
	Provider string

	// EmbeddingHost is the base URL of the embedding service.
	// Optional for Gemini, where it overrides the SDK endpoint.
	// Required for OpenAI-compatible services; /v1 is appended when missing.
	EmbeddingHost string

	// EmbeddingModel is the model identifier, e.g. "text-embedding-004".
	EmbeddingModel string

	// APIKey authenticates against the service. Required for Gemini.
	APIKey string

	// TaskType hints the provider about how the vectors will be used.
	TaskType string

	// PaceInterval is the minimum gap enforced after every provider call.
	PaceInterval time.Duration

	// RequestsPerMinute, when positive, replaces PaceInterval with a
	// token bucket limiter.
	RequestsPerMinute int

	// MaxAttempts bounds provider calls per chunk. 1 disables retries.
	MaxAttempts int

	// RetryBaseDelay is the first backoff delay; it doubles on each retry.
	RetryBaseDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider sets the provider name.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithTaskType sets the embedding task type.
func WithTaskType(taskType string) ConfigOption {
	return func(c *Config) {
		c.TaskType = taskType
	}
}

// WithPaceInterval sets the gap enforced after every provider call.
func WithPaceInterval(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.PaceInterval = d
	}
}

// WithRequestsPerMinute switches pacing to a requests-per-minute budget.
func WithRequestsPerMinute(rpm int) ConfigOption {
	return func(c *Config) {
		c.RequestsPerMinute = rpm
	}
}

// WithRetry sets the retry budget for each chunk.
func WithRetry(maxAttempts int, baseDelay time.Duration) ConfigOption {
	return func(c *Config) {
		c.MaxAttempts = maxAttempts
		c.RetryBaseDelay = baseDelay
	}
}

// DefaultConfig returns a Config targeting Gemini's text-embedding-004 with
// one request per second and no retries. The API key must still be supplied.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderGemini,
		EmbeddingModel: DefaultModel,
		TaskType:       TaskRetrievalDocument,
		PaceInterval:   DefaultPaceInterval,
		MaxAttempts:    DefaultMaxAttempts,
		RetryBaseDelay: DefaultRetryBaseDelay,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithAPIKey(os.Getenv("GEMINI_API_KEY")),
//	    WithRequestsPerMinute(60),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Provider names are lower-cased and OpenAI-compatible hosts get the /v1
// suffix most compatible servers (Ollama, LocalAI, vLLM) expect.
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = ProviderGemini
	}
	if c.TaskType == "" {
		c.TaskType = TaskRetrievalDocument
	}
	if c.Provider == ProviderOpenAI {
		if c.EmbeddingHost == "" {
			c.EmbeddingHost = DefaultOpenAIHost
		}
		if !strings.HasSuffix(c.EmbeddingHost, "/v1") {
			c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/") + "/v1"
		}
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Provider {
	case ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("%w: APIKey is required for the gemini provider", ErrInvalidConfig)
		}
	case ProviderOpenAI:
	default:
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, ErrUnknownProvider, c.Provider)
	}
	if c.EmbeddingModel == "" {
		return fmt.Errorf("%w: EmbeddingModel is required", ErrInvalidConfig)
	}
	switch c.TaskType {
	case TaskRetrievalDocument, TaskRetrievalQuery, TaskSemanticSimilarity, TaskClassification, TaskClustering:
	default:
		return fmt.Errorf("%w: unknown TaskType %q", ErrInvalidConfig, c.TaskType)
	}
	if c.PaceInterval < 0 {
		return fmt.Errorf("%w: PaceInterval must not be negative", ErrInvalidConfig)
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("%w: RequestsPerMinute must not be negative", ErrInvalidConfig)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrInvalidMaxAttempts)
	}
	if c.RetryBaseDelay < 0 {
		return fmt.Errorf("%w: RetryBaseDelay must not be negative", ErrInvalidConfig)
	}
	return nil
}
