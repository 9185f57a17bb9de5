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

package docindex

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/poiesic/docindex/ai"
	"github.com/poiesic/docindex/chunking"
	"github.com/poiesic/docindex/core"
	"github.com/poiesic/docindex/extract"
	"github.com/poiesic/docindex/storage/postgres"
)

var (
	// ErrInvalidConfig indicates the indexer configuration is unusable.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStoreConfig is returned unless exactly one store is configured.
	ErrStoreConfig = errors.New("exactly one of POSTGRES_URL or BADGER_DIR must be set")
)

// Config is the static configuration of an Indexer, read from the environment.
type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	PostgresURL string `env:"POSTGRES_URL"`
	ChunksTable string `env:"CHUNKS_TABLE" envDefault:"document_chunks"`
	BadgerDir   string `env:"BADGER_DIR"`

	EmbeddingProvider    string        `env:"EMBEDDING_PROVIDER" envDefault:"gemini"`
	EmbeddingModel       string        `env:"EMBEDDING_MODEL" envDefault:"text-embedding-004"`
	EmbeddingHost        string        `env:"EMBEDDING_HOST"`
	EmbeddingPace        time.Duration `env:"EMBEDDING_PACE" envDefault:"1s"`
	EmbeddingRPM         int           `env:"EMBEDDING_RPM" envDefault:"0"`
	EmbeddingMaxAttempts int           `env:"EMBEDDING_MAX_ATTEMPTS" envDefault:"1"`
	EmbeddingRetryDelay  time.Duration `env:"EMBEDDING_RETRY_DELAY" envDefault:"1s"`

	ChunkSize    int   `env:"CHUNK_SIZE" envDefault:"1000"`
	ChunkOverlap int   `env:"CHUNK_OVERLAP" envDefault:"100"`
	MaxFileSize  int64 `env:"MAX_FILE_SIZE" envDefault:"209715200"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// LoadConfigFrom reads the configuration from environ instead of the
// process environment.
func LoadConfigFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// DefaultConfig returns the configuration used when no variable is set.
func DefaultConfig() *Config {
	return &Config{
		ChunksTable:          postgres.DefaultTable,
		EmbeddingProvider:    ai.ProviderGemini,
		EmbeddingModel:       ai.DefaultModel,
		EmbeddingPace:        ai.DefaultPaceInterval,
		EmbeddingMaxAttempts: ai.DefaultMaxAttempts,
		EmbeddingRetryDelay:  ai.DefaultRetryBaseDelay,
		ChunkSize:            chunking.DefaultSize,
		ChunkOverlap:         chunking.DefaultOverlap,
		MaxFileSize:          extract.DefaultMaxFileSize,
	}
}

// Strategy returns the chunking strategy described by the configuration.
func (c *Config) Strategy() core.Strategy {
	return core.Strategy{
		Name:    core.StrategyFixedSizeOverlap,
		Size:    c.ChunkSize,
		Overlap: c.ChunkOverlap,
	}
}

// AIConfig converts the embedding settings into an ai.Config.
func (c *Config) AIConfig() *ai.Config {
	key := c.GeminiAPIKey
	if strings.EqualFold(strings.TrimSpace(c.EmbeddingProvider), ai.ProviderOpenAI) {
		key = c.OpenAIAPIKey
	}
	return ai.NewConfig(
		ai.WithProvider(c.EmbeddingProvider),
		ai.WithEmbeddingHost(c.EmbeddingHost),
		ai.WithEmbeddingModel(c.EmbeddingModel),
		ai.WithAPIKey(key),
		ai.WithPaceInterval(c.EmbeddingPace),
		ai.WithRequestsPerMinute(c.EmbeddingRPM),
		ai.WithRetry(c.EmbeddingMaxAttempts, c.EmbeddingRetryDelay),
	)
}

// Validate checks the static configuration. It performs no I/O, so an
// invalid configuration is reported before any file or service is touched.
func (c *Config) Validate() error {
	if err := core.ValidateStrategy(c.Strategy()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if (c.PostgresURL == "") == (c.BadgerDir == "") {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrStoreConfig)
	}
	if c.PostgresURL != "" && c.ChunksTable == "" {
		return fmt.Errorf("%w: CHUNKS_TABLE must not be empty", ErrInvalidConfig)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("%w: MAX_FILE_SIZE must be positive", ErrInvalidConfig)
	}
	if err := c.AIConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
