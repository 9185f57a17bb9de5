package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	assert.Equal(t, TaskRetrievalDocument, cfg.TaskType)
	assert.Equal(t, time.Second, cfg.PaceInterval)
	assert.Equal(t, 0, cfg.RequestsPerMinute)
	assert.Equal(t, 1, cfg.MaxAttempts)
	assert.Empty(t, cfg.APIKey)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithProvider(ProviderOpenAI),
			WithEmbeddingHost("http://custom:8080/v1"),
			WithEmbeddingModel("nomic-embed-text"),
			WithAPIKey("secret"),
			WithTaskType(TaskClustering),
			WithPaceInterval(250*time.Millisecond),
			WithRequestsPerMinute(30),
			WithRetry(4, 2*time.Second),
		)

		assert.Equal(t, ProviderOpenAI, cfg.Provider)
		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "nomic-embed-text", cfg.EmbeddingModel)
		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, TaskClustering, cfg.TaskType)
		assert.Equal(t, 250*time.Millisecond, cfg.PaceInterval)
		assert.Equal(t, 30, cfg.RequestsPerMinute)
		assert.Equal(t, 4, cfg.MaxAttempts)
		assert.Equal(t, 2*time.Second, cfg.RetryBaseDelay)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name         string
		provider     string
		host         string
		expectedHost string
	}{
		{"openai already has /v1", ProviderOpenAI, "http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"openai missing /v1", ProviderOpenAI, "http://localhost:11434", "http://localhost:11434/v1"},
		{"openai trailing slash", ProviderOpenAI, "http://localhost:11434/", "http://localhost:11434/v1"},
		{"openai empty host", ProviderOpenAI, "", DefaultOpenAIHost},
		{"gemini host untouched", ProviderGemini, "https://example.test", "https://example.test"},
		{"gemini empty host", ProviderGemini, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Provider: tt.provider, EmbeddingHost: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.expectedHost, cfg.EmbeddingHost)
		})
	}

	t.Run("provider is canonicalised", func(t *testing.T) {
		cfg := &Config{Provider: "  OpenAI "}
		cfg.Normalize()
		assert.Equal(t, ProviderOpenAI, cfg.Provider)
	})

	t.Run("empty provider defaults to gemini", func(t *testing.T) {
		cfg := &Config{}
		cfg.Normalize()
		assert.Equal(t, ProviderGemini, cfg.Provider)
		assert.Equal(t, TaskRetrievalDocument, cfg.TaskType)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid gemini", func(c *Config) { c.APIKey = "key" }, false},
		{"valid openai without key", func(c *Config) { c.Provider = ProviderOpenAI }, false},
		{"gemini requires key", func(c *Config) {}, true},
		{"unknown provider", func(c *Config) { c.Provider = "cohere" }, true},
		{"missing model", func(c *Config) { c.APIKey = "key"; c.EmbeddingModel = "" }, true},
		{"unknown task type", func(c *Config) { c.APIKey = "key"; c.TaskType = "summarize" }, true},
		{"negative pace", func(c *Config) { c.APIKey = "key"; c.PaceInterval = -time.Second }, true},
		{"negative rpm", func(c *Config) { c.APIKey = "key"; c.RequestsPerMinute = -1 }, true},
		{"zero attempts", func(c *Config) { c.APIKey = "key"; c.MaxAttempts = 0 }, true},
		{"negative retry delay", func(c *Config) { c.APIKey = "key"; c.RetryBaseDelay = -1 }, true},
		{"zero pace allowed", func(c *Config) { c.APIKey = "key"; c.PaceInterval = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("unknown provider wraps sentinel", func(t *testing.T) {
		cfg := NewConfig(WithProvider("cohere"))
		assert.ErrorIs(t, cfg.Validate(), ErrUnknownProvider)
	})
}
