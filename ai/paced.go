package ai

import (
	"context"
	"fmt"
	"log/slog"
)

// PacedEmbedder wraps an Embedder with pacing and bounded retries.
// Every provider call, successful or not, is followed by a Pacer.Wait.
type PacedEmbedder struct {
	embedder Embedder
	pacer    Pacer
	retry    RetryPolicy
	logger   *slog.Logger
}

// PacedOption configures a PacedEmbedder.
type PacedOption func(*PacedEmbedder)

// WithPacer overrides the default one second interval pacer.
func WithPacer(p Pacer) PacedOption {
	return func(pe *PacedEmbedder) {
		pe.pacer = p
	}
}

// WithRetryPolicy sets the per-text retry budget. The default is NoRetry.
func WithRetryPolicy(policy RetryPolicy) PacedOption {
	return func(pe *PacedEmbedder) {
		pe.retry = policy
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) PacedOption {
	return func(pe *PacedEmbedder) {
		pe.logger = logger
	}
}

// NewPacedEmbedder wraps embedder. It fails if embedder is nil or the retry
// policy allows no attempts.
func NewPacedEmbedder(embedder Embedder, opts ...PacedOption) (*PacedEmbedder, error) {
	if embedder == nil {
		return nil, fmt.Errorf("%w: embedder is required", ErrInvalidConfig)
	}
	pe := &PacedEmbedder{
		embedder: embedder,
		pacer:    NewIntervalPacer(DefaultPaceInterval),
		retry:    NoRetry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(pe)
	}
	if pe.pacer == nil {
		pe.pacer = NoPacer
	}
	if pe.retry.MaxAttempts <= 0 {
		return nil, ErrInvalidMaxAttempts
	}
	pe.logger = pe.logger.With("component", "paced-embedder")
	return pe, nil
}

// EmbedText embeds a single text. Any failure, including an empty vector,
// is reported as *EmbeddingFailure.
func (pe *PacedEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	var vector []float32
	attempts, err := pe.retry.Do(ctx, func() error {
		v, err := pe.embedder.EmbedText(ctx, text)
		if waitErr := pe.pacer.Wait(ctx); waitErr != nil {
			pe.logger.Debug("pacing interrupted", "err", waitErr)
		}
		if err != nil {
			return err
		}
		if len(v) == 0 {
			return ErrEmptyEmbedding
		}
		vector = v
		return nil
	})
	if err != nil {
		pe.logger.Warn("embedding failed", "attempts", attempts, "length", len(text), "err", err)
		return nil, &EmbeddingFailure{Attempts: attempts, Err: err}
	}
	return vector, nil
}

// EmbedTexts embeds texts one call at a time and stops at the first failure.
// The error identifies the failing index and wraps its *EmbeddingFailure.
func (pe *PacedEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for i, text := range texts {
		v, err := pe.EmbedText(ctx, text)
		if err != nil {
			return vectors, fmt.Errorf("text %d: %w", i, err)
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}
