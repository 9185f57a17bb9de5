package docindex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/docindex/ai"
	"github.com/poiesic/docindex/ai/gemini"
	"github.com/poiesic/docindex/ai/openai"
	"github.com/poiesic/docindex/chunking"
	"github.com/poiesic/docindex/extract"
	"github.com/poiesic/docindex/ingestion"
	"github.com/poiesic/docindex/storage"
	"github.com/poiesic/docindex/storage/badger"
	"github.com/poiesic/docindex/storage/postgres"
)

// Indexer is the entry point for indexing documents. It owns the embedding
// provider client and must be closed when no longer needed.
type Indexer struct {
	config   *Config
	embedder ai.Embedder
	store    storage.Store
	pipeline *ingestion.Pipeline
	closers  []io.Closer
	logger   *slog.Logger
}

// IndexerOption customizes how NewIndexer assembles the pipeline.
type IndexerOption func(*indexerOptions)

type indexerOptions struct {
	embedder        ai.Embedder
	store           storage.Store
	pipelineOptions []ingestion.Option
}

// WithEmbedder replaces the configured embedding provider. The embedder is
// still paced and retried according to the configuration.
func WithEmbedder(embedder ai.Embedder) IndexerOption {
	return func(o *indexerOptions) {
		o.embedder = embedder
	}
}

// WithStore replaces the configured chunk store.
func WithStore(store storage.Store) IndexerOption {
	return func(o *indexerOptions) {
		o.store = store
	}
}

// WithPipelineOptions passes options through to ingestion.NewPipeline.
func WithPipelineOptions(opts ...ingestion.Option) IndexerOption {
	return func(o *indexerOptions) {
		o.pipelineOptions = append(o.pipelineOptions, opts...)
	}
}

// NewIndexer validates cfg and assembles the extractor, chunker, embedder
// and store into a pipeline. No document is read and the store is not
// contacted until Index is called.
func NewIndexer(ctx context.Context, cfg *Config, opts ...IndexerOption) (*Indexer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", ErrInvalidConfig)
	}

	options := &indexerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	idx := &Indexer{
		config: cfg,
		logger: slog.Default().With("component", "indexer"),
	}

	chunker, err := chunking.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	extractor := extract.New(extract.WithMaxFileSize(cfg.MaxFileSize))

	aiConfig := cfg.AIConfig()
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	base := options.embedder
	if base == nil {
		base, err = idx.newProvider(ctx, aiConfig)
		if err != nil {
			return nil, err
		}
	}

	idx.embedder, err = ai.NewPacedEmbedder(base,
		ai.WithPacer(ai.NewPacer(aiConfig)),
		ai.WithRetryPolicy(ai.RetryPolicy{
			MaxAttempts: aiConfig.MaxAttempts,
			BaseDelay:   aiConfig.RetryBaseDelay,
		}),
	)
	if err != nil {
		idx.Close()
		return nil, err
	}

	idx.store = options.store
	if idx.store == nil {
		idx.store, err = newStore(cfg)
		if err != nil {
			idx.Close()
			return nil, err
		}
	}

	idx.pipeline, err = ingestion.NewPipeline(extractor, chunker, idx.embedder, idx.store, options.pipelineOptions...)
	if err != nil {
		idx.Close()
		return nil, err
	}

	idx.logger.Info("indexer ready",
		"provider", aiConfig.Provider,
		"model", aiConfig.EmbeddingModel,
		"strategy", chunker.Strategy().String())
	return idx, nil
}

func (idx *Indexer) newProvider(ctx context.Context, config *ai.Config) (ai.Embedder, error) {
	switch config.Provider {
	case ai.ProviderGemini:
		embedder, err := gemini.NewEmbedder(ctx, config)
		if err != nil {
			return nil, err
		}
		idx.closers = append(idx.closers, embedder)
		return embedder, nil
	case ai.ProviderOpenAI:
		return openai.NewEmbedder(config)
	default:
		return nil, fmt.Errorf("%w: %w %q", ErrInvalidConfig, ai.ErrUnknownProvider, config.Provider)
	}
}

func newStore(cfg *Config) (storage.Store, error) {
	if cfg.PostgresURL != "" {
		return postgres.New(cfg.PostgresURL, postgres.WithTable(cfg.ChunksTable))
	}
	return badger.NewStore(cfg.BadgerDir)
}

// Index runs one document through extraction, chunking, embedding and
// storage. Failures are reported on the returned Report rather than as an
// error.
func (idx *Indexer) Index(ctx context.Context, path string) *ingestion.Report {
	return idx.pipeline.Process(ctx, path)
}

// Store returns the chunk store the indexer writes to.
func (idx *Indexer) Store() storage.Store {
	return idx.store
}

// Config returns the configuration the indexer was built from.
func (idx *Indexer) Config() *Config {
	return idx.config
}

// Close releases the embedding provider client.
func (idx *Indexer) Close() error {
	var errs []error
	for _, c := range idx.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	idx.closers = nil
	return errors.Join(errs...)
}
