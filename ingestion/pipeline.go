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

package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/docindex/ai"
	"github.com/poiesic/docindex/core"
	"github.com/poiesic/docindex/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/poiesic/docindex/ingestion"

// TextExtractor turns a document on disk into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Chunker splits text into windows.
type Chunker interface {
	Chunk(text, source string) ([]core.Chunk, core.Strategy)
	Strategy() core.Strategy
}

// Pipeline runs documents through extraction, chunking, embedding and
// persistence. Runs are sequential; a Pipeline holds no per-run state and
// may be reused for many files.
type Pipeline struct {
	extractor TextExtractor
	chunker   Chunker
	embedder  ai.Embedder
	store     storage.Store

	clock            func() time.Time
	progress         io.Writer
	progressInterval int
	tracer           trace.Tracer
	logger           *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithClock sets the time source used for record timestamps and durations.
func WithClock(clock func() time.Time) Option {
	return func(p *Pipeline) error {
		if clock == nil {
			return errors.New("clock must not be nil")
		}
		p.clock = clock
		return nil
	}
}

// WithProgress writes an embedding progress line to w every interval chunks.
func WithProgress(w io.Writer, interval int) Option {
	return func(p *Pipeline) error {
		p.progress = w
		p.progressInterval = interval
		return nil
	}
}

// NewPipeline creates a pipeline from its four collaborators. The chunker's
// strategy is validated here so a bad configuration fails before any I/O.
func NewPipeline(
	extractor TextExtractor,
	chunker Chunker,
	embedder ai.Embedder,
	store storage.Store,
	opts ...Option,
) (*Pipeline, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if chunker == nil {
		return nil, ErrChunkerRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if err := core.ValidateStrategy(chunker.Strategy()); err != nil {
		return nil, err
	}

	p := &Pipeline{
		extractor:        extractor,
		chunker:          chunker,
		embedder:         embedder,
		store:            store,
		clock:            time.Now,
		progressInterval: 1,
		tracer:           otel.Tracer(tracerName),
		logger:           slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.logger = p.logger.With("component", "pipeline")

	return p, nil
}

// Process indexes the document at path and reports the outcome.
// It never panics and never returns a bare error: failures are described by
// Report.State and Report.Err.
func (p *Pipeline) Process(ctx context.Context, path string) (report *Report) {
	start := p.clock()
	report = &Report{
		RunID:     uuid.NewString(),
		Path:      path,
		Filename:  filepath.Base(path),
		Strategy:  p.chunker.Strategy(),
		State:     StateIdle,
		StartedAt: start,
	}
	logger := p.logger.With("run", report.RunID, "file", report.Filename)

	ctx, span := p.tracer.Start(ctx, "ingestion.Process", trace.WithAttributes(
		attribute.String("docindex.run_id", report.RunID),
		attribute.String("docindex.file", report.Filename),
		attribute.String("docindex.strategy", report.Strategy.String()),
	))
	defer func() {
		if r := recover(); r != nil {
			logger.Error("pipeline panicked", "state", report.State.String(), "panic", r)
			report.abort(fmt.Errorf("%w during %s: %v", ErrPanic, report.State, r))
		}
		report.Duration = p.clock().Sub(start)

		span.SetAttributes(
			attribute.String("docindex.state", report.State.String()),
			attribute.Int("docindex.chunks", report.Chunks),
			attribute.Int("docindex.embedded", report.Embedded),
			attribute.Int("docindex.persisted", report.Persisted),
		)
		if report.Err != nil {
			span.RecordError(report.Err)
			span.SetStatus(codes.Error, report.Err.Error())
		}
		span.End()

		logger.Info("run finished",
			"state", report.State.String(),
			"chunks", report.Chunks,
			"embedded", report.Embedded,
			"failed", len(report.Failures),
			"persisted", report.Persisted,
			"duration", report.Duration)
	}()

	text, err := p.extract(ctx, report, logger)
	if err != nil {
		report.abort(err)
		return report
	}

	chunks := p.chunk(ctx, report, text, logger)
	if len(chunks) == 0 {
		logger.Warn("document produced no chunks")
		report.abort(ErrNoChunks)
		return report
	}

	records, err := p.embed(ctx, report, chunks, logger)
	if err != nil {
		logger.Warn("embedding interrupted", "err", err)
		report.abort(err)
		return report
	}
	if len(records) == 0 {
		logger.Warn("no chunk could be embedded", "failed", len(report.Failures))
		report.State = StateDone
		report.Err = ErrNoEmbeddings
		return report
	}

	p.persist(ctx, report, records, logger)
	report.State = StateDone
	return report
}

func (p *Pipeline) enter(report *Report, state State, logger *slog.Logger) {
	logger.Debug("state transition", "from", report.State.String(), "to", state.String())
	report.State = state
}

func (p *Pipeline) extract(ctx context.Context, report *Report, logger *slog.Logger) (string, error) {
	p.enter(report, StateExtracting, logger)
	ctx, span := p.tracer.Start(ctx, "ingestion.extract")
	defer span.End()

	logger.Info("reading document", "path", report.Path)
	text, err := p.extractor.Extract(ctx, report.Path)
	if err != nil {
		logger.Error("extraction failed", "err", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(attribute.Int("docindex.text_length", len(text)))
	return text, nil
}

func (p *Pipeline) chunk(ctx context.Context, report *Report, text string, logger *slog.Logger) []core.Chunk {
	p.enter(report, StateChunking, logger)
	_, span := p.tracer.Start(ctx, "ingestion.chunk")
	defer span.End()

	chunks, strategy := p.chunker.Chunk(text, report.Filename)
	report.Strategy = strategy
	report.Chunks = len(chunks)
	span.SetAttributes(attribute.Int("docindex.chunks", len(chunks)))
	logger.Info("split document into chunks", "chunks", len(chunks), "strategy", strategy.String())
	return chunks
}

// embed requests a vector for every chunk in order. Failed chunks are
// recorded on the report and skipped. Only cancellation of ctx stops the
// loop early, in which case the context error is returned.
func (p *Pipeline) embed(ctx context.Context, report *Report, chunks []core.Chunk, logger *slog.Logger) ([]core.ChunkRecord, error) {
	p.enter(report, StateEmbedding, logger)
	ctx, span := p.tracer.Start(ctx, "ingestion.embed", trace.WithAttributes(
		attribute.Int("docindex.chunks", len(chunks)),
	))
	defer span.End()

	var tracker *ProgressTracker
	if p.progress != nil {
		tracker = NewProgressTracker(p.progress, report.Filename, len(chunks), p.progressInterval)
		tracker.Start()
		defer tracker.Finish()
	}

	records := make([]core.ChunkRecord, 0, len(chunks))
	dimension := 0
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vector, err := p.embedder.EmbedText(ctx, chunk.Text)
		if err != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		switch {
		case err != nil:
		case len(vector) == 0:
			err = ai.ErrEmptyEmbedding
		case dimension != 0 && len(vector) != dimension:
			err = fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vector), dimension)
		}

		if err != nil {
			p.recordFailure(report, chunk, err, logger)
		} else {
			dimension = len(vector)
			records = append(records, core.NewChunkRecord(chunk, vector, p.clock().UTC()))
		}
		if tracker != nil {
			tracker.Increment(err != nil)
		}
	}

	report.Embedded = len(records)
	span.SetAttributes(
		attribute.Int("docindex.embedded", len(records)),
		attribute.Int("docindex.failed", len(report.Failures)),
	)
	return records, nil
}

func (p *Pipeline) recordFailure(report *Report, chunk core.Chunk, err error, logger *slog.Logger) {
	var failure *ai.EmbeddingFailure
	if !errors.As(err, &failure) {
		err = &ai.EmbeddingFailure{Attempts: 1, Err: err}
	}
	logger.Warn("skipping chunk", "chunk", chunk.Index, "id", chunk.ID(), "err", err)
	report.Failures = append(report.Failures, ChunkFailure{
		Index:   chunk.Index,
		ChunkID: chunk.ID(),
		Err:     err,
	})
}

func (p *Pipeline) persist(ctx context.Context, report *Report, records []core.ChunkRecord, logger *slog.Logger) {
	p.enter(report, StatePersisting, logger)
	ctx, span := p.tracer.Start(ctx, "ingestion.persist", trace.WithAttributes(
		attribute.Int("docindex.records", len(records)),
	))
	defer span.End()

	logger.Info("saving chunks", "count", len(records))
	result, err := p.store.Persist(ctx, report.Filename, records)
	report.Result = result
	if err != nil {
		logger.Error("failed to persist chunks", "err", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		report.Err = err
		report.Persisted = 0
		return
	}
	report.Persisted = result.Succeeded
	logger.Info("successfully saved chunks", "count", result.Succeeded)
}
