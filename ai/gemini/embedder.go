package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/poiesic/docindex/ai"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/option"
)

const tracerName = "github.com/poiesic/docindex/ai/gemini"

// ErrNoEmbedding is returned when the API answers without an embedding.
var ErrNoEmbedding = errors.New("gemini: no embedding returned")

// embeddingModel is the part of the SDK the embedder depends on.
type embeddingModel interface {
	embed(ctx context.Context, text string) ([]float32, error)
	embedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type sdkModel struct {
	model *genai.EmbeddingModel
}

func (m sdkModel) embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := m.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.Embedding == nil {
		return nil, ErrNoEmbedding
	}
	return resp.Embedding.Values, nil
}

func (m sdkModel) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	batch := m.model.NewBatch()
	for _, t := range texts {
		batch.AddContent(genai.Text(t))
	}
	resp, err := m.model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		return nil, ErrNoEmbedding
	}
	out := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		if e == nil {
			return nil, fmt.Errorf("%w for text %d", ErrNoEmbedding, i)
		}
		out[i] = e.Values
	}
	return out, nil
}

// Embedder implements ai.Embedder using the Gemini embedding API.
type Embedder struct {
	client    *genai.Client
	model     embeddingModel
	modelName string
	breaker   *gobreaker.CircuitBreaker
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewEmbedder creates a Gemini embedder from config. The caller must Close
// it to release the underlying client.
func NewEmbedder(ctx context.Context, config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Provider != ai.ProviderGemini {
		return nil, fmt.Errorf("%w: gemini embedder cannot serve provider %q", ai.ErrInvalidConfig, config.Provider)
	}

	opts := []option.ClientOption{option.WithAPIKey(config.APIKey)}
	if config.EmbeddingHost != "" {
		opts = append(opts, option.WithEndpoint(config.EmbeddingHost))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	model := client.EmbeddingModel(config.EmbeddingModel)
	model.TaskType = TaskType(config.TaskType)

	e := newEmbedder(sdkModel{model: model}, config.EmbeddingModel)
	e.client = client
	return e, nil
}

func newEmbedder(model embeddingModel, modelName string) *Embedder {
	logger := slog.Default().With("component", "gemini-embedder", "model", modelName)
	return &Embedder{
		model:     model,
		modelName: modelName,
		breaker:   newBreaker(logger),
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
	}
}

func newBreaker(logger *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini-embeddings",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: readyToTrip,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// readyToTrip opens the breaker after five consecutive failures, or when at
// least ten requests have been seen and more than half of them failed.
func readyToTrip(counts gobreaker.Counts) bool {
	if counts.ConsecutiveFailures >= 5 {
		return true
	}
	if counts.Requests < 10 {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) > 0.5
}

// TaskType maps a docindex task type name to the SDK constant.
func TaskType(name string) genai.TaskType {
	switch name {
	case ai.TaskRetrievalDocument:
		return genai.TaskTypeRetrievalDocument
	case ai.TaskRetrievalQuery:
		return genai.TaskTypeRetrievalQuery
	case ai.TaskSemanticSimilarity:
		return genai.TaskTypeSemanticSimilarity
	case ai.TaskClassification:
		return genai.TaskTypeClassification
	case ai.TaskClustering:
		return genai.TaskTypeClustering
	default:
		return genai.TaskTypeUnspecified
	}
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	ctx, span := e.tracer.Start(ctx, "gemini.EmbedText", trace.WithAttributes(
		attribute.String("gemini.model", e.modelName),
		attribute.Int("gemini.text_length", len(text)),
	))
	defer span.End()

	result, err := e.breaker.Execute(func() (interface{}, error) {
		return e.model.embed(ctx, text)
	})
	if err != nil {
		e.fail(span, err)
		return nil, err
	}

	vector := result.([]float32)
	span.SetAttributes(attribute.Int("gemini.dimension", len(vector)))
	return vector, nil
}

// EmbedTexts embeds texts with a single batch request.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	ctx, span := e.tracer.Start(ctx, "gemini.EmbedTexts", trace.WithAttributes(
		attribute.String("gemini.model", e.modelName),
		attribute.Int("gemini.batch_size", len(texts)),
	))
	defer span.End()

	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	result, err := e.breaker.Execute(func() (interface{}, error) {
		return e.model.embedBatch(ctx, texts)
	})
	if err != nil {
		e.fail(span, err)
		return nil, err
	}
	return result.([][]float32), nil
}

func (e *Embedder) fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if errors.Is(err, gobreaker.ErrOpenState) {
		e.logger.Error("embedding rejected, circuit breaker open", "err", err)
		return
	}
	e.logger.Error("failed to generate embedding", "err", err)
}

// Close releases the underlying client.
func (e *Embedder) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}
