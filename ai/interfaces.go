package ai

import "context"

// Embedder generates vector embeddings from text.
// Implementations must be safe for sequential reuse across many calls.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pacer spaces out calls to a rate-limited service.
type Pacer interface {
	// Wait blocks until the next call may be made or ctx is done.
	Wait(ctx context.Context) error
}
