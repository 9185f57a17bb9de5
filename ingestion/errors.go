package ingestion

import "errors"

var (
	// ErrExtractorRequired is returned when a text extractor is not provided.
	ErrExtractorRequired = errors.New("text extractor required")

	// ErrChunkerRequired is returned when a chunker is not provided.
	ErrChunkerRequired = errors.New("chunker required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrStoreRequired is returned when a store is not provided.
	ErrStoreRequired = errors.New("store required")

	// ErrNoChunks is reported when a document yields no non-blank chunks.
	ErrNoChunks = errors.New("document produced no chunks")

	// ErrNoEmbeddings is reported when every chunk failed to embed.
	ErrNoEmbeddings = errors.New("no chunk could be embedded")

	// ErrDimensionMismatch is recorded for a vector whose length differs
	// from the first vector of the run.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrPanic is reported when a stage panicked.
	ErrPanic = errors.New("pipeline panic")
)
