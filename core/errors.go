package core

import "errors"

var (
	// ErrInvalidConfig indicates chunking parameters violate 0 <= overlap < size.
	ErrInvalidConfig = errors.New("invalid chunking configuration")

	// ErrInvalidChunkRecord indicates a ChunkRecord failed validation.
	ErrInvalidChunkRecord = errors.New("invalid chunk record")

	// ErrInvalidTimestamp indicates a timestamp is zero or in the future.
	ErrInvalidTimestamp = errors.New("timestamp must be set and not in the future")

	// ErrEmptyContent indicates the chunk text is empty or whitespace.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyEmbedding indicates a record carries no embedding vector.
	ErrEmptyEmbedding = errors.New("embedding cannot be empty")

	// ErrEmptyFilename indicates a record has no source filename.
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// ErrEmptyStrategy indicates a record has no split strategy.
	ErrEmptyStrategy = errors.New("split strategy cannot be empty")
)
