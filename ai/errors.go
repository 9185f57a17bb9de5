package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when an ai.Config fails validation.
	ErrInvalidConfig = errors.New("invalid ai config")

	// ErrEmbeddingFailed matches every *EmbeddingFailure.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrEmptyEmbedding is returned when a provider answers with no vector.
	ErrEmptyEmbedding = errors.New("provider returned an empty embedding")

	// ErrInvalidMaxAttempts is returned when a retry policy allows no attempts.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrUnknownProvider is returned for a provider name docindex does not support.
	ErrUnknownProvider = errors.New("unknown embedding provider")
)

// EmbeddingFailure describes a chunk that could not be embedded.
type EmbeddingFailure struct {
	// Attempts is the number of provider calls made before giving up.
	Attempts int
	// Err is the error from the last attempt.
	Err error
}

func (f *EmbeddingFailure) Error() string {
	if f.Attempts == 1 {
		return fmt.Sprintf("embedding failed after 1 attempt: %v", f.Err)
	}
	return fmt.Sprintf("embedding failed after %d attempts: %v", f.Attempts, f.Err)
}

func (f *EmbeddingFailure) Unwrap() error {
	return f.Err
}

// Is reports whether target is ErrEmbeddingFailed.
func (f *EmbeddingFailure) Is(target error) bool {
	return target == ErrEmbeddingFailed
}
