package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateStrategy checks that a chunking strategy satisfies 0 <= overlap < size.
func ValidateStrategy(s Strategy) error {
	if s.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, s.Size)
	}
	if s.Overlap < 0 {
		return fmt.Errorf("%w: overlap must not be negative, got %d", ErrInvalidConfig, s.Overlap)
	}
	if s.Overlap >= s.Size {
		return fmt.Errorf("%w: overlap %d must be less than size %d", ErrInvalidConfig, s.Overlap, s.Size)
	}
	return nil
}

// ValidateChunkRecord checks that a record is complete enough to be persisted.
func ValidateChunkRecord(record *ChunkRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidChunkRecord)
	}

	if strings.TrimSpace(record.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunkRecord, ErrEmptyContent)
	}

	if len(record.Embedding) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunkRecord, ErrEmptyEmbedding)
	}

	if record.Filename == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunkRecord, ErrEmptyFilename)
	}

	if record.Strategy == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunkRecord, ErrEmptyStrategy)
	}

	if !IsValidTimestamp(record.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidChunkRecord, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp reports whether ts is set and not in the future.
func IsValidTimestamp(ts time.Time) bool {
	return !ts.IsZero() && !ts.After(time.Now())
}
