package storage

import (
	"context"
	"fmt"

	"github.com/poiesic/docindex/core"
)

// Store persists the embedded chunks of one document.
type Store interface {
	// Persist writes records as one batch for filename.
	// Every record must belong to filename and pass core.ValidateChunkRecord.
	// On error the result is {Succeeded: 0, Failed: len(records)} and the
	// error is a *StorageFailure.
	Persist(ctx context.Context, filename string, records []core.ChunkRecord) (core.PersistResult, error)
}

// RecordLister reads back what a Store persisted for a file.
type RecordLister interface {
	// ListRecords returns the records stored for filename in insertion order.
	// A filename that was never persisted yields an empty slice.
	ListRecords(ctx context.Context, filename string) ([]core.ChunkRecord, error)
}

// ValidateBatch checks a batch before any connection is acquired.
// It requires a filename, valid records that all carry that filename, and a
// single embedding dimension across the batch.
func ValidateBatch(filename string, records []core.ChunkRecord) error {
	if filename == "" {
		return fmt.Errorf("%w: %w", core.ErrInvalidChunkRecord, core.ErrEmptyFilename)
	}
	dim := 0
	for i := range records {
		r := &records[i]
		if err := core.ValidateChunkRecord(r); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if r.Filename != filename {
			return fmt.Errorf("record %d: %w: %q != %q", i, ErrFilenameMismatch, r.Filename, filename)
		}
		if dim == 0 {
			dim = len(r.Embedding)
		} else if len(r.Embedding) != dim {
			return fmt.Errorf("record %d: %w: %d != %d", i, ErrDimensionMismatch, len(r.Embedding), dim)
		}
	}
	return nil
}

// FailedBatch is the result reported for a batch that was not committed.
func FailedBatch(records []core.ChunkRecord) core.PersistResult {
	return core.PersistResult{Succeeded: 0, Failed: len(records)}
}
