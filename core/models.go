package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier for chunks and records.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// StrategyFixedSizeOverlap names the sliding-window chunking strategy.
const StrategyFixedSizeOverlap = "fixed-size-overlap"

// Strategy describes how a document's text was split into chunks.
// It is stored alongside every chunk so that re-indexing with different
// parameters remains distinguishable.
type Strategy struct {
	Name    string
	Size    int
	Overlap int
}

// String renders the strategy in its persisted form, e.g. "fixed-size-overlap(1000,100)".
func (s Strategy) String() string {
	return fmt.Sprintf("%s(%d,%d)", s.Name, s.Size, s.Overlap)
}

// Stride is the distance in characters between consecutive window starts.
func (s Strategy) Stride() int {
	return s.Size - s.Overlap
}

// Chunk is a contiguous window of a document's normalized text.
type Chunk struct {
	Index    int      // Window number; Start = Index * Strategy.Stride()
	Start    int      // Offset of the first character (code point) of the window
	End      int      // Offset one past the last character of the window
	Text     string   // Window contents, untrimmed
	Source   string   // Filename of the originating document
	Strategy Strategy // Strategy that produced this window
}

// ID returns the content-derived identifier of the chunk text.
func (c Chunk) ID() ID {
	return IDFromContent(c.Text)
}

// ChunkRecord is the persisted form of an embedded chunk.
// Records are immutable once written and are never updated by the indexer.
type ChunkRecord struct {
	Text      string    // chunk_text
	Embedding []float32 // embedding
	Filename  string    // filename
	Strategy  string    // split_strategy
	CreatedAt time.Time // created_at
}

// NewChunkRecord builds the record for a successfully embedded chunk.
func NewChunkRecord(chunk Chunk, embedding []float32, createdAt time.Time) ChunkRecord {
	return ChunkRecord{
		Text:      chunk.Text,
		Embedding: embedding,
		Filename:  chunk.Source,
		Strategy:  chunk.Strategy.String(),
		CreatedAt: createdAt,
	}
}

// PersistResult reports how many records of a batch were committed.
// Succeeded is the single source of truth for what reached the store.
type PersistResult struct {
	Succeeded int
	Failed    int
}

// Total returns the number of records in the batch.
func (r PersistResult) Total() int {
	return r.Succeeded + r.Failed
}
