package chunking

import (
	"strings"

	"github.com/poiesic/docindex/core"
)

const (
	// DefaultSize is the default window size in characters.
	DefaultSize = 1000

	// DefaultOverlap is the default number of characters shared by consecutive windows.
	DefaultOverlap = 100
)

// Chunker splits text with a fixed-size sliding window.
// A Chunker is immutable and safe for concurrent use.
type Chunker struct {
	strategy core.Strategy
}

// New creates a Chunker for the given window size and overlap.
// Returns core.ErrInvalidConfig unless 0 <= overlap < size.
func New(size, overlap int) (*Chunker, error) {
	strategy := core.Strategy{
		Name:    core.StrategyFixedSizeOverlap,
		Size:    size,
		Overlap: overlap,
	}
	if err := core.ValidateStrategy(strategy); err != nil {
		return nil, err
	}
	return &Chunker{strategy: strategy}, nil
}

// Default creates a Chunker with DefaultSize and DefaultOverlap.
func Default() *Chunker {
	return &Chunker{strategy: core.Strategy{
		Name:    core.StrategyFixedSizeOverlap,
		Size:    DefaultSize,
		Overlap: DefaultOverlap,
	}}
}

// Strategy returns the descriptor recorded with every chunk.
func (c *Chunker) Strategy() core.Strategy {
	return c.strategy
}

// Chunk splits text into windows and reports the strategy used.
// source is recorded on every chunk as its originating filename.
func (c *Chunker) Chunk(text, source string) ([]core.Chunk, core.Strategy) {
	runes := []rune(text)
	stride := c.strategy.Stride()

	var chunks []core.Chunk
	for i, start := 0, 0; start < len(runes); i, start = i+1, start+stride {
		end := min(start+c.strategy.Size, len(runes))

		window := string(runes[start:end])
		if strings.TrimSpace(window) == "" {
			continue
		}

		chunks = append(chunks, core.Chunk{
			Index:    i,
			Start:    start,
			End:      end,
			Text:     window,
			Source:   source,
			Strategy: c.strategy,
		})
	}

	return chunks, c.strategy
}
