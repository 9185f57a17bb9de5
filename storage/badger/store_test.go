package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/docindex/core"
	"github.com/poiesic/docindex/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunkRecords(filename string, texts ...string) []core.ChunkRecord {
	created := time.Now().Add(-time.Second).UTC().Truncate(time.Microsecond)
	out := make([]core.ChunkRecord, len(texts))
	for i, text := range texts {
		out[i] = core.ChunkRecord{
			Text:      text,
			Embedding: []float32{float32(i) + 0.5, 0.25},
			Filename:  filename,
			Strategy:  "fixed-size-overlap(1000,100)",
			CreatedAt: created,
		}
	}
	return out
}

func TestStore_PersistAndList(t *testing.T) {
	ctx := context.Background()
	s := NewTestStore(t)

	batch := chunkRecords("report.pdf", "first", "second", "third")
	result, err := s.Persist(ctx, "report.pdf", batch)
	require.NoError(t, err)
	assert.Equal(t, core.PersistResult{Succeeded: 3, Failed: 0}, result)

	got, err := s.ListRecords(ctx, "report.pdf")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range batch {
		assert.Equal(t, batch[i].Text, got[i].Text)
		assert.Equal(t, batch[i].Embedding, got[i].Embedding)
		assert.Equal(t, batch[i].Strategy, got[i].Strategy)
		assert.True(t, batch[i].CreatedAt.Equal(got[i].CreatedAt))
	}
}

func TestStore_PersistLargeBatchInOneTransaction(t *testing.T) {
	if testing.Short() {
		t.Skip("writes several megabytes")
	}
	ctx := context.Background()
	s := NewTestStore(t)

	const n, dim = 3000, 768
	created := time.Now().Add(-time.Second).UTC().Truncate(time.Microsecond)
	text := strings.Repeat("x", 990)
	batch := make([]core.ChunkRecord, n)
	for i := range batch {
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = float32(i*dim+j) / 7
		}
		batch[i] = core.ChunkRecord{
			Text:      fmt.Sprintf("%s%010d", text, i),
			Embedding: vec,
			Filename:  "big.pdf",
			Strategy:  "fixed-size-overlap(1000,100)",
			CreatedAt: created,
		}
	}

	result, err := s.Persist(ctx, "big.pdf", batch)
	require.NoError(t, err)
	assert.Equal(t, core.PersistResult{Succeeded: n}, result)

	got, err := s.ListRecords(ctx, "big.pdf")
	require.NoError(t, err)
	require.Len(t, got, n)
	assert.Equal(t, batch[0].Text, got[0].Text)
	assert.Equal(t, batch[n-1].Text, got[n-1].Text)
	assert.Equal(t, batch[n-1].Embedding, got[n-1].Embedding)
}

func TestStore_ReindexAppends(t *testing.T) {
	ctx := context.Background()
	s := NewTestStore(t)

	_, err := s.Persist(ctx, "a.pdf", chunkRecords("a.pdf", "one"))
	require.NoError(t, err)
	_, err = s.Persist(ctx, "a.pdf", chunkRecords("a.pdf", "one"))
	require.NoError(t, err)

	got, err := s.ListRecords(ctx, "a.pdf")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStore_FilesAreSeparate(t *testing.T) {
	ctx := context.Background()
	s := NewTestStore(t)

	_, err := s.Persist(ctx, "a.pdf", chunkRecords("a.pdf", "alpha"))
	require.NoError(t, err)
	_, err = s.Persist(ctx, "a.pdf.bak", chunkRecords("a.pdf.bak", "beta", "gamma"))
	require.NoError(t, err)

	a, err := s.ListRecords(ctx, "a.pdf")
	require.NoError(t, err)
	require.Len(t, a, 1)
	assert.Equal(t, "alpha", a[0].Text)

	none, err := s.ListRecords(ctx, "missing.pdf")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_InvalidBatchWritesNothing(t *testing.T) {
	ctx := context.Background()
	s := NewTestStore(t)

	batch := chunkRecords("a.pdf", "ok", "bad")
	batch[1].Embedding = nil

	result, err := s.Persist(ctx, "a.pdf", batch)
	var failure *storage.StorageFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, storage.OpValidate, failure.Op)
	assert.Equal(t, core.PersistResult{Succeeded: 0, Failed: 2}, result)

	got, err := s.ListRecords(ctx, "a.pdf")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_BackendReleasedAfterPersist(t *testing.T) {
	ctx := context.Background()
	s := NewTestStore(t)

	_, err := s.Persist(ctx, "a.pdf", chunkRecords("a.pdf", "one"))
	require.NoError(t, err)

	// The directory lock is released, so another backend can open it.
	backend, err := OpenBackend(s.dir, false)
	require.NoError(t, err)
	require.NoError(t, backend.Close())
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewTestStore(t)

	result, err := s.Persist(ctx, "a.pdf", chunkRecords("a.pdf", "one"))
	assert.ErrorIs(t, err, storage.ErrStorageFailed)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, result.Failed)
}

func TestNewStore(t *testing.T) {
	_, err := NewStore("")
	assert.ErrorIs(t, err, ErrMissingDir)
}
