package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docindex/core"
	"github.com/poiesic/docindex/storage"
)

// ErrMissingDir is returned by NewStore without a directory.
var ErrMissingDir = errors.New("badger: directory is required")

// Store persists chunk records in an embedded BadgerDB database.
// The database is opened for each call and closed before it returns, so
// the directory is only locked while a batch is being written or read.
type Store struct {
	dir    string
	logger *slog.Logger
}

var (
	_ storage.Store        = (*Store)(nil)
	_ storage.RecordLister = (*Store)(nil)
)

// NewStore creates a store rooted at dir. The directory is created on the
// first Persist if it does not exist.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, ErrMissingDir
	}
	return &Store{
		dir:    dir,
		logger: slog.Default().With("component", "badger-store", "dir", dir),
	}, nil
}

// Persist writes all records and their filename index entries in one
// read-write transaction.
func (s *Store) Persist(ctx context.Context, filename string, records []core.ChunkRecord) (result core.PersistResult, err error) {
	if err := storage.ValidateBatch(filename, records); err != nil {
		return storage.FailedBatch(records), storage.Fail(storage.OpValidate, err)
	}
	if len(records) == 0 {
		return core.PersistResult{}, nil
	}
	if err := ctx.Err(); err != nil {
		return storage.FailedBatch(records), storage.Fail(storage.OpConnect, err)
	}

	backend, err := OpenBackend(s.dir, false)
	if err != nil {
		s.logger.Error("failed to open backend", "err", err)
		return storage.FailedBatch(records), storage.Fail(storage.OpConnect, err)
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic while persisting", "file", filename, "panic", r)
			result = storage.FailedBatch(records)
			err = storage.Fail(storage.OpPanic, fmt.Errorf("%v", r))
		}
		if cerr := backend.Close(); cerr != nil {
			s.logger.Warn("failed to close backend", "err", cerr)
		}
	}()

	seq, err := backend.GetSequence(chunkRecordIDSeq)
	if err != nil {
		return storage.FailedBatch(records), storage.Fail(storage.OpBegin, err)
	}
	defer seq.Release()

	s.logger.Info("saving chunks", "file", filename, "count", len(records))
	err = backend.WithTx(func(tx *badger.Txn) error {
		for i := range records {
			id, err := seq.Next()
			if err != nil {
				return storage.Fail(storage.OpInsert, err)
			}
			if err := tx.Set(makeChunkRecordKey(id), storage.MarshalChunkRecord(&records[i])); err != nil {
				return storage.Fail(storage.OpInsert, fmt.Errorf("record %d: %w", i, err))
			}
			if err := tx.Set(makeChunkFileKey(filename, id), nil); err != nil {
				return storage.Fail(storage.OpInsert, fmt.Errorf("record %d index: %w", i, err))
			}
		}
		if err := tx.Commit(); err != nil {
			return storage.Fail(storage.OpCommit, err)
		}
		return nil
	}, true)
	if err != nil {
		s.logger.Error("batch not committed", "file", filename, "err", err)
		return storage.FailedBatch(records), err
	}

	s.logger.Info("saved chunks", "file", filename, "count", len(records))
	return core.PersistResult{Succeeded: len(records)}, nil
}

// ListRecords returns the records stored for filename in insertion order.
func (s *Store) ListRecords(ctx context.Context, filename string) ([]core.ChunkRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.Fail(storage.OpRead, err)
	}
	backend, err := OpenBackend(s.dir, false)
	if err != nil {
		return nil, storage.Fail(storage.OpConnect, err)
	}
	defer backend.Close()

	records := []core.ChunkRecord{}
	err = backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = makePartialChunkFileKey(filename)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			id, ok := seqFromChunkFileKey(iter.Item().Key())
			if !ok {
				continue
			}
			item, err := tx.Get(makeChunkRecordKey(id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				s.logger.Warn("dangling index entry", "file", filename, "seq", id)
				continue
			}
			if err != nil {
				return err
			}
			var record *core.ChunkRecord
			err = item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalChunkRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			records = append(records, *record)
		}
		return nil
	}, false)
	if err != nil {
		return nil, storage.Fail(storage.OpRead, err)
	}
	return records, nil
}
