package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
	"github.com/poiesic/docindex/core"
	"github.com/poiesic/docindex/storage"
)

// DefaultTable is the table chunks are inserted into.
const DefaultTable = "document_chunks"

// ErrMissingURL is returned by New when neither a URL nor a connector is given.
var ErrMissingURL = errors.New("postgres: database URL is required")

// Store persists chunk records into a Postgres table.
type Store struct {
	connector Connector
	table     string
	insertSQL string
	logger    *slog.Logger
}

var _ storage.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithTable sets the target table. A schema-qualified name such as
// "rag.document_chunks" is accepted.
func WithTable(table string) Option {
	return func(s *Store) {
		s.table = table
	}
}

// WithConnector replaces the pgx connector, typically in tests.
func WithConnector(c Connector) Option {
	return func(s *Store) {
		s.connector = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a store that connects to databaseURL once per batch.
// databaseURL may be empty when WithConnector is given.
func New(databaseURL string, opts ...Option) (*Store, error) {
	s := &Store{
		table:  DefaultTable,
		logger: slog.Default(),
	}
	if databaseURL != "" {
		s.connector = pgxConnector{url: databaseURL}
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.connector == nil {
		return nil, ErrMissingURL
	}
	if strings.TrimSpace(s.table) == "" {
		return nil, fmt.Errorf("postgres: table name is required")
	}
	s.insertSQL = insertStatement(s.table)
	s.logger = s.logger.With("component", "postgres-store", "table", s.table)
	return s, nil
}

func insertStatement(table string) string {
	ident := pgx.Identifier(strings.Split(table, ".")).Sanitize()
	return "INSERT INTO " + ident +
		" (chunk_text, embedding, filename, split_strategy, created_at) VALUES ($1, $2, $3, $4, $5)"
}

// Persist inserts records in one transaction. Either every record is
// committed or none is. The connection is closed before Persist returns,
// including when a driver call panics.
func (s *Store) Persist(ctx context.Context, filename string, records []core.ChunkRecord) (result core.PersistResult, err error) {
	if err := storage.ValidateBatch(filename, records); err != nil {
		return storage.FailedBatch(records), storage.Fail(storage.OpValidate, err)
	}
	if len(records) == 0 {
		return core.PersistResult{}, nil
	}

	conn, err := s.connector.Connect(ctx)
	if err != nil {
		s.logger.Error("failed to connect", "err", err)
		return storage.FailedBatch(records), storage.Fail(storage.OpConnect, err)
	}

	var tx Tx
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic while persisting", "file", filename, "panic", r)
			if tx != nil {
				s.rollback(ctx, tx)
			}
			result = storage.FailedBatch(records)
			err = storage.Fail(storage.OpPanic, fmt.Errorf("%v", r))
		}
		if cerr := conn.Close(context.WithoutCancel(ctx)); cerr != nil {
			s.logger.Warn("failed to close connection", "err", cerr)
		}
	}()

	tx, err = conn.Begin(ctx)
	if err != nil {
		s.logger.Error("failed to begin transaction", "err", err)
		return storage.FailedBatch(records), storage.Fail(storage.OpBegin, err)
	}

	s.logger.Info("saving chunks", "file", filename, "count", len(records))
	for i := range records {
		r := &records[i]
		if err := tx.Exec(ctx, s.insertSQL, r.Text, pgvector.NewVector(r.Embedding), r.Filename, r.Strategy, r.CreatedAt); err != nil {
			s.logger.Error("insert failed, rolling back", "file", filename, "record", i, "err", err)
			s.rollback(ctx, tx)
			return storage.FailedBatch(records), storage.Fail(storage.OpInsert, fmt.Errorf("record %d: %w", i, err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		s.logger.Error("commit failed", "file", filename, "err", err)
		s.rollback(ctx, tx)
		return storage.FailedBatch(records), storage.Fail(storage.OpCommit, err)
	}

	s.logger.Info("saved chunks", "file", filename, "count", len(records))
	return core.PersistResult{Succeeded: len(records)}, nil
}

func (s *Store) rollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn("rollback failed", "err", err)
	}
}
