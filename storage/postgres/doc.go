// Package postgres implements storage.Store on Postgres with the pgvector
// extension.
//
// Each Persist call opens one connection, registers the pgvector types,
// inserts every record inside a single transaction and closes the
// connection again. The target table is expected to exist:
//
//	CREATE EXTENSION IF NOT EXISTS vector;
//	CREATE TABLE document_chunks (
//	    id             bigserial PRIMARY KEY,
//	    chunk_text     text        NOT NULL,
//	    embedding      vector(768) NOT NULL,
//	    filename       text        NOT NULL,
//	    split_strategy text        NOT NULL,
//	    created_at     timestamptz NOT NULL
//	);
package postgres
