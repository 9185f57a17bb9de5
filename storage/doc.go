// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package storage defines the persistence boundary of the ingestion pipeline.
//
// A Store receives the successfully embedded chunks of one document as a
// single batch and reports how many of them were committed. Two
// implementations exist:
//
//   - storage/postgres: rows in a Postgres table with a pgvector column
//   - storage/badger: an embedded BadgerDB database, useful for local runs
//
// # Batches
//
// Each Persist call is self-contained. It validates the whole batch before
// touching the database, acquires its own connection (or opens its own
// backend), writes all records in one transaction and releases the
// connection before returning, on every path.
//
// Stores commit all records or none. A failed batch is reported as
// core.PersistResult{Succeeded: 0, Failed: len(records)} together with a
// *StorageFailure describing the operation that failed.
//
//	result, err := store.Persist(ctx, "report.pdf", records)
//	var failure *storage.StorageFailure
//	if errors.As(err, &failure) {
//	    log.Printf("persist failed during %s: %v", failure.Op, failure.Err)
//	}
//
// # Serialization
//
// Stores that keep records as opaque values use the MUS binary format
// exposed by ChunkRecordMUS.
package storage
