// Package ingestion runs documents through the indexing pipeline.
//
// A Pipeline takes one file path through four stages:
//
//	Extracting → Chunking → Embedding → Persisting
//
// and always finishes in either Done or Aborted. Extraction failures and
// documents that produce no chunks abort the run before any embedding call.
// Chunks that fail to embed are recorded in the Report and skipped; the
// remaining chunks are persisted as a single batch. Process never returns
// an error; everything that happened is described by the returned Report.
package ingestion
