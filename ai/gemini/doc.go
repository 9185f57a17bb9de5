// Package gemini provides an ai.Embedder backed by the Google Generative AI
// embedding API (text-embedding-004 by default).
//
// Calls go through a circuit breaker so that a run against an unavailable
// service fails fast once the breaker opens, and every call is traced with
// OpenTelemetry.
package gemini
