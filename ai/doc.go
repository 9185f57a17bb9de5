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

// Package ai provides abstractions for the embedding services used by docindex.
//
// The package defines the Embedder interface that every provider implements,
// the shared Config used to construct providers, and the pacing and retry
// layer that sits between the ingestion pipeline and a provider.
//
// # Implementation Packages
//
//   - ai/gemini: Google Generative AI embeddings (the default provider)
//   - ai/openai: OpenAI-compatible embedding APIs (Ollama, LocalAI, vLLM)
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Pacing
//
// Remote embedding services are rate limited. PacedEmbedder wraps any
// Embedder and waits on a Pacer after every provider call, whether the call
// succeeded or not. The default pacer enforces a one second gap between
// calls; RatePacer expresses the same budget as requests per minute.
//
//	base, err := gemini.NewEmbedder(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer base.Close()
//
//	embedder, err := ai.NewPacedEmbedder(base,
//	    ai.WithPacer(ai.NewPacer(cfg)),
//	    ai.WithRetryPolicy(ai.RetryPolicy{MaxAttempts: cfg.MaxAttempts, BaseDelay: cfg.RetryBaseDelay}),
//	)
//
// Failures returned by PacedEmbedder are always *EmbeddingFailure values and
// match ErrEmbeddingFailed under errors.Is.
package ai
