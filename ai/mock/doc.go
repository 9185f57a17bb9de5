// Package mock provides test doubles for the ai package interfaces.
//
// MockEmbedder returns deterministic vectors derived from the text hash and
// records every text it was asked to embed. Behavior can be replaced through
// the EmbedTextFunc and EmbedTextsFunc fields or by listing texts that should
// fail with FailOn.
//
//	embedder := mock.NewMockEmbedder().FailOn("bad chunk")
//	vec, err := embedder.EmbedText(ctx, "good chunk")
//	calls := embedder.Calls()
//
// MockPacer counts Wait calls so tests can assert that pacing happened
// without sleeping.
package mock
