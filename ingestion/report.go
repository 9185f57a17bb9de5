package ingestion

import (
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/docindex/core"
)

// ChunkFailure records a chunk that was skipped during embedding.
type ChunkFailure struct {
	Index   int
	ChunkID core.ID
	Err     error
}

// Report describes the outcome of one pipeline run.
type Report struct {
	RunID    string
	Path     string
	Filename string // base name of Path, stored with every record
	Strategy core.Strategy

	Chunks   int // non-blank chunks produced
	Embedded int // chunks with a usable vector
	Failures []ChunkFailure

	Result    core.PersistResult
	Persisted int // equals Result.Succeeded, 0 on storage failure

	State     State
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

// OK reports whether the run finished and every produced chunk was persisted.
func (r *Report) OK() bool {
	return r.State == StateDone && r.Err == nil && len(r.Failures) == 0
}

// Summary renders the report as a single human-readable line.
func (r *Report) Summary() string {
	if r.State == StateAborted {
		return fmt.Sprintf("aborted %s: %v", r.Filename, r.Err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "indexed %s: %d chunks, %d embedded, %d failed, %d persisted",
		r.Filename, r.Chunks, r.Embedded, len(r.Failures), r.Persisted)
	fmt.Fprintf(&b, " [%s] in %s", r.Strategy, r.Duration.Round(time.Millisecond))
	if r.Err != nil {
		fmt.Fprintf(&b, " (error: %v)", r.Err)
	}
	return b.String()
}

func (r *Report) abort(err error) {
	r.State = StateAborted
	r.Err = err
}
