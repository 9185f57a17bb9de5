package ingestion

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/poiesic/docindex/core"
	"github.com/stretchr/testify/require"
)

// fakeExtractor returns canned text or an error.
type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, path string) (string, error) {
	f.calls++
	return f.text, f.err
}

// recordingStore keeps every batch it receives.
type recordingStore struct {
	mu       sync.Mutex
	batches  [][]core.ChunkRecord
	names    []string
	err      error
	panicMsg string
}

func (s *recordingStore) Persist(ctx context.Context, filename string, records []core.ChunkRecord) (core.PersistResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	s.batches = append(s.batches, records)
	s.names = append(s.names, filename)
	if s.err != nil {
		return core.PersistResult{Failed: len(records)}, s.err
	}
	return core.PersistResult{Succeeded: len(records)}, nil
}

func (s *recordingStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batches)
}

// writeDOCX writes a minimal docx with one paragraph per string.
func writeDOCX(t *testing.T, name string, paragraphs ...string) string {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, p)
	}
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(document))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}
