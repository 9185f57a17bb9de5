package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxFileSize caps the size of documents read into memory.
const DefaultMaxFileSize = 200 << 20

// Format extracts raw text from one document format.
// Implementations must be safe for concurrent use.
type Format interface {
	// Name identifies the format in logs, e.g. "pdf".
	Name() string

	// Extensions lists the lowercase file extensions, with leading dot,
	// that this format handles.
	Extensions() []string

	// ExtractText reads the document and returns its text. The result does
	// not need to be trimmed; the Extractor normalizes it.
	ExtractText(r io.ReaderAt, size int64) (string, error)
}

// Extractor converts documents on disk into normalized plain text.
type Extractor struct {
	formats     map[string]Format
	maxFileSize int64
	logger      *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFormat registers a format, replacing any format already registered
// for the same extensions.
func WithFormat(format Format) Option {
	return func(e *Extractor) {
		for _, ext := range format.Extensions() {
			e.formats[strings.ToLower(ext)] = format
		}
	}
}

// WithMaxFileSize sets the largest document, in bytes, that will be read.
// Values <= 0 disable the cap.
func WithMaxFileSize(size int64) Option {
	return func(e *Extractor) {
		e.maxFileSize = size
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// New creates an Extractor with the PDF and DOCX formats registered.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		formats:     make(map[string]Format),
		maxFileSize: DefaultMaxFileSize,
		logger:      slog.Default(),
	}
	WithFormat(PDF{})(e)
	WithFormat(DOCX{})(e)

	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "extractor")
	return e
}

// Supports reports whether a format is registered for the path's extension.
func (e *Extractor) Supports(path string) bool {
	_, ok := e.formats[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extract reads the document at path and returns its trimmed text.
// Any error returned is a *Failure.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := e.formats[ext]
	if !ok {
		e.logger.Warn("unsupported format", "path", path, "ext", ext)
		return "", newFailure(KindUnsupportedFormat, path, fmt.Errorf("extension %q", ext))
	}

	if err := ctx.Err(); err != nil {
		return "", newFailure(KindReadError, path, err)
	}

	e.logger.Info("reading file", "path", path, "format", format.Name())

	f, err := os.Open(path)
	if err != nil {
		e.logger.Error("error opening file", "path", path, "err", err)
		return "", newFailure(KindReadError, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", newFailure(KindReadError, path, err)
	}
	if info.IsDir() {
		return "", newFailure(KindReadError, path, fmt.Errorf("%s is a directory", path))
	}
	if e.maxFileSize > 0 && info.Size() > e.maxFileSize {
		return "", newFailure(KindReadError, path,
			fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, info.Size(), e.maxFileSize))
	}

	text, err := extractSafely(format, f, info.Size())
	if err != nil {
		e.logger.Error("error reading file", "path", path, "format", format.Name(), "err", err)
		return "", newFailure(KindReadError, path, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		e.logger.Warn("no text found in file", "path", path)
		return "", newFailure(KindEmptyDocument, path, nil)
	}

	e.logger.Debug("extracted text", "path", path, "length", len(text))
	return text, nil
}

// extractSafely runs the format parser, converting panics into errors.
func extractSafely(format Format, r io.ReaderAt, size int64) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text = ""
			err = fmt.Errorf("%s parser panic: %v", format.Name(), p)
		}
	}()
	return format.ExtractText(r, size)
}
