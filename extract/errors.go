package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is matched by failures for unregistered extensions.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrReadError is matched by failures to open or parse a document.
	ErrReadError = errors.New("error reading document")

	// ErrEmptyDocument is matched by documents that contain no text.
	ErrEmptyDocument = errors.New("no text found in document")

	// ErrFileTooLarge indicates a document exceeds the configured size cap.
	ErrFileTooLarge = errors.New("document exceeds maximum size")
)

// Kind classifies why extraction failed.
type Kind int

const (
	// KindUnsupportedFormat means no Format handles the file extension.
	KindUnsupportedFormat Kind = iota + 1
	// KindReadError means an I/O or parser error occurred.
	KindReadError
	// KindEmptyDocument means the extracted text was empty after trimming.
	KindEmptyDocument
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedFormat:
		return "unsupported format"
	case KindReadError:
		return "read error"
	case KindEmptyDocument:
		return "empty document"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// sentinel returns the package error matched by this kind.
func (k Kind) sentinel() error {
	switch k {
	case KindUnsupportedFormat:
		return ErrUnsupportedFormat
	case KindReadError:
		return ErrReadError
	case KindEmptyDocument:
		return ErrEmptyDocument
	default:
		return nil
	}
}

// Failure is the error returned by Extract.
type Failure struct {
	Kind Kind
	Path string
	Err  error // underlying cause, may be nil
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("extract %s: %s: %v", f.Path, f.Kind, f.Err)
	}
	return fmt.Sprintf("extract %s: %s", f.Path, f.Kind)
}

// Unwrap returns the underlying cause.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Is matches the sentinel error for the failure's kind.
func (f *Failure) Is(target error) bool {
	s := f.Kind.sentinel()
	return s != nil && target == s
}

func newFailure(kind Kind, path string, err error) *Failure {
	return &Failure{Kind: kind, Path: path, Err: err}
}
