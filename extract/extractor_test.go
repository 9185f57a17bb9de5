package extract

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_DOCXParagraphs(t *testing.T) {
	path := writeFile(t, "two.docx", buildDOCX(t, docxParagraphs("Hello world.", "Second paragraph.")))

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Hello world.\nSecond paragraph.", text)
}

func TestExtract_DOCXTrimsOuterWhitespace(t *testing.T) {
	path := writeFile(t, "padded.docx", buildDOCX(t, docxParagraphs("", "  Body text  ", "")))

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Body text", text)
}

func TestExtract_DOCXRunsTabsAndBreaks(t *testing.T) {
	body := docxBody(
		`<w:p>` +
			`<w:r><w:t>Split </w:t></w:r>` +
			`<w:r><w:t>across runs</w:t><w:tab/><w:t>tabbed</w:t></w:r>` +
			`<w:hyperlink><w:r><w:t> linked</w:t></w:r></w:hyperlink>` +
			`<w:r><w:br/><w:t>after break</w:t></w:r>` +
			`</w:p>` +
			`<w:p><w:r><w:t>Last</w:t></w:r></w:p>`)
	path := writeFile(t, "runs.docx", buildDOCX(t, body))

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Split across runs\ttabbed linked\nafter break\nLast", text)
}

func TestExtract_DOCXSkipsTableParagraphs(t *testing.T) {
	body := docxBody(
		`<w:p><w:r><w:t>Before table</w:t></w:r></w:p>` +
			`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Cell text</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
			`<w:p><w:r><w:t>After table</w:t></w:r></w:p>`)
	path := writeFile(t, "table.docx", buildDOCX(t, body))

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Before table\nAfter table", text)
}

func TestExtract_DOCXEmptyDocument(t *testing.T) {
	path := writeFile(t, "blank.docx", buildDOCX(t, docxParagraphs("", "   ", "")))

	text, err := New().Extract(context.Background(), path)
	require.Error(t, err)
	assert.Empty(t, text)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, KindEmptyDocument, failure.Kind)
	assert.Equal(t, path, failure.Path)
}

func TestExtract_DOCXMissingMainPart(t *testing.T) {
	path := writeFile(t, "broken.docx", buildZipWithout(t))

	_, err := New().Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadError)
}

func TestExtract_DOCXNotAZip(t *testing.T) {
	path := writeFile(t, "fake.docx", []byte("this is not a zip archive"))

	_, err := New().Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadError)
	assert.NotErrorIs(t, err, ErrEmptyDocument)
}

func TestExtract_PDFPages(t *testing.T) {
	path := writeFile(t, "report.pdf", buildPDF(t, pdfText("Hello from page one"), "", pdfText("Page three")))

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, text, "Hello from page one")
	assert.Contains(t, text, "Page three")
	assert.Equal(t, strings.TrimSpace(text), text)
}

func TestExtract_PDFWithoutText(t *testing.T) {
	path := writeFile(t, "scan.pdf", buildPDF(t, "", ""))

	_, err := New().Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestExtract_PDFInvalid(t *testing.T) {
	path := writeFile(t, "garbage.pdf", []byte("definitely not a pdf document, just some bytes padding it out past one hundred bytes of length for the trailer scan"))

	_, err := New().Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadError)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("plain text"))

	_, err := New().Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, KindUnsupportedFormat, failure.Kind)
}

func TestExtract_ExtensionIsCaseInsensitive(t *testing.T) {
	path := writeFile(t, "UPPER.DOCX", buildDOCX(t, docxParagraphs("Shouting")))

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Shouting", text)
}

func TestExtract_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.pdf")

	_, err := New().Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadError)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtract_FileTooLarge(t *testing.T) {
	path := writeFile(t, "big.docx", buildDOCX(t, docxParagraphs("Hello")))

	_, err := New(WithMaxFileSize(10)).Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadError)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestExtract_CanceledContext(t *testing.T) {
	path := writeFile(t, "two.docx", buildDOCX(t, docxParagraphs("Hello")))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Extract(ctx, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// panicFormat simulates a parser that panics on malformed input.
type panicFormat struct{}

func (panicFormat) Name() string         { return "boom" }
func (panicFormat) Extensions() []string { return []string{".boom"} }
func (panicFormat) ExtractText(io.ReaderAt, int64) (string, error) {
	panic("corrupt cross-reference table")
}

func TestExtract_RecoversParserPanic(t *testing.T) {
	path := writeFile(t, "file.boom", []byte("payload"))

	var text string
	var err error
	assert.NotPanics(t, func() {
		text, err = New(WithFormat(panicFormat{})).Extract(context.Background(), path)
	})
	require.Error(t, err)
	assert.Empty(t, text)
	assert.ErrorIs(t, err, ErrReadError)
	assert.Contains(t, err.Error(), "corrupt cross-reference table")
}

// upperFormat is a custom variant used to check registry extension.
type upperFormat struct{}

func (upperFormat) Name() string         { return "upper" }
func (upperFormat) Extensions() []string { return []string{".up"} }
func (upperFormat) ExtractText(r io.ReaderAt, size int64) (string, error) {
	buf := make([]byte, size)
	if _, err := r.ReadAt(buf, 0); err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return "  " + string(buf) + "\n", nil
}

func TestExtract_CustomFormat(t *testing.T) {
	e := New(WithFormat(upperFormat{}))
	assert.True(t, e.Supports("x.up"))
	assert.True(t, e.Supports("x.pdf"))
	assert.False(t, e.Supports("x.txt"))

	path := writeFile(t, "x.up", []byte("custom"))
	text, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "custom", text)
}

func TestFailure_ErrorMessage(t *testing.T) {
	f := newFailure(KindReadError, "/tmp/a.pdf", errors.New("bad xref"))
	assert.Equal(t, "extract /tmp/a.pdf: read error: bad xref", f.Error())

	f = newFailure(KindEmptyDocument, "/tmp/b.docx", nil)
	assert.Equal(t, "extract /tmp/b.docx: empty document", f.Error())
	assert.ErrorIs(t, f, ErrEmptyDocument)
	assert.NotErrorIs(t, f, ErrReadError)
}

func buildZipWithout(t *testing.T) []byte {
	t.Helper()
	return buildDOCXParts(t, map[string]string{"word/other.xml": "<x/>"})
}
