package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	docxMainPart = "word/document.xml"
	wordMLNS     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// DOCX extracts body paragraphs from an Office Open XML word document.
// Paragraphs are joined with newlines in document order. Paragraphs nested in
// tables or text boxes are not part of the body and are skipped.
type DOCX struct{}

var _ Format = DOCX{}

func (DOCX) Name() string { return "docx" }

func (DOCX) Extensions() []string { return []string{".docx"} }

func (DOCX) ExtractText(r io.ReaderAt, size int64) (string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == docxMainPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", fmt.Errorf("docx archive has no %s", docxMainPart)
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", docxMainPart, err)
	}
	defer rc.Close()

	paragraphs, err := readParagraphs(rc)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", docxMainPart, err)
	}
	return strings.Join(paragraphs, "\n"), nil
}

// readParagraphs walks document.xml and returns the text of each body-level
// w:p element. Text comes from w:t elements inside runs that belong directly
// to the paragraph or to one of its hyperlinks.
func readParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		stack      []string // local names of open WordprocessingML elements
		paragraphs []string
		current    strings.Builder
		paraDepth  = -1 // stack index of the body paragraph being read
		inText     bool
	)

	// runOwnedByParagraph reports whether the innermost open element is a run
	// that belongs to the current body paragraph.
	runOwnedByParagraph := func() bool {
		n := len(stack)
		if paraDepth < 0 || n < 2 || stack[n-1] != "r" {
			return false
		}
		if stack[n-2] == "p" && n-2 == paraDepth {
			return true
		}
		return n >= 3 && stack[n-2] == "hyperlink" && stack[n-3] == "p" && n-3 == paraDepth
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordMLNS {
				stack = append(stack, "")
				continue
			}
			switch t.Name.Local {
			case "p":
				n := len(stack)
				if paraDepth < 0 && n >= 1 && stack[n-1] == "body" {
					paraDepth = n
					current.Reset()
				}
			case "t":
				inText = runOwnedByParagraph()
			case "tab":
				if runOwnedByParagraph() {
					current.WriteString("\t")
				}
			case "br", "cr":
				if runOwnedByParagraph() {
					current.WriteString("\n")
				}
			}
			stack = append(stack, t.Name.Local)

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			stack = stack[:len(stack)-1]
			if t.Name.Space != wordMLNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if len(stack) == paraDepth {
					paragraphs = append(paragraphs, current.String())
					paraDepth = -1
				}
			}

		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
