// Package document turns statement PDFs into plain text and splits that
// text into overlapping windows sized for structured extraction calls.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadable marks input that could not be parsed as a text-searchable
// document: corrupt bytes, encrypted files, non-PDF content.
var ErrUnreadable = errors.New("document unreadable")

// PageBreak separates the text of consecutive pages in the loader output.
const PageBreak = "\n\f\n"

// Loader extracts plain text from PDF byte streams. It is a pure
// transform: no source bytes are retained between calls.
type Loader struct{}

// Load reads an entire PDF from r and returns the concatenated page text
// with explicit page-break markers. A document whose pages carry no
// extractable text yields an empty string, not an error.
func (Loader) Load(r io.Reader) (text string, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("document.Load: reading input: %w", err)
	}

	// The pdf library panics on some malformed inputs instead of
	// returning an error; fold those into ErrUnreadable.
	defer func() {
		if p := recover(); p != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrUnreadable, p)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// One undecodable page does not spoil the document.
			continue
		}
		pages = append(pages, pageText)
	}

	joined := strings.Join(pages, PageBreak)
	if strings.TrimSpace(joined) == "" {
		return "", nil
	}
	return joined, nil
}

// LoadFile is a convenience wrapper over Load for on-disk documents.
func (l Loader) LoadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("document.LoadFile: %w", err)
	}
	defer f.Close()
	return l.Load(f)
}
