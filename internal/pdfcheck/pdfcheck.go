// Package pdfcheck performs lightweight structural validation of PDF
// bytes. It exists to guard against a rendering engine that exits cleanly
// but emits a truncated or empty document; it is not a PDF parser.
package pdfcheck

import (
	"bytes"
	"fmt"
	"strconv"
)

var (
	headerMagic = []byte("%PDF-")
	eofMarker   = []byte("%%EOF")
)

// Info summarizes an inspected PDF.
type Info struct {
	// Version is the header version string, e.g. "1.7".
	Version string

	// Pages is a best-effort page count read from the page tree. Zero
	// means the count could not be determined, not an empty document.
	Pages int
}

// Validate reports whether data looks like a complete PDF document:
// non-empty, a %PDF- header, and an %%EOF marker near the end.
func Validate(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("pdfcheck: empty document")
	}
	if !bytes.HasPrefix(data, headerMagic) {
		return fmt.Errorf("pdfcheck: missing %%PDF header")
	}
	tail := data
	if len(tail) > 2048 {
		tail = tail[len(tail)-2048:]
	}
	if !bytes.Contains(tail, eofMarker) {
		return fmt.Errorf("pdfcheck: missing %%%%EOF marker, document truncated")
	}
	return nil
}

// Inspect validates data and extracts the header version and page count.
func Inspect(data []byte) (*Info, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	return &Info{
		Version: version(data),
		Pages:   countPages(data),
	}, nil
}

// version reads the n.n version from the %PDF-n.n header line.
func version(data []byte) string {
	rest := data[len(headerMagic):]
	end := 0
	for end < len(rest) && end < 8 && rest[end] != '\r' && rest[end] != '\n' {
		end++
	}
	return string(rest[:end])
}

// countPages finds the page tree root and reads its /Count entry. Falls
// back to counting /Type /Page dictionaries when the tree is not visible
// in plain text (object streams compress it in some producers).
func countPages(data []byte) int {
	for _, pagesKey := range [][]byte{[]byte("/Type /Pages"), []byte("/Type/Pages")} {
		offset := 0
		for {
			idx := bytes.Index(data[offset:], pagesKey)
			if idx < 0 {
				break
			}
			window := data[offset+idx:]
			if len(window) > 256 {
				window = window[:256]
			}
			if n, ok := countEntry(window); ok {
				return n
			}
			offset += idx + len(pagesKey)
		}
	}

	pages := 0
	for _, pageKey := range []string{"/Type /Page", "/Type/Page"} {
		pages = countToken(data, []byte(pageKey))
		if pages > 0 {
			break
		}
	}
	return pages
}

// countEntry parses the integer after "/Count" within window.
func countEntry(window []byte) (int, bool) {
	idx := bytes.Index(window, []byte("/Count"))
	if idx < 0 {
		return 0, false
	}
	pos := idx + len("/Count")
	for pos < len(window) && (window[pos] == ' ' || window[pos] == '\r' || window[pos] == '\n') {
		pos++
	}
	end := pos
	for end < len(window) && window[end] >= '0' && window[end] <= '9' {
		end++
	}
	if end == pos {
		return 0, false
	}
	n, err := strconv.Atoi(string(window[pos:end]))
	if err != nil {
		return 0, false
	}
	return n, true
}

// countToken counts occurrences of key that are not followed by an
// alphabetic character, so "/Type /Page" does not match "/Type /Pages".
func countToken(data, key []byte) int {
	count, offset := 0, 0
	for {
		idx := bytes.Index(data[offset:], key)
		if idx < 0 {
			return count
		}
		next := offset + idx + len(key)
		if next >= len(data) || !isAlpha(data[next]) {
			count++
		}
		offset = next
	}
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
