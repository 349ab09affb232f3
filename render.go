package vaultpdf

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/layout.html.tmpl
var layoutSrc string

//go:embed styles/style.css
var styleSrc string

var layoutTmpl = template.Must(template.New("layout").Parse(layoutSrc))

// Metadata describes the document header.
type Metadata struct {
	// Title appears in the document header and the HTML <title>.
	Title string

	// GeneratedAt is the timestamp shown in the header.
	GeneratedAt time.Time
}

// layoutData is the root object the layout template executes against.
type layoutData struct {
	Title     string
	Generated string
	Count     int
	Rows      []Row
	Style     template.CSS
}

// RenderHTML renders the row sequence into a self-contained HTML document:
// the stylesheet is inlined so the file stands alone as an artifact.
//
// Every user-controlled string passes through html/template's contextual
// escaping; vault entries are free text and may contain markup-special
// characters. Rows appear in input order, one table row each. Long values
// (passwords, URLs, TOTP secrets) are rendered under the credential-value
// style class, whose break-all wrapping rule guarantees they are never
// truncated or overflowed in the paginated output.
//
// RenderHTML is a pure function of its inputs and performs no I/O.
func RenderHTML(rows []Row, meta Metadata) (string, error) {
	data := layoutData{
		Title:     meta.Title,
		Generated: meta.GeneratedAt.Format("01/02/2006 03:04 PM"),
		Count:     len(rows),
		Rows:      rows,
		Style:     template.CSS(styleSrc),
	}

	var buf bytes.Buffer
	if err := layoutTmpl.Execute(&buf, data); err != nil {
		// Unreachable for rows produced by the loader.
		return "", fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	return buf.String(), nil
}
