package vaultpdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/porticus-lab/go-vault-pdf/internal/pdfcheck"
)

// Artifacts holds the paths of the files produced by one pipeline run.
type Artifacts struct {
	// HTMLPath is set as soon as the markup has been written. It remains
	// valid even when the PDF step fails, so a text-based copy of the
	// vault contents always survives.
	HTMLPath string

	// PDFPath is set only when the paginated document was produced and
	// written completely.
	PDFPath string
}

// Pipeline serializes a rendered document to disk and drives the
// rendering engine to produce the paginated companion artifact.
type Pipeline struct {
	cfg  converterConfig
	opts []Option
	page *PageConfig
}

// NewPipeline creates a Pipeline. The options are forwarded to the
// [Converter] started by each Emit call.
func NewPipeline(page *PageConfig, opts ...Option) *Pipeline {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Pipeline{cfg: cfg, opts: opts, page: page}
}

// Emit writes markup to basePath+".html" and the paginated rendering to
// basePath+".pdf".
//
// The HTML file is a first-class output, written before the engine is
// touched and never deleted afterwards; on any PDF-step failure the
// returned Artifacts still carry its path. The PDF is validated and
// written via a temporary file and rename, so the final path holds either
// a complete document or nothing.
//
// Failure to locate an engine returns [ErrEngineUnavailable]; an engine
// that crashes, times out, or emits an unusable document returns
// [ErrEngineFailure].
func (p *Pipeline) Emit(ctx context.Context, markup, basePath string) (Artifacts, error) {
	var out Artifacts

	htmlPath := basePath + ".html"
	// 0600: the document holds plaintext credentials.
	if err := os.WriteFile(htmlPath, []byte(markup), 0o600); err != nil {
		return out, fmt.Errorf("vaultpdf: writing %s: %w", htmlPath, err)
	}
	out.HTMLPath = htmlPath
	p.cfg.log.Info().Str("path", htmlPath).Msg("HTML document written")

	conv, err := NewConverter(p.opts...)
	if err != nil {
		return out, err
	}
	defer conv.Close()

	res, err := conv.ConvertFile(ctx, htmlPath, p.page)
	if err != nil {
		return out, err
	}

	if err := pdfcheck.Validate(res.Bytes()); err != nil {
		return out, fmt.Errorf("%w: %v", ErrEngineFailure, err)
	}
	if info, err := pdfcheck.Inspect(res.Bytes()); err == nil {
		p.cfg.log.Debug().Str("version", info.Version).Int("pages", info.Pages).Msg("PDF inspected")
	}

	pdfPath := basePath + ".pdf"
	if err := writeFileAtomic(pdfPath, res.Bytes(), 0o600); err != nil {
		return out, fmt.Errorf("vaultpdf: writing %s: %w", pdfPath, err)
	}
	out.PDFPath = pdfPath
	p.cfg.log.Info().Str("path", pdfPath).Int("bytes", res.Len()).Msg("PDF document written")

	return out, nil
}

// writeFileAtomic writes data to a sibling temp file and renames it into
// place, so path never holds a partially written document.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vaultpdf-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
