package vaultpdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Converter drives a headless Chromium-based browser over the DevTools
// protocol to paginate HTML into PDF.
//
// The browser process is started eagerly by [NewConverter] and reused
// across conversions. Call [Converter.Close] when the Converter is no
// longer needed so no browser process outlives the run.
type Converter struct {
	cfg           converterConfig
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewConverter creates a Converter with the given options.
//
// The browser executable is resolved first: an explicit [WithBrowserPath]
// must point at an existing file, otherwise discovery runs through
// [FindBrowser]. Both failure modes return [ErrEngineUnavailable] before
// any process is spawned.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	execPath := cfg.browserPath
	if execPath != "" {
		if _, err := os.Stat(execPath); err != nil {
			return nil, fmt.Errorf("%w: configured browser %q: %v", ErrEngineUnavailable, execPath, err)
		}
	} else {
		var err error
		execPath, err = FindBrowser(cfg.autoDownload)
		if err != nil {
			return nil, err
		}
	}
	cfg.log.Debug().Str("browser", execPath).Msg("rendering engine resolved")

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(execPath),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", "new"),
	)
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so launch errors surface here, not on the
	// first conversion.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: starting browser: %v", ErrEngineFailure, err)
	}

	return &Converter{
		cfg:           cfg,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases all resources held by the Converter, including the
// browser process. Close is idempotent.
func (c *Converter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.browserCancel()
	c.allocCancel()
	return nil
}

// ConvertHTML paginates an HTML string into a PDF document.
// If pg is nil, [DefaultPageConfig] values are used.
func (c *Converter) ConvertHTML(ctx context.Context, html string, pg *PageConfig) (*Result, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp("", "vaultpdf-*.html")
	if err != nil {
		return nil, fmt.Errorf("vaultpdf: creating temp file: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	if _, err := f.WriteString(html); err != nil {
		f.Close()
		return nil, fmt.Errorf("vaultpdf: writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("vaultpdf: closing temp file: %w", err)
	}

	return c.convertFile(ctx, name, pg)
}

// ConvertFile paginates a local HTML file into a PDF document.
// If pg is nil, [DefaultPageConfig] values are used.
func (c *Converter) ConvertFile(ctx context.Context, path string, pg *PageConfig) (*Result, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("vaultpdf: %w", err)
	}
	return c.convertFile(ctx, path, pg)
}

// convertFile performs the actual navigation and PDF generation in a
// dedicated browser tab.
func (c *Converter) convertFile(ctx context.Context, path string, pg *PageConfig) (*Result, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("vaultpdf: resolving path: %w", err)
	}
	targetURL := "file://" + filepath.ToSlash(abs)

	resolved := pg.resolved()

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)
	defer tabCancel()

	// Honor caller cancellation and the configured timeout while the tab
	// runs; a hung engine fails instead of blocking indefinitely.
	go func() {
		select {
		case <-ctx.Done():
			tabCancel()
		case <-tabCtx.Done():
		}
	}()

	width, height := resolved.paperDimensions()
	marginTop, marginRight, marginBottom, marginLeft := resolved.marginInches()

	var buf []byte
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			params := page.PrintToPDF().
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(marginTop).
				WithMarginRight(marginRight).
				WithMarginBottom(marginBottom).
				WithMarginLeft(marginLeft).
				WithScale(resolved.Scale).
				WithPrintBackground(resolved.PrintBackground).
				WithLandscape(resolved.Orientation == Landscape)

			var err error
			buf, _, err = params.Do(ctx)
			return err
		}),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineFailure, err)
	}

	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: engine produced an empty document", ErrEngineFailure)
	}
	return &Result{data: buf}, nil
}

func (c *Converter) checkClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}
