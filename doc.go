// Package vaultpdf converts an unencrypted Bitwarden-style JSON vault
// export into a self-contained HTML document and a paginated PDF rendered
// by a headless Chromium-based browser.
//
// The pipeline runs strictly one way: raw export bytes are normalized
// into renderer-ready rows, the rows become escaped HTML markup, and the
// markup is paginated by the browser. A typical conversion:
//
//	export, err := vaultpdf.ParseExport(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rows := export.Rows()
//
//	html, err := vaultpdf.RenderHTML(rows, vaultpdf.Metadata{
//	    Title:       "Bitwarden Vault Overview",
//	    GeneratedAt: time.Now(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pipe := vaultpdf.NewPipeline(nil)
//	artifacts, err := pipe.Emit(ctx, html, "vault")
//
// Emit writes vault.html first and vault.pdf second; when no browser can
// be found ([ErrEngineUnavailable]) or the engine fails
// ([ErrEngineFailure]) the HTML artifact survives, so the user always
// retains a readable copy.
//
// # Loader tolerance
//
// [ParseExport] is strict about one thing only: the input must be a JSON
// object. Real exports drift across app versions, so every field below
// the top level is optional and defaults to an explicit empty value.
// Unknown folder references label as "No Folder", unknown item types echo
// their raw value, and both the string and the legacy numeric type
// encodings are accepted.
//
// # Engine discovery
//
// [FindBrowser] tries an ordered chain: the VAULTPDF_BROWSER environment
// variable, fixed install locations on Windows, macOS and Linux, PATH
// lookup, and optionally a cached Chromium download via the rod launcher.
package vaultpdf
