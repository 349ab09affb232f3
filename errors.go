package vaultpdf

import "errors"

// Sentinel errors returned by the library. Every error coming out of the
// public API wraps one of these; match with errors.Is.
var (
	// ErrMalformedInput is returned when the export cannot be parsed as a
	// JSON object at all. Anything less broken is tolerated by defaulting.
	ErrMalformedInput = errors.New("vaultpdf: malformed vault export")

	// ErrInvariantViolation is returned when the renderer fails on input
	// that should have been normalized by the loader.
	ErrInvariantViolation = errors.New("vaultpdf: renderer invariant violated")

	// ErrEngineUnavailable is returned when no Chromium-based browser can
	// be located. The HTML artifact is still written in this case.
	ErrEngineUnavailable = errors.New("vaultpdf: no rendering engine found")

	// ErrEngineFailure is returned when a browser was found but failed to
	// produce a usable PDF: non-zero exit, timeout, or empty output.
	ErrEngineFailure = errors.New("vaultpdf: rendering engine failed")

	// ErrClosed is returned when attempting to use a closed [Converter].
	ErrClosed = errors.New("vaultpdf: converter is closed")
)
