package vaultpdf

import (
	"time"

	"github.com/rs/zerolog"
)

// converterConfig holds internal configuration shared by the Converter
// and the Pipeline.
type converterConfig struct {
	browserPath  string
	autoDownload bool
	timeout      time.Duration
	noSandbox    bool
	log          zerolog.Logger
}

func defaultConfig() converterConfig {
	return converterConfig{
		timeout: 60 * time.Second,
		log:     zerolog.Nop(),
	}
}

// Option configures a [Converter] or [Pipeline].
type Option func(*converterConfig)

// WithBrowserPath pins the browser executable instead of discovering one
// through [FindBrowser].
func WithBrowserPath(path string) Option {
	return func(c *converterConfig) {
		c.browserPath = path
	}
}

// WithAutoDownload allows discovery to fall back to downloading a Chromium
// binary into the local cache when no installed browser can be found.
func WithAutoDownload() Option {
	return func(c *converterConfig) {
		c.autoDownload = true
	}
}

// WithTimeout bounds a single conversion. Defaults to 60 seconds; a hung
// browser fails with [ErrEngineFailure] instead of blocking forever.
// A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *converterConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the browser sandbox. Required when running as
// root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *converterConfig) {
		c.noSandbox = true
	}
}

// WithLogger sets the logger used for progress and diagnostics.
// By default all log output is discarded.
func WithLogger(log zerolog.Logger) Option {
	return func(c *converterConfig) {
		c.log = log
	}
}
