package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envConfig carries the environment-discovered settings. Flags cover the
// per-invocation choices; the environment covers machine-level ones.
// VAULTPDF_BROWSER is deliberately absent: the discovery chain in the
// library reads it itself and falls through to the other locators when
// the configured path does not exist.
type envConfig struct {
	// Timeout bounds the rendering engine invocation.
	Timeout time.Duration `env:"VAULTPDF_TIMEOUT" envDefault:"60s"`

	// NoSandbox disables the browser sandbox (needed when running as root).
	NoSandbox bool `env:"VAULTPDF_NO_SANDBOX"`
}

// loadEnvConfig reads settings from the process environment, preloading a
// .env file from the working directory when one exists.
func loadEnvConfig() (envConfig, error) {
	// Missing .env files are fine; explicit environment always wins.
	_ = godotenv.Load()

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("error getting env configs: %w", err)
	}
	return cfg, nil
}
