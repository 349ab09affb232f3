// vaultpdf converts a Bitwarden JSON export into a printable PDF overview.
//
// Usage:
//
//	vaultpdf export.json
//	vaultpdf -o vault.pdf --title "My Vault" export.json
package main

import (
	"errors"
	"os"

	vaultpdf "github.com/porticus-lab/go-vault-pdf"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// The HTML artifact survives engine errors; signal the partial
		// failure with a distinct status.
		if errors.Is(err, vaultpdf.ErrEngineUnavailable) || errors.Is(err, vaultpdf.ErrEngineFailure) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
