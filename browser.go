package vaultpdf

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-rod/rod/lib/launcher"
)

// BrowserEnvVar overrides browser discovery with an explicit executable path.
const BrowserEnvVar = "VAULTPDF_BROWSER"

// browserLocator is one strategy for finding a browser executable.
// It reports the path and whether it succeeded.
type browserLocator func() (string, bool)

// FindBrowser locates a Chromium-based browser executable by trying an
// ordered list of strategies, first success wins:
//
//  1. the VAULTPDF_BROWSER environment variable
//  2. known install locations for the current platform
//  3. well-known binary names in PATH
//  4. if allowDownload is set, a Chromium binary downloaded to the local
//     cache via the rod launcher
//
// Returns [ErrEngineUnavailable] when every strategy fails.
func FindBrowser(allowDownload bool) (string, error) {
	locators := []browserLocator{
		locateFromEnv,
		locateKnownPaths,
		locateInPath,
	}
	if allowDownload {
		locators = append(locators, locateDownload)
	}

	for _, locate := range locators {
		if path, ok := locate(); ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: install Chrome, Chromium or Edge, or set %s to a browser executable",
		ErrEngineUnavailable, BrowserEnvVar)
}

func locateFromEnv() (string, bool) {
	path := os.Getenv(BrowserEnvVar)
	if path == "" {
		return "", false
	}
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// locateKnownPaths probes the fixed install locations of common Chromium
// derivatives on the three desktop platforms.
func locateKnownPaths() (string, bool) {
	var candidates []string

	switch runtime.GOOS {
	case "windows":
		var bases []string
		for _, v := range []string{"PROGRAMFILES", "PROGRAMFILES(X86)", "LOCALAPPDATA"} {
			if base := os.Getenv(v); base != "" {
				bases = append(bases, base)
			}
		}
		suffixes := [][]string{
			{"Microsoft", "Edge", "Application", "msedge.exe"},
			{"Google", "Chrome", "Application", "chrome.exe"},
			{"Chromium", "Application", "chrome.exe"},
			{"BraveSoftware", "Brave-Browser", "Application", "brave.exe"},
		}
		for _, base := range bases {
			for _, suffix := range suffixes {
				candidates = append(candidates, filepath.Join(append([]string{base}, suffix...)...))
			}
		}
	case "darwin":
		candidates = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Google Chrome Canary.app/Contents/MacOS/Google Chrome Canary",
			"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Brave Browser.app/Contents/MacOS/Brave Browser",
		}
	default: // Linux and other Unix
		candidates = []string{
			"/usr/bin/google-chrome-stable",
			"/usr/bin/google-chrome",
			"/usr/bin/chromium-browser",
			"/usr/bin/chromium",
			"/usr/bin/microsoft-edge",
			"/snap/bin/chromium",
			"/usr/bin/brave-browser",
		}
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, true
		}
	}
	return "", false
}

func locateInPath() (string, bool) {
	names := []string{
		"google-chrome-stable",
		"google-chrome",
		"chrome",
		"chromium-browser",
		"chromium",
		"msedge",
		"microsoft-edge",
		"brave-browser",
	}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}

// locateDownload fetches a compatible Chromium binary if one is not already
// cached and returns the path to the executable. The binary is stored in
// ~/.cache/rod/browser (Unix) or %APPDATA%\rod\browser (Windows).
func locateDownload() (string, bool) {
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", false
	}
	return path, true
}
