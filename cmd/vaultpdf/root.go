package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	vaultpdf "github.com/porticus-lab/go-vault-pdf"
)

var (
	outputPath      string
	title           string
	sortByFolder    bool
	paper           string
	landscape       bool
	downloadBrowser bool
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:   "vaultpdf <export.json>",
	Short: "Convert a Bitwarden JSON export into a printable PDF overview",
	Long: `vaultpdf reads an unencrypted Bitwarden JSON export (created via
Bitwarden > Export) and writes two artifacts next to each other: a
self-contained HTML document and a paginated PDF rendered by a headless
Chromium-based browser.

The HTML file is written first and kept even when no browser is available,
so a readable copy of the vault always survives. A missing or failing
browser exits with status 2; input errors exit with status 1.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "PDF destination (default: input path with .pdf extension)")
	rootCmd.Flags().StringVar(&title, "title", "Bitwarden Vault Overview", "Title for the document header")
	rootCmd.Flags().BoolVar(&sortByFolder, "sort-by-folder", false, "Group entries by folder instead of keeping export order")
	rootCmd.Flags().StringVar(&paper, "paper", "a4", "Paper size: a4, letter or legal")
	rootCmd.Flags().BoolVar(&landscape, "landscape", false, "Rotate pages to landscape orientation")
	rootCmd.Flags().BoolVar(&downloadBrowser, "download-browser", false, "Download a Chromium binary when no installed browser is found")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	// Arguments are valid from here on; failures are operational, so
	// suppress the usage text cobra would otherwise append.
	cmd.SilenceUsage = true

	log := newLogger(verbose)

	cfg, err := loadEnvConfig()
	if err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	log.Debug().Dur("timeout", cfg.Timeout).Msg("environment config loaded")

	inputPath := args[0]
	data, err := os.ReadFile(inputPath)
	if err != nil {
		log.Error().Err(err).Msg("cannot read input file")
		return err
	}

	export, err := vaultpdf.ParseExport(data)
	if err != nil {
		log.Error().Err(err).Msg("cannot parse vault export")
		return err
	}

	rows := export.Rows()
	if sortByFolder {
		vaultpdf.SortRows(rows)
	}
	log.Info().Int("folders", len(export.Folders)).Int("entries", len(rows)).Msg("vault export loaded")

	html, err := vaultpdf.RenderHTML(rows, vaultpdf.Metadata{
		Title:       title,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("cannot render document")
		return err
	}

	page, err := pageConfig(paper, landscape)
	if err != nil {
		return err
	}

	// VAULTPDF_BROWSER is not pinned here: the discovery chain reads it
	// itself and falls through to the other locators when the configured
	// path does not exist.
	opts := []vaultpdf.Option{
		vaultpdf.WithTimeout(cfg.Timeout),
		vaultpdf.WithLogger(log),
	}
	if cfg.NoSandbox {
		opts = append(opts, vaultpdf.WithNoSandbox())
	}
	if downloadBrowser {
		opts = append(opts, vaultpdf.WithAutoDownload())
	}

	pipe := vaultpdf.NewPipeline(page, opts...)
	artifacts, err := pipe.Emit(cmd.Context(), html, resolveBasePath(inputPath, outputPath))
	if err != nil {
		if artifacts.HTMLPath != "" {
			log.Warn().Str("path", artifacts.HTMLPath).Msg("PDF step failed; HTML document retained")
		}
		log.Error().Err(err).Msg("conversion failed")
		return err
	}

	fmt.Printf("PDF created successfully: %s\n", artifacts.PDFPath)
	return nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// resolveBasePath determines the extensionless base for the two output
// artifacts. An explicit output path wins; otherwise the artifacts land
// next to the input file.
func resolveBasePath(inputPath, outputPath string) string {
	path := outputPath
	if path == "" {
		path = inputPath
	}
	return strings.TrimSuffix(path, filepath.Ext(path))
}

func pageConfig(paper string, landscape bool) (*vaultpdf.PageConfig, error) {
	page := vaultpdf.DefaultPageConfig()
	switch strings.ToLower(paper) {
	case "a4":
		page.Size = vaultpdf.A4
	case "letter":
		page.Size = vaultpdf.Letter
	case "legal":
		page.Size = vaultpdf.Legal
	default:
		return nil, fmt.Errorf("unknown paper size %q (want a4, letter or legal)", paper)
	}
	if landscape {
		page.Orientation = vaultpdf.Landscape
	}
	return &page, nil
}
