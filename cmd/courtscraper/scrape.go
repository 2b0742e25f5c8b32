package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"courtscraper/pkg/config"
	"courtscraper/pkg/logger"
	"courtscraper/pkg/portal"
	"courtscraper/pkg/scraper"
	"courtscraper/pkg/ui"
)

var (
	// Scrape command flags
	outputDir    string
	showBrowser  bool
	maxRetries   int
	strictErrors bool
	noManifest   bool
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape <case-number>",
	Short: "Download all documents filed in a case",
	Long: `Search the portal for a case and download every publicly available
document filed in it.

Documents land in a directory named after the case number. Secured or
sealed filings are recorded as placeholder PDFs, and a MANIFEST.txt
inventories the result.`,
	Example: `  # Download a case's documents with default settings
  courtscraper scrape 25-CV-0880

  # Download into a specific directory
  courtscraper scrape 25-CV-0880 --output ./cases

  # Watch the browser work through the portal
  courtscraper scrape 25-CV-0880 --show-browser

  # Treat ambiguous payloads as errors instead of secured documents
  courtscraper scrape 25-CV-0880 --strict-errors`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runScrape(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for downloads (default: ./downloads)")
	scrapeCmd.Flags().BoolVar(&showBrowser, "show-browser", false, "run the browser visibly instead of headless")
	scrapeCmd.Flags().IntVar(&maxRetries, "max-retries", -1, "navigation retry attempts after the first failure")
	scrapeCmd.Flags().BoolVar(&strictErrors, "strict-errors", false, "classify ambiguous payloads as errors, not secured")
	scrapeCmd.Flags().BoolVar(&noManifest, "no-manifest", false, "skip writing MANIFEST.txt")
}

func runScrape(cmd *cobra.Command, args []string) {
	caseNumber := strings.TrimSpace(args[0])

	flags := make(map[string]interface{})
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if showBrowser {
		flags["headless"] = false
	}
	if maxRetries >= 0 {
		flags["max-retries"] = maxRetries
	}
	if strictErrors {
		flags["strict-errors"] = true
	}
	if noManifest {
		flags["manifest"] = false
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Configuration error", err)
		os.Exit(1)
	}
	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Logger setup failed", err)
		os.Exit(1)
	}

	ui.PrintInfo("Case", caseNumber)
	if !portal.IsValidCaseNumber(caseNumber) {
		ui.PrintWarning("Case number does not look like the portal's usual format")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := scraper.New(cfg)
	s.SetProgressSink(ui.ConsoleSink{})

	summary, err := s.ScrapeCase(ctx, caseNumber)
	if err != nil {
		ui.PrintError("Scrape failed", err)
		os.Exit(1)
	}

	fmt.Println()
	ui.PrintSuccess(fmt.Sprintf("Case %s complete", summary.CaseNumber))
	ui.PrintInfo("Documents found", fmt.Sprintf("%d", summary.DocumentsFound))
	ui.PrintInfo("Downloaded", fmt.Sprintf("%d", summary.Downloaded))
	ui.PrintInfo("Secured", fmt.Sprintf("%d", summary.Secured))
	ui.PrintInfo("Skipped", fmt.Sprintf("%d", summary.Skipped))
	if summary.Failed > 0 {
		ui.PrintWarning("Failed", summary.Failed)
		os.Exit(1)
	}
}
