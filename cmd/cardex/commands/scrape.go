package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cardex/cardex/internal/card"
	"github.com/cardex/cardex/internal/crawler"
	"github.com/cardex/cardex/internal/logger"
	"github.com/cardex/cardex/internal/output"
	"github.com/cardex/cardex/internal/schema"
	"github.com/cardex/cardex/internal/scraper"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape an expansion's card list and export filtered cards",
	Long: `Scrape walks every list page of the given category, visits each card's
detail page for its rarity, and writes the cards whose rarity is in the
allow-set to the output file.

A failed detail fetch aborts the run and leaves no output file. Pass
--keep-going to instead skip the affected cards; the omission count is
reported at the end.

Examples:
  cardex scrape --category 583201
  cardex scrape --category 583201 --rarity R --rarity SR -o rares.csv
  cardex scrape --category 583201 --keep-going -c 4`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	flags := scrapeCmd.Flags()

	// Crawl settings
	flags.String("category", "", "site category ID of the expansion to scrape (required)")
	flags.StringSlice("rarity", crawler.DefaultConfig().Rarities, "rarity token(s) to keep (can be repeated)")
	flags.String("base-url", crawler.DefaultConfig().BaseURL, "card-list search URL")
	flags.Int("start-page", 1, "first list page to fetch")
	flags.Duration("list-delay", crawler.DefaultConfig().ListDelay, "pause before each list-page request")
	flags.Duration("detail-delay", crawler.DefaultConfig().DetailDelay, "pause before each detail-page request")
	flags.IntP("concurrency", "c", 1, "concurrent detail-page requests")
	flags.Bool("keep-going", false, "skip cards whose detail fetch fails instead of aborting")

	// Fetch settings
	flags.String("fetch-mode", "static", "fetch mode: static, dynamic")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.String("user-agent", "", "override the request User-Agent")

	// Output settings
	flags.StringP("output", "o", "cards.csv", "output file")
	flags.String("format", "csv", "output format: csv, json, jsonl, yaml")

	_ = scrapeCmd.MarkFlagRequired("category")

	_ = viper.BindPFlag("category", flags.Lookup("category"))
	_ = viper.BindPFlag("base_url", flags.Lookup("base-url"))
	_ = viper.BindPFlag("rarities", flags.Lookup("rarity"))
}

func runScrape(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := crawler.DefaultConfig()
	cfg.Category = viper.GetString("category")
	cfg.BaseURL = viper.GetString("base_url")
	cfg.Rarities = viper.GetStringSlice("rarities")
	cfg.StartPage, _ = cmd.Flags().GetInt("start-page")
	cfg.ListDelay, _ = cmd.Flags().GetDuration("list-delay")
	cfg.DetailDelay, _ = cmd.Flags().GetDuration("detail-delay")
	cfg.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	cfg.KeepGoing, _ = cmd.Flags().GetBool("keep-going")

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}

	fetchMode, _ := cmd.Flags().GetString("fetch-mode")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	userAgent, _ := cmd.Flags().GetString("user-agent")

	fetcherCfg := scraper.DefaultConfig()
	fetcherCfg.Timeout = timeout
	if userAgent != "" {
		fetcherCfg.UserAgent = userAgent
	}

	fetcher, err := scraper.New(scraper.Mode(fetchMode), fetcherCfg)
	if err != nil {
		logger.Error("failed to create fetcher", "error", err)
		return err
	}
	defer fetcher.Close()

	outputPath, _ := cmd.Flags().GetString("output")
	formatStr, _ := cmd.Flags().GetString("format")

	logger.Info("starting scrape",
		"category", cfg.Category,
		"rarities", cfg.AllowSet().String(),
		"fetch_mode", fetcher.Type(),
		"output", outputPath)

	c := crawler.New(fetcher, schema.NewFusionWorld(), cfg)

	if !viper.GetBool("quiet") {
		var bar *progressbar.ProgressBar
		c.OnProgress(func(completed, total int) {
			if bar == nil {
				bar = progressbar.Default(int64(total), "fetching card details")
			}
			_ = bar.Set(completed)
		})
	}

	records, stats, err := c.Run(ctx)
	if err != nil {
		// No output file on a fatal error: never ship partial data.
		logger.Error("scrape failed", "error", err)
		return err
	}

	logger.Info("scrape complete",
		"pages", stats.PagesFetched,
		"cards_found", stats.Summaries,
		"duplicates", stats.Duplicates,
		"unmatched", stats.Unmatched,
		"filtered_out", stats.FilteredOut,
		"kept", stats.Kept)
	if stats.Omitted > 0 {
		logger.Warn("cards omitted due to failed detail fetches", "count", stats.Omitted)
	}

	if err := exportRecords(outputPath, output.Format(formatStr), records); err != nil {
		logger.Error("export failed", "path", outputPath, "error", err)
		return err
	}

	logger.Info("export written", "path", outputPath, "records", len(records))
	return nil
}

// exportRecords writes the records to path in the given format. The file
// is only created here, after the crawl has fully succeeded.
func exportRecords(path string, format output.Format, records []card.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	w, err := output.NewWriter(f, format)
	if err != nil {
		return err
	}

	if err := w.WriteAll(records); err != nil {
		return err
	}
	return w.Close()
}
