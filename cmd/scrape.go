package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kargo-kult-wahrheit/ICD-10-serbian/internal/config"
	"github.com/kargo-kult-wahrheit/ICD-10-serbian/internal/crawler"
	"github.com/kargo-kult-wahrheit/ICD-10-serbian/internal/export"
	"github.com/kargo-kult-wahrheit/ICD-10-serbian/internal/logging"
	"github.com/kargo-kult-wahrheit/ICD-10-serbian/internal/parser"
)

// newScrapeCmd creates and configures the 'scrape' subcommand.
func newScrapeCmd() *cobra.Command {
	var (
		output string
		delay  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Runs the full scrape and writes the code list",
		Long: `Fetches the MKB-10 index page, follows every discovered detail page with a
fixed delay between requests, and writes the sorted code list to the output
path. Individual detail pages that keep failing are skipped; an unreachable
index page aborts the run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScrape(cmd, output, delay)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "path where the delimited file will be written")
	cmd.Flags().DurationVar(&delay, "delay", 200*time.Millisecond, "delay between requests to avoid overwhelming the site")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runScrape(cmd *cobra.Command, output string, delay time.Duration) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if output != "" {
		cfg.Output.Path = output
	}
	if cmd.Flags().Changed("delay") {
		cfg.Scrape.Delay = delay
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush
	zap.ReplaceGlobals(logger)

	fetcher := crawler.NewCollyFetcher(crawler.FetcherConfig{
		UserAgent: cfg.Scrape.UserAgent,
		Timeout:   cfg.Scrape.Timeout,
	})
	retry := crawler.NewFixedDelayRetryPolicy(cfg.Scrape.MaxRetries, cfg.Scrape.Delay)
	engine := crawler.NewEngine(crawler.EngineConfig{
		StartURL: cfg.IndexURL(),
		Delay:    cfg.Scrape.Delay,
	}, fetcher, retry, logger)

	assembler := export.NewAssembler()
	err = engine.Run(cmd.Context(), func(url string, body []byte) error {
		entries, err := parser.Parse(body)
		if err != nil {
			logger.Warn("parse failed", zap.String("url", url), zap.Error(err))
			return nil
		}
		logger.Debug("parsed entries", zap.String("url", url), zap.Int("count", len(entries)))
		assembler.Add(entries...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scrape: %w", err)
	}

	entries := assembler.Entries()
	if err := export.WriteFile(cfg.Output.Path, entries); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("scrape finished",
		zap.Int("entries", len(entries)),
		zap.String("path", cfg.Output.Path),
	)
	return nil
}
