// Package cmd defines and implements the CLI commands for the mkbscrape executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mkbscrape",
		Short: "Scrapes the Serbian MKB-10 code list into a delimited file",
		Long: `mkbscrape walks the MKB-10 (ICD-10) pages published on stetoskop.info,
extracts every code with its Serbian and Latin name, and writes the
deduplicated, sorted result as a pipe-delimited text file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional, YAML)")
	cmd.AddCommand(newScrapeCmd())

	return cmd
}

// Execute is the main entry point. It exits non-zero on any fatal failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
