package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pagecrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagecrawl",
		Short: "Bounded, polite, concurrent web crawler",
		Long: `pagecrawl crawls the web breadth-first from one or more seed URLs.

A fixed pool of workers fetches pages, extracts their links and queues
every URL at most once. The crawl stops after a configured number of
fetch attempts or when no new links are left, and prints the set of
discovered pages.

Raw HTML is saved under scraped_pages/ and per-fetch metadata is stored
in a local SQLite database (and optionally PostgreSQL).`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
