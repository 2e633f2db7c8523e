package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/pagecrawl/internal/config"
	"github.com/nao1215/pagecrawl/internal/database"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is the number of records shown when --limit is not given.
const defaultHistoryLimit = 50

// NewHistoryCmd creates the history command.
// This command shows fetch records stored in the local database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [site]",
		Short: "Show stored fetch records",
		Long: `History displays fetch metadata saved by previous crawls.

Each record shows the page URL, download time, elapsed milliseconds and
size in KB. The site is the page host without a leading "www.".

Examples:
  # Show the latest fetches across all sites
  pagecrawl history

  # Show fetches for one site
  pagecrawl history example.com

  # Show only failed fetches
  pagecrawl history --failed example.com

  # List all sites in the database
  pagecrawl history --sites

  # Output records in JSON format
  pagecrawl history --json example.com`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("sites", "s", false,
		"List all sites in the database")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of records to show (0 = all)")
	cmd.Flags().Bool("failed", false,
		"Show only failed fetches")
	cmd.Flags().BoolP("json", "j", false,
		"Output records in JSON format")
	cmd.Flags().String("db-dir", "",
		"Directory of the local database (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	listSites, err := flags.GetBool("sites")
	if err != nil {
		return err
	}
	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	failedOnly, err := flags.GetBool("failed")
	if err != nil {
		return err
	}
	jsonOutput, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// Do not create an empty database just to report that it is empty.
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false})
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if listSites {
		return printSites(ctx, out, db, jsonOutput)
	}

	opts := database.ListOptions{
		Limit:      limit,
		FailedOnly: failedOnly,
	}
	if len(args) == 1 {
		opts.Site = args[0]
	}

	return printHistory(ctx, out, db, opts, jsonOutput)
}

// printSites lists every site with stored records.
func printSites(ctx context.Context, out io.Writer, db *database.CrawlDB, jsonOutput bool) error {
	sites, err := db.ListSites(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sites: %w", err)
	}

	if jsonOutput {
		if sites == nil {
			sites = []string{}
		}
		return writeJSON(out, sites)
	}

	if len(sites) == 0 {
		fmt.Fprintln(out, "No sites found in the database.")
		fmt.Fprintln(out, "\nUse 'pagecrawl crawl <url>' to crawl a site.")
		return nil
	}

	fmt.Fprintf(out, "Crawled sites (%d):\n\n", len(sites))
	for _, site := range sites {
		fmt.Fprintf(out, "  • %s\n", site)
	}
	fmt.Fprintln(out, "\nUse 'pagecrawl history <site>' to see fetch records for a site.")
	return nil
}

// printHistory prints fetch records as a Markdown table or JSON.
func printHistory(ctx context.Context, out io.Writer, db *database.CrawlDB, opts database.ListOptions, jsonOutput bool) error {
	records, err := db.ListFetchRecords(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list fetch records: %w", err)
	}

	if jsonOutput {
		if records == nil {
			records = []database.FetchRecord{}
		}
		return writeJSON(out, records)
	}

	if len(records) == 0 {
		if opts.Site != "" {
			fmt.Fprintf(out, "No fetch records found for %s\n", opts.Site)
		} else {
			fmt.Fprintln(out, "No fetch records found.")
		}
		return nil
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		status := "ok"
		if !r.Success {
			status = "failed"
			if r.StatusCode != 0 {
				status += " (" + strconv.Itoa(r.StatusCode) + ")"
			}
		}
		rows[i] = []string{
			strconv.FormatInt(r.ID, 10),
			r.WebsiteName,
			r.LinkName,
			r.StartTime.Local().Format("2006-01-02 15:04:05"),
			strconv.FormatInt(r.ElapsedMS, 10),
			strconv.FormatFloat(r.SizeKB, 'f', 2, 64),
			status,
		}
	}

	md := markdown.NewMarkdown(out)
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Site", "URL", "Started", "Elapsed (ms)", "Size (KB)", "Status"},
		Rows:   rows,
	})
	return md.Build()
}

// writeJSON writes v as indented JSON.
func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
