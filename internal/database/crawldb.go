package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// DBFileName is the name of the SQLite database file inside the data directory.
const DBFileName = "pagecrawl.db"

// CrawlDB stores per-fetch metadata in a local SQLite database.
type CrawlDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// timeLayout has fixed-width fractional seconds so stored timestamps sort
// lexically in time order.
const timeLayout = "2006-01-02 15:04:05.000000000"

// Options configures CrawlDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging, which lets readers run while
	// workers insert.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CrawlDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*CrawlDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run a crawl first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; workers serialize on this connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CrawlDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Path returns the database file path.
func (cdb *CrawlDB) Path() string {
	return cdb.dbPath
}

// Close closes the database connection.
func (cdb *CrawlDB) Close() error {
	return cdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (cdb *CrawlDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scraped_links (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		website_name TEXT NOT NULL,
		link_name TEXT NOT NULL,
		download_start_time DATETIME NOT NULL,
		download_end_time DATETIME NOT NULL,
		elapsed_time_ms INTEGER NOT NULL,
		size_kb REAL NOT NULL DEFAULT 0,
		success INTEGER NOT NULL DEFAULT 1,
		status_code INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_scraped_links_website ON scraped_links(website_name);
	CREATE INDEX IF NOT EXISTS idx_scraped_links_link ON scraped_links(link_name);
	CREATE INDEX IF NOT EXISTS idx_scraped_links_start ON scraped_links(download_start_time);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// InsertFetchRecord stores one fetch record and sets its ID.
func (cdb *CrawlDB) InsertFetchRecord(ctx context.Context, record *FetchRecord) error {
	query := `
	INSERT INTO scraped_links (website_name, link_name, download_start_time,
		download_end_time, elapsed_time_ms, size_kb, success, status_code, error)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := cdb.db.ExecContext(ctx, query,
		record.WebsiteName,
		record.LinkName,
		record.StartTime.UTC().Format(timeLayout),
		record.EndTime.UTC().Format(timeLayout),
		record.ElapsedMS,
		record.SizeKB,
		record.Success,
		record.StatusCode,
		record.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fetch record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read fetch record id: %w", err)
	}
	record.ID = id
	return nil
}

// ListFetchRecords returns stored records, newest first.
func (cdb *CrawlDB) ListFetchRecords(ctx context.Context, opts ListOptions) ([]FetchRecord, error) {
	query := `
	SELECT id, website_name, link_name, download_start_time, download_end_time,
		elapsed_time_ms, size_kb, success, status_code, error
	FROM scraped_links
	WHERE 1=1
	`
	args := make([]any, 0)

	if opts.Site != "" {
		query += " AND website_name = ?"
		args = append(args, opts.Site)
	}
	if opts.FailedOnly {
		query += " AND success = 0"
	}

	query += " ORDER BY download_start_time DESC, id DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := cdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fetch records: %w", err)
	}
	defer rows.Close()

	var records []FetchRecord
	for rows.Next() {
		var rec FetchRecord
		var start, end string

		if err := rows.Scan(
			&rec.ID,
			&rec.WebsiteName,
			&rec.LinkName,
			&start,
			&end,
			&rec.ElapsedMS,
			&rec.SizeKB,
			&rec.Success,
			&rec.StatusCode,
			&rec.Error,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fetch record: %w", err)
		}

		rec.StartTime = parseTimestamp(start)
		rec.EndTime = parseTimestamp(end)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ListSites returns every website name with at least one record.
func (cdb *CrawlDB) ListSites(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT website_name FROM scraped_links
	ORDER BY website_name
	`

	rows, err := cdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []string
	for rows.Next() {
		var site string
		if err := rows.Scan(&site); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, site)
	}

	return sites, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// More specific formats come first.
var timestampFormats = []string{
	timeLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp parses a timestamp using the known formats.
// It returns the zero time if no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
