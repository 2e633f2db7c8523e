package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresDB stores per-fetch metadata in PostgreSQL using the same
// scraped_links layout as CrawlDB.
type PostgresDB struct {
	db *sql.DB
}

// OpenPostgres connects to the database at dsn, verifies the connection
// and creates the schema if needed.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	pg := &PostgresDB{db: db}
	if err := pg.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pg, nil
}

// Close closes the connection pool.
func (p *PostgresDB) Close() error {
	return p.db.Close()
}

func (p *PostgresDB) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS scraped_links (
			id BIGSERIAL PRIMARY KEY,
			website_name TEXT NOT NULL,
			link_name TEXT NOT NULL,
			download_start_time TIMESTAMPTZ NOT NULL,
			download_end_time TIMESTAMPTZ NOT NULL,
			elapsed_time_ms BIGINT NOT NULL,
			size_kb DOUBLE PRECISION NOT NULL DEFAULT 0,
			success BOOLEAN NOT NULL DEFAULT TRUE,
			status_code INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scraped_links_website ON scraped_links(website_name)`,
		`CREATE INDEX IF NOT EXISTS idx_scraped_links_link ON scraped_links(link_name)`,
	}

	for _, query := range queries {
		if _, err := p.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}
	return nil
}

// InsertFetchRecord stores one fetch record and sets its ID.
func (p *PostgresDB) InsertFetchRecord(ctx context.Context, record *FetchRecord) error {
	query := `
		INSERT INTO scraped_links (website_name, link_name, download_start_time,
			download_end_time, elapsed_time_ms, size_kb, success, status_code, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := p.db.QueryRowContext(ctx, query,
		record.WebsiteName,
		record.LinkName,
		record.StartTime,
		record.EndTime,
		record.ElapsedMS,
		record.SizeKB,
		record.Success,
		record.StatusCode,
		record.Error,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to insert fetch record: %w", err)
	}
	return nil
}
