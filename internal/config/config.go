package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "pagecrawl"

	// DefaultMaxPages is the maximum number of fetch attempts per crawl.
	DefaultMaxPages = 20

	// DefaultWorkers is the size of the fetch worker pool.
	DefaultWorkers = 4

	// DefaultCrawlDelay is the fixed pause each worker takes between fetches.
	DefaultCrawlDelay = 200 * time.Millisecond

	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is a desktop Chrome identifier.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// DefaultMaxBodySize limits how much of each response body is read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultOutputDir is where raw HTML pages are written.
	DefaultOutputDir = "scraped_pages"

	// EnvDatabaseURL names the environment variable holding the optional
	// PostgreSQL connection string.
	EnvDatabaseURL = "DATABASE_URL"
)

// Config holds all options for a crawl.
// It is built from defaults, the optional config file and CLI flags, and
// passed down explicitly rather than kept in global state.
type Config struct {
	// Seeds are the URLs the crawl starts from. At least one is required.
	Seeds []string

	// MaxPages is the maximum number of fetch attempts.
	MaxPages int

	// Workers is the number of concurrent fetch workers.
	Workers int

	// CrawlDelay is the pause each worker takes after every fetch.
	CrawlDelay time.Duration

	// RateLimit caps fetches per second across all workers. 0 disables it.
	RateLimit float64

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// MaxBodySize is the maximum number of body bytes read per page.
	MaxBodySize int64

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" format.
	ProxyAddress string

	// SameHost restricts the crawl to the hosts of the seeds.
	SameHost bool

	// OutputDir is where raw HTML files are written.
	OutputDir string

	// SaveFiles enables the raw HTML file sink.
	SaveFiles bool

	// DBDir is the directory of the SQLite metadata database.
	DBDir string

	// SaveToDB enables the SQLite metadata sink.
	SaveToDB bool

	// PostgresDSN enables the PostgreSQL metadata sink when non-empty.
	PostgresDSN string

	// ConfigFilePath is the path of the YAML config file.
	// If empty, .pagecrawl is searched in the current and home directories.
	ConfigFilePath string

	// File holds the settings loaded from the config file.
	File *File

	// Verbose enables debug logging.
	Verbose bool

	// JSONReport selects JSON report output. Exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown report output. Exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to this path instead of stdout.
	ReportFile string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		MaxPages:    DefaultMaxPages,
		Workers:     DefaultWorkers,
		CrawlDelay:  DefaultCrawlDelay,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		OutputDir:   DefaultOutputDir,
		SaveFiles:   true,
		DBDir:       XDGDataDir(),
		SaveToDB:    true,
		File:        &File{Sites: make(map[string]SiteConfig)},
	}
}

// XDGDataDir returns the XDG data directory for pagecrawl.
// On Linux: ~/.local/share/pagecrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pagecrawl.
// On Linux: ~/.config/pagecrawl
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It is called once before any worker starts; every error it returns is
// fatal for the crawl.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return ErrNoSeed
	}
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}
	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
