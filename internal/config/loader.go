package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".pagecrawl"

// DefaultEnvFile is the dotenv file read for environment overrides.
const DefaultEnvFile = ".env"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cf.Sites == nil {
		cf.Sites = make(map[string]SiteConfig)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. configPath, if specified
//  2. .pagecrawl in the current directory
//  3. config.yaml in the XDG config directory
//  4. .pagecrawl in the user's home directory
//
// Returns the path if found, or an empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Apply copies the crawl-wide settings of the file onto c.
// Zero values in the file are ignored.
func (c *Config) Apply(cf *File) {
	if cf == nil {
		return
	}
	c.File = cf

	s := cf.Crawl
	if len(s.Seeds) > 0 && len(c.Seeds) == 0 {
		c.Seeds = append([]string(nil), s.Seeds...)
	}
	if s.MaxPages != 0 {
		c.MaxPages = s.MaxPages
	}
	if s.Workers != 0 {
		c.Workers = s.Workers
	}
	if s.Delay != 0 {
		c.CrawlDelay = s.Delay
	}
	if s.RateLimit != 0 {
		c.RateLimit = s.RateLimit
	}
	if s.Timeout != 0 {
		c.Timeout = s.Timeout
	}
	if s.UserAgent != "" {
		c.UserAgent = s.UserAgent
	}
	if s.Proxy != "" {
		c.ProxyAddress = s.Proxy
	}
	if s.SameHost {
		c.SameHost = true
	}
	if s.OutputDir != "" {
		c.OutputDir = s.OutputDir
	}
	if s.MaxBodyKiB != 0 {
		c.MaxBodySize = s.MaxBodyKiB * 1024
	}
}

// LoadEnv reads dotenv files into the process environment without
// overriding variables that are already set, then picks up the
// PostgreSQL connection string. Missing files are not an error.
// With no paths, DefaultEnvFile in the current directory is read.
func (c *Config) LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DefaultEnvFile}
	}

	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if dsn := os.Getenv(EnvDatabaseURL); dsn != "" && c.PostgresDSN == "" {
		c.PostgresDSN = dsn
	}
	return nil
}
