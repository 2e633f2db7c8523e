// Package config provides the configuration of a crawl: defaults,
// validation, the optional .pagecrawl YAML file with per-host settings and
// the .env file holding the PostgreSQL connection string.
package config
