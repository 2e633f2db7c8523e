package config

import (
	"net/http"
	"strings"
	"time"
)

// SiteConfig holds request and link settings for one host.
type SiteConfig struct {
	// Cookie is sent as the Cookie header, e.g. "name1=value1; name2=value2".
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are extra HTTP headers sent to this host.
	Headers map[string]string `yaml:"headers,omitempty"`

	// IgnorePatterns are URL path globs that are not followed.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// FollowPatterns, when set, are the only URL path globs followed.
	FollowPatterns []string `yaml:"followPatterns,omitempty"`
}

// CrawlSettings are crawl-wide values that can be set in the config file.
// Zero values leave the defaults unchanged; CLI flags override them.
type CrawlSettings struct {
	MaxPages   int           `yaml:"maxPages,omitempty"`
	Workers    int           `yaml:"workers,omitempty"`
	Delay      time.Duration `yaml:"delay,omitempty"`
	RateLimit  float64       `yaml:"rateLimit,omitempty"`
	Timeout    time.Duration `yaml:"timeout,omitempty"`
	UserAgent  string        `yaml:"userAgent,omitempty"`
	Proxy      string        `yaml:"proxy,omitempty"`
	SameHost   bool          `yaml:"sameHost,omitempty"`
	OutputDir  string        `yaml:"outputDir,omitempty"`
	Seeds      []string      `yaml:"seeds,omitempty"`
	MaxBodyKiB int64         `yaml:"maxBodyKiB,omitempty"`
}

// File represents the structure of the .pagecrawl configuration file.
type File struct {
	// Crawl holds crawl-wide settings.
	Crawl CrawlSettings `yaml:"crawl,omitempty"`

	// Defaults applies to every host unless overridden in Sites.
	Defaults SiteConfig `yaml:"defaults,omitempty"`

	// Sites maps host names (e.g. "example.com") to their settings.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`
}

// GetSiteConfig returns the configuration for host, merged over the
// defaults. A leading "www." is ignored when looking the host up.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	if cf == nil {
		return SiteConfig{}
	}

	result := cf.Defaults
	host = strings.ToLower(host)

	site, ok := cf.Sites[host]
	if !ok {
		site, ok = cf.Sites[strings.TrimPrefix(host, "www.")]
	}
	if !ok {
		return result
	}

	if site.Cookie != "" {
		result.Cookie = site.Cookie
	}
	if len(site.Headers) > 0 {
		merged := make(map[string]string, len(result.Headers)+len(site.Headers))
		for k, v := range result.Headers {
			merged[k] = v
		}
		for k, v := range site.Headers {
			merged[k] = v
		}
		result.Headers = merged
	}
	if len(site.IgnorePatterns) > 0 {
		result.IgnorePatterns = site.IgnorePatterns
	}
	if len(site.FollowPatterns) > 0 {
		result.FollowPatterns = site.FollowPatterns
	}

	return result
}

// HTTPHeaders returns the site's headers and cookie as an http.Header,
// or nil when there is nothing to send.
func (sc SiteConfig) HTTPHeaders() http.Header {
	if sc.Cookie == "" && len(sc.Headers) == 0 {
		return nil
	}

	h := make(http.Header, len(sc.Headers)+1)
	for k, v := range sc.Headers {
		h.Set(k, v)
	}
	if sc.Cookie != "" {
		h.Set("Cookie", sc.Cookie)
	}
	return h
}
