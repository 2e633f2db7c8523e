package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.MaxPages != DefaultMaxPages {
		t.Errorf("MaxPages = %d, want %d", cfg.MaxPages, DefaultMaxPages)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", cfg.Workers, DefaultWorkers)
	}
	if cfg.CrawlDelay != DefaultCrawlDelay {
		t.Errorf("CrawlDelay = %s, want %s", cfg.CrawlDelay, DefaultCrawlDelay)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %s, want %s", cfg.Timeout, DefaultTimeout)
	}
	if !cfg.SaveFiles || !cfg.SaveToDB {
		t.Error("expected file and database sinks enabled by default")
	}
	if !strings.HasSuffix(cfg.DBDir, AppName) {
		t.Errorf("DBDir = %q, want XDG data dir", cfg.DBDir)
	}
	if cfg.File == nil {
		t.Error("expected non-nil File")
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.Seeds = []string{"https://example.com"}
		return cfg
	}

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "zero delay allowed", modify: func(c *Config) { c.CrawlDelay = 0 }},
		{name: "no seeds", modify: func(c *Config) { c.Seeds = nil }, want: ErrNoSeed},
		{name: "zero max pages", modify: func(c *Config) { c.MaxPages = 0 }, want: ErrInvalidMaxPages},
		{name: "negative workers", modify: func(c *Config) { c.Workers = -1 }, want: ErrInvalidWorkers},
		{name: "negative delay", modify: func(c *Config) { c.CrawlDelay = -time.Second }, want: ErrInvalidCrawlDelay},
		{name: "negative rate", modify: func(c *Config) { c.RateLimit = -1 }, want: ErrInvalidRateLimit},
		{name: "zero timeout", modify: func(c *Config) { c.Timeout = 0 }, want: ErrInvalidTimeout},
		{name: "negative body size", modify: func(c *Config) { c.MaxBodySize = -1 }, want: ErrInvalidMaxBodySize},
		{name: "both report formats", modify: func(c *Config) { c.JSONReport, c.MarkdownReport = true, true }, want: ErrConflictingReportFormats},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

const sampleConfig = `
crawl:
  maxPages: 50
  workers: 8
  delay: 500ms
  timeout: 10s
  rateLimit: 2.5
  sameHost: true
  maxBodyKiB: 64
  seeds:
    - https://example.com
defaults:
  ignorePatterns:
    - "*.pdf"
  headers:
    Accept-Language: de
sites:
  example.com:
    cookie: "session=abc"
    headers:
      X-Token: t1
    followPatterns:
      - "/docs/*"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("parses crawl settings and sites", func(t *testing.T) {
		t.Parallel()

		cf, err := LoadConfigFile(writeConfig(t, sampleConfig))
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}
		if cf.Crawl.MaxPages != 50 || cf.Crawl.Workers != 8 {
			t.Errorf("unexpected crawl settings: %+v", cf.Crawl)
		}
		if cf.Crawl.Delay != 500*time.Millisecond || cf.Crawl.Timeout != 10*time.Second {
			t.Errorf("durations = %s, %s", cf.Crawl.Delay, cf.Crawl.Timeout)
		}
		if cf.Sites["example.com"].Cookie != "session=abc" {
			t.Errorf("site cookie = %q", cf.Sites["example.com"].Cookie)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(writeConfig(t, "crawl: [unclosed"))
		if err == nil || errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected parse error, got %v", err)
		}
	})

	t.Run("empty file gets sites map", func(t *testing.T) {
		t.Parallel()

		cf, err := LoadConfigFile(writeConfig(t, ""))
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}
		if cf.Sites == nil {
			t.Error("expected non-nil Sites")
		}
	})
}

func TestFindConfigFile_Explicit(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, sampleConfig)
	if got := FindConfigFile(path); got != path {
		t.Errorf("FindConfigFile(%q) = %q", path, got)
	}
	if got := FindConfigFile(filepath.Join(t.TempDir(), "missing")); got != "" {
		t.Errorf("expected empty path for missing explicit file, got %q", got)
	}
}

func TestConfig_Apply(t *testing.T) {
	t.Parallel()

	cf, err := LoadConfigFile(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("file values replace defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Apply(cf)

		if cfg.MaxPages != 50 || cfg.Workers != 8 || cfg.CrawlDelay != 500*time.Millisecond {
			t.Errorf("unexpected config: pages=%d workers=%d delay=%s", cfg.MaxPages, cfg.Workers, cfg.CrawlDelay)
		}
		if cfg.RateLimit != 2.5 || !cfg.SameHost || cfg.MaxBodySize != 64*1024 {
			t.Errorf("unexpected config: rate=%v sameHost=%v body=%d", cfg.RateLimit, cfg.SameHost, cfg.MaxBodySize)
		}
		if len(cfg.Seeds) != 1 || cfg.Seeds[0] != "https://example.com" {
			t.Errorf("Seeds = %v", cfg.Seeds)
		}
		if cfg.File != cf {
			t.Error("expected File to be set")
		}
		if cfg.UserAgent != DefaultUserAgent {
			t.Errorf("unset user agent changed to %q", cfg.UserAgent)
		}
	})

	t.Run("existing seeds are kept", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Seeds = []string{"https://cli.test"}
		cfg.Apply(cf)
		if len(cfg.Seeds) != 1 || cfg.Seeds[0] != "https://cli.test" {
			t.Errorf("Seeds = %v", cfg.Seeds)
		}
	})

	t.Run("nil file", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Apply(nil)
		if cfg.MaxPages != DefaultMaxPages {
			t.Error("nil file changed config")
		}
	})
}

func TestFile_GetSiteConfig(t *testing.T) {
	t.Parallel()

	cf, err := LoadConfigFile(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("site merged over defaults", func(t *testing.T) {
		t.Parallel()

		sc := cf.GetSiteConfig("example.com")
		if sc.Cookie != "session=abc" {
			t.Errorf("Cookie = %q", sc.Cookie)
		}
		if sc.Headers["Accept-Language"] != "de" || sc.Headers["X-Token"] != "t1" {
			t.Errorf("Headers = %v", sc.Headers)
		}
		if len(sc.IgnorePatterns) != 1 || sc.IgnorePatterns[0] != "*.pdf" {
			t.Errorf("IgnorePatterns = %v", sc.IgnorePatterns)
		}
		if len(sc.FollowPatterns) != 1 || sc.FollowPatterns[0] != "/docs/*" {
			t.Errorf("FollowPatterns = %v", sc.FollowPatterns)
		}
	})

	t.Run("www prefix and case ignored", func(t *testing.T) {
		t.Parallel()

		if sc := cf.GetSiteConfig("WWW.Example.com"); sc.Cookie != "session=abc" {
			t.Errorf("Cookie = %q", sc.Cookie)
		}
	})

	t.Run("unknown host gets defaults", func(t *testing.T) {
		t.Parallel()

		sc := cf.GetSiteConfig("other.test")
		if sc.Cookie != "" || len(sc.FollowPatterns) != 0 {
			t.Errorf("unexpected site config: %+v", sc)
		}
		if len(sc.IgnorePatterns) != 1 {
			t.Errorf("expected default ignore patterns, got %v", sc.IgnorePatterns)
		}
	})

	t.Run("nil file", func(t *testing.T) {
		t.Parallel()

		var nilFile *File
		if sc := nilFile.GetSiteConfig("example.com"); sc.Cookie != "" || sc.Headers != nil {
			t.Errorf("unexpected site config: %+v", sc)
		}
	})
}

func TestSiteConfig_HTTPHeaders(t *testing.T) {
	t.Parallel()

	if h := (SiteConfig{}).HTTPHeaders(); h != nil {
		t.Errorf("expected nil header, got %v", h)
	}

	h := SiteConfig{Cookie: "a=b", Headers: map[string]string{"x-api-key": "k"}}.HTTPHeaders()
	if h.Get("Cookie") != "a=b" {
		t.Errorf("Cookie = %q", h.Get("Cookie"))
	}
	if h.Get("X-Api-Key") != "k" {
		t.Errorf("X-Api-Key = %q", h.Get("X-Api-Key"))
	}
}

// LoadEnv modifies the process environment, so these tests are not parallel.
func TestConfig_LoadEnv(t *testing.T) {
	t.Run("reads DATABASE_URL from env file", func(t *testing.T) {
		t.Setenv(EnvDatabaseURL, "")
		os.Unsetenv(EnvDatabaseURL)

		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("DATABASE_URL=postgres://u:p@localhost/pages\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cfg := NewConfig()
		if err := cfg.LoadEnv(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.PostgresDSN != "postgres://u:p@localhost/pages" {
			t.Errorf("PostgresDSN = %q", cfg.PostgresDSN)
		}
	})

	t.Run("environment wins over env file", func(t *testing.T) {
		t.Setenv(EnvDatabaseURL, "postgres://from-env/db")

		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("DATABASE_URL=postgres://from-file/db\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cfg := NewConfig()
		if err := cfg.LoadEnv(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.PostgresDSN != "postgres://from-env/db" {
			t.Errorf("PostgresDSN = %q", cfg.PostgresDSN)
		}
	})

	t.Run("explicit DSN is kept", func(t *testing.T) {
		t.Setenv(EnvDatabaseURL, "postgres://from-env/db")

		cfg := NewConfig()
		cfg.PostgresDSN = "postgres://flag/db"
		if err := cfg.LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.PostgresDSN != "postgres://flag/db" {
			t.Errorf("PostgresDSN = %q", cfg.PostgresDSN)
		}
	})
}
