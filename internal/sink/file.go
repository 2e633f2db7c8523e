package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/nao1215/pagecrawl/internal/model"
)

// DefaultOutputDir is the directory raw pages are written to by default.
const DefaultOutputDir = "scraped_pages"

// nonAlphanumeric matches every rune that is replaced in file names.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeFileName turns a URL into a file name by replacing every
// character that is not an ASCII letter or digit with an underscore.
// Distinct URLs can map to the same name; the later write wins.
func SanitizeFileName(pageURL string) string {
	return nonAlphanumeric.ReplaceAllString(pageURL, "_")
}

// FileSink writes the raw HTML of successful fetches to
// <dir>/<site>/<sanitized-url>.html. Failed fetches are ignored.
type FileSink struct {
	dir string
}

// NewFileSink creates a FileSink rooted at dir.
func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = DefaultOutputDir
	}
	return &FileSink{dir: dir}
}

// Path returns the file path a result for pageURL is written to.
func (s *FileSink) Path(pageURL string) string {
	return filepath.Join(s.dir, model.SiteOf(pageURL), SanitizeFileName(pageURL)+".html")
}

// Record implements Recorder.
func (s *FileSink) Record(_ context.Context, result *model.FetchResult) error {
	if !result.Success {
		return nil
	}

	path := s.Path(result.URL)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create page directory: %w", err)
	}

	if err := os.WriteFile(path, result.Body, 0600); err != nil {
		return fmt.Errorf("failed to write page %s: %w", result.URL, err)
	}
	return nil
}
