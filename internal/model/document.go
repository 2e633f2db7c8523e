package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Document is a fetched and parsed web page as returned by a Fetcher.
type Document struct {
	// URL is the absolute URL the document was fetched from.
	URL string `json:"url"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// ContentType is the value of the Content-Type response header.
	ContentType string `json:"content_type"`

	// Title is the text of the <title> element, if any.
	Title string `json:"title,omitempty"`

	// Body is the response body decoded to UTF-8.
	// It is capped at the fetcher's maximum body size.
	Body []byte `json:"-"`

	// Links contains the absolute outbound links found in the page,
	// in document order. Duplicates are kept; deduplication is the
	// crawler's job.
	Links []string `json:"links,omitempty"`

	// Hash is the SHA-256 hash of Body.
	Hash string `json:"hash,omitempty"`
}

// ComputeHash calculates and sets the SHA-256 hash of the document body.
func (d *Document) ComputeHash() {
	if len(d.Body) == 0 {
		d.Hash = ""
		return
	}

	hash := sha256.Sum256(d.Body)
	d.Hash = hex.EncodeToString(hash[:])
}

// IsHTML reports whether the document content type indicates HTML.
// An empty content type is treated as HTML because many servers omit it.
func (d *Document) IsHTML() bool {
	ct := strings.ToLower(d.ContentType)
	return ct == "" ||
		strings.HasPrefix(ct, "text/html") ||
		strings.HasPrefix(ct, "application/xhtml+xml")
}
