package model

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type statusError struct{ code int }

func (e *statusError) Error() string   { return fmt.Sprintf("status %d", e.code) }
func (e *statusError) HTTPStatus() int { return e.code }

func TestNewFetchResult(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)

	t.Run("success copies document", func(t *testing.T) {
		t.Parallel()

		doc := &Document{StatusCode: 200, Title: "Home", Body: []byte("<html></html>"), Links: []string{"https://a.test/x"}}
		r := NewFetchResult("https://a.test/", doc, nil, start, end)

		if !r.Success || r.Error != "" {
			t.Errorf("expected success, got %+v", r)
		}
		if r.StatusCode != 200 || r.Title != "Home" || r.Size != 13 {
			t.Errorf("unexpected result: %+v", r)
		}
		if len(r.Links) != 1 {
			t.Errorf("Links = %v", r.Links)
		}
		if r.Elapsed() != 1500*time.Millisecond {
			t.Errorf("Elapsed() = %s", r.Elapsed())
		}
	})

	t.Run("error with HTTP status", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("wrapped: %w", &statusError{code: 404})
		r := NewFetchResult("https://a.test/missing", nil, err, start, end)

		if r.Success {
			t.Error("expected failure")
		}
		if r.StatusCode != 404 {
			t.Errorf("StatusCode = %d, want 404", r.StatusCode)
		}
		if r.Error != "wrapped: status 404" {
			t.Errorf("Error = %q", r.Error)
		}
		if len(r.Links) != 0 {
			t.Error("failed result must have no links")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		t.Parallel()

		r := NewFetchResult("https://a.test/", nil, errors.New("timeout"), start, end)
		if r.StatusCode != 0 || r.Error != "timeout" {
			t.Errorf("unexpected result: %+v", r)
		}
	})

	t.Run("nil document and nil error", func(t *testing.T) {
		t.Parallel()

		r := NewFetchResult("https://a.test/", nil, nil, start, end)
		if r.Success || r.Error == "" {
			t.Errorf("expected failure, got %+v", r)
		}
	})
}

func TestFetchResult_ElapsedAndSize(t *testing.T) {
	t.Parallel()

	now := time.Now()
	r := &FetchResult{StartedAt: now, FinishedAt: now.Add(-time.Second), Size: 3072}

	if r.Elapsed() != 0 {
		t.Errorf("Elapsed() = %s, want 0 for inverted times", r.Elapsed())
	}
	if r.SizeKB() != 3 {
		t.Errorf("SizeKB() = %f, want 3", r.SizeKB())
	}
}

func TestSiteOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		url      string
		expected string
	}{
		{"https://www.example.com/path", "example.com"},
		{"https://example.com:8443/", "example.com"},
		{"http://blog.example.com", "blog.example.com"},
		{"not a url", UnknownSite},
		{"", UnknownSite},
		{"://bad", UnknownSite},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			t.Parallel()
			if got := SiteOf(tc.url); got != tc.expected {
				t.Errorf("SiteOf(%q) = %q, expected %q", tc.url, got, tc.expected)
			}
			r := &FetchResult{URL: tc.url}
			if r.Site() != tc.expected {
				t.Errorf("Site() = %q, expected %q", r.Site(), tc.expected)
			}
		})
	}
}
