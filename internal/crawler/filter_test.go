package crawler

import (
	"testing"
)

func TestLinkFilter_Allow(t *testing.T) {
	t.Parallel()

	hostPatterns := func(host string) ([]string, []string) {
		if host == "docs.test" {
			return nil, []string{"/guide/*"}
		}
		if host == "open.test" {
			return []string{}, nil
		}
		return nil, nil
	}

	tests := []struct {
		name   string
		filter *LinkFilter
		link   string
		want   bool
	}{
		{name: "nil filter allows http", filter: nil, link: "http://a.test/", want: true},
		{name: "nil filter rejects mailto", filter: nil, link: "mailto:me@a.test", want: false},
		{name: "relative link rejected", filter: NewLinkFilter(), link: "/about", want: false},
		{name: "ftp rejected", filter: NewLinkFilter(), link: "ftp://a.test/file", want: false},
		{
			name:   "allowed host",
			filter: NewLinkFilter(WithAllowedHosts("A.test")),
			link:   "https://a.test/page",
			want:   true,
		},
		{
			name:   "other host rejected",
			filter: NewLinkFilter(WithAllowedHosts("a.test")),
			link:   "https://b.test/page",
			want:   false,
		},
		{
			name:   "ignore pattern",
			filter: NewLinkFilter(WithIgnorePatterns([]string{"*.pdf"})),
			link:   "https://a.test/docs/file.pdf",
			want:   false,
		},
		{
			name:   "follow pattern match",
			filter: NewLinkFilter(WithFollowPatterns([]string{"/blog/*"})),
			link:   "https://a.test/blog/post-1",
			want:   true,
		},
		{
			name:   "follow pattern miss",
			filter: NewLinkFilter(WithFollowPatterns([]string{"/blog/*"})),
			link:   "https://a.test/shop",
			want:   false,
		},
		{
			name:   "empty path treated as root",
			filter: NewLinkFilter(WithFollowPatterns([]string{"/"})),
			link:   "https://a.test",
			want:   true,
		},
		{
			name: "host follow patterns override",
			filter: NewLinkFilter(
				WithFollowPatterns([]string{"/blog/*"}),
				WithHostPatterns(hostPatterns),
			),
			link: "https://docs.test/guide/intro",
			want: true,
		},
		{
			name: "host ignore override clears global ignores",
			filter: NewLinkFilter(
				WithIgnorePatterns([]string{"*.pdf"}),
				WithHostPatterns(hostPatterns),
			),
			link: "https://open.test/paper.pdf",
			want: true,
		},
		{
			name: "global patterns apply to unknown hosts",
			filter: NewLinkFilter(
				WithIgnorePatterns([]string{"*.pdf"}),
				WithHostPatterns(hostPatterns),
			),
			link: "https://other.test/paper.pdf",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.filter.Allow(tt.link); got != tt.want {
				t.Errorf("Allow(%q) = %v, want %v", tt.link, got, tt.want)
			}
		})
	}
}

func TestMatchPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		// Prefix patterns with /*
		{"admin prefix match", "/admin/*", "/admin/dashboard", true},
		{"admin prefix exact", "/admin/*", "/admin", true},
		{"admin prefix no match", "/admin/*", "/user/profile", false},
		{"admin prefix partial no match", "/admin/*", "/administrator", false},
		{"nested admin", "/admin/*", "/admin/users/edit", true},

		// Extension patterns with *.
		{"pdf extension", "*.pdf", "/docs/file.pdf", true},
		{"pdf extension no match", "*.pdf", "/docs/file.txt", false},

		// Exact match patterns
		{"exact match", "/logout", "/logout", true},
		{"exact no match", "/logout", "/login", false},

		// Wildcards
		{"wildcard middle", "/api/v?/users", "/api/v1/users", true},
		{"wildcard middle no match", "/api/v?/users", "/api/v10/users", false},
		{"bare filename glob", "report-*", "/files/report-2024.html", true},

		// Root path
		{"root path", "/", "/", true},
		{"root no match prefix", "/admin/*", "/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := matchPattern(tt.pattern, tt.path); got != tt.want {
				t.Errorf("matchPattern(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
			}
		})
	}
}
