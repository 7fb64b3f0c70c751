package search

import (
	"testing"
	"time"
)

func TestParseRelativeDate(t *testing.T) {
	tests := []struct {
		in  string
		ago time.Duration
	}{
		{"5 minutes ago", 5 * time.Minute},
		{"1 minute ago", time.Minute},
		{"3 hours ago", 3 * time.Hour},
		{"1 hour ago", time.Hour},
		{"2 days ago", 48 * time.Hour},
		{"1 week ago", 7 * 24 * time.Hour},
		{"2 Hours Ago", 2 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseRelativeDate(tt.in)
			want := time.Now().Add(-tt.ago)
			if diff := want.Sub(got); diff < -time.Minute || diff > time.Minute {
				t.Errorf("parseRelativeDate(%q) = %v, want about %v", tt.in, got, want)
			}
		})
	}
}

func TestParseRelativeDateUnparseable(t *testing.T) {
	for _, in := range []string{"", "yesterday", "just now", "unknown"} {
		got := parseRelativeDate(in)
		if time.Since(got) > time.Minute {
			t.Errorf("parseRelativeDate(%q) should default to now, got %v", in, got)
		}
	}
}

func TestDefaultQueries(t *testing.T) {
	queries := DefaultQueries()
	if len(queries) == 0 {
		t.Fatal("no default queries")
	}
	seen := make(map[string]bool)
	for _, q := range queries {
		if q == "" {
			t.Error("empty query")
		}
		if seen[q] {
			t.Errorf("duplicate query %q", q)
		}
		seen[q] = true
	}
}
