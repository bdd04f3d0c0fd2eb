package ui

import (
	"testing"

	"linkloft-admin/internal/lh"
)

func filterFixture() []lh.Bookmark {
	return []lh.Bookmark{
		{ID: "b1", Title: "Go blog", URL: "https://go.dev/blog"},
		{ID: "b2", Title: "Rust book", URL: "https://doc.rust-lang.org/book"},
		{ID: "b3", Title: "Gopher slides", URL: "https://talks.golang.org"},
		{ID: "b4", Title: "Unrelated", URL: "https://example.com"},
	}
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	got := filterBookmarks("", filterFixture(), FilterConfig{MinCoverage: 0.6, MaxSpread: 40, MaxResults: 200})
	if len(got) != 4 {
		t.Fatalf("expected all indices, got %v", got)
	}
}

func TestFilterShortQueryUsesSubstring(t *testing.T) {
	cfg := FilterConfig{MinCoverage: 0.6, MaxSpread: 40, MaxResults: 200}
	got := filterBookmarks("go", filterFixture(), cfg)
	// substring over lowercased title+url: "go blog", "gopher", "golang.org"
	if len(got) != 2 {
		t.Fatalf("expected 2 substring matches, got %v", got)
	}
	if got[0] != 0 || got[1] != 2 {
		t.Fatalf("expected indices 0 and 2, got %v", got)
	}
}

func TestFilterFuzzyFindsTitleMatch(t *testing.T) {
	cfg := FilterConfig{MinCoverage: 0.6, MaxSpread: 40, MaxResults: 200}
	got := filterBookmarks("gopher", filterFixture(), cfg)
	if len(got) == 0 {
		t.Fatalf("expected a fuzzy match for gopher")
	}
	if got[0] != 2 {
		t.Fatalf("expected Gopher slides first, got %v", got)
	}
}

func TestFilterHonorsMaxResults(t *testing.T) {
	cfg := FilterConfig{MinCoverage: 0.6, MaxSpread: 40, MaxResults: 1}
	got := filterBookmarks("go", filterFixture(), cfg)
	if len(got) != 1 {
		t.Fatalf("expected result cap of 1, got %v", got)
	}
}

func TestFilterNoMatches(t *testing.T) {
	cfg := FilterConfig{MinCoverage: 0.6, MaxSpread: 40, MaxResults: 200}
	got := filterBookmarks("zzz", filterFixture(), cfg)
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}
