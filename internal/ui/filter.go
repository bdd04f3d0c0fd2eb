package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"linkloft-admin/internal/lh"
)

// FilterConfig bundles tuning parameters for the search filter.
type FilterConfig struct {
	MinCoverage float64 // minimal share of the query that must match
	MaxSpread   int     // maximal distance between first and last match index
	MaxResults  int     // upper limit of returned results
}

// searchBase builds the haystack strings fuzzy matching runs against:
// title plus URL, lowercased.
func searchBase(bookmarks []lh.Bookmark) []string {
	base := make([]string, len(bookmarks))
	for i, b := range bookmarks {
		base[i] = strings.ToLower(b.Title + " " + b.URL)
	}
	return base
}

// filterBookmarks returns bookmark indices matching the query. Short
// queries use plain substring matching; longer ones go through fuzzy
// matching with coverage and spread pruning.
func filterBookmarks(q string, bookmarks []lh.Bookmark, cfg FilterConfig) []int {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		idx := make([]int, len(bookmarks))
		for i := range bookmarks {
			idx[i] = i
		}
		return idx
	}

	base := searchBase(bookmarks)
	if len(q) < 3 {
		return filterBySubstring(q, base, cfg)
	}
	return filterByFuzzy(q, base, cfg)
}

func filterBySubstring(q string, base []string, cfg FilterConfig) []int {
	sub := make([]int, 0, min(cfg.MaxResults, len(base)))
	for i, s := range base {
		if strings.Contains(s, q) {
			sub = append(sub, i)
			if len(sub) >= cfg.MaxResults {
				break
			}
		}
	}
	return sub
}

// filterByFuzzy applies fuzzy matching and prunes results based on
// coverage and spread thresholds from cfg. If pruning removes everything,
// the raw match order is used as a fallback.
func filterByFuzzy(q string, base []string, cfg FilterConfig) []int {
	matches := fuzzy.Find(q, base)

	pruned := make([]int, 0, len(matches))
	for _, mt := range matches {
		if matchCoverage(q, mt) < cfg.MinCoverage {
			continue
		}
		if matchSpread(mt) > cfg.MaxSpread {
			continue
		}
		pruned = append(pruned, mt.Index)
		if len(pruned) >= cfg.MaxResults {
			break
		}
	}
	if len(pruned) == 0 {
		for i := 0; i < len(matches) && i < cfg.MaxResults; i++ {
			pruned = append(pruned, matches[i].Index)
		}
	}
	return pruned
}

// matchCoverage returns the ratio of matched characters to the query length.
func matchCoverage(q string, m fuzzy.Match) float64 {
	if len(q) == 0 {
		return 1
	}
	return float64(len(m.MatchedIndexes)) / float64(len(q))
}

// matchSpread returns the distance between the first and last matched index.
func matchSpread(m fuzzy.Match) int {
	if len(m.MatchedIndexes) == 0 {
		return 0
	}
	return m.MatchedIndexes[len(m.MatchedIndexes)-1] - m.MatchedIndexes[0]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
