// Package finder ranks registry records against a query string.
//
// Ranking is a pure function: updating last_opened_at after a selection is
// the caller's job.
package finder

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/arbor/internal/registry"
)

// Match pairs a record with its ranking score. Higher is better.
type Match struct {
	Record *registry.Record
	Score  int
}

// nameTierBonus lifts every name match above the best possible path-only
// match, so "proj" finds github.com/alice/proj before a path that merely
// contains the letters.
const nameTierBonus = 1000

// nameSource adapts records to fuzzy.Source over repo names.
type nameSource []registry.Record

func (s nameSource) String(i int) string { return s[i].Name }
func (s nameSource) Len() int            { return len(s) }

// pathSource adapts records to fuzzy.Source over local paths.
type pathSource []registry.Record

func (s pathSource) String(i int) string { return s[i].LocalPath }
func (s pathSource) Len() int            { return len(s) }

// Rank scores all records against query. An empty query returns every
// record ordered by last_opened_at descending (most recently used first),
// then by name. Non-matching records are omitted.
func Rank(records []registry.Record, query string) []Match {
	if query == "" {
		return rankByRecency(records)
	}

	// Name tier first: matches on the repo name outrank matches that only
	// hit the path. The candidate length penalty keeps short names ahead
	// of long ones with the same subsequence.
	scores := make(map[int]int) // record index -> score

	for _, m := range fuzzy.FindFrom(query, nameSource(records)) {
		scores[m.Index] = nameTierBonus + m.Score - len(records[m.Index].Name)
	}
	for _, m := range fuzzy.FindFrom(query, pathSource(records)) {
		if _, ok := scores[m.Index]; ok {
			continue
		}
		scores[m.Index] = m.Score - len(records[m.Index].LocalPath)
	}

	matches := make([]Match, 0, len(scores))
	for i, score := range scores {
		matches = append(matches, Match{Record: &records[i], Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return lessByRecency(matches[i].Record, matches[j].Record)
	})

	return matches
}

// rankByRecency returns all records, most recently opened first. Records
// never opened sort last, alphabetically by name.
func rankByRecency(records []registry.Record) []Match {
	matches := make([]Match, len(records))
	for i := range records {
		matches[i] = Match{Record: &records[i]}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return lessByRecency(matches[i].Record, matches[j].Record)
	})
	return matches
}

func lessByRecency(a, b *registry.Record) bool {
	switch {
	case a.LastOpenedAt != nil && b.LastOpenedAt != nil:
		if !a.LastOpenedAt.Equal(*b.LastOpenedAt) {
			return a.LastOpenedAt.After(*b.LastOpenedAt)
		}
	case a.LastOpenedAt != nil:
		return true
	case b.LastOpenedAt != nil:
		return false
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.LocalPath < b.LocalPath
}
