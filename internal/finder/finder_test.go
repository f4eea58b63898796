package finder

import (
	"testing"
	"time"

	"github.com/raphi011/arbor/internal/registry"
)

func rec(name, path string, opened *time.Time) registry.Record {
	return registry.Record{
		Host:         "github.com",
		Owner:        "alice",
		Name:         name,
		LocalPath:    path,
		LastOpenedAt: opened,
	}
}

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// TestRankEmptyQuery verifies an empty query returns everything ordered by
// last_opened_at descending, never-opened records last by name.
func TestRankEmptyQuery(t *testing.T) {
	t.Parallel()

	records := []registry.Record{
		rec("zeta", "/r/github.com/alice/zeta", nil),
		rec("old", "/r/github.com/alice/old", ts("2024-01-01T00:00:00Z")),
		rec("recent", "/r/github.com/alice/recent", ts("2024-06-01T00:00:00Z")),
		rec("alpha", "/r/github.com/alice/alpha", nil),
	}

	matches := Rank(records, "")
	if len(matches) != 4 {
		t.Fatalf("expected all 4 records, got %d", len(matches))
	}

	wantOrder := []string{"recent", "old", "alpha", "zeta"}
	for i, want := range wantOrder {
		if matches[i].Record.Name != want {
			t.Errorf("matches[%d] = %q, want %q", i, matches[i].Record.Name, want)
		}
	}
}

// TestRankSubstringBeatsScattered verifies an exact-substring name match
// ranks above a scattered-character subsequence match.
func TestRankSubstringBeatsScattered(t *testing.T) {
	t.Parallel()

	records := []registry.Record{
		// "proj" is scattered across this name.
		rec("parser-of-json", "/r/github.com/alice/parser-of-json", nil),
		// "proj" is a contiguous substring here.
		rec("proj", "/r/github.com/alice/proj", nil),
	}

	matches := Rank(records, "proj")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Record.Name != "proj" {
		t.Errorf("top match = %q, want contiguous match %q", matches[0].Record.Name, "proj")
	}
	if matches[0].Score <= matches[1].Score {
		t.Errorf("scores not ordered: %d <= %d", matches[0].Score, matches[1].Score)
	}
}

// TestRankNameTierAbovePathTier verifies a name match outranks a record
// matching only through its path.
func TestRankNameTierAbovePathTier(t *testing.T) {
	t.Parallel()

	records := []registry.Record{
		// Matches "tool" only through the owner segment of the path.
		rec("unrelated", "/r/github.com/toolsmith/unrelated", nil),
		rec("tool", "/r/github.com/alice/tool", nil),
	}

	matches := Rank(records, "tool")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Record.Name != "tool" {
		t.Errorf("top match = %q, want name-tier match", matches[0].Record.Name)
	}
}

func TestRankExcludesNonMatches(t *testing.T) {
	t.Parallel()

	records := []registry.Record{
		rec("proj", "/r/github.com/alice/proj", nil),
		rec("tool", "/r/github.com/bob/tool", nil),
	}

	matches := Rank(records, "proj")
	if len(matches) != 1 || matches[0].Record.Name != "proj" {
		t.Errorf("matches = %v, want only proj", matches)
	}
}

// TestRankTieBreakByRecency verifies equally scored matches order by
// last_opened_at descending.
func TestRankTieBreakByRecency(t *testing.T) {
	t.Parallel()

	records := []registry.Record{
		rec("app1", "/r/github.com/alice/app1", ts("2024-01-01T00:00:00Z")),
		rec("app2", "/r/github.com/alice/app2", ts("2024-06-01T00:00:00Z")),
	}

	matches := Rank(records, "app")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Record.Name != "app2" {
		t.Errorf("top match = %q, want most recently opened", matches[0].Record.Name)
	}
}

func TestRankCaseInsensitive(t *testing.T) {
	t.Parallel()

	records := []registry.Record{
		rec("MyProj", "/r/github.com/alice/MyProj", nil),
	}

	matches := Rank(records, "myproj")
	if len(matches) != 1 {
		t.Errorf("case-insensitive match failed: %v", matches)
	}
}
