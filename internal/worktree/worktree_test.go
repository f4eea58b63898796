package worktree

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/raphi011/arbor/internal/git"
)

// fakeExecutor serves a canned worktree list and records mutations.
type fakeExecutor struct {
	git.Executor

	worktrees   []git.WorktreeInfo
	pruneOutput string

	added   []string // dest paths passed to AddWorktree
	removed []string // dest paths passed to RemoveWorktree
}

func (f *fakeExecutor) Worktrees(context.Context, string) ([]git.WorktreeInfo, error) {
	return f.worktrees, nil
}

func (f *fakeExecutor) AddWorktree(_ context.Context, _, _, destPath string, _ bool) error {
	f.added = append(f.added, destPath)
	return nil
}

func (f *fakeExecutor) RemoveWorktree(_ context.Context, _, destPath string, _ bool) error {
	f.removed = append(f.removed, destPath)
	return nil
}

func (f *fakeExecutor) PruneWorktrees(context.Context, string) (string, error) {
	return f.pruneOutput, nil
}

func TestList(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	exec := &fakeExecutor{worktrees: []git.WorktreeInfo{
		{Path: repo, Branch: "main", CommitHash: "aaa"},
		{Path: filepath.Join(repo, "worktrees", "feature-x"), Branch: "feature-x", CommitHash: "bbb"},
		{Path: filepath.Join(repo, "elsewhere"), Branch: "odd", CommitHash: "ccc"},
	}}

	records, err := List(context.Background(), exec, repo, "proj", "worktrees/{branch}")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	if !records[0].Main {
		t.Error("first record should be the main working tree")
	}
	if !records[1].Conventional || !records[1].Registered {
		t.Errorf("conventional worktree flagged wrong: %+v", records[1])
	}
	if records[2].Conventional {
		t.Errorf("off-convention worktree flagged conventional: %+v", records[2])
	}
}

// TestListStaleEntries verifies directories in the convention dir that git
// does not list show up as unregistered.
func TestListStaleEntries(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	live := filepath.Join(repo, "worktrees", "feature-x")
	stale := filepath.Join(repo, "worktrees", "left-behind")
	for _, dir := range []string{live, stale} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}

	exec := &fakeExecutor{worktrees: []git.WorktreeInfo{
		{Path: repo, Branch: "main"},
		{Path: live, Branch: "feature-x"},
	}}

	records, err := List(context.Background(), exec, repo, "proj", "worktrees/{branch}")
	if err != nil {
		t.Fatal(err)
	}

	var found bool
	for _, rec := range records {
		if rec.Path == stale {
			found = true
			if rec.Registered {
				t.Error("stale entry reported as registered")
			}
		}
	}
	if !found {
		t.Errorf("stale directory not reported: %+v", records)
	}
}

func TestAdd(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	exec := &fakeExecutor{worktrees: []git.WorktreeInfo{
		{Path: repo, Branch: "main"},
	}}

	rec, err := Add(context.Background(), exec, repo, "proj", "feature-x", "worktrees/{branch}", true)
	if err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(repo, "worktrees", "feature-x")
	if rec.Path != want {
		t.Errorf("Path = %q, want %q", rec.Path, want)
	}
	if len(exec.added) != 1 || exec.added[0] != want {
		t.Errorf("added = %v", exec.added)
	}
}

func TestAddBranchCheckedOut(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	exec := &fakeExecutor{worktrees: []git.WorktreeInfo{
		{Path: repo, Branch: "main"},
		{Path: filepath.Join(repo, "worktrees", "feature-x"), Branch: "feature-x"},
	}}

	_, err := Add(context.Background(), exec, repo, "proj", "feature-x", "worktrees/{branch}", false)
	if !errors.Is(err, ErrBranchCheckedOut) {
		t.Errorf("err = %v, want ErrBranchCheckedOut", err)
	}
	if len(exec.added) != 0 {
		t.Errorf("unexpected AddWorktree calls: %v", exec.added)
	}
}

func TestAddPathCollision(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	// Occupy the target path with something git doesn't know about.
	if err := os.MkdirAll(filepath.Join(repo, "worktrees", "feature-x"), 0755); err != nil {
		t.Fatal(err)
	}

	exec := &fakeExecutor{worktrees: []git.WorktreeInfo{
		{Path: repo, Branch: "main"},
	}}

	_, err := Add(context.Background(), exec, repo, "proj", "feature-x", "worktrees/{branch}", false)
	if !errors.Is(err, ErrPathCollision) {
		t.Errorf("err = %v, want ErrPathCollision", err)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	target := filepath.Join(repo, "worktrees", "feature-x")
	exec := &fakeExecutor{worktrees: []git.WorktreeInfo{
		{Path: repo, Branch: "main"},
		{Path: target, Branch: "feature-x"},
	}}

	if err := Remove(context.Background(), exec, repo, "feature-x", false); err != nil {
		t.Fatal(err)
	}
	if len(exec.removed) != 1 || exec.removed[0] != target {
		t.Errorf("removed = %v, want %q", exec.removed, target)
	}
}

func TestRemoveNotFound(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	exec := &fakeExecutor{worktrees: []git.WorktreeInfo{
		{Path: repo, Branch: "main"},
	}}

	err := Remove(context.Background(), exec, repo, "nope", false)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRemoveRefusesMain(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	exec := &fakeExecutor{worktrees: []git.WorktreeInfo{
		{Path: repo, Branch: "main"},
	}}

	if err := Remove(context.Background(), exec, repo, "main", false); err == nil {
		t.Error("Remove() should refuse the main working tree")
	}
	if len(exec.removed) != 0 {
		t.Errorf("unexpected RemoveWorktree calls: %v", exec.removed)
	}
}

func TestPrune(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{pruneOutput: "Removing worktrees/gone: gitdir file points to non-existent location\nRemoving worktrees/also-gone: gitdir file points to non-existent location\n"}

	count, err := Prune(context.Background(), exec, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestPruneNothing(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{pruneOutput: ""}
	count, err := Prune(context.Background(), exec, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}
