package git

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseWorktreePorcelain(t *testing.T) {
	t.Parallel()

	output := `worktree /repos/github.com/alice/proj
HEAD abcdef1234567890abcdef1234567890abcdef12
branch refs/heads/main

worktree /repos/github.com/alice/proj/worktrees/feature-x
HEAD 1111111111111111111111111111111111111111
branch refs/heads/feature-x

worktree /repos/github.com/alice/proj/worktrees/spike
HEAD 2222222222222222222222222222222222222222
detached

worktree /repos/github.com/alice/proj/worktrees/held
HEAD 3333333333333333333333333333333333333333
branch refs/heads/held
locked working on it

worktree /repos/github.com/alice/proj/worktrees/gone
HEAD 4444444444444444444444444444444444444444
branch refs/heads/gone
prunable gitdir file points to non-existent location
`

	wts := parseWorktreePorcelain(output)
	if len(wts) != 5 {
		t.Fatalf("expected 5 worktrees, got %d", len(wts))
	}

	main := wts[0]
	if main.Branch != "main" || main.Detached || main.Locked || main.Prunable {
		t.Errorf("main entry parsed wrong: %+v", main)
	}
	if main.CommitHash != "abcdef1234567890abcdef1234567890abcdef12" {
		t.Errorf("CommitHash = %q", main.CommitHash)
	}

	if wts[1].Branch != "feature-x" {
		t.Errorf("Branch = %q, want feature-x", wts[1].Branch)
	}
	if !wts[2].Detached || wts[2].Branch != "" {
		t.Errorf("detached entry parsed wrong: %+v", wts[2])
	}
	if !wts[3].Locked {
		t.Errorf("locked entry parsed wrong: %+v", wts[3])
	}
	if !wts[4].Prunable {
		t.Errorf("prunable entry parsed wrong: %+v", wts[4])
	}
}

func TestParseWorktreePorcelainBare(t *testing.T) {
	t.Parallel()

	output := "worktree /repos/github.com/alice/proj\nbare\n"
	wts := parseWorktreePorcelain(output)
	if len(wts) != 1 || !wts[0].Bare {
		t.Errorf("bare entry parsed wrong: %+v", wts)
	}
}

func TestParseWorktreePorcelainEmpty(t *testing.T) {
	t.Parallel()

	if wts := parseWorktreePorcelain(""); len(wts) != 0 {
		t.Errorf("expected no worktrees, got %v", wts)
	}
}

func TestIsRepoDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if IsRepoDir(dir) {
		t.Error("IsRepoDir() = true for plain directory")
	}

	// .git directory (main checkout)
	withDir := filepath.Join(dir, "a")
	if err := os.MkdirAll(filepath.Join(withDir, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	if !IsRepoDir(withDir) {
		t.Error("IsRepoDir() = false for .git directory")
	}

	// .git file (worktree)
	withFile := filepath.Join(dir, "b")
	if err := os.MkdirAll(withFile, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(withFile, ".git"), []byte("gitdir: /elsewhere\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !IsRepoDir(withFile) {
		t.Error("IsRepoDir() = false for .git file")
	}
}
