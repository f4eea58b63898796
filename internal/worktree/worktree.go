// Package worktree manages the set of git worktrees attached to one
// repository.
//
// Git is the source of truth: the live set is queried through the
// executor on every call, never persisted. The package adds arbor's
// naming convention on top and flags directories the convention expects
// but git no longer recognizes.
package worktree

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/arbor/internal/git"
)

// ErrBranchCheckedOut indicates the branch is already attached to a
// worktree (or checked out in the main working tree).
var ErrBranchCheckedOut = errors.New("branch is already checked out")

// ErrPathCollision indicates the target path exists but is not a
// registered worktree.
var ErrPathCollision = errors.New("target path exists and is not a worktree")

// ErrNotFound indicates no worktree is attached for the branch.
var ErrNotFound = errors.New("no worktree for branch")

// Record describes one worktree of a repository.
type Record struct {
	Branch       string // "" when detached
	Path         string
	Commit       string
	Main         bool // the main working tree (first porcelain entry)
	Detached     bool
	Locked       bool
	Prunable     bool
	Conventional bool // path matches the configured format
	Registered   bool // false: found at a conventional path, unknown to git
}

// List returns the live worktree set of the repository, annotated with
// whether each path matches the naming convention. When the convention
// uses a fixed parent directory, directories found there that git does not
// list are appended as unregistered (stale) entries.
func List(ctx context.Context, exec git.Executor, repoPath, repoName, format string) ([]Record, error) {
	infos, err := exec.Worktrees(ctx, repoPath)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(infos))
	records := make([]Record, 0, len(infos))
	for i, info := range infos {
		known[info.Path] = true
		records = append(records, Record{
			Branch:       info.Branch,
			Path:         info.Path,
			Commit:       info.CommitHash,
			Main:         i == 0,
			Detached:     info.Detached,
			Locked:       info.Locked,
			Prunable:     info.Prunable,
			Conventional: info.Branch != "" && info.Path == ResolvePath(repoPath, repoName, info.Branch, format),
			Registered:   true,
		})
	}

	dir := conventionDir(repoPath, repoName, format)
	if dir == "" || dir == repoPath {
		return records, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		// No convention directory yet; nothing stale to report.
		return records, nil
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !known[path] {
			records = append(records, Record{Path: path, Conventional: true})
		}
	}

	return records, nil
}

// Add attaches branch at the conventional path. With newBranch the branch
// is created from HEAD.
//
// Fails with [ErrBranchCheckedOut] when the branch already has a worktree
// and [ErrPathCollision] when the target path is occupied by something git
// does not know about.
func Add(ctx context.Context, exec git.Executor, repoPath, repoName, branch, format string, newBranch bool) (Record, error) {
	infos, err := exec.Worktrees(ctx, repoPath)
	if err != nil {
		return Record{}, err
	}

	dest := ResolvePath(repoPath, repoName, branch, format)

	known := make(map[string]bool, len(infos))
	for _, info := range infos {
		known[info.Path] = true
		if info.Branch == branch {
			return Record{}, fmt.Errorf("%w: %s at %s", ErrBranchCheckedOut, branch, info.Path)
		}
	}

	if _, err := os.Stat(dest); err == nil && !known[dest] {
		return Record{}, fmt.Errorf("%w: %s", ErrPathCollision, dest)
	}

	if err := exec.AddWorktree(ctx, repoPath, branch, dest, newBranch); err != nil {
		return Record{}, err
	}

	return Record{
		Branch:       branch,
		Path:         dest,
		Conventional: true,
		Registered:   true,
	}, nil
}

// Remove detaches the worktree holding branch. The branch is resolved to
// its live path first; [ErrNotFound] when no worktree has it checked out.
func Remove(ctx context.Context, exec git.Executor, repoPath, branch string, force bool) error {
	infos, err := exec.Worktrees(ctx, repoPath)
	if err != nil {
		return err
	}

	for i, info := range infos {
		if info.Branch != branch {
			continue
		}
		if i == 0 {
			return fmt.Errorf("cannot remove the main working tree (%s)", info.Path)
		}
		return exec.RemoveWorktree(ctx, repoPath, info.Path, force)
	}

	return fmt.Errorf("%w: %s", ErrNotFound, branch)
}

// Prune delegates staleness detection to git worktree prune and returns
// how many entries git removed.
func Prune(ctx context.Context, exec git.Executor, repoPath string) (int, error) {
	output, err := exec.PruneWorktrees(ctx, repoPath)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "Removing ") {
			count++
		}
	}
	return count, nil
}
