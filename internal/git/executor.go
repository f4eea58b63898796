package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WorktreeInfo describes one entry of git worktree list --porcelain.
type WorktreeInfo struct {
	Path       string
	Branch     string // "" when detached or bare
	CommitHash string // Full hash from git, caller can truncate
	Bare       bool
	Detached   bool
	Locked     bool
	Prunable   bool
}

// Executor is the git capability consumed by scan, pull and the worktree
// manager. Implementations shell out to git; tests substitute fakes.
type Executor interface {
	// RemoteURL returns the origin URL of the repo at repoPath, or ""
	// when no origin remote is configured.
	RemoteURL(ctx context.Context, repoPath string) (string, error)

	// Clone clones url to exactly destPath, creating parent directories.
	Clone(ctx context.Context, url, destPath string) error

	// Worktrees returns the live worktree list of the repo at repoPath.
	// The first entry is the main working tree.
	Worktrees(ctx context.Context, repoPath string) ([]WorktreeInfo, error)

	// AddWorktree attaches branch at destPath. With newBranch the branch
	// is created from HEAD.
	AddWorktree(ctx context.Context, repoPath, branch, destPath string, newBranch bool) error

	// RemoveWorktree detaches the worktree at destPath.
	RemoveWorktree(ctx context.Context, repoPath, destPath string, force bool) error

	// PruneWorktrees drops bookkeeping for worktrees whose directory is
	// gone and returns git's verbose output.
	PruneWorktrees(ctx context.Context, repoPath string) (string, error)
}

// CLI implements Executor by shelling out to the git binary.
type CLI struct{}

var _ Executor = CLI{}

// RemoteURL returns the origin URL for a repository.
// A missing origin remote is not an error; it returns "".
func (CLI) RemoteURL(ctx context.Context, repoPath string) (string, error) {
	output, err := outputGit(ctx, repoPath, "remote", "get-url", "origin")
	if err != nil {
		if strings.Contains(err.Error(), "No such remote") {
			return "", nil
		}
		return "", fmt.Errorf("get origin URL: %v", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Clone clones url to destPath, creating intermediate directories.
func (CLI) Clone(ctx context.Context, url, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create clone directory: %w", err)
	}
	return runGit(ctx, "", "clone", url, destPath)
}

// Worktrees lists a repository's worktrees via git worktree list --porcelain.
func (CLI) Worktrees(ctx context.Context, repoPath string) ([]WorktreeInfo, error) {
	output, err := outputGit(ctx, repoPath, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("list worktrees: %v", err)
	}
	return parseWorktreePorcelain(string(output)), nil
}

// AddWorktree attaches branch at destPath, creating parent directories.
func (CLI) AddWorktree(ctx context.Context, repoPath, branch, destPath string, newBranch bool) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create worktree directory: %w", err)
	}
	args := []string{"worktree", "add"}
	if newBranch {
		args = append(args, "-b", branch, destPath)
	} else {
		args = append(args, destPath, branch)
	}
	return runGit(ctx, repoPath, args...)
}

// RemoveWorktree detaches the worktree at destPath.
func (CLI) RemoveWorktree(ctx context.Context, repoPath, destPath string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, destPath)
	return runGit(ctx, repoPath, args...)
}

// PruneWorktrees runs git worktree prune -v and returns its output.
// Git is the source of truth for which entries are stale.
func (CLI) PruneWorktrees(ctx context.Context, repoPath string) (string, error) {
	output, err := outputGit(ctx, repoPath, "worktree", "prune", "-v")
	if err != nil {
		return "", fmt.Errorf("prune worktrees: %v", err)
	}
	return string(output), nil
}

// parseWorktreePorcelain parses git worktree list --porcelain output.
// Entries are separated by blank lines; attribute lines (bare, detached,
// locked, prunable) may carry a reason after a space.
func parseWorktreePorcelain(output string) []WorktreeInfo {
	var worktrees []WorktreeInfo
	var current WorktreeInfo

	flush := func() {
		if current.Path != "" {
			worktrees = append(worktrees, current)
		}
		current = WorktreeInfo{}
	}

	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			flush()
			current.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "HEAD "):
			current.CommitHash = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch refs/heads/"):
			current.Branch = strings.TrimPrefix(line, "branch refs/heads/")
		case line == "bare":
			current.Bare = true
		case line == "detached":
			current.Detached = true
		case line == "locked" || strings.HasPrefix(line, "locked "):
			current.Locked = true
		case line == "prunable" || strings.HasPrefix(line, "prunable "):
			current.Prunable = true
		}
	}
	flush()

	return worktrees
}
