package worktree

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath computes the worktree path for a branch based on the
// configured format string.
// Supports:
//   - "worktrees/{branch}" = nested inside repo (default)
//   - "../{repo}-{branch}" = sibling to repo
//   - "~/worktrees/{repo}-{branch}" = centralized folder
//   - "/absolute/{repo}-{branch}" = absolute path
func ResolvePath(repoPath, repoName, branch, format string) string {
	// Sanitize branch name (/ -> -)
	safeBranch := strings.ReplaceAll(branch, "/", "-")

	// Apply placeholders
	path := strings.ReplaceAll(format, "{repo}", repoName)
	path = strings.ReplaceAll(path, "{branch}", safeBranch)

	switch {
	case strings.HasPrefix(path, "../"):
		// Sibling to repo: ../proj-main → parent/proj-main
		return filepath.Join(filepath.Dir(repoPath), path[3:])

	case strings.HasPrefix(path, "~/"):
		// Home-relative absolute path
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			// If we can't get home dir, return the path unchanged
			// This preserves the ~ prefix for error messages
			return path
		}
		return filepath.Join(home, path[2:])

	case strings.HasPrefix(path, "/"):
		// Absolute path
		return path

	default:
		// Relative to repo (with or without ./ prefix)
		path = strings.TrimPrefix(path, "./")
		return filepath.Join(repoPath, path)
	}
}

// conventionDir returns the dedicated directory the format places
// worktrees in, or "" when there is none to scan for stale entries. Only
// formats whose last path element is exactly {branch} have one; formats
// like "../{repo}-{branch}" mix worktrees with unrelated siblings.
func conventionDir(repoPath, repoName, format string) string {
	const marker = "__arbor_branch__"
	resolved := ResolvePath(repoPath, repoName, marker, format)
	if filepath.Base(resolved) != marker {
		return ""
	}
	dir := filepath.Dir(resolved)
	if strings.Contains(dir, marker) {
		return ""
	}
	return dir
}
