package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = fmt.Errorf("git not found: please install git (https://git-scm.com)")

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	_, err := exec.LookPath("git")
	if err != nil {
		return ErrGitNotFound
	}
	return nil
}

// IsRepoDir reports whether path holds a git working tree, detected by the
// .git marker (a directory for main checkouts, a file for worktrees and
// submodules). No git process is started.
func IsRepoDir(path string) bool {
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}

// RepoRoot returns the top-level directory of the working tree containing
// dir. Fails when dir is not inside a git repository.
func RepoRoot(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %v", err)
	}
	return strings.TrimSpace(string(output)), nil
}
