package worktree

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePath(t *testing.T) {
	t.Parallel()

	repoPath := "/repos/github.com/alice/proj"

	tests := []struct {
		name   string
		branch string
		format string
		want   string
	}{
		{
			name:   "nested default",
			branch: "feature-x",
			format: "worktrees/{branch}",
			want:   "/repos/github.com/alice/proj/worktrees/feature-x",
		},
		{
			name:   "nested with dot prefix",
			branch: "feature-x",
			format: "./worktrees/{branch}",
			want:   "/repos/github.com/alice/proj/worktrees/feature-x",
		},
		{
			name:   "sibling",
			branch: "main",
			format: "../{repo}-{branch}",
			want:   "/repos/github.com/alice/proj-main",
		},
		{
			name:   "absolute",
			branch: "fix",
			format: "/worktrees/{repo}-{branch}",
			want:   "/worktrees/proj-fix",
		},
		{
			name:   "slash in branch sanitized",
			branch: "feat/login",
			format: "worktrees/{branch}",
			want:   "/repos/github.com/alice/proj/worktrees/feat-login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ResolvePath(repoPath, "proj", tt.branch, tt.format)
			if got != tt.want {
				t.Errorf("ResolvePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolvePathHomeRelative(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got := ResolvePath("/repos/proj", "proj", "main", "~/worktrees/{repo}-{branch}")
	want := filepath.Join(home, "worktrees", "proj-main")
	if got != want {
		t.Errorf("ResolvePath() = %q, want %q", got, want)
	}
}

func TestConventionDir(t *testing.T) {
	t.Parallel()

	repoPath := "/repos/github.com/alice/proj"

	// Fixed parent: all worktrees share repo/worktrees.
	if got := conventionDir(repoPath, "proj", "worktrees/{branch}"); got != filepath.Join(repoPath, "worktrees") {
		t.Errorf("conventionDir() = %q", got)
	}

	// Sibling format mixes worktrees with unrelated repos in the parent
	// directory; there is no dedicated dir to scan.
	if got := conventionDir(repoPath, "proj", "../{repo}-{branch}"); got != "" {
		t.Errorf("conventionDir() = %q, want empty", got)
	}

	// Branch-dependent parent: nothing to scan.
	if got := conventionDir(repoPath, "proj", "{branch}/tree"); got != "" {
		t.Errorf("conventionDir() = %q, want empty", got)
	}
}
