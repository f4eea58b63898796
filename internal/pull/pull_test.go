package pull

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/raphi011/arbor/internal/git"
	"github.com/raphi011/arbor/internal/registry"
)

// fakeExecutor records clone calls and fails for configured remotes.
type fakeExecutor struct {
	git.Executor

	mu      sync.Mutex
	cloned  map[string]string // url -> dest
	failing map[string]error  // url -> error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{
		cloned:  make(map[string]string),
		failing: make(map[string]error),
	}
}

func (f *fakeExecutor) Clone(_ context.Context, url, destPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failing[url]; ok {
		return err
	}
	f.cloned[url] = destPath
	return nil
}

// TestPullPartialFailure verifies one bad remote never aborts the
// remaining clones.
func TestPullPartialFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "github.com", "alice", "proj")
	bad := filepath.Join(dir, "github.com", "bob", "gone")

	reg := &registry.Registry{Repos: []registry.Record{
		{
			RemoteURL: "git@github.com:alice/proj.git",
			LocalPath: good,
			Host:      "github.com", Owner: "alice", Name: "proj",
		},
		{
			RemoteURL: "git@github.com:bob/gone.git",
			LocalPath: bad,
			Host:      "github.com", Owner: "bob", Name: "gone",
		},
	}}

	exec := newFakeExecutor()
	exec.failing["git@github.com:bob/gone.git"] = errors.New("remote: repository not found")

	report := Pull(context.Background(), reg, exec)

	if len(report.Cloned) != 1 || report.Cloned[0] != "github.com/alice/proj" {
		t.Errorf("Cloned = %v", report.Cloned)
	}
	if len(report.Failed) != 1 || report.Failed[0].Key != "github.com/bob/gone" {
		t.Errorf("Failed = %v", report.Failed)
	}
	if report.Failed[0].Reason == "" {
		t.Error("failure carries no reason")
	}
	if dest := exec.cloned["git@github.com:alice/proj.git"]; dest != good {
		t.Errorf("clone dest = %q, want %q", dest, good)
	}
	if report.Attempted() != 2 {
		t.Errorf("Attempted() = %d, want 2", report.Attempted())
	}
}

func TestPullSkipsLocalOnly(t *testing.T) {
	t.Parallel()

	reg := &registry.Registry{Repos: []registry.Record{
		{
			LocalPath: filepath.Join(t.TempDir(), "missing"),
			Host:      "github.com", Owner: "alice", Name: "scratch",
		},
	}}

	exec := newFakeExecutor()
	report := Pull(context.Background(), reg, exec)

	if len(report.Skipped) != 1 || report.Skipped[0] != "github.com/alice/scratch" {
		t.Errorf("Skipped = %v", report.Skipped)
	}
	if len(exec.cloned) != 0 {
		t.Errorf("unexpected clones: %v", exec.cloned)
	}
}

func TestPullSkipsExistingDirs(t *testing.T) {
	t.Parallel()

	present := t.TempDir()
	if err := os.MkdirAll(filepath.Join(present, ".git"), 0755); err != nil {
		t.Fatal(err)
	}

	reg := &registry.Registry{Repos: []registry.Record{
		{
			RemoteURL: "git@github.com:alice/proj.git",
			LocalPath: present,
			Host:      "github.com", Owner: "alice", Name: "proj",
		},
	}}

	exec := newFakeExecutor()
	report := Pull(context.Background(), reg, exec)

	if report.Attempted() != 0 || len(report.Skipped) != 0 {
		t.Errorf("report = %+v, want empty", report)
	}
}
