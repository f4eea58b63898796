package main

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/raphi011/arbor/internal/git"
	"github.com/raphi011/arbor/internal/log"
	"github.com/raphi011/arbor/internal/registry"
	"github.com/raphi011/arbor/internal/resolve"
)

// gitExec is the git backend used by all commands.
var gitExec git.Executor = git.CLI{}

// loadRegistry loads the registry from its configured path and returns
// both, so commands can save back to the same file.
func loadRegistry() (*registry.Registry, string, error) {
	path, err := registry.Path()
	if err != nil {
		return nil, "", fmt.Errorf("locate registry: %w", err)
	}
	reg, err := registry.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("load registry: %w", err)
	}
	return reg, path, nil
}

// loadRegistryReadOnly is loadRegistry for verbs that only read: an
// unreadable registry degrades to an empty one with a warning instead of
// aborting, so listing and finding keep working while the user repairs it.
func loadRegistryReadOnly(ctx context.Context) (*registry.Registry, string) {
	reg, path, err := loadRegistry()
	if err != nil {
		log.FromContext(ctx).Warnf("%v; continuing with an empty registry", err)
		return &registry.Registry{}, path
	}
	return reg, path
}

// copyCD puts a `cd <path>` command on the clipboard. Clipboard failures
// are reported as a warning only; the command itself has already succeeded.
func copyCD(ctx context.Context, path string) {
	l := log.FromContext(ctx)
	if err := clipboard.WriteAll("cd " + path); err != nil {
		l.Warnf("could not copy to clipboard: %v", err)
		return
	}
	l.Printf("Copied 'cd %s' to clipboard\n", path)
}

// targetRepo resolves the repository a command should act on: the -r flag
// when given (fuzzy resolution), otherwise the repository containing the
// working directory.
func targetRepo(ctx context.Context, reg *registry.Registry, repoFlag string) (*registry.Record, error) {
	if repoFlag != "" {
		return resolve.Query(reg, repoFlag)
	}

	root, err := git.RepoRoot(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("not inside a git repository (use -r to name one)")
	}
	for i := range reg.Repos {
		if reg.Repos[i].LocalPath == root {
			return &reg.Repos[i], nil
		}
	}
	return nil, fmt.Errorf("%s is not a registered repository (run 'arbor scan' first)", root)
}
