// Package doctor diagnoses arbor's environment and registry state.
//
// Checks are read-only. Arbor's repair verbs are scan (reconcile), clean
// (dedupe, drop orphans) and pull (restore missing clones); doctor only
// points at them.
package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/raphi011/arbor/internal/config"
	"github.com/raphi011/arbor/internal/format"
	"github.com/raphi011/arbor/internal/git"
	"github.com/raphi011/arbor/internal/registry"
)

// Check is one diagnostic result.
type Check struct {
	Name   string
	OK     bool
	Detail string // shown for failed checks; hint or error text
}

// Run executes all checks against the loaded config and the registry at
// regPath.
func Run(ctx context.Context, cfg *config.Config, regPath string) []Check {
	checks := []Check{
		checkGit(),
		checkRoots(cfg),
		checkWorktreeFormat(cfg),
		checkTemplates(cfg),
	}
	checks = append(checks, checkRegistry(regPath)...)
	return checks
}

// Healthy reports whether every check passed.
func Healthy(checks []Check) bool {
	for _, c := range checks {
		if !c.OK {
			return false
		}
	}
	return true
}

func checkGit() Check {
	if err := git.CheckGit(); err != nil {
		return Check{Name: "git binary", Detail: err.Error()}
	}
	return Check{Name: "git binary", OK: true}
}

func checkRoots(cfg *config.Config) Check {
	roots, err := cfg.ExpandedRoots()
	if err != nil {
		return Check{Name: "roots", Detail: err.Error()}
	}
	var missing []string
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			missing = append(missing, root)
		}
	}
	if len(missing) > 0 {
		return Check{Name: "roots", Detail: "missing: " + strings.Join(missing, ", ")}
	}
	return Check{Name: "roots", OK: true}
}

func checkWorktreeFormat(cfg *config.Config) Check {
	wf := cfg.WorktreeFormat
	if wf == "" {
		wf = config.DefaultWorktreeFormat
	}
	if err := format.Validate(wf); err != nil {
		return Check{Name: "worktree format", Detail: err.Error()}
	}
	return Check{Name: "worktree format", OK: true}
}

// checkTemplates validates configured host templates: home needs {owner}
// and {repo}, pr and issue additionally {number}.
func checkTemplates(cfg *config.Config) Check {
	var bad []string
	for host, tpl := range cfg.Hosts {
		for _, probe := range []struct{ name, pattern, placeholder string }{
			{"home", tpl.Home, "{repo}"},
			{"pr", tpl.PR, "{number}"},
			{"issue", tpl.Issue, "{number}"},
		} {
			if probe.pattern == "" {
				continue
			}
			if !strings.Contains(probe.pattern, probe.placeholder) {
				bad = append(bad, fmt.Sprintf("%s.%s misses %s", host, probe.name, probe.placeholder))
			}
		}
	}
	if len(bad) > 0 {
		return Check{Name: "host templates", Detail: strings.Join(bad, "; ")}
	}
	return Check{Name: "host templates", OK: true}
}

func checkRegistry(regPath string) []Check {
	reg, err := registry.Load(regPath)
	if err != nil {
		return []Check{{Name: "registry file", Detail: err.Error()}}
	}
	checks := []Check{{Name: "registry file", OK: true}}

	// Duplicate keys survive only when scan/clean never ran after a
	// corruption; dedupe on a copy so the check stays read-only.
	probe := registry.Registry{Repos: append([]registry.Record(nil), reg.Repos...)}
	if removed, _ := probe.Dedupe(); removed > 0 {
		checks = append(checks, Check{
			Name:   "duplicate entries",
			Detail: fmt.Sprintf("%d duplicate rows, run 'arbor clean'", removed),
		})
	} else {
		checks = append(checks, Check{Name: "duplicate entries", OK: true})
	}

	var orphans int
	for i := range reg.Repos {
		if !reg.Repos[i].Exists() {
			orphans++
		}
	}
	if orphans > 0 {
		checks = append(checks, Check{
			Name:   "orphaned entries",
			Detail: fmt.Sprintf("%d rows without a directory, run 'arbor pull' or 'arbor clean --orphans'", orphans),
		})
	} else {
		checks = append(checks, Check{Name: "orphaned entries", OK: true})
	}

	return checks
}
