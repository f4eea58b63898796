// Package pull clones registered repositories that are missing on disk.
package pull

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/arbor/internal/git"
	"github.com/raphi011/arbor/internal/registry"
)

// Failure records one repository whose clone failed.
type Failure struct {
	Key    string
	Reason string
}

// Report summarizes one pull run. Slices hold registry keys and are
// sorted for stable output.
type Report struct {
	Cloned  []string
	Skipped []string // local-only rows: nothing to clone from
	Failed  []Failure
}

// Attempted returns the number of clones that were started.
func (r *Report) Attempted() int {
	return len(r.Cloned) + len(r.Failed)
}

// pullWorkers bounds concurrent clones. Clones are heavier than scans, so
// the pool is smaller.
const pullWorkers = 4

// Pull clones every record with a remote URL whose local path is missing.
// One bad remote never aborts the rest: failures are collected per
// repository and reported together.
func Pull(ctx context.Context, reg *registry.Registry, exec git.Executor) Report {
	var (
		report Report
		mu     sync.Mutex
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(pullWorkers)

	for i := range reg.Repos {
		rec := reg.Repos[i]
		if rec.Exists() {
			continue
		}
		if rec.RemoteURL == "" {
			report.Skipped = append(report.Skipped, rec.Key())
			continue
		}

		g.Go(func() error {
			err := exec.Clone(ctx, rec.RemoteURL, rec.LocalPath)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed = append(report.Failed, Failure{Key: rec.Key(), Reason: err.Error()})
			} else {
				report.Cloned = append(report.Cloned, rec.Key())
			}
			return nil
		})
	}

	_ = g.Wait() // Goroutines never return errors; failures land in the report.

	sort.Strings(report.Cloned)
	sort.Strings(report.Skipped)
	sort.Slice(report.Failed, func(i, j int) bool { return report.Failed[i].Key < report.Failed[j].Key })

	return report
}
