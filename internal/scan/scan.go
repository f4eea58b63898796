// Package scan reconciles the registry with the repositories actually
// present under the configured roots.
package scan

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/arbor/internal/config"
	"github.com/raphi011/arbor/internal/git"
	"github.com/raphi011/arbor/internal/identity"
	"github.com/raphi011/arbor/internal/registry"
)

// Report summarizes one scan run. Slices hold registry keys and are sorted
// for stable output.
type Report struct {
	Added     []string // new registry rows
	Updated   []string // existing rows changed by the merge
	Orphaned  []string // rows whose directory is gone; never auto-removed
	Unchanged int
	Dropped   []string // duplicate paths collapsed by the pre-scan dedupe
}

// scanWorkers bounds concurrent remote lookups. Discovery per repo is
// independent I/O; the registry merge point is serialized below.
const scanWorkers = 8

// Scan walks all configured roots three levels deep (host/owner/name),
// registers every git working tree it finds and reports rows whose
// directory no longer exists as orphaned. Duplicate rows are collapsed
// before reconciling so corrupted registries heal on the next scan.
//
// Running Scan twice without filesystem changes yields an empty Added and
// Updated on the second run.
func Scan(ctx context.Context, cfg *config.Config, reg *registry.Registry, exec git.Executor) (Report, error) {
	var report Report

	_, report.Dropped = reg.Dedupe()

	roots, err := cfg.ExpandedRoots()
	if err != nil {
		return report, err
	}

	type candidate struct {
		root string
		path string
	}
	var candidates []candidate
	for _, root := range roots {
		for _, path := range discover(root) {
			candidates = append(candidates, candidate{root: root, path: path})
		}
	}

	var (
		mu      sync.Mutex // serializes registry access and report appends
		touched = make(map[string]bool)
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scanWorkers)

	for _, c := range candidates {
		g.Go(func() error {
			id, err := identity.ParsePath(c.root, c.path)
			if err != nil {
				// Not host/owner/name shaped; skip silently.
				return nil
			}

			// A repo without a readable remote still registers as
			// local-only; it stays listable but is skipped by pull
			// and open.
			remote, _ := exec.RemoteURL(ctx, c.path)

			rec := registry.FromIdentity(id, remote, c.path, time.Now())

			mu.Lock()
			defer mu.Unlock()

			key := rec.Key()
			touched[key] = true
			switch reg.Upsert(rec) {
			case registry.Inserted:
				report.Added = append(report.Added, key)
			case registry.Merged:
				report.Updated = append(report.Updated, key)
			case registry.Unchanged:
				report.Unchanged++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}

	for i := range reg.Repos {
		rec := &reg.Repos[i]
		if key := rec.Key(); !touched[key] && !rec.Exists() {
			report.Orphaned = append(report.Orphaned, key)
		}
	}

	sort.Strings(report.Added)
	sort.Strings(report.Updated)
	sort.Strings(report.Orphaned)
	sort.Strings(report.Dropped)

	return report, nil
}

// discover returns all git working trees exactly three levels below root
// (host/owner/name). Hidden entries are skipped, as are directories
// without a .git marker. A missing or unreadable root yields no candidates.
func discover(root string) []string {
	var found []string
	for _, host := range subdirs(root) {
		for _, owner := range subdirs(filepath.Join(root, host)) {
			for _, name := range subdirs(filepath.Join(root, host, owner)) {
				path := filepath.Join(root, host, owner, name)
				if git.IsRepoDir(path) {
					found = append(found, path)
				}
			}
		}
	}
	return found
}

// subdirs lists visible subdirectory names of dir.
func subdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names
}
