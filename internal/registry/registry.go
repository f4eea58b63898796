// Package registry manages the repo registry at ~/.arbor/registry.toml
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/raphi011/arbor/internal/identity"
	"github.com/raphi011/arbor/internal/storage"
)

// ErrNotFound indicates a repo is not in the registry
var ErrNotFound = errors.New("repo not found")

// Record represents a registered git repository
type Record struct {
	RemoteURL    string     `toml:"remote_url"`               // As git reports it; "" for local-only repos
	LocalPath    string     `toml:"local_path"`               // Absolute path to repo
	Host         string     `toml:"host"`                     // e.g. "github.com"
	Owner        string     `toml:"owner"`                    // "/"-joined segments ("grp/sub" for subgroups)
	Name         string     `toml:"name"`                     // Repository name
	CreatedAt    time.Time  `toml:"created_at"`               // First registration time
	LastOpenedAt *time.Time `toml:"last_opened_at,omitempty"` // Last find/open selection
}

// Identity rebuilds the repo's identity from the stored fields.
func (r *Record) Identity() identity.Identity {
	return identity.FromParts(r.Host, r.Owner, r.Name)
}

// Key returns the record's dedup key. The normalized remote URL wins when
// present; local-only repos fall back to the identity derived from their
// path fields. Both forms are host/owner…/name.
func (r *Record) Key() string {
	if r.RemoteURL != "" {
		if key, err := identity.RemoteKey(r.RemoteURL); err == nil {
			return key
		}
	}
	return r.Identity().Key()
}

// Exists reports whether the record's local path is present on disk.
func (r *Record) Exists() bool {
	_, err := os.Stat(r.LocalPath)
	return err == nil
}

// Registry holds all registered repos
type Registry struct {
	Version string   `toml:"version"`
	Repos   []Record `toml:"repos"`
}

// currentVersion is written to new registries. Bumped when the on-disk
// schema changes.
const currentVersion = "1"

// Outcome reports what Upsert did with a record.
type Outcome int

const (
	// Inserted means the key was new and the record was appended.
	Inserted Outcome = iota
	// Merged means an existing record was changed by the merge.
	Merged
	// Unchanged means an existing record already covered the new one.
	Unchanged
)

// Path returns the registry file location. $ARBOR_DATA_DIR overrides the
// default ~/.arbor directory.
func Path() (string, error) {
	if dir := os.Getenv("ARBOR_DATA_DIR"); dir != "" {
		return filepath.Join(dir, "registry.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".arbor", "registry.toml"), nil
}

// Load reads the registry from path.
// Returns an empty registry if the file doesn't exist.
func Load(path string) (*Registry, error) {
	var reg Registry
	if err := storage.LoadTOML(path, &reg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Registry{Version: currentVersion}, nil
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}
	if reg.Version == "" {
		reg.Version = currentVersion
	}
	return &reg, nil
}

// Save writes the registry to path atomically, holding a file lock so
// concurrent arbor processes don't clobber each other's writes.
func (r *Registry) Save(path string) error {
	lock := storage.NewFileLock(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock registry: %w", err)
	}
	defer lock.Unlock()

	if err := storage.SaveTOML(path, r); err != nil {
		return fmt.Errorf("save registry: %w", err)
	}
	return nil
}

// Get looks up a record by dedup key. Returns nil if absent.
func (r *Registry) Get(key string) *Record {
	for i := range r.Repos {
		if r.Repos[i].Key() == key {
			return &r.Repos[i]
		}
	}
	return nil
}

// Upsert inserts rec or merges it into the existing record with the same
// key. The merge is commutative and idempotent, so scan workers may upsert
// in any order (the caller serializes access).
func (r *Registry) Upsert(rec Record) Outcome {
	existing := r.Get(rec.Key())
	if existing == nil {
		r.Repos = append(r.Repos, rec)
		return Inserted
	}

	merged := merge(*existing, rec)
	if merged == *existing {
		return Unchanged
	}
	*existing = merged
	return Merged
}

// merge combines two records for the same key, keeping the most complete
// field set: the on-disk path wins (the lexicographically smaller path
// when both or neither exist, so argument order never matters), a
// non-empty remote wins, the later last_opened_at wins, the earlier
// created_at wins.
func merge(a, b Record) Record {
	out := a

	aOnDisk, bOnDisk := a.Exists(), b.Exists()
	if (bOnDisk && !aOnDisk) || (aOnDisk == bOnDisk && b.LocalPath < a.LocalPath) {
		out.LocalPath = b.LocalPath
		out.Host = b.Host
		out.Owner = b.Owner
		out.Name = b.Name
	}
	if out.RemoteURL == "" {
		out.RemoteURL = b.RemoteURL
	}
	if b.LastOpenedAt != nil && (out.LastOpenedAt == nil || b.LastOpenedAt.After(*out.LastOpenedAt)) {
		out.LastOpenedAt = b.LastOpenedAt
	}
	if !b.CreatedAt.IsZero() && (out.CreatedAt.IsZero() || b.CreatedAt.Before(out.CreatedAt)) {
		out.CreatedAt = b.CreatedAt
	}
	return out
}

// Remove deletes the record with the given key.
// Returns false if no record matched.
func (r *Registry) Remove(key string) bool {
	for i := range r.Repos {
		if r.Repos[i].Key() == key {
			r.Repos = slices.Delete(r.Repos, i, i+1)
			return true
		}
	}
	return false
}

// Touch updates last_opened_at for the record with the given key.
func (r *Registry) Touch(key string, at time.Time) bool {
	rec := r.Get(key)
	if rec == nil {
		return false
	}
	rec.LastOpenedAt = &at
	return true
}

// Dedupe collapses records sharing a dedup key down to one merged record
// each, preserving first-seen order. Returns the number of records removed
// and the local paths that were dropped as duplicates. Duplicates are a
// registry concept: no directory is ever deleted.
func (r *Registry) Dedupe() (removed int, droppedPaths []string) {
	seen := make(map[string]int) // key -> index into kept
	var kept []Record

	for _, rec := range r.Repos {
		key := rec.Key()
		i, dup := seen[key]
		if !dup {
			seen[key] = len(kept)
			kept = append(kept, rec)
			continue
		}

		merged := merge(kept[i], rec)
		switch merged.LocalPath {
		case rec.LocalPath:
			if kept[i].LocalPath != rec.LocalPath {
				droppedPaths = append(droppedPaths, kept[i].LocalPath)
			}
		default:
			droppedPaths = append(droppedPaths, rec.LocalPath)
		}
		kept[i] = merged
		removed++
	}

	r.Repos = kept
	return removed, droppedPaths
}

// Keys returns all record keys in registry order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.Repos))
	for i := range r.Repos {
		keys[i] = r.Repos[i].Key()
	}
	return keys
}

// Names returns all repository names, sorted and unique.
func (r *Registry) Names() []string {
	set := make(map[string]bool)
	for i := range r.Repos {
		set[r.Repos[i].Name] = true
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// String returns a display string for the record.
func (r *Record) String() string {
	if r.RemoteURL == "" {
		return r.Key() + " (local only)"
	}
	return r.Key()
}

// FromIdentity builds a fresh record for an identity discovered at
// localPath with the given remote (may be empty for local-only repos).
func FromIdentity(id identity.Identity, remoteURL, localPath string, createdAt time.Time) Record {
	return Record{
		RemoteURL: strings.TrimSpace(remoteURL),
		LocalPath: localPath,
		Host:      id.Host,
		Owner:     id.OwnerString(),
		Name:      id.Name,
		CreatedAt: createdAt,
	}
}
