package resolve

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/raphi011/arbor/internal/finder"
	"github.com/raphi011/arbor/internal/identity"
	"github.com/raphi011/arbor/internal/registry"
)

// ErrNotFound indicates no registry record matched the argument.
var ErrNotFound = errors.New("repo not found in registry")

// Strict resolves arg to exactly one record. Accepted forms: the dedup
// key, any remote URL spelling, an absolute or relative path, or a repo
// name when it is unique. No fuzzy matching; ambiguity is an error.
func Strict(reg *registry.Registry, arg string) (*registry.Record, error) {
	if arg == "" {
		return nil, fmt.Errorf("%w: empty target", ErrNotFound)
	}

	// Exact key, or any remote URL spelling of it.
	if key, err := identity.RemoteKey(arg); err == nil {
		if rec := reg.Get(key); rec != nil {
			return rec, nil
		}
	}

	// Path, absolute or relative to the working directory.
	if strings.ContainsRune(arg, filepath.Separator) || arg == "." || arg == ".." {
		if abs, err := filepath.Abs(arg); err == nil {
			for i := range reg.Repos {
				if reg.Repos[i].LocalPath == abs {
					return &reg.Repos[i], nil
				}
			}
		}
	}

	// Unique name.
	var matches []*registry.Record
	for i := range reg.Repos {
		if reg.Repos[i].Name == arg {
			matches = append(matches, &reg.Repos[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, arg)
	case 1:
		return matches[0], nil
	default:
		keys := make([]string, len(matches))
		for i, m := range matches {
			keys[i] = m.Key()
		}
		return nil, fmt.Errorf("name %q is ambiguous, use one of: %s", arg, strings.Join(keys, ", "))
	}
}

// Query resolves arg like Strict but falls back to the best fuzzy match.
// Used by verbs where a loose reference is convenient (open, wt); remove
// stays strict.
func Query(reg *registry.Registry, arg string) (*registry.Record, error) {
	if rec, err := Strict(reg, arg); err == nil {
		return rec, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	matches := finder.Rank(reg.Repos, arg)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, arg)
	}
	return matches[0].Record, nil
}
