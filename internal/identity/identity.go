// Package identity maps git remote URLs and local paths to a canonical
// repository identity and back.
//
// An identity is the triple host/owner/name. The owner part may span
// several path segments (nested groups on GitLab-style hosts). The same
// repository always yields the same identity regardless of the remote
// protocol, credentials, host casing, or a trailing ".git".
package identity

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrMalformed is returned when a remote URL or path cannot be reduced to
// host/owner/name.
var ErrMalformed = errors.New("malformed repository reference")

// Identity locates a repository independent of protocol and casing.
type Identity struct {
	Host  string   // lower-cased, e.g. "github.com"
	Owner []string // ordered path segments, at least one
	Name  string
}

// ParseRemote derives an identity from a git remote URL.
//
// Accepted forms:
//
//	git@github.com:Org/Repo.git
//	ssh://git@github.com/Org/Repo
//	https://github.com/Org/Repo.git
//	github.com/Org/Repo
//
// The host is lower-cased; owner and name keep their casing. Credentials,
// ports, a trailing slash and a trailing ".git" are stripped.
func ParseRemote(remote string) (Identity, error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return Identity{}, fmt.Errorf("%w: empty remote", ErrMalformed)
	}

	var host, rest string

	switch {
	case isSCPLike(remote):
		// user@host:owner/name
		after := remote[strings.Index(remote, "@")+1:]
		colon := strings.Index(after, ":")
		if colon <= 0 {
			return Identity{}, fmt.Errorf("%w: %q", ErrMalformed, remote)
		}
		host = after[:colon]
		rest = after[colon+1:]
	case strings.Contains(remote, "://"):
		parsed, err := url.Parse(remote)
		if err != nil {
			return Identity{}, fmt.Errorf("%w: %q", ErrMalformed, remote)
		}
		host = parsed.Hostname()
		rest = strings.TrimPrefix(parsed.Path, "/")
	default:
		// bare host/owner/name
		host, rest, _ = strings.Cut(remote, "/")
	}

	rest = strings.TrimRight(rest, "/")
	rest = strings.TrimSuffix(rest, ".git")
	host = strings.ToLower(host)

	if host == "" {
		return Identity{}, fmt.Errorf("%w: %q has no host", ErrMalformed, remote)
	}

	var segments []string
	for _, s := range strings.Split(rest, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return Identity{}, fmt.Errorf("%w: %q has no owner and name", ErrMalformed, remote)
	}

	return Identity{
		Host:  host,
		Owner: segments[: len(segments)-1 : len(segments)-1],
		Name:  segments[len(segments)-1],
	}, nil
}

// isSCPLike reports whether remote uses the SSH shorthand user@host:path.
// A "://" before the "@" means the "@" belongs to a URL's credentials part.
func isSCPLike(remote string) bool {
	i := strings.Index(remote, "@")
	return i >= 0 && !strings.Contains(remote[:i], "://")
}

// ParsePath derives an identity from a repository path below root. The
// layout below root must be host/owner…/name with at least three segments.
func ParsePath(root, path string) (Identity, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return Identity{}, fmt.Errorf("%w: %q is not below root %q", ErrMalformed, path, root)
	}

	segments := strings.Split(filepath.ToSlash(rel), "/")
	if len(segments) < 3 {
		return Identity{}, fmt.Errorf("%w: %q is not host/owner/name below %q", ErrMalformed, path, root)
	}

	return Identity{
		Host:  strings.ToLower(segments[0]),
		Owner: segments[1 : len(segments)-1 : len(segments)-1],
		Name:  segments[len(segments)-1],
	}, nil
}

// FromParts rebuilds an identity from stored fields. The owner string may
// contain "/" for nested groups.
func FromParts(host, owner, name string) Identity {
	return Identity{
		Host:  strings.ToLower(host),
		Owner: strings.Split(owner, "/"),
		Name:  name,
	}
}

// Key returns the canonical dedup key host/owner…/name.
func (id Identity) Key() string {
	return id.Host + "/" + id.OwnerString() + "/" + id.Name
}

// OwnerString joins the owner segments with "/".
func (id Identity) OwnerString() string {
	return strings.Join(id.Owner, "/")
}

// Path returns the canonical on-disk location of the repository below root.
func (id Identity) Path(root string) string {
	parts := make([]string, 0, len(id.Owner)+3)
	parts = append(parts, root, id.Host)
	parts = append(parts, id.Owner...)
	parts = append(parts, id.Name)
	return filepath.Join(parts...)
}

// RemoteKey normalizes a remote URL straight to its dedup key.
func RemoteKey(remote string) (string, error) {
	id, err := ParseRemote(remote)
	if err != nil {
		return "", err
	}
	return id.Key(), nil
}
