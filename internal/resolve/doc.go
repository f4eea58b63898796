// Package resolve turns command-line repository references into registry
// records.
//
// Verbs accept a repository in whatever form is at hand: the canonical
// host/owner/name key, a remote URL in any protocol spelling, a filesystem
// path, or just the repository name. [Strict] requires an unambiguous
// match and is used by destructive verbs like remove; [Query] adds a fuzzy
// fallback for convenience verbs like open and wt.
package resolve
