// Package git shells out to the git CLI.
//
// The [Executor] interface is the seam between arbor's reconciliation
// logic and the git binary: scan, pull and the worktree manager accept an
// Executor so tests can substitute a fake returning canned remotes and
// worktree lists. [CLI] is the production implementation.
//
// All operations take a context for cancellation and log the executed
// command through the cmd package when verbose mode is on.
package git
