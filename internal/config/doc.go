// Package config handles loading and validation of arbor configuration.
//
// Configuration is read from ~/.config/arbor/config.toml. The directory
// can be overridden with $ARBOR_CONFIG_DIR.
//
// # Key Settings
//
//   - roots: Root directories holding repositories as <host>/<owner>/<name>.
//     The first root receives new clones; all roots are scanned.
//   - worktree_format: Template for worktree locations (default:
//     "worktrees/{branch}")
//
// # Host Templates
//
// The [hosts.DOMAIN] sections register browser URL templates for
// self-hosted forges:
//
//	[hosts."gitlab.corp.example"]
//	home  = "https://gitlab.corp.example/{owner}/{repo}"
//	pr    = "https://gitlab.corp.example/{owner}/{repo}/-/merge_requests/{number}"
//	issue = "https://gitlab.corp.example/{owner}/{repo}/-/issues/{number}"
//
// github.com and gitlab.com are built into the forge package and need no
// configuration.
//
// # Path Validation
//
// Root paths must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory.
package config
