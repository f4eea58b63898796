// Package format validates worktree location format strings.
//
// A format names where a branch's worktree lives relative to its repo,
// built from the placeholders {repo} and {branch}. The default
// "worktrees/{branch}" nests worktrees inside the repository;
// "../{repo}-{branch}" puts them next to it.
package format

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidPlaceholders lists all supported placeholders.
var ValidPlaceholders = []string{"{repo}", "{branch}"}

// placeholderRegex matches {placeholder-name} patterns
var placeholderRegex = regexp.MustCompile(`\{[a-z-]+\}`)

// Validate checks a worktree format string. Every placeholder must be
// known and {branch} must appear, otherwise all branches would resolve
// to the same directory.
func Validate(format string) error {
	if strings.TrimSpace(format) == "" {
		return fmt.Errorf("worktree format is empty")
	}

	for _, match := range placeholderRegex.FindAllString(format, -1) {
		if !isValidPlaceholder(match) {
			return fmt.Errorf("unknown placeholder %q in format %q (valid: %s)",
				match, format, strings.Join(ValidPlaceholders, ", "))
		}
	}

	if !strings.Contains(format, "{branch}") {
		return fmt.Errorf("format %q must contain {branch}", format)
	}

	return nil
}

func isValidPlaceholder(p string) bool {
	for _, valid := range ValidPlaceholders {
		if p == valid {
			return true
		}
	}
	return false
}
