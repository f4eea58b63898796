package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/arbor/internal/format"
)

// HostTemplates holds the browser URL templates for one host.
// Placeholders: {host} {owner} {repo} {number}.
type HostTemplates struct {
	Home  string `toml:"home"`
	PR    string `toml:"pr"`
	Issue string `toml:"issue"`
}

// Config holds the arbor configuration
type Config struct {
	Roots          []string                 `toml:"roots"`
	WorktreeFormat string                   `toml:"worktree_format"`
	Hosts          map[string]HostTemplates `toml:"hosts"`
}

// DefaultWorktreeFormat is the default location for new worktrees,
// nested inside the repository.
const DefaultWorktreeFormat = "worktrees/{branch}"

// Default returns the default configuration
func Default() Config {
	return Config{
		Roots:          []string{"~/src"},
		WorktreeFormat: DefaultWorktreeFormat,
	}
}

// PrimaryRoot returns the first configured root, expanded. New clones go
// there; all roots are scanned.
func (c *Config) PrimaryRoot() (string, error) {
	if len(c.Roots) == 0 {
		return "", errors.New("no roots configured")
	}
	return expandPath(c.Roots[0])
}

// ExpandedRoots returns all roots with ~ expanded.
func (c *Config) ExpandedRoots() ([]string, error) {
	roots := make([]string, 0, len(c.Roots))
	for _, r := range c.Roots {
		expanded, err := expandPath(r)
		if err != nil {
			return nil, fmt.Errorf("expand root %q: %w", r, err)
		}
		roots = append(roots, expanded)
	}
	return roots, nil
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the path to the config file. $ARBOR_CONFIG_DIR overrides the
// default ~/.config/arbor directory (used by tests and scripted setups).
func Path() (string, error) {
	if dir := os.Getenv("ARBOR_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "arbor", "config.toml"), nil
}

// Load reads config from the config path.
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from an explicit path.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config file: %w", err)
	}

	for _, root := range cfg.Roots {
		if err := ValidatePath(root, "roots"); err != nil {
			return Default(), err
		}
	}

	for host, tpl := range cfg.Hosts {
		if tpl.Home == "" && tpl.PR == "" && tpl.Issue == "" {
			return Default(), fmt.Errorf("host %q has no templates", host)
		}
	}

	if len(cfg.Roots) == 0 {
		cfg.Roots = Default().Roots
	}
	if cfg.WorktreeFormat == "" {
		cfg.WorktreeFormat = DefaultWorktreeFormat
	}
	if err := format.Validate(cfg.WorktreeFormat); err != nil {
		return Default(), err
	}

	return cfg, nil
}

const defaultConfig = `# arbor configuration

# Root directories holding repositories laid out as <host>/<owner>/<name>.
# The first root is where "arbor add" clones new repositories; all roots
# are walked by "arbor scan". Paths must be absolute or start with ~.
roots = [%q]

# Worktree location, resolved per repository.
# Available placeholders:
#   {repo}    - repository name
#   {branch}  - branch name ("/" replaced with "-")
# Examples:
#   "worktrees/{branch}"      nested inside the repository (default)
#   "../{repo}-{branch}"      sibling directory
#   "~/worktrees/{repo}-{branch}"  centralized folder
worktree_format = "worktrees/{branch}"

# URL templates for self-hosted forges. github.com and gitlab.com are
# built in; hosts starting with "github." or containing "gitlab" get the
# matching shapes automatically.
# Available placeholders: {host} {owner} {repo} {number}
#
# [hosts."gitlab.corp.example"]
# home  = "https://gitlab.corp.example/{owner}/{repo}"
# pr    = "https://gitlab.corp.example/{owner}/{repo}/-/merge_requests/{number}"
# issue = "https://gitlab.corp.example/{owner}/{repo}/-/issues/{number}"
`

// Init creates a config file with the given primary root.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(root string, force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := ValidatePath(root, "root"); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	content := fmt.Sprintf(defaultConfig, root)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}

	return path, nil
}
