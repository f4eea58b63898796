// Package storage provides atomic file operations for arbor's TOML state files.
package storage

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML atomically writes data as TOML to the specified path.
// It ensures the parent directory exists, writes to a temp file,
// then renames to the final path for atomic operation.
func SaveTOML(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return err
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, buf.Bytes(), 0o600); err != nil {
		return err
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}

// LoadTOML reads TOML from the specified path into dest.
// Returns os.ErrNotExist if the file doesn't exist (caller should handle).
func LoadTOML(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return toml.Unmarshal(data, dest)
}
