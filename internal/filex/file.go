// Package filex has small filesystem helpers for the client's local state.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will hold path (0700) and
// returns it. In-memory SQLite DSNs and bare file names in the working
// directory need no directory and are returned as ".".
func EnsureParentDir(path string) (string, error) {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return ".", nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// DefaultStateDir returns ~/.linkedin-clone, falling back to the working
// directory when the home directory cannot be resolved.
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".linkedin-clone")
}
