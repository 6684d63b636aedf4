package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a path that starts with "~/" to the user's home directory.
//
// Usage example:
//
//	expanded := fileops.ExpandPath("~/adts/input")
//	// Returns something like "/home/user/adts/input"
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// IsDirEmpty reports whether the directory at path contains no entries.
func IsDirEmpty(path string) (bool, error) {
	dir, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("cannot open directory: %w", err)
	}
	defer dir.Close()

	_, err = dir.Readdirnames(1)
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("cannot read directory: %w", err)
	}
	return false, nil
}

// ValidatePathSecurity performs basic security validation on a file path:
// it rejects empty paths and path traversal attempts.
func ValidatePathSecurity(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// Check for path traversal in raw input
	if strings.Contains(path, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	// Clean and re-check for traversal
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	return nil
}
