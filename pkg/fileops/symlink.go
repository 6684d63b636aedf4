package fileops

import (
	"fmt"
	"os"
	"path/filepath"
)

// IsSymlink checks if a given path is a symbolic link.
// This function uses lstat to examine the file without following symlinks.
func IsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat path: %w", err)
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}

// CreateAbsoluteSymlink creates a symbolic link using an absolute path to the
// target. The link's parent directory is created if missing and the target
// must already exist.
//
// Parameters:
//   - target: Absolute path to the target file/directory
//   - linkPath: Absolute path where the symlink should be created
//
// Returns:
//   - error: Symlink creation errors
func CreateAbsoluteSymlink(target, linkPath string) error {
	// Validate that target exists
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("target does not exist: %s", target)
		}
		return fmt.Errorf("cannot access target: %w", err)
	}

	// Ensure the directory for the symlink exists
	linkDir := filepath.Dir(linkPath)
	if err := EnsureDirectoryExists(linkDir); err != nil {
		return fmt.Errorf("failed to create symlink directory: %w", err)
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("cannot resolve absolute target path: %w", err)
	}

	if err := os.Symlink(absTarget, linkPath); err != nil {
		return fmt.Errorf("failed to create symlink: %w", err)
	}

	return nil
}

// ResolveSymlink resolves a symbolic link and returns the final target path.
// This function follows symlink chains until it reaches a non-symlink target.
func ResolveSymlink(linkPath string) (string, error) {
	resolved, err := filepath.EvalSymlinks(linkPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve symlink: %w", err)
	}
	return resolved, nil
}

// RemovePath removes whatever sits at path: a symlink is unlinked without
// touching its target, a directory is removed recursively, a missing path is
// a no-op.
func RemovePath(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot stat path: %w", err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove symlink: %w", err)
		}
		return nil
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove path: %w", err)
	}
	return nil
}

// SymlinksSupported reports whether the current platform and filesystem allow
// creating symbolic links, probed by creating and removing one in probeDir.
// Windows without developer mode and some mounted filesystems refuse
// symlinks; callers fall back to duplication in that case.
func SymlinksSupported(probeDir string) bool {
	if err := EnsureDirectoryExists(probeDir); err != nil {
		return false
	}

	target := filepath.Join(probeDir, ".symlink-probe-target")
	link := filepath.Join(probeDir, ".symlink-probe-link")

	if err := os.WriteFile(target, []byte("probe"), 0644); err != nil {
		return false
	}
	defer os.Remove(target)
	defer os.Remove(link)

	return os.Symlink(target, link) == nil
}
