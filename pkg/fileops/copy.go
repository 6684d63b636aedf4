package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// AtomicWriteFile writes data to destPath through a temporary file in the
// same directory followed by an atomic rename. The destination either holds
// the complete new content or is left untouched; a process interrupted
// mid-write never leaves a partially written file behind.
//
// Parameters:
//   - destPath: Absolute path to the destination file
//   - data: Full content to write
//   - perm: File mode for the destination
//
// Returns:
//   - error: Write, sync, or rename errors
func AtomicWriteFile(destPath string, data []byte, perm os.FileMode) error {
	tempPath := destPath + ".tmp"
	tempFile, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	var writeSuccess bool
	defer func() {
		tempFile.Close()
		if !writeSuccess {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write file contents: %w", err)
	}

	// Sync to ensure data is written to disk before the rename
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	writeSuccess = true
	return nil
}

// AtomicCopy performs an atomic file copy operation from source to destination.
// The destination file either appears fully copied or not at all.
//
// The function uses a temporary file approach:
//  1. Creates a temporary file in the destination directory
//  2. Copies all data to the temporary file
//  3. Syncs data to disk to ensure durability
//  4. Atomically renames the temporary file to the final destination
//
// Note: this function requires write permissions in the destination directory
// and will overwrite existing files without warning.
func AtomicCopy(srcPath, destPath string) error {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source file: %w", err)
	}

	tempPath := destPath + ".tmp"
	tempFile, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	var copySuccess bool
	defer func() {
		tempFile.Close()
		if !copySuccess {
			os.Remove(tempPath)
		}
	}()

	if _, err := io.Copy(tempFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	copySuccess = true
	return nil
}

// CopyDir recursively duplicates the contents of srcDir into destDir,
// preserving file modes. destDir is created if it does not exist. Symbolic
// links inside srcDir are copied as the files they resolve to, so the result
// is a self-contained snapshot with no references back into the source tree.
//
// Parameters:
//   - srcDir: Existing directory to duplicate
//   - destDir: Destination directory (created if missing)
//
// Returns:
//   - error: Traversal or copy errors, with the offending path in context
func CopyDir(srcDir, destDir string) error {
	srcInfo, err := os.Stat(srcDir)
	if err != nil {
		return fmt.Errorf("cannot access source directory: %w", err)
	}
	if !srcInfo.IsDir() {
		return fmt.Errorf("source is not a directory: %s", srcDir)
	}

	if err := os.MkdirAll(destDir, srcInfo.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("failed to read source directory %s: %w", srcDir, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(srcDir, entry.Name())
		destPath := filepath.Join(destDir, entry.Name())

		// Follow symlinks so the snapshot stands on its own
		info, err := os.Stat(srcPath)
		if err != nil {
			return fmt.Errorf("cannot stat %s: %w", srcPath, err)
		}

		if info.IsDir() {
			if err := CopyDir(srcPath, destPath); err != nil {
				return err
			}
			continue
		}

		if err := copyFileContents(srcPath, destPath, info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to copy %s: %w", srcPath, err)
		}
	}

	return nil
}

// copyFileContents copies a single regular file. Plain copy without the
// temp-file dance; CopyDir targets are fresh directories the caller owns.
func copyFileContents(srcPath, destPath string, perm os.FileMode) error {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	destFile, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, srcFile); err != nil {
		return err
	}

	return destFile.Close()
}

// EnsureDirectoryExists creates a directory and all necessary parent directories.
// This is equivalent to `mkdir -p` and is safe to call multiple times.
func EnsureDirectoryExists(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
