// Package fileops provides secure, atomic file operations for the bootstrap
// pipeline: atomic single-file rewrites, deep directory duplication, symlink
// management, and small path utilities shared by the workspace and
// configuration layers.
package fileops
