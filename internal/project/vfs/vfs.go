// Package vfs provides the file system abstraction used for loading and
// saving edited files.
//
// OSFS is backed by the real file system. MemFS keeps everything in memory
// and is used by tests.
package vfs

import (
	"io/fs"
	"time"
)

// VFS is the set of file operations the editor needs.
type VFS interface {
	// ReadFile reads the entire file content.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Stat returns file information.
	Stat(path string) (FileInfo, error)

	// Rename renames (moves) a file, replacing the target.
	Rename(oldPath, newPath string) error

	// Remove removes a file.
	Remove(path string) error

	// Abs returns an absolute representation of path.
	Abs(path string) (string, error)

	// Dir returns all but the last element of path.
	Dir(path string) string

	// Base returns the last element of path.
	Base(path string) string

	// Join joins path elements.
	Join(elem ...string) string

	// Exists returns true if the path exists.
	Exists(path string) bool
}

// FileInfo describes a file.
type FileInfo struct {
	path    string
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

// NewFileInfo creates a FileInfo from the given parameters.
func NewFileInfo(path, name string, size int64, mode fs.FileMode, modTime time.Time, isDir bool) FileInfo {
	return FileInfo{
		path:    path,
		name:    name,
		size:    size,
		mode:    mode,
		modTime: modTime,
		isDir:   isDir,
	}
}

// Path returns the full path.
func (fi FileInfo) Path() string { return fi.path }

// Name returns the base name.
func (fi FileInfo) Name() string { return fi.name }

// Size returns the length in bytes.
func (fi FileInfo) Size() int64 { return fi.size }

// Mode returns the file mode bits.
func (fi FileInfo) Mode() fs.FileMode { return fi.mode }

// ModTime returns the modification time.
func (fi FileInfo) ModTime() time.Time { return fi.modTime }

// IsDir reports whether the path is a directory.
func (fi FileInfo) IsDir() bool { return fi.isDir }
